// FILE: lixenwraith/rlog/pool/options.go
package pool

import (
	"fmt"
	"os"
)

// LogFunc receives pool diagnostics such as recovered task panics
type LogFunc func(format string, args ...any)

// Option configures a Pool
type Option func(*options)

type options struct {
	logf LogFunc
	name string
}

func defaultOptions() options {
	return options{
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "pool: "+format+"\n", args...)
		},
	}
}

// WithLogger sets the diagnostics sink. nil is ignored.
func WithLogger(logf LogFunc) Option {
	return func(o *options) {
		if logf != nil {
			o.logf = logf
		}
	}
}

// WithName tags diagnostics with the pool's name
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
