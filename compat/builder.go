// FILE: lixenwraith/rlog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/rlog"
)

// defaultLoggerName is used when the builder creates its own logger
const defaultLoggerName = "net"

// Builder provides a flexible way to create configured logger adapters for gnet and fasthttp
// It can use an existing *rlog.Logger or create one on a controller built from a *rlog.Config
type Builder struct {
	logger *rlog.Logger
	logCfg *rlog.Config
	name   string
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{name: defaultLoggerName}
}

// WithLogger specifies an existing logger to use for the adapters
// Recommended for applications that already have a central controller
// If this is set WithConfig is ignored
func (b *Builder) WithLogger(l *rlog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("rlog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new controller
// This is used only if an existing logger is NOT provided via WithLogger
// If neither WithLogger nor WithConfig is used, a default controller will be created
func (b *Builder) WithConfig(cfg *rlog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// WithName sets the logger name used when the builder creates its own logger
func (b *Builder) WithName(name string) *Builder {
	if name == "" {
		b.err = fmt.Errorf("rlog/compat: logger name cannot be empty")
		return b
	}
	b.name = name
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*rlog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	// An existing logger was provided, so we use it
	if b.logger != nil {
		return b.logger, nil
	}

	// A nil config means defaults
	c, err := rlog.NewController(b.logCfg)
	if err != nil {
		return nil, err
	}
	c.Init(c.LogPath())

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = c.GetLogger(b.name)
	return b.logger, nil
}

// BuildGnet creates a gnet adapter
// It can be used for servers that require a standard gnet logger
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *rlog.Logger
// If a logger has not been provided or created yet, it will be initialized
func (b *Builder) GetLogger() (*rlog.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
// The following demonstrates how to integrate rlog with gnet and fasthttp
// using a single, shared controller
//
//	// 1. Create and configure the application's controller
//	c, err := rlog.NewBuilder().FilePath("/var/log/app/net.log").Appender(rlog.AppenderFile).Build()
//	if err != nil {
//		panic(fmt.Sprintf("failed to configure controller: %v", err))
//	}
//	c.Init(c.LogPath())
//
//	// 2. Create a builder and provide a named logger
//	builder := compat.NewBuilder().WithLogger(c.GetLogger("net"))
//
//	// 3. Build the required adapters
//	gnetLogger, err := builder.BuildGnet()
//	if err != nil { /* handle error */ }
//
//	fasthttpLogger, err := builder.BuildFastHTTP()
//	if err != nil { /* handle error */ }
//
//	// 4. Configure your servers with the adapters
//
//	// For gnet:
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	// For fasthttp:
//	server := &fasthttp.Server{
//		Handler: handler,
//		Logger:  fasthttpLogger,
//	}
//	go server.ListenAndServe(":8080")
