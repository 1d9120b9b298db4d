// FILE: lixenwraith/rlog/compat/emit.go
package compat

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/lixenwraith/rlog"
)

// Function column for records coming through an adapter
const (
	gnetSource     = "gnet"
	fasthttpSource = "fasthttp"
)

// emit renders a printf message and logs it with the adapter's caller as source position
func emit(l *rlog.Logger, level rlog.Level, source, format string, args ...any) {
	if l == nil || !l.Enabled(level) {
		return
	}
	// 0 emit, 1 adapter method, 2 library call site
	var file string
	_, path, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(path)
	}
	l.Log(level, file, line, source, fmt.Sprintf(format, args...))
}
