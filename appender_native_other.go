// FILE: lixenwraith/rlog/appender_native_other.go

//go:build windows || plan9

package rlog

// newNativeAppender uses the console appender where no system log is available
func newNativeAppender(d appenderDeps) Appender {
	return newConsoleAppender(d.cfg, d.store, d.newFormatter(), d.state, d.stdout)
}
