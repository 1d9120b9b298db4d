// FILE: lixenwraith/rlog/constant.go
package rlog

// Level is a severity gate ordinal. Lower is more severe; a record is emitted iff its
// level is not OFF and its ordinal is <= the gate ordinal.
type Level int64

// Log level constants
const (
	LevelOff Level = iota
	LevelFatal
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

// Defaults
const (
	DefaultFilePath      = "rlog.log"
	DefaultMaxFileSizeMB = 10
	DefaultMaxFileCount  = 5
	DefaultBufferSizeMB  = 5
	DefaultLevel         = LevelDebug
	DefaultAppender      = AppenderBuffered
	DefaultPIICacheSize  = 4096

	// Sentinel tokens as configured; the live buffer frames content with their reversal
	DefaultBeginSentinel = "\nMUIPICNIRP_ILLUN_ODECNOC\n"
	DefaultEndSentinel   = "\nATIMERTXE_ILLUN_ODECNOC\n"
)

// Buffer size bounds applied by Controller.SetBufferSize.
const (
	MinBufferSizeMB = 1
	MaxBufferSizeMB = 5
)

// BasicFileName is the fixed file written by the basic file appender
const BasicFileName = "jabberlog.log"

// internalLoggerName tags lines the runtime writes about itself
const internalLoggerName = "rlog"

// Storage
const (
	// Size multiplier for MB
	bytesPerMB int64 = 1024 * 1024
	// Write-behind buffer of the os file store
	fileStoreBufferSize = 1024
)

// PII placeholders
const (
	piiPrefix      = "{!"
	piiSuffix      = "!}"
	piiHashLength  = 16
	piiPlaceholder = piiPrefix + piiSuffix
)
