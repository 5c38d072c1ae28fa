package utils

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Console forwards script messages to the host logger. All four levels are
// fire and forget.
type Console struct{}

// NewConsole make a new console sink
func NewConsole() *Console {
	return &Console{}
}

// Debug deliver a debug message
func (c *Console) Debug(args ...interface{}) {
	DebugF("%v", render(args))
}

// Log deliver an info message
func (c *Console) Log(args ...interface{}) {
	InforF("%v", render(args))
}

// Warn deliver a warning message
func (c *Console) Warn(args ...interface{}) {
	WarningF("%v", render(args))
}

// Error deliver an error message
func (c *Console) Error(args ...interface{}) {
	ErrorF("%v", render(args))
}

// render flatten console arguments, dumping non-string values
func render(args []interface{}) string {
	var parts []string
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			parts = append(parts, v)
		case error:
			parts = append(parts, v.Error())
		default:
			parts = append(parts, strings.TrimSpace(spew.Sdump(v)))
		}
	}
	return strings.Join(parts, " ")
}
