package core

import "fmt"

// SyntaxError reports a payload that is not valid JSON.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON body: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
