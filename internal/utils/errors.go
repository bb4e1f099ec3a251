package utils

import (
	"errors"
	"strings"
)

// LabelError prefixes an error with the stage or channel that produced it: "[homebrew] ...".
type LabelError struct {
	Label string
	Err   error
}

func (e *LabelError) Error() string {
	msg := e.Err.Error()
	if strings.HasPrefix(msg, "["+e.Label+"]") {
		return msg
	}
	return "[" + e.Label + "] " + msg
}

func (e *LabelError) Unwrap() error { return e.Err }

// Label wraps err with label unless err is nil or already carries a label.
func Label(label string, err error) error {
	if err == nil {
		return nil
	}
	var le *LabelError
	if errors.As(err, &le) {
		return err
	}
	return &LabelError{Label: label, Err: err}
}
