package models

import (
	"errors"
	"fmt"
)

// Error taxonomy for store and notifier calls.
//
// Transient errors are retried at the call site with bounded attempts;
// permanent errors fail the affected app's processing immediately. A
// configuration error (missing or undecryptable credential, malformed
// schedule) is permanent.

type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error in %s: %s", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

type PermanentError struct {
	Op  string
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent error in %s: %s", e.Op, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Detail
}

func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

func IsPermanent(err error) bool {
	var p *PermanentError
	var c *ConfigError
	return errors.As(err, &p) || errors.As(err, &c)
}

// ErrRunInProgress marks the documented skip when a schedule already has
// a running execution or its lease is held elsewhere. It is not a
// failure.
var ErrRunInProgress = errors.New("a run for this schedule is already in progress")
