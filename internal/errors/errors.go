// Package errors provides standardized error handling for the tmuxtutor
// application. It defines common error types, kinds, and helper functions
// for consistent error creation, wrapping, and handling. Expected conditions
// (missing config, duplicate binding) are modeled as kinds so callers can
// branch without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileOperationFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Binding error kinds
	BindingConflict
	BindingNotFound
	// Sandbox error kinds
	SandboxUnavailable
	SandboxCommandFailed
	// Database error kinds
	DatabaseOperationFailed
	InvalidInputData
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound   = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidConfig  = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrSandboxStopped = NewSandboxError("sandbox container is not running", SandboxUnavailable, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// BindingError represents errors related to keybindings
type BindingError struct {
	ApplicationError
	keyCombo string
}

// NewBindingError creates a new binding error
func NewBindingError(msg string, keyCombo string, kind ErrorKind, err error) *BindingError {
	return &BindingError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		keyCombo: keyCombo,
	}
}

// Error returns the binding error message
func (e *BindingError) Error() string {
	if e.keyCombo != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.keyCombo)
	}
	return e.ApplicationError.Error()
}

// KeyCombo returns the key combination associated with the error
func (e *BindingError) KeyCombo() string {
	return e.keyCombo
}

// SandboxError represents errors from the sandbox container runtime
type SandboxError struct {
	ApplicationError
	command string
}

// NewSandboxError creates a new sandbox error
func NewSandboxError(msg string, kind ErrorKind, err error) *SandboxError {
	return &SandboxError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
	}
}

// WithCommand attaches the failing command to the sandbox error
func (e *SandboxError) WithCommand(command string) *SandboxError {
	e.command = command
	return e
}

// Error returns the sandbox error message
func (e *SandboxError) Error() string {
	if e.command != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: command=%s: %v", e.msg, e.command, e.err)
		}
		return fmt.Sprintf("%s: command=%s", e.msg, e.command)
	}
	return e.ApplicationError.Error()
}

// Command returns the command associated with the error
func (e *SandboxError) Command() string {
	return e.command
}

// DatabaseError represents errors related to database operations
type DatabaseError struct {
	ApplicationError
	operation string
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DatabaseOperationFailed,
		},
	}
}

// WithOperation adds operation information to the database error
func (e *DatabaseError) WithOperation(operation string) *DatabaseError {
	e.operation = operation
	return e
}

// Error returns the database error message
func (e *DatabaseError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the database operation associated with the error
func (e *DatabaseError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// kindOf extracts the kind from any application error in the chain
func kindOf(err error) ErrorKind {
	type kinder interface{ Kind() ErrorKind }
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsNotFound checks if the error is any not-found kind (file, config, binding)
func IsNotFound(err error) bool {
	switch kindOf(err) {
	case FileNotFound, ConfigNotFound, BindingNotFound:
		return true
	}
	return false
}

// IsConflict checks if the error is a binding conflict
func IsConflict(err error) bool {
	return kindOf(err) == BindingConflict
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return kindOf(err) == InvalidConfig
}

// IsSandboxUnavailable checks if the error means the sandbox is not running
func IsSandboxUnavailable(err error) bool {
	return kindOf(err) == SandboxUnavailable
}

// IsDatabaseError checks if the error is a database error
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}
