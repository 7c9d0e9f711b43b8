package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ReadFailed indicates a file could not be read
	ReadFailed ErrorCode = "READ_FAILED"
	// FormatFailed indicates the formatter rejected a file's content
	FormatFailed ErrorCode = "FORMAT_FAILED"
	// WalkFailed indicates a directory could not be enumerated
	WalkFailed ErrorCode = "WALK_FAILED"
	// WriteFailed indicates the report could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// Canceled indicates the run was interrupted
	Canceled ErrorCode = "CANCELED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// CheckPath suggests inspecting a path on disk
	CheckPath FixActionType = "check-path"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
}

// DiffError represents a deploydiff error with code, message, and the offending path
type DiffError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new DiffError
func New(code ErrorCode, message string, cause error) *DiffError {
	return &DiffError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *DiffError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error
func (e *DiffError) Unwrap() error {
	return e.cause
}

// WithPath records the file or directory the error concerns
func (e *DiffError) WithPath(path string) *DiffError {
	e.Path = path
	return e
}

// CodeOf returns the code of the first DiffError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var de *DiffError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ReadFailed: {
		{
			Type:        CheckPath,
			Description: "Check that the file exists and is readable, then re-run",
		},
	},
	FormatFailed: {
		{
			Type:        CheckPath,
			Description: "Fix the syntax error in the file, or add it to the ignore list",
		},
		{
			Type:        RunCommand,
			Command:     "deploydiff dialects",
			Description: "Show which dialect each extension is normalized with",
		},
	},
	WalkFailed: {
		{
			Type:        CheckPath,
			Description: "Check that both roots exist and that entries have the same kind on each side",
		},
	},
	WriteFailed: {
		{
			Type:        CheckPath,
			Description: "Check that the output directory exists and is writable",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "deploydiff --help",
			Description: "Review the accepted flags and values",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
