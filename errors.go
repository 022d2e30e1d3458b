package scadparse

import "errors"

// Sentinel errors used throughout the scadparse package, grouped by
// subsystem. Structured errors below wrap one of these via Unwrap so
// callers can still match with errors.Is against the sentinel.
var (
	// ErrFileNotFound indicates a requested source file does not exist.
	// File façade errors
	ErrFileNotFound = errors.New("file not found")
	// ErrConfigFileNotFound indicates a configuration file could not be located.
	ErrConfigFileNotFound = errors.New("configuration file not found")
	// ErrInvalidConfig indicates a configuration file failed strict YAML
	// decoding or validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLibraryNotFound indicates the library resolver exhausted its
	// search order without finding libfile.
	// Library resolver errors
	ErrLibraryNotFound = errors.New("library file not found")

	// ErrIncludeCycle indicates an include directive re-entered a path
	// already being expanded.
	// Include pre-processor errors
	ErrIncludeCycle = errors.New("include cycle detected")
	// ErrMalformedInclude indicates an include/use directive's raw text
	// did not match the expected `<path>` pattern.
	ErrMalformedInclude = errors.New("malformed include or use directive")

	// ErrDeserialization indicates a dict/JSON/YAML payload could not be
	// decoded back into an AST node (see ast.ErrUnknownNodeType and
	// ast.ErrMissingField for the underlying per-node decode failures).
	// AST codec errors
	ErrDeserialization = errors.New("deserialization failed")
)

// FileNotFoundError wraps ErrFileNotFound with the path that was missing.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string { return "scadparse: file not found: " + e.Path }
func (e *FileNotFoundError) Unwrap() error  { return ErrFileNotFound }

// LibraryNotFoundError wraps ErrLibraryNotFound with the search inputs
// so a caller can report exactly what was requested and from where.
type LibraryNotFoundError struct {
	CurrentFile string
	LibFile     string
}

func (e *LibraryNotFoundError) Error() string {
	msg := "scadparse: library not found: " + e.LibFile
	if e.CurrentFile != "" {
		msg += " (from " + e.CurrentFile + ")"
	}
	return msg
}
func (e *LibraryNotFoundError) Unwrap() error { return ErrLibraryNotFound }

// DeserializationError wraps ErrDeserialization with the field or node
// type name where decoding failed.
type DeserializationError struct {
	Field string
	Cause error
}

func (e *DeserializationError) Error() string {
	if e.Cause != nil {
		return "scadparse: deserialization failed at " + e.Field + ": " + e.Cause.Error()
	}
	return "scadparse: deserialization failed at " + e.Field
}
func (e *DeserializationError) Unwrap() error { return ErrDeserialization }
