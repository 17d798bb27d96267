package tabular

import "fmt"

// IOError reports a file that could not be opened, read or decompressed.
type IOError struct {
	Model string
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("tabular: unable to read %s for model %q: %v", displayPath(e.Path), e.Model, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// MalformedInputError reports a table that does not follow the expected layout.
// Line is 1-based and counts the header; it is 0 when the problem is not tied to a line.
type MalformedInputError struct {
	Model  string
	Path   string
	Line   int
	Column string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("tabular: malformed %s for model %q", displayPath(e.Path), e.Model)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func displayPath(path string) string {
	if path == "" {
		return "input"
	}
	return path
}
