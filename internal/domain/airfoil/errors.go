package airfoil

import "fmt"

// ParseError reports a coordinate file that could not be decoded.
// Line is 1-based; zero means the problem is not tied to a single line.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}
	if e.Line > 0 {
		src = fmt.Sprintf("%s:%d", src, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", src, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", src, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// errorf builds a ParseError for a 0-based line index.
func errorf(path string, idx int, err error, format string, args ...any) *ParseError {
	return &ParseError{
		Path: path,
		Line: idx + 1,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}
