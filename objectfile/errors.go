package objectfile

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a ParseError. It is itself an error so callers can
// test for a kind with errors.Is(err, objectfile.FileNotFound).
type ErrorKind int

const (
	FileNotFound ErrorKind = iota + 1
	MalformedNumber
	MalformedFace
	IndexOutOfRange
	MissingTexture
	ReadFailed
)

func (k ErrorKind) Error() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case MalformedNumber:
		return "malformed number"
	case MalformedFace:
		return "malformed face"
	case IndexOutOfRange:
		return "index out of range"
	case MissingTexture:
		return "missing texture"
	case ReadFailed:
		return "read failed"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// ParseError is returned by every stage of loading. Line is 1-based and zero
// when the error is not tied to a line.
type ParseError struct {
	Kind  ErrorKind
	Path  string
	Line  int
	Token string
	// From is set when the failing file was referenced by another one,
	// eg. a mtllib statement: "model.obj:3".
	From string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&sb, "line:%d ", e.Line)
	}
	sb.WriteString(e.Kind.Error())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Token != "" {
		fmt.Fprintf(&sb, " %q", e.Token)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.From != "" {
		sb.WriteString(" (referenced from ")
		sb.WriteString(e.From)
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, path string, line int, token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:  kind,
		Path:  path,
		Line:  line,
		Token: token,
		Msg:   fmt.Sprintf(format, args...),
	}
}
