package objectfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineLength = 1024 * 1024

// record is one non-empty line: the keyword token plus its arguments.
type record struct {
	Type    Type
	Keyword string
	Args    []string
	Line    int
}

func (r record) Value() string {
	return strings.Join(r.Args, " ")
}

// recordReader splits a stream into whitespace separated records. Everything
// from a token starting with # to the end of the line is dropped.
type recordReader struct {
	scanner *bufio.Scanner
	line    int
}

func newRecordReader(r io.Reader) *recordReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &recordReader{scanner: scanner}
}

func (rr *recordReader) Next() (record, bool) {
	for rr.scanner.Scan() {
		rr.line++
		text := rr.scanner.Text()
		if rr.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		for i := 1; i < len(fields); i++ {
			if strings.HasPrefix(fields[i], "#") {
				fields = fields[:i]
				break
			}
		}
		return record{
			Type:    TypeFromString(fields[0]),
			Keyword: fields[0],
			Args:    fields[1:],
			Line:    rr.line,
		}, true
	}
	return record{}, false
}

// Err reports a read failure on the line after the last record returned.
func (rr *recordReader) Err(path string) error {
	err := rr.scanner.Err()
	if err == nil {
		return nil
	}
	msg := "read failed"
	if errors.Is(err, bufio.ErrTooLong) {
		msg = fmt.Sprintf("line longer than %d bytes", maxLineLength)
	}
	return &ParseError{Kind: ReadFailed, Path: path, Line: rr.line + 1, Msg: msg, Err: err}
}

// parseFloats reads the geometry components of a v, vn or vt record.
func parseFloats(rec record, path string, strict bool) ([3]float32, error) {
	var out [3]float32
	want := rec.Type.Components()
	if len(rec.Args) < want {
		return out, newError(MalformedNumber, path, rec.Line, rec.Value(),
			"%s expects %d numbers, found %d", rec.Keyword, want, len(rec.Args))
	}
	if strict && len(rec.Args) > want {
		return out, newError(MalformedNumber, path, rec.Line, rec.Value(),
			"%s expects %d numbers, found %d", rec.Keyword, want, len(rec.Args))
	}
	for i := 0; i < want; i++ {
		num, err := strconv.ParseFloat(rec.Args[i], 32)
		if err != nil {
			e := newError(MalformedNumber, path, rec.Line, rec.Args[i], "invalid %s component %d", rec.Keyword, i+1)
			e.Err = err
			return out, e
		}
		out[i] = float32(num)
	}
	return out, nil
}

// splitIndex splits a "p/t/n" face index into its three parts.
func splitIndex(index string) ([3]string, bool) {
	var out [3]string
	parts := strings.Split(index, "/")
	if len(parts) != 3 {
		return out, false
	}
	copy(out[:], parts)
	return out, true
}
