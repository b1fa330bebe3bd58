package forward

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ErrInvalidLine is returned for a line that is not valid UTF-8. The line has
// been consumed; reading can continue.
var ErrInvalidLine = errors.New("line is not valid UTF-8")

// LineReader splits input into lines of any length. The terminator ("\n" or
// "\r\n") is stripped. A final line without terminator is still returned
// as is, including a trailing "\r".
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader creates a new line reader
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line, ErrInvalidLine for an undecodable line, or
// io.EOF once the input is exhausted.
func (lr *LineReader) Next() (string, error) {
	data, err := lr.r.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if len(data) == 0 && err != nil {
		return "", io.EOF
	}

	if bytes.HasSuffix(data, []byte("\n")) {
		data = bytes.TrimSuffix(data[:len(data)-1], []byte("\r"))
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidLine
	}
	return string(data), nil
}
