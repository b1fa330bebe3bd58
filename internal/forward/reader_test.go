package forward

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_Next(t *testing.T) {
	lr := NewLineReader(strings.NewReader("one\r\ntwo\n\n\xc3\x28\nlast"))

	line, err := lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	line, err = lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "", line)

	_, err = lr.Next()
	assert.ErrorIs(t, err, ErrInvalidLine)

	line, err = lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = lr.Next()
	assert.ErrorIs(t, err, io.EOF)

	_, err = lr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_UnterminatedCarriageReturn(t *testing.T) {
	lr := NewLineReader(strings.NewReader("one\r\ntwo\r"))

	line, err := lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "two\r", line)

	_, err = lr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_KeepsInnerCarriageReturn(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\rb\n"))

	line, err := lr.Next()
	require.NoError(t, err)
	assert.Equal(t, "a\rb", line)
}
