package cursor

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAdvancesCursor(t *testing.T) {
	c := New(bytes.NewReader([]byte("hello world")))

	got, err := c.Read(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = c.Read(6)
	require.NoError(t, err)
	assert.Equal(t, " world", string(got))
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := New(bytes.NewReader([]byte("hello")))

	got, err := c.Peek(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = c.Peek(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestReadPastEOFIsUnexpectedEOF(t *testing.T) {
	c := New(bytes.NewReader([]byte("hi")))
	_, err := c.Read(10)
	assert.Error(t, err)
}

func TestSearchFindsPattern(t *testing.T) {
	c := New(bytes.NewReader([]byte("progress text PACK\x00\x00\x00\x02")))
	idx, ok := c.Search([]byte("PACK"))
	require.True(t, ok)
	assert.Equal(t, 14, idx)
}

func TestDrainConsumedThenReaderYieldsRemainder(t *testing.T) {
	c := New(bytes.NewReader([]byte("PACKrest")))
	_, err := c.Read(4)
	require.NoError(t, err)
	c.DrainConsumed()

	rest, err := io.ReadAll(c.Reader())
	require.NoError(t, err)
	assert.Equal(t, "rest", string(rest))
}

func TestCursorYieldsSameSequenceAsUnderlyingSource(t *testing.T) {
	data := []byte("the quick brown fox")
	c := New(bytes.NewReader(data))

	var got []byte
	for len(got) < len(data) {
		n := 3
		if remaining := len(data) - len(got); remaining < n {
			n = remaining
		}
		chunk, err := c.Read(n)
		require.NoError(t, err)
		got = append(got, chunk...)
	}
	assert.Equal(t, data, got)
}
