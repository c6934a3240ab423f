package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDataThenFlush(t *testing.T) {
	payload := []byte("want abcdef0123456789abcdef0123456789abcdef\n")
	buf := append(EncodeData(payload), EncodeFlush()...)

	r := NewReader(bytes.NewReader(buf))

	f, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Data, f.Kind)
	assert.Equal(t, payload, f.Payload)

	f, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, Flush, f.Kind)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNextDelimiterAndResponseEnd(t *testing.T) {
	buf := append(EncodeDelimiter(), EncodeResponseEnd()...)
	r := NewReader(bytes.NewReader(buf))

	f, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Delimiter, f.Kind)

	f, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, ResponseEnd, f.Kind)
}

func TestNextRejectsShortLength(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("0003")))
	_, err := r.Next()
	require.Error(t, err)
}

func TestNextRejectsNonHexLength(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("zzzzhello")))
	_, err := r.Next()
	require.Error(t, err)
}

func TestRoundTripSequence(t *testing.T) {
	frames := []Frame{
		{Kind: Data, Payload: []byte("command=fetch\n")},
		{Kind: Delimiter},
		{Kind: Data, Payload: []byte("want aaaa\n")},
		{Kind: Flush},
	}
	var buf bytes.Buffer
	for _, f := range frames {
		switch f.Kind {
		case Data:
			buf.Write(EncodeData(f.Payload))
		case Flush:
			buf.Write(EncodeFlush())
		case Delimiter:
			buf.Write(EncodeDelimiter())
		case ResponseEnd:
			buf.Write(EncodeResponseEnd())
		}
	}

	r := NewReader(&buf)
	var got []Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, f)
	}
	assert.Equal(t, frames, got)
}

func TestConsumedTracksBytes(t *testing.T) {
	payload := []byte("hello")
	buf := EncodeData(payload)
	r := NewReader(bytes.NewReader(buf))
	_, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(len(buf)), r.Consumed())
}
