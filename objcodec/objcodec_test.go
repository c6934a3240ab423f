package objcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("hello\n")
	envelope := Encode(gitkit.Blob, payload)
	assert.Equal(t, "blob 6\x00hello\n", string(envelope))

	typ, got, err := Decode(envelope)
	require.NoError(t, err)
	assert.Equal(t, gitkit.Blob, typ)
	assert.Equal(t, payload, got)
}

func TestDecodeRejectsMissingNUL(t *testing.T) {
	_, _, err := Decode([]byte("blob 6 hello"))
	assert.Error(t, err)
}

func TestDecodeRejectsSizeMismatch(t *testing.T) {
	_, _, err := Decode([]byte("blob 4\x00hello\n"))
	assert.Error(t, err)
}

func TestDecodeEmptyPayload(t *testing.T) {
	typ, payload, err := Decode(Encode(gitkit.Tree, nil))
	require.NoError(t, err)
	assert.Equal(t, gitkit.Tree, typ)
	assert.Empty(t, payload)
}
