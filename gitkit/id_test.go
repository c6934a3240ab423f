package gitkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	var raw [IDSize]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	id, err := FromRaw(raw[:])
	require.NoError(t, err)

	got, err := FromHex(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestFromHexRejectsBadLength(t *testing.T) {
	_, err := FromHex("abcd")
	assert.Error(t, err)
}

func TestFromHexRejectsBadDigit(t *testing.T) {
	_, err := FromHex("zz013625030ba8dba906f756967f9e9ca394464a")
	assert.Error(t, err)
}

func TestPathParts(t *testing.T) {
	id, err := FromHex("ce013625030ba8dba906f756967f9e9ca394464a")
	require.NoError(t, err)
	dir, name := id.PathParts()
	assert.Equal(t, "ce", dir)
	assert.Equal(t, "013625030ba8dba906f756967f9e9ca394464a", name)
}

func TestHashABlob(t *testing.T) {
	id := DefaultDigester.Sum([]byte("blob 6\x00hello\n"))
	assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", id.String())
}
