package refadv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitkit.dev/frame"
)

func encodeLine(s string) []byte {
	return frame.EncodeData([]byte(s + "\n"))
}

func TestParseServiceBannerAndRefs(t *testing.T) {
	id1 := "abcdef0123456789abcdef0123456789abcdef01"
	id2 := "1111111111111111111111111111111111111111"

	var buf bytes.Buffer
	buf.Write(encodeLine("# service=git-upload-pack"))
	buf.Write(frame.EncodeFlush())
	buf.Write(frame.EncodeData([]byte(id1 + " HEAD\x00multi_ack thin-pack symref=HEAD:refs/heads/main\n")))
	buf.Write(encodeLine(id2 + " refs/heads/main"))
	buf.Write(frame.EncodeFlush())

	adv, err := Parse(frame.NewReader(&buf))
	require.NoError(t, err)

	require.Len(t, adv.Refs, 2)
	assert.Equal(t, "HEAD", adv.Refs[0].Name)
	assert.Equal(t, "refs/heads/main", adv.Refs[1].Name)
	assert.True(t, adv.HasHEAD)
	assert.Equal(t, id1, adv.HEAD.String())
	assert.True(t, adv.Capabilities.MultiAck)
	assert.True(t, adv.Capabilities.ThinPack)
	assert.Equal(t, "HEAD", adv.Capabilities.SymrefFrom)
	assert.Equal(t, "refs/heads/main", adv.Capabilities.SymrefTo)
}

func TestParseRejectsWrongLengthID(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeLine("short HEAD"))
	buf.Write(frame.EncodeFlush())

	_, err := Parse(frame.NewReader(&buf))
	assert.Error(t, err)
}

func TestParseEmptyAdvertisement(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(frame.EncodeFlush())

	adv, err := Parse(frame.NewReader(&buf))
	require.NoError(t, err)
	assert.Empty(t, adv.Refs)
	assert.False(t, adv.HasHEAD)
}
