package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecognizedAndOther(t *testing.T) {
	line := "multi_ack symref=HEAD:refs/heads/main agent=git/2.42.0 weird-cap"
	c := Parse(line)

	assert.True(t, c.MultiAck)
	assert.Equal(t, "HEAD", c.SymrefFrom)
	assert.Equal(t, "refs/heads/main", c.SymrefTo)
	assert.Equal(t, "git/2.42.0", c.Agent)
	assert.Equal(t, []string{"weird-cap"}, c.Other)
}

func TestToWirePreservesOrder(t *testing.T) {
	tokens := []string{"multi_ack", "thin-pack", "no-progress", "weird-cap", "agent=git/2.42.0"}
	line := ""
	for i, tok := range tokens {
		if i > 0 {
			line += " "
		}
		line += tok
	}
	c := Parse(line)
	assert.Equal(t, line, c.ToWire())
}

func TestParseEmpty(t *testing.T) {
	c := Parse("")
	assert.Empty(t, c.Tokens)
	assert.False(t, c.MultiAck)
}
