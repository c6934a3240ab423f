package gitkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitSerializeParseRoundTrip(t *testing.T) {
	tree, err := FromHex("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	require.NoError(t, err)
	parent, err := FromHex("ce013625030ba8dba906f756967f9e9ca394464a")
	require.NoError(t, err)

	c := Commit{
		Tree:    tree,
		Parents: []ObjectID{parent},
		Author:  Person{Name: "A U Thor", Email: "author@example.com", Seconds: 1136239445, TZ: "-0700"},
		Committer: Person{
			Name: "A U Thor", Email: "author@example.com", Seconds: 1136239445, TZ: "-0700",
		},
		Message: "initial commit\n",
	}

	got, err := ParseCommit(c.Serialize())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCommitSerializeNoParent(t *testing.T) {
	tree, _ := FromHex("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	c := Commit{
		Tree:      tree,
		Author:    Person{Name: "A", Email: "a@b.com", Seconds: 1, TZ: "+0000"},
		Committer: Person{Name: "A", Email: "a@b.com", Seconds: 1, TZ: "+0000"},
		Message:   "msg",
	}
	s := string(c.Serialize())
	assert.NotContains(t, s, "parent ")
}
