package nodetree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgame/enginecore/nodetree"
)

func Test_Tag_StringRoundTrip(t *testing.T) {
	t.Parallel()

	tag := nodetree.TagFromString("NAME")
	require.Equal(t, "NAME", tag.String())
}

func Test_Tag_HashRoundTrip(t *testing.T) {
	t.Parallel()

	tag := nodetree.TagFromHash(0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), tag.Hash())
}

func Test_Tag_String_FallsBackToHashForNonPrintable(t *testing.T) {
	t.Parallel()

	tag := nodetree.TagFromHash(0x00000001)
	require.Equal(t, "0x00000001", tag.String())
}

func Test_TagFromString_PanicsOnWrongLength(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		nodetree.TagFromString("TOO LONG")
	})
}
