package nodetree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgame/enginecore/nodetree"
)

func Test_Schema_Bind_Succeeds(t *testing.T) {
	t.Parallel()

	nameTag := nodetree.TagFromString("NAME")
	scopTag := nodetree.TagFromString("SCOP")

	schema := nodetree.NewSchema().
		Required(nameTag).
		Optional(scopTag)

	children := []nodetree.Header{
		{Tag: nameTag, Position: 0},
	}

	bound, err := schema.Bind(children)
	require.NoError(t, err)

	h, ok := bound.One(nameTag)
	require.True(t, ok)
	require.Equal(t, nameTag, h.Tag)

	_, ok = bound.One(scopTag)
	require.False(t, ok)
}

func Test_Schema_Bind_MissingRequired(t *testing.T) {
	t.Parallel()

	nameTag := nodetree.TagFromString("NAME")
	schema := nodetree.NewSchema().Required(nameTag)

	_, err := schema.Bind(nil)

	var missing *nodetree.MissingChildError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, nameTag, missing.Tag)
}

func Test_Schema_Bind_DuplicateRequired(t *testing.T) {
	t.Parallel()

	nameTag := nodetree.TagFromString("NAME")
	schema := nodetree.NewSchema().Required(nameTag)

	children := []nodetree.Header{{Tag: nameTag}, {Tag: nameTag}}

	_, err := schema.Bind(children)

	var dup *nodetree.DuplicateChildError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, nameTag, dup.Tag)
}

func Test_Schema_Bind_UnexpectedChild(t *testing.T) {
	t.Parallel()

	nameTag := nodetree.TagFromString("NAME")
	otherTag := nodetree.TagFromString("SCOP")

	schema := nodetree.NewSchema().Required(nameTag)

	_, err := schema.Bind([]nodetree.Header{{Tag: nameTag}, {Tag: otherTag}})

	var unexpected *nodetree.UnexpectedChildError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, otherTag, unexpected.Tag)
}

func Test_Schema_Bind_RepeatedAllowsMany(t *testing.T) {
	t.Parallel()

	entTag := nodetree.TagFromString("ENTT")
	schema := nodetree.NewSchema().Repeated(entTag)

	children := []nodetree.Header{{Tag: entTag}, {Tag: entTag}, {Tag: entTag}}

	bound, err := schema.Bind(children)
	require.NoError(t, err)
	require.Len(t, bound.All(entTag), 3)
}
