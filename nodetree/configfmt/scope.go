package configfmt

import (
	"fmt"
	"io"

	"github.com/kestrelgame/enginecore/nodetree"
)

// DecodeScope walks a node's already-discovered children, pairing each
// leading NAME node with the DATA or SCOP node that follows it, exactly
// as the source interleaves them. r must give access to the full stream
// the children's headers were read against.
func DecodeScope(r io.ReadSeeker, children []nodetree.Header) (Scope, error) {
	var scope Scope

	var pendingHash *uint32

	for _, child := range children {
		switch child.Tag {
		case nameTag:
			payload, err := nodetree.ReadPayloadBytes(r, child)
			if err != nil {
				return Scope{}, err
			}

			hash, err := ReadNameHash(payload)
			if err != nil {
				return Scope{}, err
			}

			pendingHash = &hash

		case dataTag:
			payload, err := nodetree.ReadPayloadBytes(r, child)
			if err != nil {
				return Scope{}, err
			}

			data, err := DecodeDataNode(payload)
			if err != nil {
				return Scope{}, err
			}

			if pendingHash != nil {
				data.NameHash = *pendingHash
				pendingHash = nil
			}

			scope.Entries = append(scope.Entries, ScopeEntry{Data: &data})

		case scopTag:
			nestedChildren, err := nodetree.ReadChildren(r, child)
			if err != nil {
				return Scope{}, err
			}

			inner, err := DecodeScope(r, nestedChildren)
			if err != nil {
				return Scope{}, err
			}

			if pendingHash != nil {
				inner.NameHash = *pendingHash
				pendingHash = nil
			}

			scope.Entries = append(scope.Entries, ScopeEntry{Nested: &inner})

		default:
			return Scope{}, fmt.Errorf("%w: unexpected tag %s in config scope", nodetree.ErrInvalidNode, child.Tag)
		}
	}

	return scope, nil
}
