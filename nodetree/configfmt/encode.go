package configfmt

import "github.com/kestrelgame/enginecore/nodetree"

// WriteScope writes scope as a SCOP child node of w, emitting a NAME+DATA
// or NAME+SCOP pair for every entry — mirroring the interleaving
// [DecodeScope] expects. scope's own NameHash is carried by the NAME
// sibling the caller writes before the SCOP node, not by anything inside
// it; see [WriteNamedScope] for writing a self-contained NAME+SCOP pair.
func WriteScope(w *nodetree.Writer, scope Scope) error {
	return w.BuildNode(scopTag, func(child *nodetree.Writer) error {
		for _, entry := range scope.Entries {
			switch {
			case entry.Data != nil:
				if err := WriteNameHash(child, entry.Data.NameHash); err != nil {
					return err
				}

				if err := WriteDataNode(child, *entry.Data); err != nil {
					return err
				}

			case entry.Nested != nil:
				if err := WriteNamedScope(child, *entry.Nested); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// WriteNamedScope writes scope's NAME sibling followed by its SCOP node,
// the pairing [DecodeScope] reconstructs back into scope.NameHash.
func WriteNamedScope(w *nodetree.Writer, scope Scope) error {
	if err := WriteNameHash(w, scope.NameHash); err != nil {
		return err
	}

	return WriteScope(w, scope)
}
