package index

import (
	"fmt"

	"github.com/poiesic/rankit/catalog"
)

// Verify recomputes the canonical hash of the catalog at catalogPath and
// compares it with the hash recorded when the index was built. A mismatch
// means the catalog changed after embedding and the cached vectors can no
// longer be trusted; callers must abort before producing any output that
// depends on them.
func (m Manifest) Verify(catalogPath string) error {
	if m.SourceManifestHash == "" {
		return fmt.Errorf("%w: rebuild the index with `rankit index`", ErrMissingSourceHash)
	}

	current, err := catalog.CanonicalHash(catalogPath)
	if err != nil {
		return fmt.Errorf("verifying against %s: %w", catalogPath, err)
	}

	if current != m.SourceManifestHash {
		return fmt.Errorf("%w: %s changed after the index was built\n"+
			"  recorded hash: %s\n"+
			"  current hash:  %s\n"+
			"re-run `rankit index` to rebuild the embedding index",
			ErrStaleIndex, catalogPath, m.SourceManifestHash, current)
	}

	return nil
}
