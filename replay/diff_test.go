package replay_test

import (
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// assertEqualText fails t with a unified diff when got != want, so a broken
// transcript format shows exactly which line drifted instead of a raw
// string dump.
func assertEqualText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	diff := gotextdiff.ToUnified("want", "got", want, edits)
	t.Errorf("transcript mismatch:\n%s", diff)
}
