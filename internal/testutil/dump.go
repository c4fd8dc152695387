// Package testutil provides spew-based failure dumping for _test.go files
// across the module, generalizing the teacher's io/dumper.go appetite for
// raw byte/array dumping tooling to structured segments, statistics, and
// position lists.
package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"columnscan/position"
)

var dumpConfig = spew.ConfigState{Indent: "  ", DisableMethods: true}

// DumpOnFail calls t.Logf with a spew %#v-style dump of value only when
// the test has already failed, so passing tests stay quiet.
func DumpOnFail(t *testing.T, label string, value any) {
	t.Helper()
	if !t.Failed() {
		return
	}
	t.Logf("%s:\n%s", label, dumpConfig.Sdump(value))
}

// RequirePositions fails the test with a spew dump of both sides when got
// and want don't contain the same set of positions, ignoring order — the
// scan-equivalence and sorted-accelerator invariants in spec §8 compare
// position *sets*, not sequences.
func RequirePositions(t *testing.T, got, want []position.Position) {
	t.Helper()
	gotSet := toSet(got)
	wantSet := toSet(want)
	if len(gotSet) == len(wantSet) {
		match := true
		for p := range wantSet {
			if !gotSet[p] {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	t.Errorf("position sets differ:\ngot:  %s\nwant: %s", dumpConfig.Sdump(got), dumpConfig.Sdump(want))
}

func toSet(ps []position.Position) map[position.Position]bool {
	set := make(map[position.Position]bool, len(ps))
	for _, p := range ps {
		set[p] = true
	}
	return set
}
