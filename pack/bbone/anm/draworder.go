package anm

import (
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

// DrawOrder derives the canonical bottom-to-top stacking order: the
// depth-first visitation order of resolved names at frame 0, after shared
// animation substitution, first occurrence only. Pieces that never show up
// at frame 0 get their fallback placement in BuildTimeline.
func (f *Flattener) DrawOrder() []string {
	order := make([]string, 0, 16)
	if f.FrameCount() == 0 {
		return order
	}

	seen := make(map[string]struct{})
	for _, inst := range f.FlattenFrame(0) {
		if _, ok := seen[inst.Name]; ok {
			continue
		}
		seen[inst.Name] = struct{}{}
		order = append(order, inst.Name)
	}
	return order
}

// appendCatalogFallback extends a frame-0 order with the scope names it
// missed, in catalog order, so no used piece drops out of the stack.
func appendCatalogFallback(order []string, scope map[string]struct{}, catalog *atlas.Catalog) []string {
	inOrder := make(map[string]struct{}, len(order))
	kept := make([]string, 0, len(scope))
	for _, name := range order {
		if _, ok := scope[name]; !ok {
			continue
		}
		if _, dup := inOrder[name]; dup {
			continue
		}
		inOrder[name] = struct{}{}
		kept = append(kept, name)
	}
	for _, name := range catalog.Names() {
		if _, ok := scope[name]; !ok {
			continue
		}
		if _, dup := inOrder[name]; dup {
			continue
		}
		inOrder[name] = struct{}{}
		kept = append(kept, name)
	}
	return kept
}
