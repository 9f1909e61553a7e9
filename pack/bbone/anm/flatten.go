package anm

import (
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

// FlatInstance is one resolved piece occurrence within a single frame.
type FlatInstance struct {
	Name  string
	World Matrix
	Alpha float64
}

// Flattener walks the animation tree per outer frame, accumulating world
// transforms and alphas. Piece names are normalized and alias-mapped during
// the walk, so every consumer downstream sees atlas-form names.
type Flattener struct {
	anim    *Animation
	aliases map[string]string
}

func NewFlattener(anim *Animation, aliases map[string]string) *Flattener {
	return &Flattener{
		anim:    anim,
		aliases: atlas.NormalizeAliases(aliases),
	}
}

func (f *Flattener) FrameCount() int {
	return len(f.anim.Frames)
}

// effectiveChildren resolves a shared-animation reference for the given
// outer frame index. A missing or empty table entry falls back to the
// node's own children. The selection depends on fi, so it is recomputed for
// every outer frame.
func (f *Flattener) effectiveChildren(n *Node, fi int) []*Node {
	if n.SharedAnimationRef == "" {
		return n.Children
	}
	shared, ok := f.anim.SharedAnimations[n.SharedAnimationRef]
	if !ok || len(shared) == 0 {
		return n.Children
	}
	sf := shared[fi%len(shared)]
	if sf == nil {
		return n.Children
	}
	return sf.Children
}

func (f *Flattener) walk(n *Node, parentWorld Matrix, parentAlpha float64, fi int, out []FlatInstance) []FlatInstance {
	world := parentWorld.Mul(n.Matrix)
	alpha := parentAlpha * n.Color.AlphaMultiplier

	if name := atlas.ResolveName(n.Name, f.aliases); name != "" {
		out = append(out, FlatInstance{Name: name, World: world, Alpha: alpha})
	}

	for _, ch := range f.effectiveChildren(n, fi) {
		if ch == nil {
			continue
		}
		out = f.walk(ch, world, alpha, fi, out)
	}
	return out
}

// FlattenFrame produces the flat instance list for one outer frame in
// root-to-leaf traversal order, children in authored sequence.
func (f *Flattener) FlattenFrame(fi int) []FlatInstance {
	out := make([]FlatInstance, 0, 32)
	frame := f.anim.Frames[fi]
	if frame == nil {
		return out
	}
	for _, root := range frame.Children {
		if root == nil {
			continue
		}
		out = f.walk(root, Identity(), 1.0, fi, out)
	}
	return out
}

// Flatten walks every outer frame. Frames are independent of each other;
// only the zero-frame draw-order derivation cares which frame is first.
func (f *Flattener) Flatten() ([][]FlatInstance, error) {
	if f.FrameCount() == 0 {
		return nil, ErrNoFrames
	}
	frames := make([][]FlatInstance, f.FrameCount())
	for fi := range f.anim.Frames {
		frames[fi] = f.FlattenFrame(fi)
	}
	return frames, nil
}
