package anm

import (
	"testing"
)

func leaf(name string, m Matrix) *Node {
	return &Node{Name: name, Matrix: m, Color: WhiteColor()}
}

func group(name string, m Matrix, children ...*Node) *Node {
	return &Node{Name: name, Matrix: m, Color: WhiteColor(), Children: children}
}

func findInstance(t *testing.T, instances []FlatInstance, name string) FlatInstance {
	t.Helper()
	for _, inst := range instances {
		if inst.Name == name {
			return inst
		}
	}
	t.Fatalf("no instance %q in %+v", name, instances)
	return FlatInstance{}
}

func TestFlattenWorldTransform(t *testing.T) {
	// head carries the eye; the eye's local offset lands in head space
	anim := &Animation{
		Frames: []*Frame{{Children: []*Node{
			group("head", Matrix{A: 1, D: 1, TX: 5, TY: 10},
				leaf("eye", Matrix{A: 1, D: 1, TX: 2, TY: 3})),
		}}},
	}
	fl := NewFlattener(anim, nil)

	instances := fl.FlattenFrame(0)
	if len(instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(instances))
	}

	head := findInstance(t, instances, "head")
	if want := (Matrix{A: 1, D: 1, TX: 5, TY: 10}); !matricesEqual(head.World, want) {
		t.Errorf("head world = %+v, want %+v", head.World, want)
	}
	eye := findInstance(t, instances, "eye")
	if want := (Matrix{A: 1, D: 1, TX: 7, TY: 13}); !matricesEqual(eye.World, want) {
		t.Errorf("eye world = %+v, want %+v", eye.World, want)
	}
}

func TestFlattenAlphaChain(t *testing.T) {
	inner := leaf("glow", Identity())
	inner.Color.AlphaMultiplier = 0.5
	outer := group("", Identity(), inner)
	outer.Color.AlphaMultiplier = 0.5

	anim := &Animation{Frames: []*Frame{{Children: []*Node{outer}}}}
	instances := NewFlattener(anim, nil).FlattenFrame(0)
	if len(instances) != 1 {
		t.Fatalf("got %d instances, want 1 (unnamed group contributes none)", len(instances))
	}
	if instances[0].Alpha != 0.25 {
		t.Errorf("alpha = %v, want 0.25", instances[0].Alpha)
	}
}

func TestFlattenSharedAnimationPeriodicity(t *testing.T) {
	// length-2 shared entry under a 4-frame outer animation
	anim := &Animation{
		Frames: []*Frame{
			{Children: []*Node{group("face", Identity(), &Node{Matrix: Identity(), Color: WhiteColor(), SharedAnimationRef: "blink"})}},
			{Children: []*Node{group("face", Identity(), &Node{Matrix: Identity(), Color: WhiteColor(), SharedAnimationRef: "blink"})}},
			{Children: []*Node{group("face", Identity(), &Node{Matrix: Identity(), Color: WhiteColor(), SharedAnimationRef: "blink"})}},
			{Children: []*Node{group("face", Identity(), &Node{Matrix: Identity(), Color: WhiteColor(), SharedAnimationRef: "blink"})}},
		},
		SharedAnimations: map[string][]*Frame{
			"blink": {
				{Children: []*Node{leaf("eye_open", Identity())}},
				{Children: []*Node{leaf("eye_shut", Identity())}},
			},
		},
	}
	fl := NewFlattener(anim, nil)

	want := []string{"eye_open", "eye_shut", "eye_open", "eye_shut"}
	for fi, wantEye := range want {
		instances := fl.FlattenFrame(fi)
		findInstance(t, instances, wantEye)
		other := "eye_open"
		if wantEye == "eye_open" {
			other = "eye_shut"
		}
		for _, inst := range instances {
			if inst.Name == other {
				t.Errorf("frame %d: unexpected %q", fi, other)
			}
		}
	}
}

func TestFlattenSharedRefFallback(t *testing.T) {
	// dangling reference keeps the node's own children
	n := group("arm", Identity(), leaf("hand", Identity()))
	n.SharedAnimationRef = "missing"
	anim := &Animation{Frames: []*Frame{{Children: []*Node{n}}}}

	instances := NewFlattener(anim, nil).FlattenFrame(0)
	findInstance(t, instances, "hand")
}

func TestFlattenSharedRefNodeTransformStillApplies(t *testing.T) {
	n := &Node{
		Name:               "socket",
		Matrix:             Matrix{A: 1, D: 1, TX: 100, TY: 0},
		Color:              WhiteColor(),
		SharedAnimationRef: "sub",
	}
	anim := &Animation{
		Frames: []*Frame{{Children: []*Node{n}}},
		SharedAnimations: map[string][]*Frame{
			"sub": {{Children: []*Node{leaf("gem", Matrix{A: 1, D: 1, TX: 1, TY: 2})}}},
		},
	}

	gem := findInstance(t, NewFlattener(anim, nil).FlattenFrame(0), "gem")
	if want := (Matrix{A: 1, D: 1, TX: 101, TY: 2}); !matricesEqual(gem.World, want) {
		t.Errorf("gem world = %+v, want %+v", gem.World, want)
	}
}

func TestFlattenNameResolution(t *testing.T) {
	anim := &Animation{
		Frames: []*Frame{{Children: []*Node{
			leaf("  sprites/Head.PNG ", Identity()),
			leaf("old_arm", Identity()),
		}}},
	}
	fl := NewFlattener(anim, map[string]string{"old_arm": "arm"})

	instances := fl.FlattenFrame(0)
	findInstance(t, instances, "Head")
	findInstance(t, instances, "arm")
}

func TestFlattenNoFrames(t *testing.T) {
	if _, err := NewFlattener(&Animation{}, nil).Flatten(); err != ErrNoFrames {
		t.Errorf("got %v, want ErrNoFrames", err)
	}
}

func TestFlattenNilFrameAndNodes(t *testing.T) {
	anim := &Animation{Frames: []*Frame{
		nil,
		{Children: []*Node{nil, leaf("ok", Identity())}},
	}}
	frames, err := NewFlattener(anim, nil).Flatten()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(frames[0]) != 0 {
		t.Errorf("nil frame produced %d instances", len(frames[0]))
	}
	findInstance(t, frames[1], "ok")
}
