package anm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Matrix is the 2x3 affine transform of the player format, row-major
// rotation/scale block {a,b,c,d} plus translation {tx,ty}.
type Matrix struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	D  float64 `json:"d"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul composes world = m ∘ local, root-to-leaf order.
func (m Matrix) Mul(l Matrix) Matrix {
	return Matrix{
		A:  m.A*l.A + m.C*l.B,
		B:  m.B*l.A + m.D*l.B,
		C:  m.A*l.C + m.C*l.D,
		D:  m.B*l.C + m.D*l.D,
		TX: m.A*l.TX + m.C*l.TY + m.TX,
		TY: m.B*l.TX + m.D*l.TY + m.TY,
	}
}

// ComposeOriginScale appends the piece registration origin and intrinsic
// scale: result = m ∘ Translate(ox,oy) ∘ Scale(sx,sy).
func (m Matrix) ComposeOriginScale(ox, oy, sx, sy float64) Matrix {
	return Matrix{
		A:  m.A * sx,
		B:  m.B * sx,
		C:  m.C * sy,
		D:  m.D * sy,
		TX: m.A*ox + m.C*oy + m.TX,
		TY: m.B*ox + m.D*oy + m.TY,
	}
}

// Scaled multiplies every component uniformly. Used for the global
// export scale, applied once after origin/scale composition.
func (m Matrix) Scaled(g float64) Matrix {
	return Matrix{A: m.A * g, B: m.B * g, C: m.C * g, D: m.D * g, TX: m.TX * g, TY: m.TY * g}
}

func (m *Matrix) UnmarshalJSON(data []byte) error {
	*m = Identity()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// malformed matrix degrades to identity, not an error
		return nil
	}
	m.A = floatField(fields, "a", 1)
	m.B = floatField(fields, "b", 0)
	m.C = floatField(fields, "c", 0)
	m.D = floatField(fields, "d", 1)
	m.TX = floatField(fields, "tx", 0)
	m.TY = floatField(fields, "ty", 0)
	return nil
}

// Color carries the four channel multipliers of the player format. Only
// alpha participates in flattening, the tints are kept for re-export.
type Color struct {
	RedMultiplier   float64 `json:"redMultiplier"`
	GreenMultiplier float64 `json:"greenMultiplier"`
	BlueMultiplier  float64 `json:"blueMultiplier"`
	AlphaMultiplier float64 `json:"alphaMultiplier"`
}

func WhiteColor() Color {
	return Color{RedMultiplier: 1, GreenMultiplier: 1, BlueMultiplier: 1, AlphaMultiplier: 1}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	*c = WhiteColor()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	c.RedMultiplier = floatField(fields, "redMultiplier", 1)
	c.GreenMultiplier = floatField(fields, "greenMultiplier", 1)
	c.BlueMultiplier = floatField(fields, "blueMultiplier", 1)
	c.AlphaMultiplier = floatField(fields, "alphaMultiplier", 1)
	return nil
}

func floatField(fields map[string]json.RawMessage, key string, def float64) float64 {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	// some exporters quote numbers
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return def
}

// Node is one bone of the animation tree. SharedAnimationRef is empty when
// the node owns its children; otherwise it names an entry of the shared
// animation table whose frames substitute for them.
type Node struct {
	Name               string  `json:"name,omitempty"`
	Matrix             Matrix  `json:"matrix"`
	Color              Color   `json:"color"`
	Children           []*Node `json:"children,omitempty"`
	SharedAnimationRef string  `json:"references_shared_animation,omitempty"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	type nodeAlias Node
	tmp := nodeAlias{Matrix: Identity(), Color: WhiteColor()}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*n = Node(tmp)
	return nil
}

// Frame is one top-level animation sample: an ordered forest of root nodes.
type Frame struct {
	Children []*Node `json:"children,omitempty"`
}

// Animation is the decoded animation section. SharedAnimations entries are
// shorter looping sequences referenced by nodes; a node referencing one at
// outer frame fi resolves to entry fi mod len.
type Animation struct {
	Width            float64             `json:"width,omitempty"`
	Height           float64             `json:"height,omitempty"`
	Frames           []*Frame            `json:"frames"`
	SharedAnimations map[string][]*Frame `json:"shared_animations,omitempty"`
}
