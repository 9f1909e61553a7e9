package anm

import (
	"sort"

	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

// TrackKey is one frame slot of a piece track. An absent slot is a true
// gap: Matrix and Alpha are undefined there.
type TrackKey struct {
	Present bool
	Matrix  Matrix
	Alpha   float64
}

type KeyframeTrack []TrackKey

// Diagnostics is the non-fatal naming report: how often every resolved name
// occurred, and which resolved names matched no catalog entry.
type Diagnostics struct {
	Occurrences map[string]int
	Unmatched   []string
}

// Timeline is the flattened result handed to the serializer: a stacking
// order, one sparse keyframe track per piece and a label span sequence
// covering every frame.
type Timeline struct {
	Name       string
	FrameCount int
	Order      []string // bottom-to-top
	Tracks     map[string]KeyframeTrack
	Labels     []LabelSpan
	Diag       Diagnostics
}

type Options struct {
	// Aliases maps authored names to catalog names, applied after
	// normalization.
	Aliases map[string]string
	// Only restricts tracks to the listed pieces. Takes precedence over
	// IncludeUnused.
	Only []string
	// IncludeUnused builds a track for every catalog piece, even those
	// that never occur.
	IncludeUnused bool
	// GlobalScale multiplies every final matrix component uniformly.
	// Zero means unscaled.
	GlobalScale float64
}

// BuildTimeline flattens the animation against the piece catalog and label
// table into per-piece keyframe tracks.
func BuildTimeline(name string, anim *Animation, catalog *atlas.Catalog, labels map[string]int, opts Options) (*Timeline, error) {
	fl := NewFlattener(anim, opts.Aliases)
	flat, err := fl.Flatten()
	if err != nil {
		return nil, err
	}
	frameCount := len(flat)

	counts := make(map[string]int)
	perFrame := make([]map[string]FlatInstance, frameCount)
	for fi, instances := range flat {
		m := make(map[string]FlatInstance, len(instances))
		for _, inst := range instances {
			// duplicated parts: the last traversal occurrence wins
			m[inst.Name] = inst
			counts[inst.Name]++
		}
		perFrame[fi] = m
	}

	unmatched := make([]string, 0)
	for rn := range counts {
		if !catalog.Has(rn) {
			unmatched = append(unmatched, rn)
		}
	}
	sort.Strings(unmatched)

	scope := buildScope(catalog, counts, opts)
	order := appendCatalogFallback(fl.DrawOrder(), scope, catalog)

	g := opts.GlobalScale
	if g == 0 {
		g = 1
	}

	tracks := make(map[string]KeyframeTrack, len(order))
	for _, pieceName := range order {
		piece, _ := catalog.Get(pieceName)
		track := make(KeyframeTrack, frameCount)
		for fi := range perFrame {
			inst, ok := perFrame[fi][pieceName]
			if !ok {
				continue
			}
			m := inst.World.ComposeOriginScale(piece.OriginX, piece.OriginY, piece.ScaleX, piece.ScaleY)
			if g != 1 {
				m = m.Scaled(g)
			}
			track[fi] = TrackKey{Present: true, Matrix: m, Alpha: inst.Alpha}
		}
		tracks[pieceName] = track
	}

	return &Timeline{
		Name:       name,
		FrameCount: frameCount,
		Order:      order,
		Tracks:     tracks,
		Labels:     BuildLabelSpans(labels, frameCount),
		Diag: Diagnostics{
			Occurrences: counts,
			Unmatched:   unmatched,
		},
	}, nil
}

// buildScope selects which catalog pieces get a track: an explicit
// allow-list beats include-unused beats used-only.
func buildScope(catalog *atlas.Catalog, counts map[string]int, opts Options) map[string]struct{} {
	scope := make(map[string]struct{})
	switch {
	case len(opts.Only) > 0:
		allowed := make(map[string]struct{}, len(opts.Only))
		for _, raw := range opts.Only {
			allowed[atlas.NormalizeName(raw)] = struct{}{}
		}
		for _, name := range catalog.Names() {
			if _, ok := allowed[name]; ok {
				scope[name] = struct{}{}
			}
		}
	case opts.IncludeUnused:
		for _, name := range catalog.Names() {
			scope[name] = struct{}{}
		}
	default:
		for _, name := range catalog.Names() {
			if counts[name] > 0 {
				scope[name] = struct{}{}
			}
		}
	}
	return scope
}

// TopFirstOrder returns the stacking order inverted for formats that
// enumerate the topmost layer first.
func (t *Timeline) TopFirstOrder() []string {
	top := make([]string, len(t.Order))
	for i, name := range t.Order {
		top[len(t.Order)-1-i] = name
	}
	return top
}
