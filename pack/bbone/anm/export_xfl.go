package anm

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/hamulous/bbone_browser/config"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
	"github.com/hamulous/bbone_browser/xfl"
)

const labelsLayerName = "__labels__"
const labelsLayerColor = "#FF9900"

func layerColor(index int) string {
	return fmt.Sprintf("#%06X", 0x444444+(index*123457)%0xBBBBBB)
}

// ExportOptions controls the XFL project layout. Zero values fall back to
// the configured defaults; a zero stage derives its size from the animation
// header or, failing that, the flattened content bounds.
type ExportOptions struct {
	FPS         int
	StageWidth  float64
	StageHeight float64
	Progress    func(done, total int)
}

// ExportXFL builds the complete Animate project for a flattened timeline:
// per-piece media bitmaps, image wrapper symbols, the sprite symbol holding
// the keyframe tracks and a scene timeline instancing it.
func (t *Timeline) ExportXFL(a *atlas.Atlas, anim *Animation, opts ExportOptions) (*xfl.Builder, error) {
	fps := opts.FPS
	if fps == 0 {
		fps = config.GetFrameRate()
	}

	width, height := opts.StageWidth, opts.StageHeight
	if width == 0 || height == 0 {
		width, height = t.stageSize(a, anim)
	}

	b := xfl.NewBuilder(fps, width, height)
	if err := addPieceLibrary(b, a, opts.Progress); err != nil {
		return nil, err
	}

	b.AddSymbol("sprite/"+t.Name, t.spriteSymbol())

	b.AddTimeline(&xfl.Timeline{
		Name: "Scene 1",
		Layers: []*xfl.Layer{{
			Name: "root",
			Frames: []*xfl.Frame{{
				Index:    0,
				Duration: 1,
				Name:     t.mainLabel(),
				Elements: &xfl.FrameElements{
					SymbolInstances: []*xfl.SymbolInstance{{
						LibraryItemName: "sprite/" + t.Name,
						Name:            "rootSymbol",
						FirstFrame:      "0",
						SymbolType:      "graphic",
						Loop:            "loop",
					}},
				},
			}},
		}},
	})

	return b, nil
}

// spriteSymbol lays the timeline out as Animate layers: the label track on
// top, then one layer per piece, topmost stacking first.
func (t *Timeline) spriteSymbol() *xfl.SymbolItem {
	layers := make([]*xfl.Layer, 0, len(t.Order)+1)

	if len(t.Labels) > 0 {
		labelFrames := make([]*xfl.Frame, 0, len(t.Labels))
		for _, span := range t.Labels {
			labelFrames = append(labelFrames, &xfl.Frame{
				Index:    span.StartFrame,
				Duration: span.Duration,
				Name:     span.Name,
			})
		}
		layers = append(layers, &xfl.Layer{
			Name:   labelsLayerName,
			Color:  labelsLayerColor,
			Frames: labelFrames,
		})
	}

	for li, pieceName := range t.TopFirstOrder() {
		track := t.Tracks[pieceName]
		frames := make([]*xfl.Frame, 0, t.FrameCount)
		for fi := 0; fi < t.FrameCount; fi++ {
			frame := &xfl.Frame{Index: fi, Duration: 1}
			if fi < len(track) && track[fi].Present {
				key := track[fi]
				inst := &xfl.SymbolInstance{
					LibraryItemName: "image/" + pieceName,
					Name:            pieceName + "_inst",
					Matrix: xfl.NewMatrix(key.Matrix.A, key.Matrix.B,
						key.Matrix.C, key.Matrix.D, key.Matrix.TX, key.Matrix.TY),
				}
				if key.Alpha != 1.0 {
					inst.Color = xfl.NewColor(1, 1, 1, key.Alpha)
				}
				frame.Elements = &xfl.FrameElements{
					SymbolInstances: []*xfl.SymbolInstance{inst},
				}
			}
			frames = append(frames, frame)
		}
		layers = append(layers, &xfl.Layer{
			Name:   pieceName,
			Color:  layerColor(li),
			Frames: frames,
		})
	}

	return &xfl.SymbolItem{
		Name:     "sprite/" + t.Name,
		ItemID:   "sprite/" + t.Name,
		Timeline: &xfl.Timeline{Name: t.Name, Layers: layers},
	}
}

// ExportIdentityXFL builds a one-frame project with every piece at its
// registration point. Preview/debug rendition for frameless containers.
func ExportIdentityXFL(a *atlas.Atlas, objName string, opts ExportOptions) (*xfl.Builder, error) {
	fps := opts.FPS
	if fps == 0 {
		fps = config.GetFrameRate()
	}
	width, height := opts.StageWidth, opts.StageHeight
	if width == 0 || height == 0 {
		width = config.DefaultStageWidth * config.GetStagePixelRatio()
		height = config.DefaultStageHeight * config.GetStagePixelRatio()
	}

	b := xfl.NewBuilder(fps, width, height)
	if err := addPieceLibrary(b, a, opts.Progress); err != nil {
		return nil, err
	}

	layers := make([]*xfl.Layer, 0, a.Catalog.Len())
	for li, name := range a.Catalog.Names() {
		layers = append(layers, &xfl.Layer{
			Name:  name,
			Color: layerColor(li),
			Frames: []*xfl.Frame{{
				Index:    0,
				Duration: 1,
				Elements: &xfl.FrameElements{
					SymbolInstances: []*xfl.SymbolInstance{{
						LibraryItemName: "image/" + name,
						Name:            name + "_inst",
					}},
				},
			}},
		})
	}

	b.AddSymbol("sprite/"+objName, &xfl.SymbolItem{
		Name:     "sprite/" + objName,
		ItemID:   "sprite/" + objName,
		Timeline: &xfl.Timeline{Name: objName, Layers: layers},
	})

	b.AddTimeline(&xfl.Timeline{
		Name: "Scene 1",
		Layers: []*xfl.Layer{{
			Name: "root",
			Frames: []*xfl.Frame{{
				Index:    0,
				Duration: 1,
				Elements: &xfl.FrameElements{
					SymbolInstances: []*xfl.SymbolInstance{{
						LibraryItemName: "sprite/" + objName,
						Name:            "rootSymbol",
					}},
				},
			}},
		}},
	})

	return b, nil
}

// addPieceLibrary slices the atlas and registers one media bitmap and one
// image wrapper symbol per piece, media sorted by name.
func addPieceLibrary(b *xfl.Builder, a *atlas.Atlas, progress func(done, total int)) error {
	pngs, err := a.Split(progress)
	if err != nil {
		return errors.Wrapf(err, "Failed to split atlas %q", a.Name)
	}

	names := make([]string, 0, len(pngs))
	for name := range pngs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.AddBitmap(name, pngs[name])
		b.AddSymbol("image/"+name, &xfl.SymbolItem{
			Name:       "image/" + name,
			ItemID:     "image/" + name,
			SymbolType: "graphic",
			Timeline: &xfl.Timeline{
				Name: name,
				Layers: []*xfl.Layer{{
					Name: "Layer 1",
					Frames: []*xfl.Frame{{
						Index:    0,
						Duration: 1,
						Elements: &xfl.FrameElements{
							BitmapInstances: []*xfl.BitmapInstance{{
								LibraryItemName: "media/" + name,
								Name:            name + "_bmp",
							}},
						},
					}},
				}},
			},
		})
	}
	return nil
}

// stageSize derives the authoring stage size: animation header first, then
// flattened content bounds, then the configured default, all scaled by the
// stage pixel ratio.
func (t *Timeline) stageSize(a *atlas.Atlas, anim *Animation) (float64, float64) {
	ratio := config.GetStagePixelRatio()

	if anim != nil && anim.Width > 0 && anim.Height > 0 {
		return anim.Width * ratio, anim.Height * ratio
	}

	if a != nil {
		if min, max, ok := t.Bounds(a.Catalog); ok {
			w := max.X() - min.X()
			h := max.Y() - min.Y()
			if w > 0 && h > 0 {
				return w * ratio, h * ratio
			}
		}
	}

	return config.DefaultStageWidth * ratio, config.DefaultStageHeight * ratio
}

// mainLabel picks the label shown on the root frame: the earliest named
// span, or "idle" when the timeline carries no labels.
func (t *Timeline) mainLabel() string {
	for _, span := range t.Labels {
		if span.Name != "" {
			return span.Name
		}
	}
	return "idle"
}
