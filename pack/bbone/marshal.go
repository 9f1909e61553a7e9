package bbone

import (
	"github.com/hamulous/bbone_browser/labelscript"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

type Ajax struct {
	ObjectName       string
	AtlasName        string
	Pieces           []atlas.Piece
	FrameCount       int
	SharedAnimations map[string]int
	Labels           []*labelscript.Label
	Width            float64
	Height           float64
}

// Marshal shapes the container for the viewer JSON API.
func (b *BBone) Marshal() interface{} {
	shared := make(map[string]int, len(b.Animation.SharedAnimations))
	for id, frames := range b.Animation.SharedAnimations {
		shared[id] = len(frames)
	}

	return &Ajax{
		ObjectName:       b.ObjectName,
		AtlasName:        b.Atlas.Name,
		Pieces:           b.Atlas.Catalog.Pieces(),
		FrameCount:       len(b.Animation.Frames),
		SharedAnimations: shared,
		Labels:           b.Labels,
		Width:            b.Animation.Width,
		Height:           b.Animation.Height,
	}
}
