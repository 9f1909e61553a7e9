package atlas

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/pkg/errors"
)

// SubImage cuts one piece bitmap out of the packed atlas.
func (a *Atlas) SubImage(p Piece) (image.Image, error) {
	if a.Image == nil {
		return nil, errors.Errorf("Atlas %q has no bitmap", a.Name)
	}
	rect := image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
	if !rect.In(a.Image.Bounds()) {
		return nil, errors.Errorf("Piece %q rect %v outside atlas bounds %v",
			p.Name, rect, a.Image.Bounds())
	}

	out := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	draw.Draw(out, out.Bounds(), a.Image, rect.Min, draw.Src)
	return out, nil
}

// Split slices the atlas into one encoded PNG per piece. The progress
// callback may be nil.
func (a *Atlas) Split(progress func(done, total int)) (map[string][]byte, error) {
	result := make(map[string][]byte, a.Catalog.Len())
	pieces := a.Catalog.Pieces()
	for i, p := range pieces {
		img, err := a.SubImage(p)
		if err != nil {
			return nil, err
		}
		data, err := EncodePNG(img)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to encode piece %q", p.Name)
		}
		result[p.Name] = data
		if progress != nil {
			progress(i+1, len(pieces))
		}
	}
	return result, nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
