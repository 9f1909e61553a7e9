package atlas

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Piece is one exportable part sliced from the atlas. OriginX/OriginY is the
// registration point in source pixel space, ScaleX/ScaleY the intrinsic
// scale baked by the packer.
type Piece struct {
	Name    string  `json:"name"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	W       int     `json:"w"`
	H       int     `json:"h"`
}

// Catalog keeps pieces in authored order. Order matters: it is the
// deterministic fallback placement for draw-order resolution.
type Catalog struct {
	pieces []Piece
	index  map[string]int
}

func NewCatalog(pieces []Piece) *Catalog {
	c := &Catalog{
		pieces: make([]Piece, 0, len(pieces)),
		index:  make(map[string]int, len(pieces)),
	}
	for _, p := range pieces {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		// packers emit 0 for "unset" scale
		if p.ScaleX == 0 {
			p.ScaleX = 1
		}
		if p.ScaleY == 0 {
			p.ScaleY = 1
		}
		if _, exists := c.index[p.Name]; exists {
			continue
		}
		c.index[p.Name] = len(c.pieces)
		c.pieces = append(c.pieces, p)
	}
	return c
}

func PiecesFromJSON(data []byte) ([]Piece, error) {
	var pieces []Piece
	if err := json.Unmarshal(data, &pieces); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal plist")
	}
	return pieces, nil
}

func (c *Catalog) Len() int {
	return len(c.pieces)
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.pieces))
	for i := range c.pieces {
		names[i] = c.pieces[i].Name
	}
	return names
}

func (c *Catalog) Pieces() []Piece {
	return c.pieces
}

func (c *Catalog) Get(name string) (Piece, bool) {
	if i, ok := c.index[name]; ok {
		return c.pieces[i], true
	}
	return Piece{ScaleX: 1, ScaleY: 1}, false
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}
