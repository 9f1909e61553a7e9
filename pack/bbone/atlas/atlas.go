package atlas

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"

	"github.com/pkg/errors"

	"github.com/hamulous/bbone_browser/utils"
)

const ATLAS_MAGIC = 0x4c544142 // "BATL"

const (
	headerSize    = 0x2c
	atlasNameSize = 0x20
)

// Atlas is the decoded atlas section of a bbone container: the packed
// bitmap plus the piece catalog describing how to slice it.
type Atlas struct {
	Name    string
	Catalog *Catalog
	Image   image.Image
}

func NewFromData(data []byte) (*Atlas, error) {
	if len(data) < headerSize {
		return nil, errors.Errorf("Atlas section too small: %v", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != ATLAS_MAGIC {
		return nil, errors.Errorf("Invalid atlas magic 0x%.8x", magic)
	}

	plistSize := int(binary.LittleEndian.Uint32(data[4:8]))
	imageSize := int(binary.LittleEndian.Uint32(data[8:0xc]))
	if headerSize+plistSize+imageSize > len(data) {
		return nil, errors.Errorf("Atlas section truncated: plist %v + image %v > %v",
			plistSize, imageSize, len(data)-headerSize)
	}

	a := &Atlas{
		Name: utils.BytesToString(data[0xc : 0xc+atlasNameSize]),
	}

	pieces, err := PiecesFromJSON(data[headerSize : headerSize+plistSize])
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse atlas plist")
	}
	a.Catalog = NewCatalog(pieces)

	rawImage := data[headerSize+plistSize : headerSize+plistSize+imageSize]
	img, err := png.Decode(bytes.NewReader(rawImage))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode atlas bitmap")
	}
	a.Image = img

	return a, nil
}

// BuildSection encodes an atlas section. Inverse of NewFromData, used by
// the packer tool and fixtures.
func BuildSection(name string, plistJSON []byte, pngData []byte) []byte {
	data := make([]byte, headerSize, headerSize+len(plistJSON)+len(pngData))
	binary.LittleEndian.PutUint32(data[0:4], ATLAS_MAGIC)
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(plistJSON)))
	binary.LittleEndian.PutUint32(data[8:0xc], uint32(len(pngData)))
	copy(data[0xc:0xc+atlasNameSize], utils.StringToBytesBuffer(name, atlasNameSize, true))
	data = append(data, plistJSON...)
	data = append(data, pngData...)
	return data
}
