package bbone

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Pack writes a .bbone container from raw sections. Inverse of
// NewFromReader; used by the packer tool and fixtures.
func Pack(w io.Writer, objectName string, sections map[int][]byte) error {
	zw := zip.NewWriter(w)
	if err := zw.SetComment(objectName); err != nil {
		return errors.Wrapf(err, "Failed to set container comment")
	}

	indexes := make([]int, 0, len(sections))
	for idx := range sections {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		fw, err := zw.Create(fmt.Sprintf("%d.bin", idx))
		if err != nil {
			return errors.Wrapf(err, "Can't create section %d", idx)
		}
		if _, err := fw.Write(sections[idx]); err != nil {
			return errors.Wrapf(err, "Can't write section %d", idx)
		}
	}

	return zw.Close()
}
