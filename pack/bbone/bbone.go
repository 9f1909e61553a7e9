// Package bbone decodes .bbone containers: zip archives of numbered
// sections produced by the player asset pipeline. Section 1 is the packed
// atlas with its piece catalog, section 2 the animation tree, section 3 the
// optional label track, section 4 reserved metadata.
package bbone

import (
	"archive/zip"
	"io"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hamulous/bbone_browser/labelscript"
	"github.com/hamulous/bbone_browser/pack"
	"github.com/hamulous/bbone_browser/pack/bbone/anm"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
	"github.com/hamulous/bbone_browser/utils"
)

const (
	SECTION_ATLAS     = 1
	SECTION_ANIMATION = 2
	SECTION_LABELS    = 3
	SECTION_META      = 4
)

type BBone struct {
	ObjectName string
	Sections   map[int][]byte

	Atlas     *atlas.Atlas
	Animation *anm.Animation
	Labels    []*labelscript.Label
}

// sectionIndex extracts the section number from a zip entry name; the
// extension is packer-dependent and ignored.
func sectionIndex(entryName string) (int, bool) {
	base := filepath.Base(entryName)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	idx, err := strconv.Atoi(base)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func NewFromReader(fileName string, r *io.SectionReader) (*BBone, error) {
	zr, err := zip.NewReader(r, r.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open container")
	}

	b := &BBone{
		ObjectName: strings.TrimSpace(zr.Comment),
		Sections:   make(map[int][]byte),
	}
	if b.ObjectName == "" {
		base := filepath.Base(fileName)
		b.ObjectName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	for _, zf := range zr.File {
		idx, ok := sectionIndex(zf.Name)
		if !ok {
			continue
		}
		fr, err := zf.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to open section %q", zf.Name)
		}
		data, err := ioutil.ReadAll(fr)
		fr.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read section %q", zf.Name)
		}
		b.Sections[idx] = data
	}

	if err := b.parseSections(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BBone) parseSections() error {
	rawAtlas, ok := b.Sections[SECTION_ATLAS]
	if !ok {
		return errors.Errorf("Container %q has no atlas section", b.ObjectName)
	}
	a, err := atlas.NewFromData(rawAtlas)
	if err != nil {
		return errors.Wrapf(err, "Failed to parse atlas section")
	}
	b.Atlas = a

	if rawAnim, ok := b.Sections[SECTION_ANIMATION]; ok {
		anim, err := anm.NewFromData(rawAnim)
		if err != nil {
			return errors.Wrapf(err, "Failed to parse animation section")
		}
		b.Animation = anim
	} else {
		// previewable, identity sprite only
		b.Animation = &anm.Animation{}
	}

	if rawLabels, ok := b.Sections[SECTION_LABELS]; ok {
		labels, err := labelscript.Parse([]byte(utils.BytesToString(rawLabels)))
		if err != nil {
			return errors.Wrapf(err, "Failed to parse label section")
		}
		b.Labels = labels
	}

	return nil
}

// LabelTable converts the parsed label track into the 1-based name->frame
// mapping consumed by the flattener.
func (b *BBone) LabelTable() map[string]int {
	return labelscript.Table(b.Labels)
}

// SymbolName is the object name made safe for Animate library paths.
func (b *BBone) SymbolName() string {
	return strings.ReplaceAll(b.ObjectName, ".", "_")
}

// BuildTimeline flattens the animation against the container's own catalog
// and labels.
func (b *BBone) BuildTimeline(opts anm.Options) (*anm.Timeline, error) {
	return anm.BuildTimeline(b.SymbolName(), b.Animation, b.Atlas.Catalog, b.LabelTable(), opts)
}

func init() {
	pack.SetHandler(".BBONE", func(name string, r *io.SectionReader) (interface{}, error) {
		return NewFromReader(name, r)
	})
}
