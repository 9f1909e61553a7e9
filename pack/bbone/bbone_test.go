package bbone

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/hamulous/bbone_browser/pack/bbone/anm"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

func testAtlasSection(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	plist := []byte(`[
		{"name":"head","x":0,"y":0,"w":4,"h":4},
		{"name":"body","x":4,"y":0,"w":4,"h":8}
	]`)
	return atlas.BuildSection("hero_atlas", plist, buf.Bytes())
}

func packContainer(t *testing.T, objectName string, sections map[int][]byte) *io.SectionReader {
	t.Helper()
	var buf bytes.Buffer
	if err := Pack(&buf, objectName, sections); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	return io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data)))
}

func TestContainerRoundTrip(t *testing.T) {
	animJSON := []byte(`{"frames":[
		{"children":[{"name":"body","children":[
			{"name":"head","matrix":{"a":1,"d":1,"tx":5,"ty":10}}
		]}]}
	]}`)
	labels := []byte("$idle 1 // rest pose\n")

	r := packContainer(t, "hero.unit", map[int][]byte{
		SECTION_ATLAS:     testAtlasSection(t),
		SECTION_ANIMATION: animJSON,
		SECTION_LABELS:    labels,
	})

	b, err := NewFromReader("hero.bbone", r)
	if err != nil {
		t.Fatal(err)
	}
	if b.ObjectName != "hero.unit" {
		t.Errorf("ObjectName = %q", b.ObjectName)
	}
	if b.SymbolName() != "hero_unit" {
		t.Errorf("SymbolName = %q", b.SymbolName())
	}
	if b.Atlas.Name != "hero_atlas" {
		t.Errorf("atlas name = %q", b.Atlas.Name)
	}
	if len(b.Animation.Frames) != 1 {
		t.Fatalf("frames = %d", len(b.Animation.Frames))
	}
	if got := b.LabelTable(); got["idle"] != 1 {
		t.Errorf("LabelTable = %v", got)
	}
}

func TestContainerNameFallback(t *testing.T) {
	r := packContainer(t, "", map[int][]byte{SECTION_ATLAS: testAtlasSection(t)})
	b, err := NewFromReader("enemy.bbone", r)
	if err != nil {
		t.Fatal(err)
	}
	if b.ObjectName != "enemy" {
		t.Errorf("ObjectName = %q, want file base name", b.ObjectName)
	}
	if b.Animation == nil || len(b.Animation.Frames) != 0 {
		t.Errorf("missing animation section should parse to empty animation")
	}
}

func TestContainerMissingAtlas(t *testing.T) {
	r := packContainer(t, "broken", map[int][]byte{SECTION_ANIMATION: []byte(`{"frames":[]}`)})
	if _, err := NewFromReader("broken.bbone", r); err == nil {
		t.Error("container without atlas section should fail")
	}
}

func TestContainerBuildTimeline(t *testing.T) {
	animJSON := []byte(`{"frames":[
		{"children":[{"name":"head.png","matrix":{"tx":1}},{"name":"body"}]},
		{"children":[{"name":"body"}]}
	]}`)
	r := packContainer(t, "hero", map[int][]byte{
		SECTION_ATLAS:     testAtlasSection(t),
		SECTION_ANIMATION: animJSON,
	})
	b, err := NewFromReader("hero.bbone", r)
	if err != nil {
		t.Fatal(err)
	}

	tl, err := b.BuildTimeline(anm.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if tl.FrameCount != 2 {
		t.Errorf("FrameCount = %d", tl.FrameCount)
	}
	if !tl.Tracks["head"][0].Present || tl.Tracks["head"][1].Present {
		t.Errorf("head track = %+v", tl.Tracks["head"])
	}
	if len(tl.Diag.Unmatched) != 0 {
		t.Errorf("Unmatched = %v", tl.Diag.Unmatched)
	}
}

func TestSectionIndex(t *testing.T) {
	for _, c := range []struct {
		entry string
		idx   int
		ok    bool
	}{
		{"1.bin", 1, true},
		{"sub/2.bin", 2, true},
		{"3", 3, true},
		{"readme.txt", 0, false},
		{"-1.bin", 0, false},
	} {
		idx, ok := sectionIndex(c.entry)
		if idx != c.idx || ok != c.ok {
			t.Errorf("sectionIndex(%q) = %d,%v", c.entry, idx, ok)
		}
	}
}
