package xfl

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileExists(t *testing.T, root, rel string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

func testBuilder() *Builder {
	b := NewBuilder(30, 390, 390)
	b.AddBitmap("head", []byte("png-bytes"))
	b.AddSymbol("image/head", &SymbolItem{
		Name: "image/head",
		Timeline: &Timeline{
			Name: "head",
			Layers: []*Layer{{
				Name: "bitmap",
				Frames: []*Frame{{
					Duration: 1,
					Elements: &FrameElements{
						BitmapInstances: []*BitmapInstance{{
							LibraryItemName: "media/head",
							Matrix:          NewMatrix(1, 0, 0, 1, 0, 0),
						}},
					},
				}},
			}},
		},
	})
	b.AddTimeline(&Timeline{Name: "Scene 1"})
	return b
}

func TestBuilderFiles(t *testing.T) {
	files, err := testBuilder().Files()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{
		DocumentFileName,
		ManifestFileName,
		"library/media/head.png",
		"library/image/head.xml",
	} {
		if _, ok := files[p]; !ok {
			t.Errorf("missing project file %q", p)
		}
	}

	doc := string(files[DocumentFileName])
	if !strings.Contains(doc, `xmlns="`+Xmlns+`"`) {
		t.Error("document missing xfl namespace")
	}
	if !strings.Contains(doc, `xflVersion="`+Version+`"`) {
		t.Error("document missing xflVersion")
	}
	if !strings.Contains(doc, `<Include href="image/head.xml"`) {
		t.Error("document missing symbol include")
	}
	if !strings.Contains(doc, `<DOMTimeline name="Scene 1"`) {
		t.Error("document missing scene timeline")
	}

	manifest := string(files[ManifestFileName])
	if !strings.Contains(manifest, `path="DOMDocument.xml" type="application/vnd.adobe.xfl.document"`) {
		t.Error("manifest missing document entry")
	}
	if !strings.Contains(manifest, `path="library/media/head.png" type="image/png"`) {
		t.Error("manifest missing png entry")
	}

	symbol := string(files["library/image/head.xml"])
	if !strings.Contains(symbol, `<DOMSymbolItem xmlns="`+Xmlns+`"`) {
		t.Error("symbol missing namespace")
	}
	if !strings.Contains(symbol, `libraryItemName="media/head"`) {
		t.Error("symbol missing bitmap instance")
	}
}

func TestBuilderWriteZip(t *testing.T) {
	var buf bytes.Buffer
	if err := testBuilder().WriteZip(&buf); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, p := range []string{DocumentFileName, ManifestFileName, "library/media/head.png"} {
		if !names[p] {
			t.Errorf("zip missing %q", p)
		}
	}
}

func TestBuilderWriteDir(t *testing.T) {
	root := t.TempDir()
	if err := testBuilder().WriteDir(root); err != nil {
		t.Fatal(err)
	}
	files, err := testBuilder().Files()
	if err != nil {
		t.Fatal(err)
	}
	for p := range files {
		if !fileExists(t, root, p) {
			t.Errorf("missing staged file %q", p)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	if got := FormatFloat(0.5); got != "0.500000" {
		t.Errorf("FormatFloat(0.5) = %q", got)
	}
	if got := FormatFloat(-2); got != "-2.000000" {
		t.Errorf("FormatFloat(-2) = %q", got)
	}
}
