package xfl

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const DocumentFileName = "DOMDocument.xml"
const ManifestFileName = "main.xfl"

// Builder accumulates library items and timelines, then lays the project
// out as an uncompressed XFL directory tree or a single zip.
type Builder struct {
	doc         *Document
	symbolPaths []string
	symbols     map[string]*SymbolItem
	media       map[string][]byte
}

func NewBuilder(fps int, width, height float64) *Builder {
	b := &Builder{
		doc: &Document{
			Xmlns:      Xmlns,
			FrameRate:  fps,
			Width:      FormatFloat(width),
			Height:     FormatFloat(height),
			XflVersion: Version,
		},
		symbols: make(map[string]*SymbolItem),
		media:   make(map[string][]byte),
	}
	for _, folder := range []string{"media", "image", "sprite", "label"} {
		b.doc.Folders = append(b.doc.Folders, &FolderItem{Name: folder, IsExpanded: "true"})
	}
	return b
}

func (b *Builder) Document() *Document {
	return b.doc
}

// AddBitmap registers a piece bitmap: a media library item plus the backing
// PNG under library/media/.
func (b *Builder) AddBitmap(name string, pngData []byte) {
	b.doc.Media = append(b.doc.Media, &BitmapItem{
		Name:           "media/" + name,
		Href:           "media/" + name + ".png",
		AllowSmoothing: "true",
	})
	b.media["library/media/"+name+".png"] = pngData
}

// AddSymbol registers a symbol item under its library path ("image/head",
// "sprite/walker") and records the matching Include in the document.
func (b *Builder) AddSymbol(libraryPath string, item *SymbolItem) {
	if item.Xmlns == "" {
		item.Xmlns = Xmlns
	}
	if _, exists := b.symbols[libraryPath]; !exists {
		b.symbolPaths = append(b.symbolPaths, libraryPath)
	}
	b.symbols[libraryPath] = item
	b.doc.Symbols = append(b.doc.Symbols, &Include{Href: libraryPath + ".xml"})
}

func (b *Builder) AddTimeline(tl *Timeline) {
	b.doc.Timelines = append(b.doc.Timelines, tl)
}

func marshalXML(v interface{}) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal xml")
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// Files renders every project file to its path relative to the project
// root, manifest included.
func (b *Builder) Files() (map[string][]byte, error) {
	files := make(map[string][]byte, len(b.media)+len(b.symbols)+2)

	docData, err := marshalXML(b.doc)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal %s", DocumentFileName)
	}
	files[DocumentFileName] = docData

	for p, data := range b.media {
		files[p] = data
	}

	for _, libraryPath := range b.symbolPaths {
		data, err := marshalXML(b.symbols[libraryPath])
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to marshal symbol %q", libraryPath)
		}
		files["library/"+libraryPath+".xml"] = data
	}

	manifest, err := b.manifest(files)
	if err != nil {
		return nil, err
	}
	files[ManifestFileName] = manifest

	return files, nil
}

func (b *Builder) manifest(files map[string][]byte) ([]byte, error) {
	ff := &FlashFile{Version: "2"}
	ff.Files = append(ff.Files, &FileEntry{
		Path: DocumentFileName,
		Type: "application/vnd.adobe.xfl.document",
	})

	paths := make([]string, 0, len(files))
	for p := range files {
		if p == DocumentFileName {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		entry := &FileEntry{Path: p}
		if strings.HasSuffix(p, ".png") {
			entry.Type = "image/png"
		}
		ff.Files = append(ff.Files, entry)
	}

	return marshalXML(ff)
}

// WriteZip packs the whole project into one zip stream.
func (b *Builder) WriteZip(w io.Writer) error {
	files, err := b.Files()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	zw := zip.NewWriter(w)
	for _, p := range paths {
		fw, err := zw.Create(p)
		if err != nil {
			return errors.Wrapf(err, "Can't create zip entry %q", p)
		}
		if _, err := fw.Write(files[p]); err != nil {
			return errors.Wrapf(err, "Can't write zip entry %q", p)
		}
	}
	return zw.Close()
}

// WriteDir stages the project tree under root, creating directories as
// needed.
func (b *Builder) WriteDir(root string) error {
	files, err := b.Files()
	if err != nil {
		return err
	}

	for p, data := range files {
		outPath := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(outPath), 0777); err != nil {
			return errors.Wrapf(err, "Can't create directory for %q", p)
		}
		if err := os.WriteFile(outPath, data, 0666); err != nil {
			return errors.Wrapf(err, "Can't write %q", p)
		}
	}
	return nil
}
