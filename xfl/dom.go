// Package xfl models the subset of the Adobe Animate XFL document format
// needed to re-export flattened timelines: the DOMDocument, bitmap/symbol
// library items and the main.xfl manifest.
package xfl

import (
	"encoding/xml"
	"strconv"
)

const Xmlns = "http://ns.adobe.com/xfl/2008/"

const Version = "2.971"

// FormatFloat renders a matrix/stage float the way Animate writes them.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

type Matrix struct {
	XMLName xml.Name `xml:"Matrix"`
	A       string   `xml:"a,attr"`
	B       string   `xml:"b,attr"`
	C       string   `xml:"c,attr"`
	D       string   `xml:"d,attr"`
	TX      string   `xml:"tx,attr"`
	TY      string   `xml:"ty,attr"`
}

func NewMatrix(a, b, c, d, tx, ty float64) *Matrix {
	return &Matrix{
		A:  FormatFloat(a),
		B:  FormatFloat(b),
		C:  FormatFloat(c),
		D:  FormatFloat(d),
		TX: FormatFloat(tx),
		TY: FormatFloat(ty),
	}
}

type Color struct {
	XMLName         xml.Name `xml:"Color"`
	RedMultiplier   string   `xml:"redMultiplier,attr"`
	GreenMultiplier string   `xml:"greenMultiplier,attr"`
	BlueMultiplier  string   `xml:"blueMultiplier,attr"`
	AlphaMultiplier string   `xml:"alphaMultiplier,attr"`
}

func NewColor(r, g, b, a float64) *Color {
	return &Color{
		RedMultiplier:   FormatFloat(r),
		GreenMultiplier: FormatFloat(g),
		BlueMultiplier:  FormatFloat(b),
		AlphaMultiplier: FormatFloat(a),
	}
}

type SymbolInstance struct {
	XMLName         xml.Name `xml:"DOMSymbolInstance"`
	LibraryItemName string   `xml:"libraryItemName,attr"`
	Name            string   `xml:"name,attr,omitempty"`
	FirstFrame      string   `xml:"firstFrame,attr,omitempty"`
	SymbolType      string   `xml:"symbolType,attr,omitempty"`
	Loop            string   `xml:"loop,attr,omitempty"`
	Matrix          *Matrix  `xml:"matrix>Matrix"`
	Color           *Color   `xml:"color>Color"`
}

type BitmapInstance struct {
	XMLName         xml.Name `xml:"DOMBitmapInstance"`
	LibraryItemName string   `xml:"libraryItemName,attr"`
	Name            string   `xml:"name,attr,omitempty"`
	Matrix          *Matrix  `xml:"matrix>Matrix"`
}

type FrameElements struct {
	SymbolInstances []*SymbolInstance `xml:"DOMSymbolInstance"`
	BitmapInstances []*BitmapInstance `xml:"DOMBitmapInstance"`
}

type Frame struct {
	XMLName  xml.Name       `xml:"DOMFrame"`
	Index    int            `xml:"index,attr"`
	Duration int            `xml:"duration,attr"`
	Name     string         `xml:"name,attr,omitempty"`
	Elements *FrameElements `xml:"elements"`
}

type Layer struct {
	XMLName xml.Name `xml:"DOMLayer"`
	Name    string   `xml:"name,attr,omitempty"`
	Color   string   `xml:"color,attr,omitempty"`
	Frames  []*Frame `xml:"frames>DOMFrame"`
}

type Timeline struct {
	XMLName xml.Name `xml:"DOMTimeline"`
	Name    string   `xml:"name,attr"`
	Layers  []*Layer `xml:"layers>DOMLayer"`
}

type SymbolItem struct {
	XMLName    xml.Name  `xml:"DOMSymbolItem"`
	Xmlns      string    `xml:"xmlns,attr"`
	Name       string    `xml:"name,attr"`
	ItemID     string    `xml:"itemID,attr,omitempty"`
	SymbolType string    `xml:"symbolType,attr,omitempty"`
	Timeline   *Timeline `xml:"timeline>DOMTimeline"`
}

type BitmapItem struct {
	XMLName        xml.Name `xml:"DOMBitmapItem"`
	Name           string   `xml:"name,attr"`
	Href           string   `xml:"href,attr"`
	ItemID         string   `xml:"itemID,attr,omitempty"`
	AllowSmoothing string   `xml:"allowSmoothing,attr,omitempty"`
}

type FolderItem struct {
	XMLName    xml.Name `xml:"DOMFolderItem"`
	Name       string   `xml:"name,attr"`
	IsExpanded string   `xml:"isExpanded,attr,omitempty"`
}

type Include struct {
	XMLName xml.Name `xml:"Include"`
	Href    string   `xml:"href,attr"`
}

type Document struct {
	XMLName    xml.Name      `xml:"DOMDocument"`
	Xmlns      string        `xml:"xmlns,attr"`
	FrameRate  int           `xml:"frameRate,attr"`
	Width      string        `xml:"width,attr"`
	Height     string        `xml:"height,attr"`
	XflVersion string        `xml:"xflVersion,attr"`
	Folders    []*FolderItem `xml:"folders>DOMFolderItem"`
	Media      []*BitmapItem `xml:"media>DOMBitmapItem"`
	Symbols    []*Include    `xml:"symbols>Include"`
	Timelines  []*Timeline   `xml:"timelines>DOMTimeline"`
}

// FlashFile is the main.xfl manifest enumerating every project file so
// Animate loads the library reliably.
type FlashFile struct {
	XMLName xml.Name     `xml:"DOMFlashFile"`
	Version string       `xml:"version,attr"`
	Files   []*FileEntry `xml:"files>DOMFile"`
}

type FileEntry struct {
	XMLName xml.Name `xml:"DOMFile"`
	Path    string   `xml:"path,attr"`
	Type    string   `xml:"type,attr,omitempty"`
}
