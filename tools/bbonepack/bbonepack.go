package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamulous/bbone_browser/pack/bbone"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

func main() {
	var animPath, pngPath, plistPath, labelsPath, name, out string
	flag.StringVar(&animPath, "anim", "", "Path to animation json")
	flag.StringVar(&pngPath, "png", "", "Path to atlas image")
	flag.StringVar(&plistPath, "plist", "", "Path to piece catalog json")
	flag.StringVar(&labelsPath, "labels", "", "Path to label track text (optional)")
	flag.StringVar(&name, "name", "", "Object name (defaults to atlas image base name)")
	flag.StringVar(&out, "out", "", "Output container path (defaults to <name>.bbone)")
	flag.Parse()

	if pngPath == "" || plistPath == "" {
		flag.PrintDefaults()
		return
	}

	pngData, err := ioutil.ReadFile(pngPath)
	if err != nil {
		log.Fatalf("Failed to read atlas image: %v", err)
	}
	plistData, err := ioutil.ReadFile(plistPath)
	if err != nil {
		log.Fatalf("Failed to read piece catalog: %v", err)
	}

	if name == "" {
		base := filepath.Base(pngPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	sections := map[int][]byte{
		bbone.SECTION_ATLAS: atlas.BuildSection(name, plistData, pngData),
	}
	if animPath != "" {
		animData, err := ioutil.ReadFile(animPath)
		if err != nil {
			log.Fatalf("Failed to read animation: %v", err)
		}
		sections[bbone.SECTION_ANIMATION] = animData
	}
	if labelsPath != "" {
		labelsData, err := ioutil.ReadFile(labelsPath)
		if err != nil {
			log.Fatalf("Failed to read labels: %v", err)
		}
		sections[bbone.SECTION_LABELS] = labelsData
	}

	if out == "" {
		out = name + ".bbone"
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	defer f.Close()

	if err := bbone.Pack(f, name, sections); err != nil {
		log.Fatalf("Failed to pack container: %v", err)
	}
	log.Printf("[bbonepack] Packed %q into %v", name, out)
}
