package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hamulous/bbone_browser/config"
	"github.com/hamulous/bbone_browser/pack/bbone"
	"github.com/hamulous/bbone_browser/pack/bbone/anm"
	"github.com/hamulous/bbone_browser/utils"
)

func loadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

func openContainer(path string) (*bbone.BBone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return bbone.NewFromReader(filepath.Base(path), io.NewSectionReader(f, 0, fi.Size()))
}

func main() {
	var fps int
	var width, height, scale float64
	var aliasesPath, only, out string
	var includeUnused, reportMissing, traceNames, identitySprite, listPieces, dump bool
	flag.IntVar(&fps, "fps", config.DefaultFrameRate, "Frame rate of exported documents")
	flag.Float64Var(&width, "width", 0, "Stage width override in pixels (0 for auto)")
	flag.Float64Var(&height, "height", 0, "Stage height override in pixels (0 for auto)")
	flag.Float64Var(&scale, "scale", 1.0, "Uniform scale applied to exported transforms")
	flag.StringVar(&aliasesPath, "aliases", "", "Path to yaml file mapping authored names to catalog names")
	flag.StringVar(&only, "only", "", "Comma separated list of pieces to restrict export to")
	flag.StringVar(&out, "out", ".", "Output directory")
	flag.BoolVar(&includeUnused, "include-unused", false, "Emit a layer for every catalog piece, even unused ones")
	flag.BoolVar(&reportMissing, "report-missing", false, "Print authored names that matched no catalog piece")
	flag.BoolVar(&traceNames, "trace-names", false, "Print per-name occurrence counts after flattening")
	flag.BoolVar(&identitySprite, "identity-sprite", false, "Skip the animation and lay pieces out untransformed")
	flag.BoolVar(&listPieces, "list-pieces", false, "Print the piece catalog and exit")
	flag.BoolVar(&dump, "dump", false, "Print the parsed container and exit")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.PrintDefaults()
		return
	}

	aliases, err := loadAliases(aliasesPath)
	if err != nil {
		log.Fatalf("Failed to load aliases: %v", err)
	}

	opts := anm.Options{
		Aliases:       aliases,
		IncludeUnused: includeUnused,
		GlobalScale:   scale,
	}
	if only != "" {
		opts.Only = strings.Split(only, ",")
	}
	exportOpts := anm.ExportOptions{
		FPS:         fps,
		StageWidth:  width,
		StageHeight: height,
	}

	for _, path := range flag.Args() {
		if err := convert(path, out, opts, exportOpts, identitySprite, listPieces, dump, reportMissing, traceNames); err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}
}

func convert(path, out string, opts anm.Options, exportOpts anm.ExportOptions,
	identitySprite, listPieces, dump, reportMissing, traceNames bool) error {
	b, err := openContainer(path)
	if err != nil {
		return err
	}

	if dump {
		utils.Dump(b.Marshal())
		return nil
	}
	if listPieces {
		for _, name := range b.Atlas.Catalog.Names() {
			fmt.Println(name)
		}
		return nil
	}

	if identitySprite {
		bld, err := anm.ExportIdentityXFL(b.Atlas, b.SymbolName(), exportOpts)
		if err != nil {
			return err
		}
		return bld.WriteDir(filepath.Join(out, b.SymbolName()))
	}

	tl, err := b.BuildTimeline(opts)
	if err != nil {
		return err
	}

	if reportMissing {
		for _, name := range tl.Diag.Unmatched {
			log.Printf("[bbone2xfl] No catalog piece for %q", name)
		}
	}
	if traceNames {
		names := make([]string, 0, len(tl.Diag.Occurrences))
		for name := range tl.Diag.Occurrences {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.Printf("[bbone2xfl] %q occurs in %d frames", name, tl.Diag.Occurrences[name])
		}
	}

	bld, err := tl.ExportXFL(b.Atlas, b.Animation, exportOpts)
	if err != nil {
		return err
	}

	target := filepath.Join(out, b.SymbolName())
	if err := bld.WriteDir(target); err != nil {
		return err
	}
	log.Printf("[bbone2xfl] Exported %q to %v", b.ObjectName, target)
	return nil
}
