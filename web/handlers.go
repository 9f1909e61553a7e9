package web

import (
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/hamulous/bbone_browser/pack"
	file_bbone "github.com/hamulous/bbone_browser/pack/bbone"
	"github.com/hamulous/bbone_browser/pack/bbone/anm"
	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
	"github.com/hamulous/bbone_browser/vfs"
	"github.com/hamulous/bbone_browser/webutils"
)

func HandlerAjaxPack(w http.ResponseWriter, r *http.Request) {
	if files, err := ServerDirectory.List(); err != nil {
		webutils.WriteError(w, err)
	} else {
		sort.Strings(files)
		webutils.WriteJson(w, files)
	}
}

func packBBone(file string) (*file_bbone.BBone, error) {
	data, err := pack.GetInstanceHandler(ServerDirectory, file)
	if err != nil {
		return nil, err
	}
	b, ok := data.(*file_bbone.BBone)
	if !ok {
		return nil, fmt.Errorf("File %s is not an animation container", file)
	}
	return b, nil
}

func HandlerAjaxPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, err := pack.GetInstanceHandler(ServerDirectory, file)
	if err != nil {
		log.Printf("Error getting file from pack: %v", err)
		webutils.WriteError(w, err)
		return
	}
	if m, ok := data.(interface{ Marshal() interface{} }); ok {
		webutils.WriteJson(w, m.Marshal())
	} else {
		webutils.WriteJson(w, data)
	}
}

func HandlerAjaxPackFileTimeline(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	b, err := packBBone(file)
	if err != nil {
		log.Printf("Error getting file from pack: %v", err)
		webutils.WriteError(w, err)
		return
	}
	tl, err := b.BuildTimeline(anm.Options{})
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, tl)
}

func HandlerPiecePng(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	piece := mux.Vars(r)["piece"]
	b, err := packBBone(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	p, ok := b.Atlas.Catalog.Get(atlas.NormalizeName(piece))
	if !ok {
		webutils.WriteError(w, fmt.Errorf("Unknown piece %q in %s", piece, file))
		return
	}
	img, err := b.Atlas.SubImage(p)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	data, err := atlas.EncodePNG(img)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	webutils.WriteResult(w, data)
}

func HandlerActionPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	action := mux.Vars(r)["action"]
	b, err := packBBone(file)
	if err != nil {
		log.Printf("Error getting file from pack: %v", err)
		webutils.WriteError(w, err)
		return
	}
	b.HttpAction(w, r, action)
}

func HandlerDumpPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	f, err := vfs.DirectoryGetFile(ServerDirectory, file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	if reader, err := vfs.OpenFileAndGetReader(f, true); err == nil {
		webutils.WriteFile(w, reader, file)
		defer f.Close()
	} else {
		fmt.Fprintf(w, "Error getting file reader: %v", err)
	}
}
