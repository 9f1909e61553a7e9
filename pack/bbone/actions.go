package bbone

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/hamulous/bbone_browser/config"
	"github.com/hamulous/bbone_browser/pack/bbone/anm"
	"github.com/hamulous/bbone_browser/status"
	"github.com/hamulous/bbone_browser/utils"
	"github.com/hamulous/bbone_browser/webutils"
)

func (b *BBone) exportOptionsFromRequest(r *http.Request) anm.ExportOptions {
	opts := anm.ExportOptions{
		FPS: config.GetFrameRate(),
		Progress: func(done, total int) {
			status.Progress(float32(done)/float32(total), "Exporting %q: piece %d of %d", b.ObjectName, done, total)
		},
	}
	if fps, err := strconv.Atoi(r.URL.Query().Get("fps")); err == nil && fps > 0 {
		opts.FPS = fps
	}
	return opts
}

func (b *BBone) timelineOptionsFromRequest(r *http.Request) anm.Options {
	opts := anm.Options{GlobalScale: config.GetGlobalScale()}
	q := r.URL.Query()
	if s, err := strconv.ParseFloat(q.Get("scale"), 64); err == nil && s > 0 {
		opts.GlobalScale = s
	}
	if q.Get("includeunused") == "1" {
		opts.IncludeUnused = true
	}
	if only := q.Get("only"); only != "" {
		opts.Only = strings.Split(only, ",")
	}
	return opts
}

func (b *BBone) actionExportXFL(w http.ResponseWriter, r *http.Request) {
	status.Info("Exporting %q as Animate project", b.ObjectName)

	tl, err := b.BuildTimeline(b.timelineOptionsFromRequest(r))
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	bld, err := tl.ExportXFL(b.Atlas, b.Animation, b.exportOptionsFromRequest(r))
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := bld.WriteZip(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.Info("Exported %q (%d bytes)", b.ObjectName, buf.Len())
	webutils.WriteFile(w, &buf, b.SymbolName()+".xfl.zip")
}

func (b *BBone) actionExportIdentityXFL(w http.ResponseWriter, r *http.Request) {
	status.Info("Exporting %q as identity sprite", b.ObjectName)
	bld, err := anm.ExportIdentityXFL(b.Atlas, b.SymbolName(), b.exportOptionsFromRequest(r))
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := bld.WriteZip(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, b.SymbolName()+".identity.xfl.zip")
}

func (b *BBone) actionTimelineYaml(w http.ResponseWriter, r *http.Request) {
	tl, err := b.BuildTimeline(b.timelineOptionsFromRequest(r))
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteYamlFile(w, tl, b.SymbolName()+".timeline")
}

func (b *BBone) HttpAction(w http.ResponseWriter, r *http.Request, action string) {
	switch action {
	case "xfl":
		b.actionExportXFL(w, r)
	case "identityxfl":
		b.actionExportIdentityXFL(w, r)
	case "asyaml":
		b.actionTimelineYaml(w, r)
	case "dump":
		webutils.WriteResult(w, []byte(utils.SDump(b.Marshal())))
	default:
		http.NotFound(w, r)
	}
}
