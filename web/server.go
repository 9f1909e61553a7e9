package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/hamulous/bbone_browser/status"
	"github.com/hamulous/bbone_browser/vfs"
)

var ServerDirectory vfs.Directory

func StartServer(addr string, d vfs.Directory, webPath string) error {
	ServerDirectory = d

	r := mux.NewRouter()
	r.HandleFunc("/action/{file}/{action}", HandlerActionPackFile)
	r.HandleFunc("/json/pack/{file}/timeline", HandlerAjaxPackFileTimeline)
	r.HandleFunc("/json/pack/{file}", HandlerAjaxPackFile)
	r.HandleFunc("/json/pack", HandlerAjaxPack)
	r.HandleFunc("/png/{file}/{piece}", HandlerPiecePng)
	r.HandleFunc("/dump/pack/{file}", HandlerDumpPackFile)
	r.HandleFunc("/ws/status", status.HandlerWebsocket)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
