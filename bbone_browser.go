package main

import (
	"flag"
	"log"

	"github.com/hamulous/bbone_browser/config"
	"github.com/hamulous/bbone_browser/vfs"
	"github.com/hamulous/bbone_browser/web"

	_ "github.com/hamulous/bbone_browser/pack/bbone"
)

func main() {
	var addr, dir, encoding string
	var fps int
	var scale float64
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to folder with animation containers")
	flag.StringVar(&encoding, "encoding", "", "Charmap used for label and name strings (empty for default)")
	flag.IntVar(&fps, "fps", config.DefaultFrameRate, "Frame rate used for exported documents")
	flag.Float64Var(&scale, "scale", 1.0, "Uniform scale applied to exported transforms")
	flag.Parse()

	if dir == "" {
		flag.PrintDefaults()
		return
	}

	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}
	config.SetFrameRate(fps)
	config.SetGlobalScale(scale)

	if err := web.StartServer(addr, vfs.NewDirectoryDriver(dir), "web"); err != nil {
		log.Fatal(err)
	}
}
