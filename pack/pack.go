package pack

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/hamulous/bbone_browser/vfs"
)

type FileLoader func(name string, r *io.SectionReader) (interface{}, error)

var gHandlers map[string]FileLoader = make(map[string]FileLoader, 0)

var gInstanceCache sync.Map

func SetHandler(format string, ldr FileLoader) {
	gHandlers[strings.ToUpper(format)] = ldr
}

func CallHandler(name string, r *io.SectionReader) (interface{}, error) {
	ext := strings.ToUpper(filepath.Ext(name))

	if h, found := gHandlers[ext]; found {
		return h(name, r)
	}
	return nil, errors.Errorf("[pack] Cannot find handler for '%s' extension", ext)
}

func GetInstanceHandler(d vfs.Directory, fileName string) (interface{}, error) {
	if inst, ok := gInstanceCache.Load(fileName); ok {
		return inst, nil
	}

	f, err := vfs.DirectoryGetFile(d, fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot get file '%s'", fileName)
	}

	r, err := vfs.OpenFileAndGetReader(f, true)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot get instance of '%s'", fileName)
	}
	defer f.Close()

	inst, err := CallHandler(fileName, r)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Handler error")
	}

	gInstanceCache.Store(fileName, inst)
	return inst, nil
}
