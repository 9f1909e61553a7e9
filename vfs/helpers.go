package vfs

import (
	"fmt"
	"io"
)

func OpenFileAndGetReader(f File, readonly bool) (*io.SectionReader, error) {
	if err := f.Open(readonly); err != nil {
		return nil, fmt.Errorf("Cannot open file '%s': %v", f.Name(), err)
	}
	if r, err := f.Reader(); err != nil {
		defer f.Close()
		return nil, fmt.Errorf("Cannot get file '%s' reader: %v", f.Name(), err)
	} else {
		return r, err
	}
}

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, fmt.Errorf("Cannot open file '%s': %v", name, err)
	} else if f.IsDirectory() {
		return nil, fmt.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}
