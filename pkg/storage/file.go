package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

const bz2Suffix = ".bz2"

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// openReader. transparently decompresses files ending in .bz2
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, bz2Suffix) {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Reader: bz, closers: []io.Closer{bz, f}}, nil
}

type atomicWriter struct {
	io.Writer
	f       *os.File
	bz      *bzip2.Writer
	tmpPath string
	path    string
}

// createWriter. writes to a temp file in the same directory, Close renames it over path
func createWriter(path string) (*atomicWriter, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	aw := &atomicWriter{Writer: f, f: f, tmpPath: f.Name(), path: path}

	if strings.HasSuffix(path, bz2Suffix) {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			f.Close()
			os.Remove(aw.tmpPath)
			return nil, err
		}
		aw.bz = bz
		aw.Writer = bz
	}
	return aw, nil
}

func (aw *atomicWriter) Close() error {
	if aw.bz != nil {
		if err := aw.bz.Close(); err != nil {
			aw.f.Close()
			os.Remove(aw.tmpPath)
			return err
		}
	}
	if err := aw.f.Close(); err != nil {
		os.Remove(aw.tmpPath)
		return err
	}
	return os.Rename(aw.tmpPath, aw.path)
}

// Abort. drops the temp file without touching path
func (aw *atomicWriter) Abort() {
	if aw.bz != nil {
		aw.bz.Close()
	}
	aw.f.Close()
	os.Remove(aw.tmpPath)
}
