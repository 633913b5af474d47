// Package loader reads class file bytes from disk and decodes them. A path
// may name a single .class file, a directory tree or a .jar/.zip archive.
package loader

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/classpeek/classfile"
)

var log = commonlog.GetLogger("classpeek.loader")

type Result struct {
	// Name is the file path, or "archive!entry" for archive members.
	Name  string
	Class *classfile.ClassFile
}

type options struct {
	checkMagic bool
}

type Option func(*options)

// WithMagicCheck rejects input that does not start with 0xCAFEBABE.
func WithMagicCheck() Option {
	return func(o *options) { o.checkMagic = true }
}

// Load decodes every class file found at path. The first file that fails
// to decode aborts the load.
func Load(path string, opts ...Option) ([]Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return loadDir(path, o)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return loadArchive(path, o)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read class file: %w", err)
		}
		r, err := decode(path, data, o)
		if err != nil {
			return nil, err
		}
		return []Result{r}, nil
	}
}

// Decode decodes one in-memory class file under the given name.
func Decode(name string, data []byte, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return decode(name, data, o)
}

func decode(name string, data []byte, o options) (Result, error) {
	if o.checkMagic {
		if err := classfile.CheckMagic(data); err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	cf, err := classfile.Parse(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	log.Debugf("decoded %s: version %d.%d, %d constant pool slots", name, cf.MajorVersion, cf.MinorVersion, len(cf.ConstantPool))
	return Result{Name: name, Class: cf}, nil
}

func loadDir(root string, o options) ([]Result, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".class" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		log.Warningf("no class files under %s", root)
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read class file: %w", err)
		}
		r, err := decode(path, data, o)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func loadArchive(archivePath string, o options) ([]Result, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var results []Result
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".class" {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("read %s!%s: %w", archivePath, f.Name, err)
		}
		r, err := decode(archivePath+"!"+f.Name, data, o)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	log.Infof("decoded %d classes from %s", len(results), archivePath)
	return results, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
