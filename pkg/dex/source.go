package dex

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
)

//go:embed data/*.txt
var embedded embed.FS

// ReadSource reads a vocabulary: one name per line, index is the code.
// Carriage returns are stripped and a trailing newline does not add an
// entry. Blank lines inside the file are kept, they occupy a code.
func ReadSource(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	return lines, nil
}

// LoadSources reads every category file (see Category.FileName) from fsys.
func LoadSources(fsys fs.FS) (Sources, error) {
	src := make(Sources, len(Categories))
	for _, c := range Categories {
		f, err := fsys.Open(c.FileName())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s vocabulary: %w", c, err)
		}
		lines, err := ReadSource(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		src[c] = lines
	}
	return src, nil
}

// Load builds a Dex from the vocabulary files in dir.
func Load(dir string) (*Dex, error) {
	src, err := LoadSources(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return Build(src), nil
}

var defaultDex = sync.OnceValues(func() (*Dex, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	src, err := LoadSources(sub)
	if err != nil {
		return nil, fmt.Errorf("embedded vocabulary: %w", err)
	}
	return Build(src), nil
})

// Default returns the Dex built from the bundled vocabulary. It is built on
// first use; concurrent first callers wait for the same build and every
// caller gets the same instance.
func Default() (*Dex, error) {
	return defaultDex()
}
