package source

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDuplicateOutput indicates two sources that would write the same PDF.
var ErrDuplicateOutput = errors.New("sources share an output file")

// sourceExts lists the extensions treated as invoice sources.
var sourceExts = map[string]bool{".yaml": true, ".yml": true}

// Discover walks dir recursively and returns source files in lexical order.
// Hidden files and directories are skipped.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if sourceExts[strings.ToLower(filepath.Ext(name))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning sources: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// CheckOutputs returns an error naming the first two sources that resolve
// to the same output file. Outputs are flat, so the same file name in two
// source subdirectories collides.
func CheckOutputs(sources []*Source) error {
	seen := make(map[string]string, len(sources))
	for _, s := range sources {
		if prev, ok := seen[s.Output]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, prev, s.Path, s.Output)
		}
		seen[s.Output] = s.Path
	}
	return nil
}
