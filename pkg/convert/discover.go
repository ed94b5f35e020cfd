package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the files under dir whose name ends with ext, compared
// case-insensitively. Subdirectories are only searched when recursive is
// set. The result is sorted.
func Discover(dir, ext string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputNotFound, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if hasExtension(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(name, ext string) bool {
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// OutputPath maps an input file to its output file: the input's path
// relative to inputDir is placed under outputDir and its extension ext is
// replaced by outExt.
func OutputPath(inputDir, outputDir, input, ext, outExt string) string {
	rel, err := filepath.Rel(inputDir, input)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(input)
	}
	if hasExtension(rel, ext) {
		rel = rel[:len(rel)-len(ext)]
	} else {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	}
	return filepath.Join(outputDir, rel+outExt)
}
