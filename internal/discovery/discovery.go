// Package discovery expands command-line inputs (files, directories, glob
// patterns, or "-" for standard input) into the list of Dockerfiles to lint.
package discovery

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the input that selects standard input.
const Stdin = "-"

// File is a Dockerfile selected for linting.
type File struct {
	// Path is the path as the user should see it. Explicit file arguments
	// keep their original spelling; files found by walking are absolute.
	Path string

	// ConfigRoot is where config discovery starts for this file. Empty for
	// standard input, which uses the working directory.
	ConfigRoot string
}

// IsStdin reports whether the file is read from standard input.
func (f File) IsStdin() bool {
	return f.Path == Stdin
}

// Options configures file discovery behavior.
type Options struct {
	// Patterns are the file name patterns searched inside directories.
	// Defaults to DefaultPatterns().
	Patterns []string

	// ExcludePatterns drop matching files. A pattern is tried against the
	// absolute path, the base name, and every trailing subpath, so
	// "vendor/**" excludes vendored Dockerfiles at any depth.
	ExcludePatterns []string
}

// DefaultPatterns returns the Dockerfile and Containerfile naming conventions.
func DefaultPatterns() []string {
	return []string{
		"Dockerfile",
		"Dockerfile.*",
		"*.Dockerfile",
		"Containerfile",
		"Containerfile.*",
		"*.Containerfile",
	}
}

// Discover resolves inputs to Dockerfiles. Results are deduplicated by
// absolute path and sorted by Path; standard input, if requested, comes first.
func Discover(inputs []string, opts Options) ([]File, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	d := &discoverer{opts: opts, seen: make(map[string]bool)}
	stdin := false
	for _, input := range inputs {
		if input == Stdin {
			stdin = true
			continue
		}
		if err := d.input(input); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(d.files, func(a, b File) int {
		return cmp.Compare(a.Path, b.Path)
	})
	if stdin {
		d.files = append([]File{{Path: Stdin}}, d.files...)
	}
	return d.files, nil
}

type discoverer struct {
	opts  Options
	seen  map[string]bool
	files []File
}

func (d *discoverer) input(input string) error {
	// os.Stat rejects glob characters on Windows, so patterns skip it.
	if strings.ContainsAny(input, "*?[]{}") {
		return d.glob(input)
	}

	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return d.directory(input)
	case err == nil:
		return d.add(input, input)
	case errors.Is(err, fs.ErrNotExist):
		// A missing file is reported later, when it is read.
		return d.add(input, input)
	default:
		return err
	}
}

func (d *discoverer) directory(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	for _, pattern := range d.opts.Patterns {
		if err := d.glob(filepath.Join(absDir, "**", pattern)); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) glob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	for _, match := range matches {
		abs, err := filepath.Abs(match)
		if err != nil {
			return err
		}
		if err := d.add(abs, abs); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) add(display, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if d.seen[abs] || isExcluded(abs, d.opts.ExcludePatterns) {
		return nil
	}
	d.seen[abs] = true
	d.files = append(d.files, File{Path: display, ConfigRoot: filepath.Dir(abs)})
	return nil
}

// isExcluded matches patterns against forward-slash paths, which is what
// doublestar expects on every platform.
func isExcluded(absPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	full := filepath.ToSlash(absPath)
	parts := strings.Split(strings.TrimPrefix(full, filepath.ToSlash(filepath.VolumeName(absPath))), "/")

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, full); ok {
			return true
		}
		for i := range parts {
			sub := strings.Join(parts[i:], "/")
			if sub == "" {
				continue
			}
			if ok, _ := doublestar.Match(pattern, sub); ok {
				return true
			}
		}
	}
	return false
}
