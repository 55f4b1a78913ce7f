package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extensions is a set of audio file extensions without the leading dot.
// Matching is case-sensitive.
type Extensions map[string]bool

// DefaultExtensions returns the built-in audio allow-list.
func DefaultExtensions() Extensions {
	return NewExtensions("mp3", "m4a", "opus", "flac", "wav", "ogg")
}

// NewExtensions builds a set from the given extensions.
func NewExtensions(exts ...string) Extensions {
	set := make(Extensions, len(exts))
	for _, ext := range exts {
		set[strings.TrimPrefix(ext, ".")] = true
	}
	return set
}

// Scanner finds crate directories and the audio files inside them.
type Scanner struct {
	extensions Extensions
	ignore     []string
}

// New returns a Scanner. Ignore patterns use doublestar syntax and are
// matched against slash-separated paths relative to the scanned directory.
func New(extensions Extensions, ignore []string) (*Scanner, error) {
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return &Scanner{extensions: extensions, ignore: ignore}, nil
}

// AudioFiles returns the absolute paths of all audio files below dir.
// Paths are lexical within each directory. Symlinks are followed.
func (s *Scanner) AudioFiles(dir string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	err = walk(root, func(path string, info fs.FileInfo) error {
		if !info.Mode().IsRegular() || !s.extensions[extension(path)] {
			return nil
		}

		ignored, err := s.ignored(root, path)
		if err != nil {
			return err
		}
		if !ignored {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}

// Dirs returns root and every directory below it, including directories
// reached through symlinks.
func (s *Scanner) Dirs(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	err = walk(root, func(path string, info fs.FileInfo) error {
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}

// walk calls fn for path and everything below it, depth first and sorted by
// name. Unlike filepath.WalkDir it follows symlinks; there is no loop
// detection, a cycle ends with the OS rejecting the path. Dangling links
// are skipped.
func walk(path string, fn func(path string, info fs.FileInfo) error) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if linfo, lerr := os.Lstat(path); lerr == nil && linfo.Mode()&fs.ModeSymlink != 0 {
				return nil
			}
		}
		return err
	}
	if err := fn(path, info); err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := walk(filepath.Join(path, entry.Name()), fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) ignored(root, path string) (bool, error) {
	if len(s.ignore) == 0 {
		return false, nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, err
	}
	relSlash := filepath.ToSlash(rel)
	for _, pattern := range s.ignore {
		ok, err := doublestar.Match(pattern, relSlash)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// BaseName returns the file name of path without its final extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
