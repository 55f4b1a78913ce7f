package playlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Header is the first line of every playlist.
	Header = "#EXTM3U"
	// EntryMarker precedes each track path. No duration or title is written.
	EntryMarker = "#EXTINF"
	// Extension is appended to the crate name to form the file name.
	Extension = ".m3u"
)

// LineEnding returns the line terminator of the current platform.
func LineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// FileName returns the playlist file name for a crate.
func FileName(crate string) string {
	return crate + Extension
}

// Encode writes the playlist body for tracks to w.
func Encode(w io.Writer, tracks []string, lineEnding string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + lineEnding); err != nil {
		return err
	}
	for _, track := range tracks {
		if _, err := bw.WriteString(EntryMarker + lineEnding + track + lineEnding); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Writer writes crate playlists into one destination directory.
type Writer struct {
	dir        string
	lineEnding string
}

// NewWriter returns a Writer for dir using the platform line ending.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, lineEnding: LineEnding()}
}

// WithLineEnding returns a copy of w that terminates lines with ending.
func (w *Writer) WithLineEnding(ending string) *Writer {
	return &Writer{dir: w.dir, lineEnding: ending}
}

// Dir returns the destination directory.
func (w *Writer) Dir() string { return w.dir }

// Write creates or truncates <crate>.m3u and fills it with tracks.
// It returns the path of the written file.
func (w *Writer) Write(crate string, tracks []string) (path string, err error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create destination %q: %w", w.dir, err)
	}

	path = filepath.Join(w.dir, FileName(crate))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create playlist %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close playlist %q: %w", path, closeErr)
		}
	}()

	if err := Encode(f, tracks, w.lineEnding); err != nil {
		return "", fmt.Errorf("write playlist %q: %w", path, err)
	}
	return path, nil
}
