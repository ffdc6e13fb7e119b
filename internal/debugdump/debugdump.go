// Package debugdump writes intermediate pipeline results to disk for offline inspection.
package debugdump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
)

// Writer stores JSON snapshots in a directory, optionally brotli-compressed.
// A Writer with an empty directory discards everything.
type Writer struct {
	dir      string
	compress bool
}

// New creates a Writer for dir.
func New(dir string, compress bool) *Writer {
	return &Writer{dir: dir, compress: compress}
}

// Enabled reports whether dumps are written at all.
func (w *Writer) Enabled() bool {
	return w != nil && w.dir != ""
}

// Path returns the file a dump called name is written to.
func (w *Writer) Path(name string) string {
	file := name + ".json"
	if w.compress {
		file += ".br"
	}
	return filepath.Join(w.dir, file)
}

// Write encodes v as indented JSON into the dump called name, replacing any
// previous dump of the same name.
func (w *Writer) Write(name string, v any) (err error) {
	if !w.Enabled() {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("debugdump: create dir: %w", err)
	}

	path := w.Path(name)
	tmp, err := os.CreateTemp(w.dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("debugdump: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var out io.Writer = tmp
	var bw *brotli.Writer
	if w.compress {
		bw = brotli.NewWriterLevel(tmp, brotli.DefaultCompression)
		out = bw
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err = enc.Encode(v); err != nil {
		return fmt.Errorf("debugdump: encode %s: %w", name, err)
	}
	if bw != nil {
		if err = bw.Close(); err != nil {
			return fmt.Errorf("debugdump: compress %s: %w", name, err)
		}
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("debugdump: close %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("debugdump: rename %s: %w", name, err)
	}
	return nil
}

// Read decodes the dump called name into v, decompressing when needed.
func (w *Writer) Read(name string, v any) error {
	f, err := os.Open(w.Path(name))
	if err != nil {
		return fmt.Errorf("debugdump: open %s: %w", name, err)
	}
	defer f.Close()

	var in io.Reader = f
	if w.compress {
		in = brotli.NewReader(f)
	}
	if err := json.NewDecoder(in).Decode(v); err != nil {
		return fmt.Errorf("debugdump: decode %s: %w", name, err)
	}
	return nil
}
