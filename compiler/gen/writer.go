package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// SourceWriter persists rendered artifacts. Paths are slash-separated and
// relative to the target directory.
type SourceWriter interface {
	// Exists reports if a file exists at path.
	Exists(path string) (bool, error)
	// Write renders f to path, replacing any existing file.
	Write(path string, f *jen.File) error
}

// ExclusiveWriter is implemented by writers able to create a file only if
// it does not exist, in a single step.
type ExclusiveWriter interface {
	// WriteNew renders f to path unless a file exists there. It reports if
	// the file was created.
	WriteNew(path string, f *jen.File) (bool, error)
}

// FileWriter writes artifacts under a root directory.
type FileWriter struct {
	root string
}

var (
	_ SourceWriter    = (*FileWriter)(nil)
	_ ExclusiveWriter = (*FileWriter)(nil)
)

// NewFileWriter returns a writer rooted at dir.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{root: dir}
}

// Exists implements SourceWriter.
func (w *FileWriter) Exists(name string) (bool, error) {
	_, err := os.Stat(w.path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Write implements SourceWriter.
func (w *FileWriter) Write(name string, f *jen.File) error {
	full := w.path(name)
	src, err := format(full, f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(full, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// WriteNew implements ExclusiveWriter.
func (w *FileWriter) WriteNew(name string, f *jen.File) (bool, error) {
	full := w.path(name)
	src, err := format(full, f)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", name, err)
	}
	out, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := out.Write(src); err != nil {
		out.Close()
		return false, fmt.Errorf("write %s: %w", name, err)
	}
	return true, out.Close()
}

func (w *FileWriter) path(name string) string {
	return filepath.Join(w.root, filepath.FromSlash(name))
}

// jennifer tracks the imports, only formatting is left.
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// format renders f and formats Go sources with goimports. On formatting
// failure the unformatted source is dumped next to the file for debugging.
func format(full string, f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", full, err)
	}
	if filepath.Ext(full) != ".go" {
		return buf.Bytes(), nil
	}
	src, err := imports.Process(full, buf.Bytes(), formatOptions)
	if err != nil {
		debugPath := full + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return nil, fmt.Errorf("format %s: %w (unformatted written to %s)", full, err, debugPath)
	}
	return src, nil
}

// MemWriter keeps rendered artifacts in memory. It is safe for concurrent
// use.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

var (
	_ SourceWriter    = (*MemWriter)(nil)
	_ ExclusiveWriter = (*MemWriter)(nil)
)

// NewMemWriter returns an empty in-memory writer.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: make(map[string][]byte)}
}

// Exists implements SourceWriter.
func (w *MemWriter) Exists(name string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path.Clean(name)]
	return ok, nil
}

// Write implements SourceWriter.
func (w *MemWriter) Write(name string, f *jen.File) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path.Clean(name)] = buf.Bytes()
	return nil
}

// WriteNew implements ExclusiveWriter.
func (w *MemWriter) WriteNew(name string, f *jen.File) (bool, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return false, fmt.Errorf("render %s: %w", name, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	name = path.Clean(name)
	if _, ok := w.files[name]; ok {
		return false, nil
	}
	w.files[name] = buf.Bytes()
	return true, nil
}

// File returns the content written at path.
func (w *MemWriter) File(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.files[path.Clean(name)]
	return b, ok
}

// Paths returns the written paths, sorted.
func (w *MemWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DryRunWriter keeps rendered artifacts in memory like a MemWriter, but also
// reports the files present under its root directory as existing. A dry run
// then skips the generate-once artifacts a real run would skip.
type DryRunWriter struct {
	*MemWriter
	disk *FileWriter
}

// NewDryRunWriter returns a dry-run writer checking existence under dir.
func NewDryRunWriter(dir string) *DryRunWriter {
	return &DryRunWriter{MemWriter: NewMemWriter(), disk: NewFileWriter(dir)}
}

// Exists implements SourceWriter.
func (w *DryRunWriter) Exists(name string) (bool, error) {
	if ok, err := w.MemWriter.Exists(name); ok || err != nil {
		return ok, err
	}
	return w.disk.Exists(name)
}

// WriteNew implements ExclusiveWriter.
func (w *DryRunWriter) WriteNew(name string, f *jen.File) (bool, error) {
	switch ok, err := w.disk.Exists(name); {
	case err != nil:
		return false, err
	case ok:
		return false, nil
	}
	return w.MemWriter.WriteNew(name, f)
}
