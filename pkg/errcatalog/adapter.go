package errcatalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
)

// ResourceAdapter loads decoded locale resources from some storage.
type ResourceAdapter interface {
	Load(ctx context.Context) ([]LocaleResource, error)
}

// SliceAdapter serves resources that are already decoded in memory.
type SliceAdapter struct {
	Resources []LocaleResource
}

// Load implements the ResourceAdapter interface
func (a *SliceAdapter) Load(_ context.Context) ([]LocaleResource, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	return slices.Clone(a.Resources), nil
}

// FileAdapter loads a single resource file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a new FileAdapter instance.
// A nil parser is chosen from the file extension.
// Returns nil if path is empty or no parser fits.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if path == "" {
		return nil
	}
	if parser == nil {
		parser = NewParserForFile(path)
	}
	if parser == nil {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the ResourceAdapter interface
func (a *FileAdapter) Load(ctx context.Context) ([]LocaleResource, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	content, err := readWithContext(ctx, func() ([]byte, error) { return os.ReadFile(a.path) })
	if err != nil {
		return nil, err
	}
	return ParseResource(ctx, a.parser, a.path, content)
}

// DirectoryAdapter loads every supported resource file of a directory.
// Subdirectories are not traversed.
type DirectoryAdapter struct {
	dir     string
	parsers []Parser
}

// NewDirectoryAdapter creates a new DirectoryAdapter instance.
// Without parsers, every built-in parser is used.
// Returns nil if dir is empty.
func NewDirectoryAdapter(dir string, parsers ...Parser) *DirectoryAdapter {
	if dir == "" {
		return nil
	}
	if len(parsers) == 0 {
		parsers = DefaultParsers()
	}
	return &DirectoryAdapter{dir: dir, parsers: parsers}
}

// Load implements the ResourceAdapter interface
func (a *DirectoryAdapter) Load(ctx context.Context) ([]LocaleResource, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	info, err := os.Stat(a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToAccessDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", ErrFailedToAccessDirectory, a.dir)
	}
	return loadFS(ctx, os.DirFS(a.dir), ".", a.parsers, func(name string) string {
		return filepath.Join(a.dir, name)
	})
}

// FSAdapter loads every supported resource file of a directory inside an fs.FS,
// typically an embed.FS.
type FSAdapter struct {
	fsys    fs.FS
	dir     string
	parsers []Parser
}

// NewFSAdapter creates a new FSAdapter instance.
// Without parsers, every built-in parser is used.
// Returns nil if fsys is nil.
func NewFSAdapter(fsys fs.FS, dir string, parsers ...Parser) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	if len(parsers) == 0 {
		parsers = DefaultParsers()
	}
	return &FSAdapter{fsys: fsys, dir: dir, parsers: parsers}
}

// Load implements the ResourceAdapter interface
func (a *FSAdapter) Load(ctx context.Context) ([]LocaleResource, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	return loadFS(ctx, a.fsys, a.dir, a.parsers, func(name string) string {
		return path.Join(a.dir, name)
	})
}

// loadFS parses the supported files of dir in name order. Any unreadable or
// malformed file fails the whole load: a partial catalog must never start.
func loadFS(ctx context.Context, fsys fs.FS, dir string, parsers []Parser, source func(string) string) ([]LocaleResource, error) {
	entries, err := readDirWithContext(ctx, fsys, dir)
	if err != nil {
		return nil, err
	}

	var resources []LocaleResource
	found := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := ParserFor(entry.Name(), parsers...)
		if parser == nil {
			continue
		}
		found = true

		name := path.Join(dir, entry.Name())
		content, err := readWithContext(ctx, func() ([]byte, error) { return fs.ReadFile(fsys, name) })
		if err != nil {
			return nil, err
		}
		parsed, err := ParseResource(ctx, parser, source(entry.Name()), content)
		if err != nil {
			return nil, err
		}
		resources = append(resources, parsed...)
	}

	if !found {
		return nil, fmt.Errorf("%w in '%s'", ErrNoResourceFiles, dir)
	}
	return resources, nil
}

// readWithContext runs a blocking read in a goroutine so that a cancelled context
// returns immediately.
func readWithContext(ctx context.Context, read func() ([]byte, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingFileCancelled, err)
	}

	done := make(chan struct{})
	var content []byte
	var readErr error
	go func() {
		content, readErr = read()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingFileCancelled, ctx.Err())
	case <-done:
	}
	if readErr != nil {
		return nil, errors.Join(ErrFailedToReadFile, readErr)
	}
	return content, nil
}

func readDirWithContext(ctx context.Context, fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
	}

	done := make(chan struct{})
	var entries []fs.DirEntry
	var readErr error
	go func() {
		entries, readErr = fs.ReadDir(fsys, dir)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingDirectoryCancelled, ctx.Err())
	case <-done:
	}
	if readErr != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, readErr)
	}
	return entries, nil
}
