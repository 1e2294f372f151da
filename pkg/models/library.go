package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat is returned for files that are neither glTF nor OBJ.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Library loads models by path and keeps recently used ones parsed.
// It is safe for concurrent use.
type Library struct {
	loader *Loader
	cache  *lru.Cache // path -> *Model
	logger *slog.Logger
}

// NewLibrary creates a library holding at most size parsed models.
func NewLibrary(loader *Loader, size int, logger *slog.Logger) (*Library, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("model cache: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Library{loader: loader, cache: cache, logger: logger}, nil
}

// Load returns the model at path, parsing it on a cache miss. Every call
// returns its own copy.
func (l *Library) Load(path string) (*Model, error) {
	if v, ok := l.cache.Get(path); ok {
		l.logger.Debug("model cache hit", "path", path)
		return v.(*Model).Clone(), nil
	}

	m, err := l.parse(path)
	if err != nil {
		return nil, err
	}
	l.cache.Add(path, m)
	l.logger.Debug("model loaded", "path", path, "meshes", len(m.Meshes), "triangles", m.TriangleCount())
	return m.Clone(), nil
}

func (l *Library) parse(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return l.loader.LoadGLTF(path)
	case ".obj":
		return l.loader.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadAll loads paths in parallel and returns the models in argument order.
// The first failure cancels the rest.
func (l *Library) LoadAll(ctx context.Context, paths []string) ([]*Model, error) {
	out := make([]*Model, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := l.Load(path)
			if err != nil {
				return err
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of cached models.
func (l *Library) Len() int {
	return l.cache.Len()
}
