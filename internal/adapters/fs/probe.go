package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileProbe = (*Probe)(nil)

// Probe reads file metadata and content from the local file system.
type Probe struct{}

// NewProbe creates a new Probe.
func NewProbe() *Probe {
	return &Probe{}
}

// Stat returns the modification time and size of path.
func (p *Probe) Stat(path string) (domain.FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileMeta{}, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if info.IsDir() {
		return domain.FileMeta{}, zerr.With(zerr.New("path is a directory"), "path", path)
	}
	return domain.FileMeta{ModTime: domain.MTime(info.ModTime()), Size: info.Size()}, nil
}

// ReadFile returns the content of path.
func (p *Probe) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the walked project tree
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, nil
}

// Exists reports whether path exists. Errors other than absence are returned.
func (p *Probe) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return true, nil
}
