// Package storage keeps uploaded files on local disk and hands out the
// relative URLs they are served under.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const URLPrefix = "/uploads/"

var ErrOutsideRoot = errors.New("storage: path escapes upload root")

type File struct {
	Name string
	URL  string
	Size int64
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Storage interface {
	Save(ctx context.Context, folder, originalName string, r io.Reader) (File, error)
	Remove(ctx context.Context, url string) error
}

type LocalStorage struct {
	root   string
	logger *zap.Logger
}

func NewLocalStorage(root string, logger ...*zap.Logger) *LocalStorage {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	return &LocalStorage{root: root, logger: l}
}

func (s *LocalStorage) Root() string {
	return s.root
}

// Save writes r under root/folder with a collision-free name that keeps the
// original extension.
func (s *LocalStorage) Save(ctx context.Context, folder, originalName string, r io.Reader) (File, error) {
	dir, err := s.resolve(folder)
	if err != nil {
		return File{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	diskPath := filepath.Join(dir, name)

	dst, err := os.Create(diskPath)
	if err != nil {
		return File{}, err
	}

	size, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(diskPath)
		return File{}, err
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return File{}, err
	}
	rel, err := filepath.Rel(root, diskPath)
	if err != nil {
		return File{}, err
	}
	url := URLPrefix + filepath.ToSlash(rel)
	s.logger.Debug("file stored", zap.String("url", url), zap.Int64("size", size))
	return File{Name: name, URL: url, Size: size}, nil
}

// Remove deletes the file behind a URL returned by Save. A missing file is
// not an error.
func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || rel == "" {
		return ErrOutsideRoot
	}

	path, err := s.resolve(filepath.FromSlash(rel))
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) resolve(rel string) (string, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, filepath.Clean(string(filepath.Separator)+rel))
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return path, nil
}
