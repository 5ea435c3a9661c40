package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-metallurg/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	s := storage.NewLocalStorage(root)
	ctx := context.Background()

	f, err := s.Save(ctx, "techcards", "Drawing.PDF", strings.NewReader("%PDF-1.4 body"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.URL, "/uploads/techcards/"))
	assert.True(t, strings.HasSuffix(f.Name, ".pdf"))
	assert.Equal(t, int64(len("%PDF-1.4 body")), f.Size)

	diskPath := filepath.Join(root, "techcards", f.Name)
	data, err := os.ReadFile(diskPath)
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))

	assert.NoError(t, s.Remove(ctx, f.URL))
	_, err = os.Stat(diskPath)
	assert.True(t, os.IsNotExist(err))

	// second remove is a no-op
	assert.NoError(t, s.Remove(ctx, f.URL))
}

func TestLocalStorage_RemoveRejectsForeignURL(t *testing.T) {
	s := storage.NewLocalStorage(t.TempDir())

	assert.ErrorIs(t, s.Remove(context.Background(), "https://cdn.example.com/x.pdf"), storage.ErrOutsideRoot)
	assert.ErrorIs(t, s.Remove(context.Background(), "/uploads/"), storage.ErrOutsideRoot)
}

func TestLocalStorage_TraversalStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s := storage.NewLocalStorage(root)

	f, err := s.Save(context.Background(), "../../etc", "x.pdf", strings.NewReader("x"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "etc", f.Name))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/etc/"+f.Name, f.URL)
}
