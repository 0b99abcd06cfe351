// Package storage keeps uploaded files on the local disk.
package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ImagesFolder is the folder used for product photos
const ImagesFolder = "images"

// ErrInvalidFolder is returned for folder names that would leave the root
var ErrInvalidFolder = errors.New("invalid storage folder")

// FileStore saves and deletes files referenced by relative URLs
type FileStore interface {
	Save(ctx context.Context, content []byte, filename, folder string) (string, error)
	Delete(ctx context.Context, fileURL, folder string) error
}

// LocalStore writes files under Root/<folder>/ and returns "/<folder>/<name>"
type LocalStore struct {
	Root string
}

var _ FileStore = (*LocalStore)(nil)

// NewLocalStore creates a store rooted at root
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) folderPath(folder string) (string, error) {
	if folder == "" || strings.ContainsAny(folder, `/\`) || folder == "." || folder == ".." {
		return "", ErrInvalidFolder
	}
	return filepath.Join(s.Root, folder), nil
}

// Save stores content under a new random name keeping the extension of filename
func (s *LocalStore) Save(ctx context.Context, content []byte, filename, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := s.folderPath(folder)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create folder %s", folder)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", errors.Wrapf(err, "write file %s", name)
	}
	return path.Join("/", folder, name), nil
}

// Delete removes the file behind fileURL. Empty URLs and missing files are ignored.
func (s *LocalStore) Delete(ctx context.Context, fileURL, folder string) error {
	if fileURL == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := s.folderPath(folder)
	if err != nil {
		return err
	}
	name := path.Base(fileURL)
	if name == "/" || name == "." {
		return nil
	}
	target := filepath.Join(dir, name)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug("file already removed", zap.String("file", target))
			return nil
		}
		return errors.Wrapf(err, "remove file %s", name)
	}
	return nil
}
