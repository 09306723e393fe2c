package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/operaciones-api/internal/application/usecase"
)

var _ usecase.ImageStore = (*DiskStore)(nil)

// DiskStore guarda en root/<carpeta>/<uuid>.<ext>; el servidor HTTP publica root bajo publicPath.
type DiskStore struct {
	root       string
	publicPath string
	maxSide    int
}

// NewDiskStore construye el store local. publicPath se normaliza a "/algo".
func NewDiskStore(root, publicPath string, maxSide int) *DiskStore {
	return &DiskStore{root: root, publicPath: "/" + strings.Trim(publicPath, "/"), maxSide: maxSide}
}

func (s *DiskStore) Save(_ context.Context, folder string, file usecase.Upload) (string, error) {
	img, err := prepareImage(file.Data, s.maxSide)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + img.ext
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), img.data, 0o644); err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	return path.Join(s.publicPath, folder, name), nil
}

// Delete ignora URLs fuera de publicPath y archivos que ya no existen.
func (s *DiskStore) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.publicPath+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}
