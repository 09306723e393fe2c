package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/jhoicas/operaciones-api/internal/application/usecase"
)

var _ usecase.ImageStore = (*GCSStore)(nil)

// GCSStore guarda en un bucket de Cloud Storage bajo <carpeta>/<uuid>.<ext>.
type GCSStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
	maxSide int
}

// NewGCSStore usa credentialsJSON si viene; si no, las credenciales por defecto del entorno.
// Sin baseURL las URLs públicas apuntan a storage.googleapis.com.
func NewGCSStore(ctx context.Context, bucket, credentialsJSON, baseURL string, maxSide int) (*GCSStore, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cliente GCS: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, baseURL: publicBaseURL(bucket, baseURL), maxSide: maxSide}, nil
}

func publicBaseURL(bucket, baseURL string) string {
	if baseURL == "" {
		return "https://storage.googleapis.com/" + bucket
	}
	return strings.TrimRight(baseURL, "/")
}

// objectKey clave del objeto para una URL pública de este bucket.
func objectKey(baseURL, url string) (string, bool) {
	key, ok := strings.CutPrefix(url, baseURL+"/")
	return key, ok && key != ""
}

func (s *GCSStore) Save(ctx context.Context, folder string, file usecase.Upload) (string, error) {
	img, err := prepareImage(file.Data, s.maxSide)
	if err != nil {
		return "", err
	}
	key := path.Join(folder, uuid.NewString()+img.ext)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = img.contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := w.Write(img.data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("subir %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("subir %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	key, ok := objectKey(s.baseURL, url)
	if !ok {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

// Close libera el cliente.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
