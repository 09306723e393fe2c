package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

// fakeImages guarda URLs en memoria; failAt hace fallar el n-ésimo Save (1 = el primero).
type fakeImages struct {
	saved   []string
	deleted []string
	failAt  int
}

func (f *fakeImages) Save(_ context.Context, folder string, file usecase.Upload) (string, error) {
	if f.failAt > 0 && len(f.saved)+1 == f.failAt {
		return "", fmt.Errorf("%w: tipo no soportado", domain.ErrInvalidInput)
	}
	url := fmt.Sprintf("/uploads/%s/%d-%s", folder, len(f.saved)+1, file.Filename)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func img(name string) usecase.Upload {
	return usecase.Upload{Filename: name, Data: []byte("contenido")}
}

func newPosts() (*usecase.PostUseCase, *fakeImages, *memory.Store) {
	s := memory.NewStore()
	images := &fakeImages{}
	return usecase.NewPostUseCase(s.Posts(), images, logger.NewWriter(io.Discard, "info")), images, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Posts
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_CrearConImagenes(t *testing.T) {
	uc, images, _ := newPosts()
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: "Cambio de aceite listo"},
		[]usecase.Upload{img("a.jpg"), img("b.png")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/posts/1-a.jpg", "/uploads/posts/2-b.png"}, p.ImageURLs)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Comments)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Empty(t, images.deleted)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ImageURLs, got.ImageURLs)
}

func TestPost_SinImagenesDevuelveListaVacia(t *testing.T) {
	uc, _, _ := newPosts()
	p, err := uc.Create(context.Background(), dto.CreatePostRequest{UserName: "Ana", Content: "Hola"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, p.ImageURLs)
	assert.Empty(t, p.ImageURLs)
}

func TestPost_DemasiadasImagenes(t *testing.T) {
	uc, images, _ := newPosts()
	files := make([]usecase.Upload, usecase.MaxPostImages+1)
	_, err := uc.Create(context.Background(), dto.CreatePostRequest{UserName: "Ana", Content: "x"}, files)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, images.saved)
}

func TestPost_FalloAlGuardarImagenBorraLasAnteriores(t *testing.T) {
	uc, images, _ := newPosts()
	images.failAt = 2
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: "x"},
		[]usecase.Upload{img("a.jpg"), img("b.txt")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, images.saved, images.deleted)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPost_FalloDelRepoBorraImagenes(t *testing.T) {
	uc, images, s := newPosts()
	s.FailOn("post.create", errors.New("db caída"))

	_, err := uc.Create(context.Background(), dto.CreatePostRequest{UserName: "Ana", Content: "x"},
		[]usecase.Upload{img("a.jpg")})
	assert.Error(t, err)
	assert.Equal(t, []string{"/uploads/posts/1-a.jpg"}, images.deleted)
}

func TestPost_ListaMasRecientesPrimero(t *testing.T) {
	uc, _, _ := newPosts()
	ctx := context.Background()
	for _, c := range []string{"uno", "dos", "tres"} {
		_, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: c}, nil)
		require.NoError(t, err)
	}
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tres", list[0].Content)
	assert.Equal(t, "uno", list[2].Content)
}

func TestPost_LikeYComentarioIncrementan(t *testing.T) {
	uc, _, _ := newPosts()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: "x"}, nil)
	require.NoError(t, err)

	_, err = uc.Like(ctx, p.ID)
	require.NoError(t, err)
	got, err := uc.Like(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)

	got, err = uc.Comment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Comments)
	assert.Equal(t, 2, got.Likes)

	_, err = uc.Like(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Comment(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_ActualizarParcial(t *testing.T) {
	uc, _, _ := newPosts()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: "antes"}, []usecase.Upload{img("a.jpg")})
	require.NoError(t, err)

	got, err := uc.Update(ctx, p.ID, dto.UpdatePostRequest{Content: ptr("después"), Likes: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "después", got.Content)
	assert.Equal(t, 5, got.Likes)
	assert.Zero(t, got.Comments)
	assert.Equal(t, p.ImageURLs, got.ImageURLs)

	_, err = uc.Update(ctx, 999, dto.UpdatePostRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_EliminarBorraImagenes(t *testing.T) {
	uc, images, _ := newPosts()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreatePostRequest{UserName: "Ana", Content: "x"}, []usecase.Upload{img("a.jpg"), img("b.jpg")})
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, p.ID))
	assert.Equal(t, p.ImageURLs, images.deleted)
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Remove(ctx, p.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Imágenes de configuración
// ──────────────────────────────────────────────────────────────────────────────

func newConfigImages() (*usecase.ConfigImageUseCase, *fakeImages, *memory.Store) {
	s := memory.NewStore()
	images := &fakeImages{}
	return usecase.NewConfigImageUseCase(s.ConfigImages(), images, logger.NewWriter(io.Discard, "info")), images, s
}

func TestConfigImage_CrearRequiereArchivo(t *testing.T) {
	uc, images, _ := newConfigImages()
	_, err := uc.Create(context.Background(), dto.CreateConfigImageRequest{Section: "hero"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, images.saved)
}

func TestConfigImage_PorSeccionSoloActivasRecientesPrimero(t *testing.T) {
	uc, _, _ := newConfigImages()
	ctx := context.Background()
	mk := func(section, name string) *dto.ConfigImageResponse {
		f := img(name)
		out, err := uc.Create(ctx, dto.CreateConfigImageRequest{Section: section, Title: name}, &f)
		require.NoError(t, err)
		return out
	}
	h1 := mk("hero", "h1.jpg")
	h2 := mk("hero", "h2.jpg")
	mk("gallery", "g1.jpg")
	assert.True(t, h1.Active)
	assert.Equal(t, "/uploads/config/1-h1.jpg", h1.ImageURL)

	_, err := uc.Update(ctx, h1.ID, dto.UpdateConfigImageRequest{Active: ptr(false)})
	require.NoError(t, err)

	hero, err := uc.ListBySection(ctx, "hero")
	require.NoError(t, err)
	require.Len(t, hero, 1)
	assert.Equal(t, h2.ID, hero[0].ID)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	empty, err := uc.ListBySection(ctx, "services")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestConfigImage_ActualizarYEliminar(t *testing.T) {
	uc, images, _ := newConfigImages()
	ctx := context.Background()
	f := img("h.jpg")
	created, err := uc.Create(ctx, dto.CreateConfigImageRequest{Section: "hero"}, &f)
	require.NoError(t, err)

	got, err := uc.Update(ctx, created.ID, dto.UpdateConfigImageRequest{Section: ptr("gallery"), Title: ptr("Taller")})
	require.NoError(t, err)
	assert.Equal(t, "gallery", got.Section)
	assert.Equal(t, "Taller", got.Title)
	assert.Equal(t, created.ImageURL, got.ImageURL)

	require.NoError(t, uc.Remove(ctx, created.ID))
	assert.Equal(t, []string{created.ImageURL}, images.deleted)
	assert.ErrorIs(t, uc.Remove(ctx, created.ID), domain.ErrNotFound)
}

func TestConfigImage_IdNoUUID(t *testing.T) {
	uc, _, _ := newConfigImages()
	_, err := uc.Update(context.Background(), "abc", dto.UpdateConfigImageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigImage_FalloDelRepoBorraArchivo(t *testing.T) {
	uc, images, s := newConfigImages()
	s.FailOn("config_image.create", errors.New("db caída"))
	f := img("h.jpg")
	_, err := uc.Create(context.Background(), dto.CreateConfigImageRequest{Section: "hero"}, &f)
	assert.Error(t, err)
	assert.Equal(t, images.saved, images.deleted)
}
