package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ repository.PostRepository        = (*PostRepo)(nil)
	_ repository.ConfigImageRepository = (*ConfigImageRepo)(nil)
)

// PostRepo publicaciones en memoria.
type PostRepo struct{ s *Store }

// Posts repositorio de publicaciones.
func (s *Store) Posts() *PostRepo { return &PostRepo{s: s} }

func copyPost(p entity.Post) *entity.Post {
	p.ImageURLs = append([]string{}, p.ImageURLs...)
	return &p
}

func (r *PostRepo) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("post.create"); err != nil {
		return err
	}
	p.ID = r.s.nextID()
	p.CreatedAt = time.Now()
	r.s.st.posts[p.ID] = *copyPost(*p)
	return nil
}

func (r *PostRepo) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(p), nil
}

func (r *PostRepo) List(_ context.Context) ([]*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Post, 0, len(r.s.st.posts))
	for _, p := range r.s.st.posts {
		out = append(out, copyPost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *PostRepo) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.st.posts[p.ID]; ok {
		cur.Content, cur.Likes, cur.Comments = p.Content, p.Likes, p.Comments
		r.s.st.posts[p.ID] = cur
	}
	return nil
}

func (r *PostRepo) AddLike(_ context.Context, id int64) (*entity.Post, error) {
	return r.bump(id, func(p *entity.Post) { p.Likes++ })
}

func (r *PostRepo) AddComment(_ context.Context, id int64) (*entity.Post, error) {
	return r.bump(id, func(p *entity.Post) { p.Comments++ })
}

func (r *PostRepo) bump(id int64, fn func(*entity.Post)) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.posts[id]
	if !ok {
		return nil, nil
	}
	fn(&p)
	r.s.st.posts[id] = p
	return copyPost(p), nil
}

func (r *PostRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.posts, id)
	return nil
}

// imageRow guarda el orden de inserción para desempatar fechas iguales.
type imageRow struct {
	entity.ConfigImage
	seq int64
}

// ConfigImageRepo imágenes de configuración en memoria.
type ConfigImageRepo struct{ s *Store }

// ConfigImages repositorio de imágenes de configuración.
func (s *Store) ConfigImages() *ConfigImageRepo { return &ConfigImageRepo{s: s} }

func (r *ConfigImageRepo) Create(_ context.Context, img *entity.ConfigImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("config_image.create"); err != nil {
		return err
	}
	img.ID = uuid.NewString()
	img.CreatedAt = time.Now()
	r.s.st.images[img.ID] = imageRow{ConfigImage: *img, seq: r.s.nextID()}
	return nil
}

func (r *ConfigImageRepo) GetByID(_ context.Context, id string) (*entity.ConfigImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.st.images[id]
	if !ok {
		return nil, nil
	}
	img := row.ConfigImage
	return &img, nil
}

func (r *ConfigImageRepo) List(_ context.Context) ([]*entity.ConfigImage, error) {
	return r.filter(func(*entity.ConfigImage) bool { return true }), nil
}

func (r *ConfigImageRepo) ListActiveBySection(_ context.Context, section string) ([]*entity.ConfigImage, error) {
	return r.filter(func(img *entity.ConfigImage) bool { return img.Active && img.Section == section }), nil
}

// filter más recientes primero.
func (r *ConfigImageRepo) filter(keep func(*entity.ConfigImage) bool) []*entity.ConfigImage {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]imageRow, 0, len(r.s.st.images))
	for _, row := range r.s.st.images {
		if keep(&row.ConfigImage) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.ConfigImage, 0, len(rows))
	for _, row := range rows {
		img := row.ConfigImage
		out = append(out, &img)
	}
	return out
}

func (r *ConfigImageRepo) Update(_ context.Context, img *entity.ConfigImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if row, ok := r.s.st.images[img.ID]; ok {
		row.ConfigImage = *img
		r.s.st.images[img.ID] = row
	}
	return nil
}

func (r *ConfigImageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.images, id)
	return nil
}
