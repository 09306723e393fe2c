package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

const (
	postsTable        = "posts"
	configImagesTable = "config_images"
)

var (
	_ repository.PostRepository        = (*PostRepo)(nil)
	_ repository.ConfigImageRepository = (*ConfigImageRepo)(nil)
)

// ─── Posts ───────────────────────────────────────────────────────────────────

// PostRepo tabla posts. Las imágenes se guardan como TEXT[] con sus URLs.
type PostRepo struct {
	q Querier
}

// NewPostRepository construye el repositorio de posts.
func NewPostRepository(q Querier) *PostRepo {
	return &PostRepo{q: q}
}

type postRow struct {
	ID        int64     `db:"id_post"`
	UserName  string    `db:"nombre_usuario"`
	Content   string    `db:"contenido"`
	Likes     int       `db:"likes"`
	Comments  int       `db:"comentarios"`
	ImageURLs []string  `db:"imagenes"`
	CreatedAt time.Time `db:"fecha_creacion"`
}

func (r postRow) toEntity() *entity.Post {
	return &entity.Post{
		ID:        r.ID,
		UserName:  r.UserName,
		Content:   r.Content,
		Likes:     r.Likes,
		Comments:  r.Comments,
		ImageURLs: r.ImageURLs,
		CreatedAt: r.CreatedAt,
	}
}

const postReturning = "RETURNING id_post, nombre_usuario, contenido, likes, comentarios, imagenes, fecha_creacion"

func selectPosts() squirrel.SelectBuilder {
	return psql.Select("id_post", "nombre_usuario", "contenido", "likes", "comentarios", "imagenes", "fecha_creacion").
		From(postsTable)
}

func (r *PostRepo) Create(ctx context.Context, p *entity.Post) error {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	sql, args, err := psql.Insert(postsTable).
		Columns("nombre_usuario", "contenido", "likes", "comentarios", "imagenes").
		Values(p.UserName, p.Content, p.Likes, p.Comments, urls).
		Suffix("RETURNING id_post, fecha_creacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert post: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	sql, args, err := selectPosts().Where(squirrel.Eq{"id_post": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post: %w", err)
	}
	return r.getOne(ctx, sql, args)
}

func (r *PostRepo) List(ctx context.Context) ([]*entity.Post, error) {
	sql, args, err := selectPosts().OrderBy("fecha_creacion DESC", "id_post DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts: %w", err)
	}
	var rows []postRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	out := make([]*entity.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *PostRepo) Update(ctx context.Context, p *entity.Post) error {
	sql, args, err := psql.Update(postsTable).
		Set("contenido", p.Content).
		Set("likes", p.Likes).
		Set("comentarios", p.Comments).
		Where(squirrel.Eq{"id_post": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update post: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// AddLike incrementa en la misma sentencia; dos likes concurrentes no se pisan.
func (r *PostRepo) AddLike(ctx context.Context, id int64) (*entity.Post, error) {
	return r.increment(ctx, id, "likes")
}

func (r *PostRepo) AddComment(ctx context.Context, id int64) (*entity.Post, error) {
	return r.increment(ctx, id, "comentarios")
}

func buildIncrementPostQuery(id int64, column string) (string, []any, error) {
	return psql.Update(postsTable).
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"id_post": id}).
		Suffix(postReturning).
		ToSql()
}

func (r *PostRepo) increment(ctx context.Context, id int64, column string) (*entity.Post, error) {
	sql, args, err := buildIncrementPostQuery(id, column)
	if err != nil {
		return nil, fmt.Errorf("build increment %s: %w", column, err)
	}
	return r.getOne(ctx, sql, args)
}

func (r *PostRepo) getOne(ctx context.Context, sql string, args []any) (*entity.Post, error) {
	var row postRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return row.toEntity(), nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(postsTable).Where(squirrel.Eq{"id_post": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete post: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ─── Imágenes de configuración ───────────────────────────────────────────────

// ConfigImageRepo tabla config_images.
type ConfigImageRepo struct {
	q Querier
}

// NewConfigImageRepository construye el repositorio.
func NewConfigImageRepository(q Querier) *ConfigImageRepo {
	return &ConfigImageRepo{q: q}
}

type configImageRow struct {
	ID          string    `db:"id"`
	Section     string    `db:"seccion"`
	ImageURL    string    `db:"url_imagen"`
	Title       string    `db:"titulo"`
	Description string    `db:"descripcion"`
	Active      bool      `db:"activo"`
	CreatedAt   time.Time `db:"fecha_creacion"`
}

func (r configImageRow) toEntity() *entity.ConfigImage {
	return &entity.ConfigImage{
		ID:          r.ID,
		Section:     r.Section,
		ImageURL:    r.ImageURL,
		Title:       r.Title,
		Description: r.Description,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
}

func selectConfigImages() squirrel.SelectBuilder {
	return psql.Select("id::text AS id", "seccion", "url_imagen", "titulo", "descripcion", "activo", "fecha_creacion").
		From(configImagesTable)
}

func (r *ConfigImageRepo) Create(ctx context.Context, img *entity.ConfigImage) error {
	sql, args, err := psql.Insert(configImagesTable).
		Columns("seccion", "url_imagen", "titulo", "descripcion", "activo").
		Values(img.Section, img.ImageURL, img.Title, img.Description, img.Active).
		Suffix("RETURNING id::text, fecha_creacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert config image: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&img.ID, &img.CreatedAt); err != nil {
		return fmt.Errorf("insert config image: %w", err)
	}
	return nil
}

func (r *ConfigImageRepo) GetByID(ctx context.Context, id string) (*entity.ConfigImage, error) {
	sql, args, err := selectConfigImages().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get config image: %w", err)
	}
	var row configImageRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config image: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ConfigImageRepo) List(ctx context.Context) ([]*entity.ConfigImage, error) {
	return r.list(ctx, "")
}

func (r *ConfigImageRepo) ListActiveBySection(ctx context.Context, section string) ([]*entity.ConfigImage, error) {
	return r.list(ctx, section)
}

// buildConfigImagesQuery sin sección lista todas; con sección sólo las activas de esa sección.
func buildConfigImagesQuery(section string) (string, []any, error) {
	q := selectConfigImages()
	if section != "" {
		q = q.Where(squirrel.Eq{"seccion": section, "activo": true})
	}
	return q.OrderBy("fecha_creacion DESC").ToSql()
}

func (r *ConfigImageRepo) list(ctx context.Context, section string) ([]*entity.ConfigImage, error) {
	sql, args, err := buildConfigImagesQuery(section)
	if err != nil {
		return nil, fmt.Errorf("build list config images: %w", err)
	}
	var rows []configImageRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list config images: %w", err)
	}
	out := make([]*entity.ConfigImage, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *ConfigImageRepo) Update(ctx context.Context, img *entity.ConfigImage) error {
	sql, args, err := psql.Update(configImagesTable).
		SetMap(map[string]any{
			"seccion":     img.Section,
			"titulo":      img.Title,
			"descripcion": img.Description,
			"activo":      img.Active,
		}).
		Where(squirrel.Eq{"id": img.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update config image: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update config image: %w", err)
	}
	return nil
}

func (r *ConfigImageRepo) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete(configImagesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete config image: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete config image: %w", err)
	}
	return nil
}
