package dto

import "time"

// CreatePostRequest campos del formulario multipart; las imágenes van en el campo "images".
type CreatePostRequest struct {
	UserName string `json:"userName" form:"userName" validate:"required,max=100"`
	Content  string `json:"content" form:"content" validate:"required,max=1000"`
}

// UpdatePostRequest actualización parcial. Los contadores se pueden corregir a mano.
type UpdatePostRequest struct {
	Content  *string `json:"content" validate:"omitempty,max=1000"`
	Likes    *int    `json:"likes" validate:"omitempty,gte=0"`
	Comments *int    `json:"comments" validate:"omitempty,gte=0"`
}

// PostResponse salida de un post.
type PostResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	ImageURLs []string  `json:"imageUrls"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateConfigImageRequest campos del formulario; el archivo va en el campo "image".
type CreateConfigImageRequest struct {
	Section     string `json:"section" form:"section" validate:"required,max=50"`
	Title       string `json:"title" form:"title" validate:"omitempty,max=150"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500"`
}

// UpdateConfigImageRequest actualización parcial. La imagen no se reemplaza.
type UpdateConfigImageRequest struct {
	Section     *string `json:"section" validate:"omitempty,min=1,max=50"`
	Title       *string `json:"title" validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Active      *bool   `json:"isActive"`
}

// ConfigImageResponse salida de una imagen de configuración.
type ConfigImageResponse struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	ImageURL    string    `json:"imageUrl"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
