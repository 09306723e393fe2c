package entity

import "time"

// Post publicación del muro interno. Likes y Comments son contadores; los comentarios no se guardan.
type Post struct {
	ID        int64
	UserName  string
	Content   string
	Likes     int
	Comments  int
	ImageURLs []string
	CreatedAt time.Time
}
