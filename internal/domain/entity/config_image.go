package entity

import "time"

// ConfigImage imagen configurable del sitio agrupada por sección (gallery, hero, services, ...).
type ConfigImage struct {
	ID          string // uuid
	Section     string
	ImageURL    string
	Title       string
	Description string
	Active      bool
	CreatedAt   time.Time
}
