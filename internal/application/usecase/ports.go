package usecase

import "context"

// Upload archivo recibido en un formulario multipart.
type Upload struct {
	Filename string
	Data     []byte
}

// ImageStore guarda imágenes subidas y devuelve su URL pública. Delete recibe esa misma URL;
// una URL ajena o ya borrada no es error.
type ImageStore interface {
	Save(ctx context.Context, folder string, file Upload) (string, error)
	Delete(ctx context.Context, url string) error
}
