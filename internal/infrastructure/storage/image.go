// Package storage guarda las imágenes subidas en disco local o en Google Cloud Storage.
package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/operaciones-api/internal/domain"
)

// MaxUploadBytes tamaño máximo de un archivo subido.
const MaxUploadBytes = 5 << 20

// imaging no decodifica webp.
var allowedImages = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type preparedImage struct {
	data        []byte
	ext         string
	contentType string
}

// prepareImage detecta el tipo por contenido, no por nombre, y comprueba que decodifique.
// Si el lado mayor supera maxSide la imagen se reduce conservando la proporción.
func prepareImage(data []byte, maxSide int) (*preparedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: la imagen supera %d MB", domain.ErrInvalidInput, MaxUploadBytes>>20)
	}
	mt := mimetype.Detect(data)
	if !allowedImages[mt.String()] {
		return nil, fmt.Errorf("%w: tipo %s no soportado", domain.ErrInvalidInput, mt.String())
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: imagen ilegible", domain.ErrInvalidInput)
	}

	out := &preparedImage{data: data, ext: mt.Extension(), contentType: mt.String()}
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return out, nil
	}
	format, err := imaging.FormatFromExtension(out.ext)
	if err != nil {
		return nil, fmt.Errorf("formato %s: %w", out.ext, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, maxSide, maxSide, imaging.Lanczos), format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("reducir imagen: %w", err)
	}
	out.data = buf.Bytes()
	return out, nil
}
