package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/domain"
)

// readUploads archivos del campo multipart indicado. Un cuerpo que no es multipart no trae archivos.
func readUploads(c *fiber.Ctx, field string) ([]usecase.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: formulario inválido", domain.ErrInvalidInput)
	}
	files := form.File[field]
	out := make([]usecase.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		out = append(out, usecase.Upload{Filename: fh.Filename, Data: data})
	}
	return out, nil
}
