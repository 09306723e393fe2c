package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
)

// ConfigImageHandler imágenes configurables del sitio. La lectura es pública.
type ConfigImageHandler struct {
	uc *usecase.ConfigImageUseCase
}

// NewConfigImageHandler construye el handler.
func NewConfigImageHandler(uc *usecase.ConfigImageUseCase) *ConfigImageHandler {
	return &ConfigImageHandler{uc: uc}
}

// Create godoc
// @Summary      Subir imagen de configuración
// @Tags         configuration
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        section      formData  string  true   "Sección (hero, gallery, services...)"
// @Param        title        formData  string  false  "Título"
// @Param        description  formData  string  false  "Descripción"
// @Param        image        formData  file    true   "Imagen"
// @Success      201  {object}  dto.ConfigImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/configuration/images [post]
func (h *ConfigImageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConfigImageRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	files, err := readUploads(c, "image")
	if err != nil {
		return writeError(c, err)
	}
	var file *usecase.Upload
	if len(files) > 0 {
		file = &files[0]
	}
	out, err := h.uc.Create(c.UserContext(), in, file)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar todas las imágenes
// @Tags         configuration
// @Produce      json
// @Success      200  {array}  dto.ConfigImageResponse
// @Router       /api/configuration/images [get]
func (h *ConfigImageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBySection godoc
// @Summary      Imágenes activas de una sección
// @Tags         configuration
// @Produce      json
// @Param        section  path  string  true  "Sección"
// @Success      200  {array}  dto.ConfigImageResponse
// @Router       /api/configuration/images/{section} [get]
func (h *ConfigImageHandler) ListBySection(c *fiber.Ctx) error {
	out, err := h.uc.ListBySection(c.UserContext(), c.Params("section"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar imagen de configuración
// @Tags         configuration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "UUID de la imagen"
// @Param        body  body  dto.UpdateConfigImageRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ConfigImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/configuration/images/{id} [patch]
func (h *ConfigImageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConfigImageRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar imagen de configuración
// @Tags         configuration
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "UUID de la imagen"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/configuration/images/{id} [delete]
func (h *ConfigImageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "imagen eliminada"})
}
