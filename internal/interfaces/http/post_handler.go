package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
)

// PostHandler muro de publicaciones.
type PostHandler struct {
	uc *usecase.PostUseCase
}

// NewPostHandler construye el handler.
func NewPostHandler(uc *usecase.PostUseCase) *PostHandler {
	return &PostHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar post
// @Description  Formulario multipart; hasta 10 archivos en el campo images (jpeg, png o gif).
// @Tags         posts
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        userName  formData  string  true   "Autor"
// @Param        content   formData  string  true   "Texto"
// @Param        images    formData  file    false  "Imágenes"
// @Success      201  {object}  dto.PostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	files, err := readUploads(c, "images")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, files)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar posts
// @Tags         posts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PostResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener post
// @Tags         posts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del post"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar post
// @Tags         posts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del post"
// @Param        body  body  dto.UpdatePostRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [patch]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdatePostRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Like godoc
// @Summary      Dar like
// @Tags         posts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del post"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/like [patch]
func (h *PostHandler) Like(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.uc.Like(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Comment godoc
// @Summary      Sumar comentario
// @Tags         posts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del post"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id}/comment [patch]
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.uc.Comment(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar post
// @Tags         posts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del post"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	if err := h.uc.Remove(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "post eliminado"})
}
