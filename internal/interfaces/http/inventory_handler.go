package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler maneja entradas, salidas y el reporte de stock (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	stock  *inventory.StockReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, stock *inventory.StockReportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, stock: stock}
}

// CreateEntry godoc
// @Summary      Registrar entrada de inventario
// @Description  Suma stock y recalcula el costo promedio ponderado del producto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Producto, proveedor, cantidad y precio unitario"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.CreateEntry(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntries godoc
// @Summary      Listar entradas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/inventory/entries [get]
func (h *InventoryHandler) ListEntries(c *fiber.Ctx) error {
	out, err := h.ledger.ListEntries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetEntry godoc
// @Summary      Obtener entrada
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/entries/{id} [get]
func (h *InventoryHandler) GetEntry(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.ledger.GetEntry(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteEntry godoc
// @Summary      Eliminar entrada
// @Description  Recalcula stock y costo promedio; el stock puede quedar negativo.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/entries/{id} [delete]
func (h *InventoryHandler) DeleteEntry(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	if err := h.ledger.DeleteEntry(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada eliminada"})
}

// CreateExit godoc
// @Summary      Registrar salida de inventario
// @Description  Toma el costo promedio vigente como costo unitario de la salida.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExitRequest  true  "Producto, cantidad y motivo"
// @Success      201   {object}  dto.ExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) CreateExit(c *fiber.Ctx) error {
	var in dto.CreateExitRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.CreateExit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExits godoc
// @Summary      Listar salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExitResponse
// @Router       /api/inventory/exits [get]
func (h *InventoryHandler) ListExits(c *fiber.Ctx) error {
	out, err := h.ledger.ListExits(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetExit godoc
// @Summary      Obtener salida
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la salida"
// @Success      200  {object}  dto.ExitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/exits/{id} [get]
func (h *InventoryHandler) GetExit(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.ledger.GetExit(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteExit godoc
// @Summary      Eliminar salida
// @Description  Devuelve la cantidad al stock del producto.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  int  true  "ID de la salida"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/exits/{id} [delete]
func (h *InventoryHandler) DeleteExit(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	if err := h.ledger.DeleteExit(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "salida eliminada"})
}

// StockReport godoc
// @Summary      Reporte de stock valorizado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	out, err := h.stock.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportStock godoc
// @Summary      Exportar reporte de stock a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/inventory/stock/export [get]
func (h *InventoryHandler) ExportStock(c *fiber.Ctx) error {
	data, err := h.stock.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)
	return c.Send(data)
}
