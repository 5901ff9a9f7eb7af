package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/application/inventory"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// RequestHandler maneja las solicitudes de entrada y salida de stock.
type RequestHandler struct {
	uc  *inventory.StockRequestUseCase
	log *logger.Logger
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *inventory.StockRequestUseCase, log *logger.Logger) *RequestHandler {
	return &RequestHandler{uc: uc, log: log}
}

// ListAll godoc
// @Summary      Listar todas las solicitudes (admin)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Listar mis solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockRequestResponse
// @Router       /api/requests/my [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateStockIn godoc
// @Summary      Solicitar entrada de stock (staff)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequestRequest  true  "productId, quantity"
// @Success      201   {object}  dto.StockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/stockin [post]
func (h *RequestHandler) CreateStockIn(c *fiber.Ctx) error {
	return h.create(c, entity.RequestTypeStockIn)
}

// CreateStockOut godoc
// @Summary      Solicitar salida de stock (staff)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequestRequest  true  "productId, quantity"
// @Success      201   {object}  dto.StockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/stockout [post]
func (h *RequestHandler) CreateStockOut(c *fiber.Ctx) error {
	return h.create(c, entity.RequestTypeStockOut)
}

func (h *RequestHandler) create(c *fiber.Ctx, t entity.RequestType) error {
	var in dto.CreateStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return validation(c, "productId and a positive quantity are required")
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), t, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar una solicitud pendiente propia
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStockRequestRequest  true  "productId y/o quantity"
// @Success      200   {object}  dto.StockRequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar una solicitud (admin)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStatusRequest  true  "approved | rejected"
// @Success      200   {object}  dto.StockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	status := entity.RequestStatus(in.Status)
	if !status.IsTerminal() {
		return validation(c, "status must be approved or rejected")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), actorFrom(c), c.Params("id"), status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar una solicitud pendiente
// @Tags         requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
