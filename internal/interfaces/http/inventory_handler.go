package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	"github.com/jortega/stock-management-api/internal/application/dto"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/application/usecase"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// InventoryHandler maneja consultas de inventario y ajustes manuales.
type InventoryHandler struct {
	uc       *usecase.InventoryUseCase
	recorder *appstock.RecorderUseCase
	reports  *analytics.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, recorder *appstock.RecorderUseCase, reports *analytics.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, recorder: recorder, reports: reports}
}

// List godoc
// @Summary      Listar inventario
// @Description  Stock por producto y sede. Staff ve solo su sede asignada.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        search       query  string  false  "buscar por nombre/SKU"
// @Param        low_stock    query  bool    false  "solo filas en o bajo punto de reorden"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	// Staff queda anclado a su sede aunque pida otra.
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}
	items, err := h.uc.List(c.Context(), repository.InventoryFilter{
		LocationID: locationID,
		Search:     c.Query("search"),
		LowStock:   c.QueryBool("low_stock"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Summary godoc
// @Summary      Resumen de inventario por sede
// @Description  Totales de productos, unidades, bajo stock y valoración.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Success      200  {array}  dto.StockSummaryDTO
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}
	out, err := h.reports.StockSummary(c.Context(), locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock de un producto en una sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "ID del producto"
// @Param        location_id  path  string  true  "ID de la sede"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{product_id}/{location_id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":  inv.ProductID,
		"location_id": inv.LocationID,
		"quantity":    inv.Quantity,
		"updated_at":  inv.UpdatedAt,
	})
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Description  Fija la cantidad absoluta del registro (merma, daño, corrección).
//
//	La transacción guarda el delta con signo.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, location_id, new_quantity, reason"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.recorder.Adjust(c.Context(), GetActor(c), appstock.AdjustmentInput{
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}
