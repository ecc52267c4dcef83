package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/analytics"
)

// DashboardHandler métricas combinadas del panel principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  Totales por sede, serie de consumo de 7 días y top de productos,
//
//	consultados en paralelo y cacheados por sede.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Success      200  {object}  analytics.DashboardSummary
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}
	out, err := h.uc.Summary(c.Context(), locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UsageTrend godoc
// @Summary      Serie diaria de consumo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        days         query  int     false  "días de la serie (default 7)"
// @Success      200  {array}  dto.UsageTrendPointDTO
// @Router       /api/dashboard/usage-trend [get]
func (h *DashboardHandler) UsageTrend(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}
	out, err := h.uc.UsageTrend(c.Context(), locationID, c.QueryInt("days"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con mayor consumo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        days         query  int     false  "ventana en días (default 30)"
// @Param        limit        query  int     false  "máx. resultados (default 5)"
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}
	out, err := h.uc.TopProducts(c.Context(), locationID, c.QueryInt("days"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
