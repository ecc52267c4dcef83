package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
)

// ReportHandler maneja reportes de stock y sugerencias de compra.
type ReportHandler struct {
	reports    *analytics.ReportUseCase
	suggestion *appstock.SuggestionUseCase
	pdfGen     appstock.PurchaseOrderPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, suggestion *appstock.SuggestionUseCase, pdfGen appstock.PurchaseOrderPDFGenerator) *ReportHandler {
	return &ReportHandler{reports: reports, suggestion: suggestion, pdfGen: pdfGen}
}

// LowStock godoc
// @Summary      Productos bajo punto de reorden
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede (vacío = solo bodegas)"
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.Context(), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PurchaseSuggestions godoc
// @Summary      Sugerencias de compra
// @Description  Productos en o bajo punto de reorden agrupados por proveedor, con
//
//	cantidad sugerida y costo estimado. Mismo estado de inventario
//	produce siempre la misma salida.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede (vacío = solo bodegas)"
// @Success      200  {array}  dto.PurchaseSuggestionGroup
// @Router       /api/reports/purchase-suggestions [get]
func (h *ReportHandler) PurchaseSuggestions(c *fiber.Ctx) error {
	groups, err := h.suggestion.GeneratePurchaseSuggestions(c.Context(), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

// PurchaseOrderPDF godoc
// @Summary      Orden de compra sugerida en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        location_id  query  string  false  "filtrar por sede (vacío = solo bodegas)"
// @Success      200  {file}  binary
// @Router       /api/reports/purchase-order.pdf [get]
func (h *ReportHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.suggestion.RenderPurchaseOrderPDF(c.Context(), c.Query("location_id"), h.pdfGen)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("orden-compra-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// StockSummary godoc
// @Summary      Resumen de inventario por sede
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Success      200  {array}  dto.StockSummaryDTO
// @Router       /api/reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	out, err := h.reports.StockSummary(c.Context(), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UsageAnalysis godoc
// @Summary      Análisis de consumo por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        days         query  int     false  "ventana en días (default 30)"
// @Success      200  {array}  dto.UsageAnalysisDTO
// @Router       /api/reports/usage-analysis [get]
func (h *ReportHandler) UsageAnalysis(c *fiber.Ctx) error {
	out, err := h.reports.UsageAnalysis(c.Context(), c.Query("location_id"), c.QueryInt("days"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
