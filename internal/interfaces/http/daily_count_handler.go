package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/dto"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// DailyCountHandler maneja los conteos físicos diarios y su conciliación.
type DailyCountHandler struct {
	uc *appstock.DailyCountUseCase
}

// NewDailyCountHandler construye el handler.
func NewDailyCountHandler(uc *appstock.DailyCountUseCase) *DailyCountHandler {
	return &DailyCountHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar conteo diario
// @Description  Toma el stock registrado como cantidad inicial, calcula el consumo
//
//	(inicial - contado) y deja el inventario en la cantidad contada.
//	Un segundo conteo del mismo (producto, sede, fecha) devuelve 409.
//
// @Tags         daily-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordDailyCountRequest  true  "product_id, location_id, counted_quantity, count_date (opcional)"
// @Success      201   {object}  dto.DailyCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/daily-counts [post]
func (h *DailyCountHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordDailyCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var countDate time.Time
	if in.CountDate != "" {
		var err error
		countDate, err = time.Parse("2006-01-02", in.CountDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count_date inválida, formato YYYY-MM-DD"})
		}
	}
	count, err := h.uc.RecordCount(c.Context(), GetActor(c), appstock.RecordCountInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		CountDate:       countDate,
		CountedQuantity: in.CountedQuantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDailyCountResponse(count))
}

// Update godoc
// @Summary      Corregir conteo diario
// @Description  Sobreescribe la cantidad contada recalculando el consumo desde el
//
//	snapshot inicial original. El inventario queda en la nueva cantidad.
//
// @Tags         daily-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del conteo"
// @Param        body  body  dto.UpdateDailyCountRequest  true  "counted_quantity"
// @Success      200   {object}  dto.DailyCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/daily-counts/{id} [put]
func (h *DailyCountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDailyCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.UpdateCount(c.Context(), GetActor(c), c.Params("id"), in.CountedQuantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDailyCountResponse(count))
}

// List godoc
// @Summary      Listar conteos diarios
// @Tags         daily-counts
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        start_date   query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "máx. resultados (default 20)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.DailyCountListResponse
// @Router       /api/daily-counts [get]
func (h *DailyCountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.DailyCountFilter{
		LocationID: c.Query("location_id"),
		ProductID:  c.Query("product_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	var err error
	if filter.StartDate, err = parseDateQuery(c, "start_date"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida, formato YYYY-MM-DD"})
	}
	if filter.EndDate, err = parseDateQuery(c, "end_date"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida, formato YYYY-MM-DD"})
	}
	if actor := GetActor(c); !actor.CanActOnLocation(filter.LocationID) {
		filter.LocationID = actor.LocationID
	}

	list, total, err := h.uc.ListCounts(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DailyCountResponse, 0, len(list))
	for _, count := range list {
		items = append(items, toDailyCountResponse(count))
	}
	return c.JSON(dto.DailyCountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// UsageSummary godoc
// @Summary      Consumo agregado por producto
// @Tags         daily-counts
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede"
// @Param        start_date   query  string  false  "desde (YYYY-MM-DD, default hace 30 días)"
// @Param        end_date     query  string  false  "hasta (YYYY-MM-DD, default hoy)"
// @Success      200  {array}  dto.UsageSummaryResponse
// @Router       /api/daily-counts/usage-summary [get]
func (h *DailyCountHandler) UsageSummary(c *fiber.Ctx) error {
	startPtr, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida, formato YYYY-MM-DD"})
	}
	endPtr, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida, formato YYYY-MM-DD"})
	}
	end := domstock.DateOnly(time.Now())
	if endPtr != nil {
		end = *endPtr
	}
	start := end.AddDate(0, 0, -30)
	if startPtr != nil {
		start = *startPtr
	}

	locationID := c.Query("location_id")
	if actor := GetActor(c); !actor.CanActOnLocation(locationID) {
		locationID = actor.LocationID
	}

	rows, err := h.uc.UsageSummary(c.Context(), locationID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UsageSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UsageSummaryResponse{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			SKU:           r.SKU,
			TotalUsage:    r.TotalUsage,
			AvgDailyUsage: r.AvgDailyUsage,
			CountDays:     r.CountDays,
		})
	}
	return c.JSON(out)
}

func toDailyCountResponse(count *entity.DailyCount) dto.DailyCountResponse {
	return dto.DailyCountResponse{
		ID:              count.ID,
		ProductID:       count.ProductID,
		LocationID:      count.LocationID,
		CountDate:       count.CountDate.Format("2006-01-02"),
		OpeningQuantity: count.OpeningQuantity,
		CountedQuantity: count.CountedQuantity,
		CalculatedUsage: count.CalculatedUsage,
		CreatedBy:       count.CreatedBy,
		CreatedAt:       count.CreatedAt,
		UpdatedAt:       count.UpdatedAt,
	}
}
