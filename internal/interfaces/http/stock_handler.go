package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/dto"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// StockHandler maneja entradas, traslados y el historial de transacciones.
type StockHandler struct {
	recorder *appstock.RecorderUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(recorder *appstock.RecorderUseCase) *StockHandler {
	return &StockHandler{recorder: recorder}
}

// StockIn godoc
// @Summary      Entrada de mercancía
// @Description  Registra la llegada de mercancía a la bodega central e incrementa
//
//	su inventario en la misma transacción de BD.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "product_id, location_id (warehouse), quantity, supplier_id"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.recorder.StockIn(c.Context(), GetActor(c), appstock.StockInInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		SupplierID: in.SupplierID,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// Transfer godoc
// @Summary      Traslado entre sedes
// @Description  Descuenta del origen y acredita al destino de forma atómica.
//
//	Falla con 409 si el origen no tiene stock suficiente.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.recorder.Transfer(c.Context(), GetActor(c), appstock.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// ListTransactions godoc
// @Summary      Historial de transacciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "filtrar por sede (origen o destino)"
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        type         query  string  false  "stock_in | transfer | adjustment | daily_usage | daily_usage_adjustment"
// @Param        start_date   query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "máx. resultados (default 20)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *StockHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.TransactionFilter{
		LocationID: c.Query("location_id"),
		ProductID:  c.Query("product_id"),
		Type:       c.Query("type"),
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
	// Staff solo consulta su sede.
	if actor := GetActor(c); !actor.CanActOnLocation(filter.LocationID) {
		filter.LocationID = actor.LocationID
	}

	list, total, err := h.recorder.ListTransactions(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, toTransactionResponse(tx))
	}
	return c.JSON(dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetTransaction godoc
// @Summary      Obtener transacción por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.StockTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *StockHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.recorder.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(tx))
}

func toTransactionResponse(tx *entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:             tx.ID,
		Type:           tx.Type,
		ProductID:      tx.ProductID,
		FromLocationID: tx.FromLocationID,
		ToLocationID:   tx.ToLocationID,
		Quantity:       tx.Quantity,
		SupplierID:     tx.SupplierID,
		ReferenceID:    tx.ReferenceID,
		Notes:          tx.Notes,
		CreatedBy:      tx.CreatedBy,
		CreatedAt:      tx.CreatedAt,
	}
}

// parseDateQuery lee un query param de fecha YYYY-MM-DD opcional.
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
