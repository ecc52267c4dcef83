package dto

import "time"

// StockInRequest body para POST /api/stock-in (entrada en bodega central).
type StockInRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"` // debe ser una sede tipo warehouse
	Quantity   int64  `json:"quantity"`
	SupplierID string `json:"supplier_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/stock-transfer (bodega -> tienda).
type TransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// AdjustmentRequest body para POST /api/inventory/adjust.
// Fija la cantidad absoluta del registro; la transacción guarda el delta.
type AdjustmentRequest struct {
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	NewQuantity int64  `json:"new_quantity"`
	Reason      string `json:"reason,omitempty"`
}

// StockTransactionResponse representación HTTP de una transacción de stock.
type StockTransactionResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	ProductID      string    `json:"product_id"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   *string   `json:"to_location_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	SupplierID     *string   `json:"supplier_id,omitempty"`
	ReferenceID    *string   `json:"reference_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse historial paginado de transacciones.
type TransactionListResponse struct {
	Items []StockTransactionResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// InventoryItemResponse fila de inventario enriquecida para listados.
type InventoryItemResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
	ReorderPoint int64  `json:"reorder_point"`
	LowStock     bool   `json:"low_stock"`
}
