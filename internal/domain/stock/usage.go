package stock

import (
	"math"
	"time"
)

// Usage calcula el consumo inferido de un conteo físico:
// Consumo = StockInicial - StockContado. Un valor negativo indica que se contó
// más de lo registrado (error de conteo o entrada no registrada); no se corrige
// automáticamente, se persiste tal cual.
func Usage(opening, counted int64) int64 {
	return opening - counted
}

// SuggestedQuantity calcula la cantidad sugerida de compra para un producto
// bajo punto de reorden:
//
//	max(ReordenPoint - StockActual, round(ConsumoDiarioPromedio * DíasCobertura))
//
// Sin historial de consumo (avgDailyUsage = 0) queda la regla mínima
// ReorderPoint - StockActual. Nunca retorna un valor negativo.
func SuggestedQuantity(reorderPoint, current int64, avgDailyUsage float64, coverDays int) int64 {
	deficit := reorderPoint - current
	if deficit < 0 {
		deficit = 0
	}
	bySupply := int64(math.Round(avgDailyUsage * float64(coverDays)))
	if bySupply > deficit {
		return bySupply
	}
	return deficit
}

// BelowReorderPoint indica si un producto califica para sugerencia de compra.
// Un reorder point de 0 significa "sin reposición automática".
func BelowReorderPoint(quantity, reorderPoint int64) bool {
	return reorderPoint > 0 && quantity <= reorderPoint
}

// DateOnly normaliza un timestamp a fecha (UTC, medianoche). Si es cero usa hoy.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
