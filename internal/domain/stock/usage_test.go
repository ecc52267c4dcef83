package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jortega/stock-management-api/internal/domain/stock"
)

// Consumo = inicial - contado, para todo par de entradas válidas.
func TestUsage_InicialMenosContado(t *testing.T) {
	assert.Equal(t, int64(5), stock.Usage(20, 15), "inicial 20, contado 15 => consumo 5")
	assert.Equal(t, int64(0), stock.Usage(10, 10), "sin diferencia => consumo 0")
}

// Contar más de lo registrado produce consumo negativo; se persiste sin error.
func TestUsage_ContadoMayorQueInicial_EsNegativo(t *testing.T) {
	assert.Equal(t, int64(-5), stock.Usage(20, 25),
		"contado 25 sobre inicial 20 => consumo -5 (entrada no registrada o error de conteo)")
}

// Regla mínima sin historial: reorden - stock actual.
func TestSuggestedQuantity_SinHistorial(t *testing.T) {
	got := stock.SuggestedQuantity(10, 4, 0, 30)
	assert.Equal(t, int64(6), got, "reorden 10, stock 4, sin consumo => sugerido 6")
}

// Con historial de consumo alto, manda la cobertura de días.
func TestSuggestedQuantity_ConHistorialDominaCobertura(t *testing.T) {
	got := stock.SuggestedQuantity(10, 4, 2.5, 30)
	assert.Equal(t, int64(75), got, "2.5/día * 30 días = 75 > déficit 6")
}

// Nunca sugiere cantidades negativas aunque el stock supere el reorden.
func TestSuggestedQuantity_NuncaNegativa(t *testing.T) {
	got := stock.SuggestedQuantity(10, 50, 0, 30)
	assert.Equal(t, int64(0), got)
}

func TestBelowReorderPoint(t *testing.T) {
	assert.True(t, stock.BelowReorderPoint(4, 10))
	assert.True(t, stock.BelowReorderPoint(10, 10), "igual al reorden también califica")
	assert.False(t, stock.BelowReorderPoint(11, 10))
	assert.False(t, stock.BelowReorderPoint(0, 0), "reorden 0 = sin reposición automática")
}

// La fecha de conteo se normaliza a medianoche UTC; un cero usa hoy.
func TestDateOnly(t *testing.T) {
	got := stock.DateOnly(time.Date(2026, 8, 30, 14, 35, 12, 999, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	hoy := stock.DateOnly(time.Time{})
	assert.False(t, hoy.IsZero())
	assert.Equal(t, 0, hoy.Hour())
}
