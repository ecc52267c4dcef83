package repository

import (
	"context"
	"time"

	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// DailyCountFilter criterios de consulta de conteos diarios.
type DailyCountFilter struct {
	LocationID string
	ProductID  string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// UsageSummaryRow consumo agregado por producto en un rango de fechas.
type UsageSummaryRow struct {
	ProductID     string
	ProductName   string
	SKU           string
	TotalUsage    int64
	AvgDailyUsage float64
	CountDays     int
}

// DailyCountRepository define el puerto de persistencia de conteos diarios.
type DailyCountRepository interface {
	Create(ctx context.Context, count *entity.DailyCount) error
	GetByID(ctx context.Context, id string) (*entity.DailyCount, error)
	// GetByKey busca el conteo único por (producto, sede, fecha).
	GetByKey(ctx context.Context, productID, locationID string, date time.Time) (*entity.DailyCount, error)
	Update(ctx context.Context, count *entity.DailyCount) error
	List(ctx context.Context, filter DailyCountFilter) ([]*entity.DailyCount, int, error)
	UsageSummary(ctx context.Context, locationID string, start, end time.Time) ([]UsageSummaryRow, error)
}
