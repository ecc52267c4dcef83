package stock_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Replican el contrato de la
// implementación postgres: Get devuelve nil sin error cuando no hay fila,
// GetForUpdate devuelve un registro en cero cuando el par nunca se movió.

func invKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type fakeInventoryRepo struct {
	rows map[string]*entity.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{rows: make(map[string]*entity.Inventory)}
}

func (r *fakeInventoryRepo) Get(_ context.Context, productID, locationID string) (*entity.Inventory, error) {
	inv, ok := r.rows[invKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(_ context.Context, productID, locationID string) (*entity.Inventory, error) {
	inv, ok := r.rows[invKey(productID, locationID)]
	if !ok {
		return &entity.Inventory{ProductID: productID, LocationID: locationID, Quantity: 0}, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	r.rows[invKey(inv.ProductID, inv.LocationID)] = &cp
	return nil
}

func (r *fakeInventoryRepo) List(_ context.Context, _ repository.InventoryFilter) ([]repository.InventoryItem, error) {
	items := make([]repository.InventoryItem, 0, len(r.rows))
	for _, inv := range r.rows {
		items = append(items, repository.InventoryItem{
			ProductID:  inv.ProductID,
			LocationID: inv.LocationID,
			Quantity:   inv.Quantity,
		})
	}
	return items, nil
}

// quantity lee la cantidad registrada; 0 si el par nunca se movió.
func (r *fakeInventoryRepo) quantity(productID, locationID string) int64 {
	if inv, ok := r.rows[invKey(productID, locationID)]; ok {
		return inv.Quantity
	}
	return 0
}

type fakeTransactionRepo struct {
	created []*entity.StockTransaction
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	cp := *tx
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*entity.StockTransaction, error) {
	for _, tx := range r.created {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.StockTransaction, int, error) {
	return r.created, len(r.created), nil
}

// ofType filtra las transacciones registradas por tipo.
func (r *fakeTransactionRepo) ofType(txType string) []*entity.StockTransaction {
	var out []*entity.StockTransaction
	for _, tx := range r.created {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

type fakeCountRepo struct {
	rows map[string]*entity.DailyCount // por ID
}

func newFakeCountRepo() *fakeCountRepo {
	return &fakeCountRepo{rows: make(map[string]*entity.DailyCount)}
}

func countKey(productID, locationID string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", productID, locationID, date.Format("2006-01-02"))
}

func (r *fakeCountRepo) Create(_ context.Context, count *entity.DailyCount) error {
	cp := *count
	r.rows[count.ID] = &cp
	return nil
}

func (r *fakeCountRepo) GetByID(_ context.Context, id string) (*entity.DailyCount, error) {
	count, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *count
	return &cp, nil
}

func (r *fakeCountRepo) GetByKey(_ context.Context, productID, locationID string, date time.Time) (*entity.DailyCount, error) {
	key := countKey(productID, locationID, date)
	for _, count := range r.rows {
		if countKey(count.ProductID, count.LocationID, count.CountDate) == key {
			cp := *count
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCountRepo) Update(_ context.Context, count *entity.DailyCount) error {
	existing, ok := r.rows[count.ID]
	if !ok {
		return fmt.Errorf("conteo %s no existe", count.ID)
	}
	existing.CountedQuantity = count.CountedQuantity
	existing.CalculatedUsage = count.CalculatedUsage
	existing.UpdatedAt = count.UpdatedAt
	return nil
}

func (r *fakeCountRepo) List(_ context.Context, _ repository.DailyCountFilter) ([]*entity.DailyCount, int, error) {
	out := make([]*entity.DailyCount, 0, len(r.rows))
	for _, count := range r.rows {
		cp := *count
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeCountRepo) UsageSummary(_ context.Context, _ string, _, _ time.Time) ([]repository.UsageSummaryRow, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn directamente contra los fakes, sin transacción real.
type fakeTxRunner struct {
	invRepo   *fakeInventoryRepo
	txRepo    *fakeTransactionRepo
	countRepo *fakeCountRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.StockTransactionRepository,
	countRepo repository.DailyCountRepository,
) error) error {
	return fn(r.invRepo, r.txRepo, r.countRepo)
}

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.rows[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.rows {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.rows[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(_ repository.ProductFilter) ([]*entity.Product, int, error) {
	out := make([]*entity.Product, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.rows, id)
	return nil
}

type fakeLocationRepo struct {
	rows map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(l *entity.Location) error {
	r.rows[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (r *fakeLocationRepo) Update(l *entity.Location) error {
	r.rows[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) ListActive() ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.rows {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) Deactivate(id string) error {
	if l, ok := r.rows[id]; ok {
		l.IsActive = false
	}
	return nil
}

type fakeSupplierRepo struct {
	rows map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	r.rows[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	r.rows[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	delete(r.rows, id)
	return nil
}

// fixture arma un escenario base: bodega central, tienda y un producto activo,
// con todos los fakes conectados a los casos de uso de stock.
type fixture struct {
	invRepo   *fakeInventoryRepo
	txRepo    *fakeTransactionRepo
	countRepo *fakeCountRepo
	products  *fakeProductRepo
	locations *fakeLocationRepo
	runner    *fakeTxRunner

	recorder *appstock.RecorderUseCase
	counts   *appstock.DailyCountUseCase
}

const (
	testProductID   = "prod-001"
	testWarehouseID = "loc-bodega"
	testStoreID     = "loc-tienda"
	testSupplierID  = "sup-001"
	testAdminID     = "user-admin"
)

func newFixture() *fixture {
	products := &fakeProductRepo{rows: map[string]*entity.Product{
		testProductID: {
			ID:           testProductID,
			SKU:          "CAF-250",
			Name:         "Café molido 250g",
			SupplierID:   testSupplierID,
			ReorderPoint: 10,
			UnitPrice:    decimal.NewFromFloat(15.50),
			IsActive:     true,
		},
	}}
	locations := &fakeLocationRepo{rows: map[string]*entity.Location{
		testWarehouseID: {ID: testWarehouseID, Name: "Bodega Central", Type: entity.LocationTypeWarehouse, IsActive: true},
		testStoreID:     {ID: testStoreID, Name: "Tienda Principal", Type: entity.LocationTypeStore, IsActive: true},
	}}
	suppliers := &fakeSupplierRepo{rows: map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, Name: "Distribuidora Norte"},
	}}

	invRepo := newFakeInventoryRepo()
	txRepo := &fakeTransactionRepo{}
	countRepo := newFakeCountRepo()
	runner := &fakeTxRunner{invRepo: invRepo, txRepo: txRepo, countRepo: countRepo}

	return &fixture{
		invRepo:   invRepo,
		txRepo:    txRepo,
		countRepo: countRepo,
		products:  products,
		locations: locations,
		runner:    runner,
		recorder:  appstock.NewRecorderUseCase(runner, products, locations, suppliers, txRepo),
		counts:    appstock.NewDailyCountUseCase(runner, products, locations, countRepo),
	}
}

func adminActor() appstock.Actor {
	return appstock.Actor{UserID: testAdminID, Role: entity.RoleAdmin}
}

func staffActor(locationID string) appstock.Actor {
	return appstock.Actor{UserID: "user-staff", Role: entity.RoleStaff, LocationID: locationID}
}
