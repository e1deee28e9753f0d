package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

func newTestService(t *testing.T) (Service, *Store) {
	t.Helper()
	svc := NewService(NewStoreMemoryRepository(), NewProductMemoryRepository())
	store, err := svc.CreateStore(context.Background(), CreateStoreRequest{
		Name:    "Bodega Central",
		Address: "456 Oak Ave",
	})
	require.NoError(t, err)
	return svc, store
}

func seedProduct(t *testing.T, svc Service, storeID, name string, price float64, stock int) *Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), storeID, CreateProductRequest{
		Name: name, Price: price, Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, store := newTestService(t)

	tests := []struct {
		name string
		req  CreateProductRequest
	}{
		{name: "empty name", req: CreateProductRequest{Name: "", Price: 2, Stock: 5}},
		{name: "zero price", req: CreateProductRequest{Name: "Water", Price: 0, Stock: 5}},
		{name: "negative price", req: CreateProductRequest{Name: "Water", Price: -1, Stock: 5}},
		{name: "negative stock", req: CreateProductRequest{Name: "Water", Price: 2, Stock: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), store.ID, tc.req)
			assert.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestCreateProduct_UnknownStore(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateProduct(context.Background(), "missing", CreateProductRequest{
		Name: "Water", Price: 2, Stock: 5,
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetStock(t *testing.T) {
	svc, store := newTestService(t)
	p := seedProduct(t, svc, store.ID, "Chips", 3.5, 25)

	updated, err := svc.SetStock(context.Background(), store.ID, p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	_, err = svc.SetStock(context.Background(), store.ID, p.ID, -1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.SetStock(context.Background(), store.ID, "missing", 3)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetStock_WrongStore(t *testing.T) {
	svc, store := newTestService(t)
	other, err := svc.CreateStore(context.Background(), CreateStoreRequest{Name: "Pizza Nova"})
	require.NoError(t, err)
	p := seedProduct(t, svc, store.ID, "Water 500ml", 2, 50)

	_, err = svc.SetStock(context.Background(), other.ID, p.ID, 3)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToggleOpen(t *testing.T) {
	svc, store := newTestService(t)
	assert.True(t, store.IsOpen)

	toggled, err := svc.ToggleOpen(context.Background(), store.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsOpen)

	toggled, err = svc.ToggleOpen(context.Background(), store.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsOpen)
}

func TestGetStore_IncludesProducts(t *testing.T) {
	svc, store := newTestService(t)
	seedProduct(t, svc, store.ID, "Water 500ml", 2, 50)
	seedProduct(t, svc, store.ID, "Chips", 3.5, 25)

	got, err := svc.GetStore(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 2)

	_, err = svc.GetStore(context.Background(), "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReserve_DecrementsAllLines(t *testing.T) {
	svc, store := newTestService(t)
	water := seedProduct(t, svc, store.ID, "Water 500ml", 2, 50)
	chips := seedProduct(t, svc, store.ID, "Chips", 3.5, 25)

	snaps, err := svc.Reserve(context.Background(), []Line{
		{ProductID: water.ID, Qty: 10},
		{ProductID: chips.ID, Qty: 5},
	})
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 2.0, snaps[0].Price)
	assert.Equal(t, 3.5, snaps[1].Price)

	w, _ := svc.GetProduct(context.Background(), water.ID)
	c, _ := svc.GetProduct(context.Background(), chips.ID)
	assert.Equal(t, 40, w.Stock)
	assert.Equal(t, 20, c.Stock)
}

func TestReserve_AllOrNothing(t *testing.T) {
	svc, store := newTestService(t)
	water := seedProduct(t, svc, store.ID, "Water 500ml", 2, 50)
	chips := seedProduct(t, svc, store.ID, "Chips", 3.5, 3)

	_, err := svc.Reserve(context.Background(), []Line{
		{ProductID: water.ID, Qty: 10},
		{ProductID: chips.ID, Qty: 5}, // short by 2
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Chips")

	// Neither line may have been debited.
	w, _ := svc.GetProduct(context.Background(), water.ID)
	c, _ := svc.GetProduct(context.Background(), chips.ID)
	assert.Equal(t, 50, w.Stock)
	assert.Equal(t, 3, c.Stock)
}

func TestReserve_UnknownProduct(t *testing.T) {
	svc, store := newTestService(t)
	water := seedProduct(t, svc, store.ID, "Water 500ml", 2, 50)

	_, err := svc.Reserve(context.Background(), []Line{
		{ProductID: water.ID, Qty: 1},
		{ProductID: "missing", Qty: 1},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	w, _ := svc.GetProduct(context.Background(), water.ID)
	assert.Equal(t, 50, w.Stock)
}

func TestReserve_RepeatedLinesCannotOverdraw(t *testing.T) {
	svc, store := newTestService(t)
	water := seedProduct(t, svc, store.ID, "Water 500ml", 2, 5)

	_, err := svc.Reserve(context.Background(), []Line{
		{ProductID: water.ID, Qty: 3},
		{ProductID: water.ID, Qty: 3},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	w, _ := svc.GetProduct(context.Background(), water.ID)
	assert.Equal(t, 5, w.Stock)
}

func TestReserve_ExactDepletionThenReject(t *testing.T) {
	svc, store := newTestService(t)
	p := seedProduct(t, svc, store.ID, "Pepperoni Pizza", 12, 5)

	_, err := svc.Reserve(context.Background(), []Line{{ProductID: p.ID, Qty: 5}})
	require.NoError(t, err)

	got, _ := svc.GetProduct(context.Background(), p.ID)
	assert.Equal(t, 0, got.Stock)

	_, err = svc.Reserve(context.Background(), []Line{{ProductID: p.ID, Qty: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	got, _ = svc.GetProduct(context.Background(), p.ID)
	assert.Equal(t, 0, got.Stock)
}

// Two concurrent reservations race for the last unit; exactly one may win
// and stock must never go negative.
func TestReserve_ConcurrentLastUnit(t *testing.T) {
	svc, store := newTestService(t)
	p := seedProduct(t, svc, store.ID, "Water 500ml", 2, 1)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), []Line{{ProductID: p.ID, Qty: 1}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		}
	}
	assert.Equal(t, 1, wins)

	got, _ := svc.GetProduct(context.Background(), p.ID)
	assert.Equal(t, 0, got.Stock)
}

func TestRelease_RestoresStock(t *testing.T) {
	svc, store := newTestService(t)
	p := seedProduct(t, svc, store.ID, "Chips", 3.5, 10)

	lines := []Line{{ProductID: p.ID, Qty: 4}}
	_, err := svc.Reserve(context.Background(), lines)
	require.NoError(t, err)
	require.NoError(t, svc.Release(context.Background(), lines))

	got, _ := svc.GetProduct(context.Background(), p.ID)
	assert.Equal(t, 10, got.Stock)
}

func TestGetAvailability(t *testing.T) {
	svc, store := newTestService(t)
	p := seedProduct(t, svc, store.ID, "Chips", 3.5, 2)

	a, err := svc.GetAvailability(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, a.Available)

	_, err = svc.Reserve(context.Background(), []Line{{ProductID: p.ID, Qty: 2}})
	require.NoError(t, err)

	a, err = svc.GetAvailability(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, a.Available)
	assert.Equal(t, 0, a.Stock)
}
