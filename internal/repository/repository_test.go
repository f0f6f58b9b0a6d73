package repository_test

import (
	"context"
	"fmt"
	"testing"

	"braintree-gateway/internal/client"
	"braintree-gateway/internal/model"
	"braintree-gateway/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testOrder(orderID string) *model.Order {
	return &model.Order{
		OrderID:    orderID,
		UID:        "user-1",
		BuyerEmail: "buyer@example.com",
		Total:      decimal.RequireFromString("37.00"),
		Currency:   "USD",
		BillTo:     model.Address{Name: "Ada Lovelace", City: "London", Country: "GB"},
		ShipTo:     model.Address{Name: "Ada Lovelace", City: "London", Country: "GB"},
		Items: []model.OrderItem{
			{ProductID: "mug_gopher", Quantity: 1, UnitPrice: decimal.RequireFromString("12.50"), Physical: true},
			{ProductID: "ebook_go", Quantity: 1, UnitPrice: decimal.RequireFromString("24.50")},
		},
	}
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewOrderRepository(db)

	require.NoError(t, repo.Create(ctx, testOrder("ord-1")))

	order, err := repo.FindByOrderID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.HasPhysical())
	assert.False(t, order.HasInvalid())
	assert.Equal(t, "Ada Lovelace", order.BillTo.Name)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("37.00")))

	require.NoError(t, repo.UpdateStatus(ctx, db, "ord-1", model.OrderStatusProcessing))
	order, err = repo.FindByOrderID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)

	err = repo.UpdateStatus(ctx, db, "missing", model.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByOrderID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewPaymentRepository(db)

	created, err := repo.CreateIfAbsent(ctx, db, &model.Payment{
		RefID: "txn-1", OrderID: "ord-1", Amount: decimal.RequireFromString("10.00"), Gateway: "braintree",
	})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, db, &model.Payment{
		RefID: "txn-1", OrderID: "ord-1", Amount: decimal.RequireFromString("10.00"), Gateway: "braintree",
	})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.CreateIfAbsent(ctx, db, &model.Payment{
		RefID: "txn-2", OrderID: "ord-1", Amount: decimal.RequireFromString("2.50"), Gateway: "braintree",
	})
	require.NoError(t, err)
	assert.True(t, created)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	paid, err := repo.TotalPaid(ctx, "ord-1")
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.RequireFromString("12.50")), paid.String())

	p, err := repo.FindByRefID(ctx, "txn-2")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", p.OrderID)
}

func TestIPNRepositoryAppends(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewIPNRepository(db)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &model.IPNLog{
			OrderID: "ord-1", TxnID: "txn-1", Gateway: "braintree", Event: "sale", Verified: true,
			Data: []byte(`{"txn_id":"txn-1"}`),
		}))
	}

	entries, err := repo.ListByTxnID(ctx, "txn-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.JSONEq(t, `{"txn_id":"txn-1"}`, string(entries[0].Data))
}

func TestInventoryUpsertAccumulates(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewInventoryRepository(db)

	require.NoError(t, repo.Upsert(ctx, db, &model.UserInventory{UserID: "user-1", ProductID: "ebook_go", Quantity: 1}))
	require.NoError(t, repo.Upsert(ctx, db, &model.UserInventory{UserID: "user-1", ProductID: "ebook_go", Quantity: 2}))
	require.NoError(t, repo.Upsert(ctx, db, &model.UserInventory{UserID: "user-2", ProductID: "ebook_go", Quantity: 1}))

	inv, err := repo.GetByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.EqualValues(t, 3, inv[0].Quantity)

	all, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)

	require.NoError(t, repo.Seed(ctx))
	require.NoError(t, repo.Seed(ctx))

	mug, err := repo.FindByID(ctx, "mug_gopher")
	require.NoError(t, err)
	assert.True(t, mug.Physical)

	many, err := repo.FindMany(ctx, []string{"mug_gopher", "ebook_go", "nope"})
	require.NoError(t, err)
	assert.Len(t, many, 2)
}
