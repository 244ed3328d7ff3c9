package controllers

import (
	"net/http"
	"testing"
	"time"

	"farmigo/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMarket(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	cc := &CustomerController{DB: db}

	t.Run("lists available listings", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE available = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows(inventoryColumns()).
				AddRow(3, time.Now(), time.Now(), nil, 2, "Tomato", 5.0, 10, true, ""))

		w, c := testContext(t)
		c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

		cc.Market(c)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"Tomato"`)
		assert.Contains(t, w.Body.String(), `"farmerId":2`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search filters by crop name", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE available = \$1 AND crop_name ILIKE \$2`).
			WithArgs(true, "%tom%").
			WillReturnRows(sqlmock.NewRows(inventoryColumns()))

		w, c := testContext(t)
		c.Request, _ = http.NewRequest(http.MethodGet, "/?search=tom", nil)

		cc.Market(c)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateOrder(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	cc := &CustomerController{DB: db}

	listingRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(inventoryColumns()).
			AddRow(3, time.Now(), time.Now(), nil, 2, "Tomato", 5.0, 10, true, "")
	}

	t.Run("empty item list", func(t *testing.T) {
		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, map[string]interface{}{"items": []interface{}{}})

		cc.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No items"}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero quantity aborts before any write", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, OrderPayload{
			Items: []OrderLinePayload{{InventoryID: 3, Quantity: 0}}})

		cc.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid item or insufficient stock"}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown or unavailable listing rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE .*id = \$1 AND available = \$2.+FOR UPDATE`).
			WithArgs(99, true, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, OrderPayload{
			Items: []OrderLinePayload{{InventoryID: 99, Quantity: 1}}})

		cc.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid item or insufficient stock"}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock rolls back whole order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE .*id = \$1 AND available = \$2.+FOR UPDATE`).
			WithArgs(3, true, 1).
			WillReturnRows(listingRow())
		mock.ExpectRollback()

		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, OrderPayload{
			Items: []OrderLinePayload{{InventoryID: 3, Quantity: 11}}})

		cc.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid item or insufficient stock"}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("successful order snapshots price and decrements stock", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE .*id = \$1 AND available = \$2.+FOR UPDATE`).
			WithArgs(3, true, 1).
			WillReturnRows(listingRow())
		mock.ExpectQuery(`INSERT INTO "orders"`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 1, 50.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		// The stored line item carries the listing's price at purchase time.
		mock.ExpectQuery(`INSERT INTO "order_items"`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 11, 3, 10, 5.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec(`UPDATE "inventory" SET "quantity"=quantity - \$1`).
			WithArgs(10, sqlmock.AnyArg(), 3, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "inventory" SET "available"=\$1`).
			WithArgs(false, sqlmock.AnyArg(), 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, OrderPayload{
			Items: []OrderLinePayload{{InventoryID: 3, Quantity: 10}}})

		cc.CreateOrder(c)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"orderId":11,"total":50}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent decrement losing the guard rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE .*id = \$1 AND available = \$2.+FOR UPDATE`).
			WithArgs(3, true, 1).
			WillReturnRows(listingRow())
		mock.ExpectQuery(`INSERT INTO "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectQuery(`INSERT INTO "order_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
		mock.ExpectExec(`UPDATE "inventory" SET "quantity"=quantity - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		w, c := testContext(t)
		authorizeContext(c, 1, models.RoleCustomer)
		jsonRequest(t, c, http.MethodPost, OrderPayload{
			Items: []OrderLinePayload{{InventoryID: 3, Quantity: 4}}})

		cc.CreateOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid item or insufficient stock"}`, w.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
