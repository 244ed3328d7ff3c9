package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmigo/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb, mock
}

func testContext(t *testing.T) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func jsonRequest(t *testing.T, c *gin.Context, method string, body interface{}) {
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	c.Request, err = http.NewRequest(method, "/", bytes.NewReader(payload))
	require.NoError(t, err)
	c.Request.Header.Set("Content-Type", "application/json")
}

func jsonDecode(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func authorizeContext(c *gin.Context, userID uint, role models.Role) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func inventoryColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at",
		"farmer_id", "crop_name", "price", "quantity", "available", "image_url"}
}

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at",
		"name", "email", "password_hash", "role"}
}
