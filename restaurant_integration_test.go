package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xgrece/bodegon/config"
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/models"
	"github.com/xgrece/bodegon/router"
	"github.com/xgrece/bodegon/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow against a fully wired router:
// 1. Create a client and read it back
// 2. Delete it, then a read is 404
// 3. Update of a missing client is 404 and changes nothing
// 4. Two orders for table 5 list in submission order
// 5. Page through the clients
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db, config.Default(), nil, nil)

	clientID := createClientTest(t, r)
	deleteClientTest(t, r, clientID)
	updateMissingClientTest(t, r, db)
	orderFlowTest(t, r)
	pagingTest(t, r)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Default()
	cfg.Database.URL = ":memory:"
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1

	db, err := config.InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func request(t *testing.T, r http.Handler, method, path string, body interface{}, data interface{}) (int, utils.JSONResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := utils.JSONResponse{Data: data}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func createClientTest(t *testing.T, r http.Handler) uint {
	var created models.Client
	code, resp := request(t, r, http.MethodPost, "/clientes/", map[string]string{
		"nombre": "Ana", "apellido": "Diaz", "email": "ana@x.com",
	}, &created)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Status)
	require.Positive(t, created.ID)

	var got models.Client
	code, _ = request(t, r, http.MethodGet, "/clientes/"+strconv.Itoa(int(created.ID)), nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.Client{
		ID: created.ID, FirstName: "Ana", LastName: "Diaz", Email: "ana@x.com",
		CreatedAt: got.CreatedAt, UpdatedAt: got.UpdatedAt,
	}, got)
	return created.ID
}

func deleteClientTest(t *testing.T, r http.Handler, id uint) {
	path := "/clientes/" + strconv.Itoa(int(id))
	code, resp := request(t, r, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cliente eliminado", resp.Message)

	code, resp = request(t, r, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Cliente no encontrado", resp.Message)
}

func updateMissingClientTest(t *testing.T, r http.Handler, db *gorm.DB) {
	var before, after int64
	db.Model(&models.Client{}).Count(&before)

	code, _ := request(t, r, http.MethodPut, "/clientes/999", map[string]string{
		"nombre": "X", "apellido": "Y", "email": "x@y.com",
	}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	db.Model(&models.Client{}).Count(&after)
	assert.Equal(t, before, after)
}

func orderFlowTest(t *testing.T, r http.Handler) {
	for _, product := range []string{"soup", "bread"} {
		code, _ := request(t, r, http.MethodPost, "/pedidos/", map[string]interface{}{
			"mesa": 5, "producto": product,
		}, nil)
		require.Equal(t, http.StatusOK, code)
	}

	var orders []models.Order
	code, _ := request(t, r, http.MethodGet, "/pedidos/", nil, &orders)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, orders, 2)
	assert.Equal(t, "soup", orders[0].Product)
	assert.Equal(t, "bread", orders[1].Product)
}

func pagingTest(t *testing.T, r http.Handler) {
	for i := 0; i < 5; i++ {
		code, _ := request(t, r, http.MethodPost, "/clientes/", map[string]string{
			"nombre": "C", "apellido": strconv.Itoa(i), "email": strconv.Itoa(i) + "@x.com",
		}, nil)
		require.Equal(t, http.StatusOK, code)
	}

	seen := map[uint]bool{}
	for skip := 0; skip < 10; skip += 2 {
		var page []models.Client
		code, _ := request(t, r, http.MethodGet, "/clientes/?skip="+strconv.Itoa(skip)+"&limit=2", nil, &page)
		require.Equal(t, http.StatusOK, code)
		assert.LessOrEqual(t, len(page), 2)
		for _, c := range page {
			assert.False(t, seen[c.ID], "client %d listed twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, 5)
}
