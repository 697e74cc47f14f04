package Controllers_test

import (
	"bytes"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	r, _ := setupRouter(t)
	createClient(t, r, "Ana", "Diaz", "ana@x.com")
	createOrder(t, r, 5, "soup")
	createOrder(t, r, 5, "bread")

	w := doJSON(t, r, http.MethodGet, "/exportar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Clientes", "Mesas", "Pedidos"}, f.GetSheetList())

	clients, err := f.GetRows("Clientes")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "nombre", clients[0][1])
	assert.Equal(t, "Ana", clients[1][1])

	orders, err := f.GetRows("Pedidos")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "soup", orders[1][2])
	assert.Equal(t, "bread", orders[2][2])

	tables, err := f.GetRows("Mesas")
	require.NoError(t, err)
	assert.Len(t, tables, 1, "header only")
}

func TestOrderTicket(t *testing.T) {
	r, _ := setupRouter(t)
	order := createOrder(t, r, 7, "Ñoquis con salsa")

	w := doJSON(t, r, http.MethodGet, "/pedidos/"+strconv.Itoa(int(order.ID))+"/comanda", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), order.TicketNumber())
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestOrderTicketNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/pedidos/42/comanda", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pedido no encontrado", decode(t, w, nil).Message)
}

func TestOrderTicketStoreFailureHTML(t *testing.T) {
	r, db := setupRouter(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := getHTML(t, r, "/pedidos/1/comanda")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Error interno")
}

func TestExportWorkbookStoreFailureJSON(t *testing.T) {
	r, db := setupRouter(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := doJSON(t, r, http.MethodGet, "/exportar", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Status)
	assert.Equal(t, "Error interno, intente nuevamente", env.Message)
}
