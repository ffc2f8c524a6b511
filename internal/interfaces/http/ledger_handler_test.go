package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/audit"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
)

type stubPDF struct{}

func (stubPDF) GenerateAuditPDF(context.Context, audit.Report) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

func buildLedgerApp(t *testing.T) (*fiber.App, *ledger.Service) {
	t.Helper()
	svc := ledger.NewService(memory.NewChainStore(), ledger.Options{
		Clock: ledger.FixedClock{T: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, svc.Load(context.Background()))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    svc,
		Report:    audit.NewReportUseCase(svc, stubPDF{}, "main"),
		JWTSecret: testJWTSecret,
		AppName:   "test",
	})
	return app, svc
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

var createLaptop = map[string]any{
	"txType": "CREATE_ITEM", "itemSku": "SKU-1", "itemName": "Laptop",
	"quantity": 10, "toLocation": "Warehouse", "price": "1200.50", "category": "Electronics",
}

func TestPropose_CreateItemYMove(t *testing.T) {
	app, svc := buildLedgerApp(t)

	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	block := decode[dto.BlockDTO](t, resp)
	assert.Equal(t, int64(1), block.Index)

	var tx map[string]any
	require.NoError(t, json.Unmarshal(block.Transaction, &tx))
	assert.Equal(t, "1200.5", tx["price"])
	actor := tx["actor"].(map[string]any)
	assert.Equal(t, testUserID, actor["id"], "el actor sale del token, no del cuerpo")

	resp = call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleInventoryManager, map[string]any{
		"txType": "MOVE", "itemSku": "SKU-1", "quantity": 4, "fromLocation": "Warehouse", "toLocation": "Retailer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, int64(4), svc.Inventory().Quantity("SKU-1", "Retailer"))
}

func TestPropose_Permisos(t *testing.T) {
	app, svc := buildLedgerApp(t)

	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleInventoryManager, createLaptop)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "sólo admin crea productos")
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAuditor, map[string]any{
		"txType": "STOCK_IN", "itemSku": "SKU-1", "quantity": 1, "location": "A",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	assert.Len(t, svc.Blocks(), 1)
}

func TestPropose_Errores(t *testing.T) {
	app, _ := buildLedgerApp(t)
	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	resp.Body.Close()

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"sku duplicado", createLaptop, http.StatusConflict, "DUPLICATE_SKU"},
		{"sku desconocido", map[string]any{"txType": "STOCK_OUT", "itemSku": "GHOST", "quantity": 1, "location": "A"}, http.StatusNotFound, "UNKNOWN_SKU"},
		{"stock insuficiente", map[string]any{"txType": "STOCK_OUT", "itemSku": "SKU-1", "quantity": 11, "location": "Warehouse"}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"misma ubicación", map[string]any{"txType": "MOVE", "itemSku": "SKU-1", "quantity": 1, "fromLocation": "Warehouse", "toLocation": "Warehouse"}, http.StatusConflict, "SAME_LOCATION"},
		{"límite de unidades", map[string]any{"txType": "STOCK_IN", "itemSku": "SKU-1", "quantity": 999_999_999_999_991, "location": "Retailer"}, http.StatusConflict, "QUANTITY_LIMIT"},
		{"cantidad fuera de rango", map[string]any{"txType": "STOCK_IN", "itemSku": "SKU-1", "quantity": int64(9223372036854775807), "location": "Warehouse"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", map[string]any{"txType": "STOCK_IN", "itemSku": "SKU-1", "quantity": 0, "location": "A"}, http.StatusBadRequest, "VALIDATION"},
		{"txType inválido", map[string]any{"txType": "GENESIS"}, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestBlocksVerifyYReport(t *testing.T) {
	app, _ := buildLedgerApp(t)
	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/ledger/blocks?limit=1&offset=1", entity.RoleAuditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.BlocksResponse](t, resp)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, int64(1), page.Blocks[0].Index)
	assert.Equal(t, 2, page.Page.Total)

	resp = call(t, app, http.MethodGet, "/api/ledger/blocks", entity.RoleViewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/ledger/verify", entity.RoleAuditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[dto.VerificationDTO](t, resp)
	assert.True(t, v.Valid)
	assert.Equal(t, 2, v.Length)
	assert.Nil(t, v.Index)
	assert.Equal(t, "sha256", v.HashAlgorithm)

	resp = call(t, app, http.MethodGet, "/api/ledger/report", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "auditoria-main-")
	resp.Body.Close()
}

func TestReset(t *testing.T) {
	app, svc := buildLedgerApp(t)
	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/ledger/reset", entity.RoleAuditor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/ledger/reset", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	genesis := decode[dto.BlockDTO](t, resp)
	assert.Equal(t, "0", genesis.PreviousHash)
	assert.Len(t, svc.Blocks(), 1)
}

func TestInventarioYDashboard(t *testing.T) {
	app, _ := buildLedgerApp(t)
	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	resp.Body.Close()
	resp = call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, map[string]any{
		"txType": "STOCK_OUT", "itemSku": "SKU-1", "quantity": 2, "location": "Warehouse",
	})
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/inventory", entity.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inv := decode[dto.InventoryResponse](t, resp)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, int64(8), inv.Items[0].Total)
	assert.Equal(t, int64(8), inv.TotalUnits)

	resp = call(t, app, http.MethodGet, "/api/inventory/SKU-1/history", entity.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h := decode[dto.ItemHistoryResponse](t, resp)
	require.Len(t, h.Blocks, 2)
	assert.Equal(t, int64(2), h.Blocks[0].Index)

	resp = call(t, app, http.MethodGet, "/api/inventory/NOPE", entity.RoleViewer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/dashboard", entity.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, int64(8), d.TotalUnits)
	assert.Equal(t, "9604", d.TotalValue.String())
	assert.Equal(t, 3, d.ChainLength)
	assert.Len(t, d.Recent, 2)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, int64(8), d.LowStock[0].Stock)

	resp = call(t, app, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestInventario_Busqueda(t *testing.T) {
	app, _ := buildLedgerApp(t)
	resp := call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, createLaptop)
	resp.Body.Close()
	resp = call(t, app, http.MethodPost, "/api/ledger/transactions", entity.RoleAdmin, map[string]any{
		"txType": "CREATE_ITEM", "itemSku": "MOU-7", "itemName": "Mouse", "quantity": 3, "toLocation": "Warehouse", "price": "25",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/inventory?q=LAPTOP", entity.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode[dto.InventoryResponse](t, resp)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "SKU-1", found.Items[0].SKU)
	assert.Equal(t, int64(13), found.TotalUnits, "el total no depende del filtro")

	resp = call(t, app, http.MethodGet, "/api/inventory?q=mou", entity.RoleViewer, nil)
	found = decode[dto.InventoryResponse](t, resp)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "MOU-7", found.Items[0].SKU)

	resp = call(t, app, http.MethodGet, "/api/inventory?q=teclado", entity.RoleViewer, nil)
	found = decode[dto.InventoryResponse](t, resp)
	assert.Empty(t, found.Items)
}

func TestHealth(t *testing.T) {
	app, _ := buildLedgerApp(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
}
