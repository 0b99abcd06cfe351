package invoicingapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/stockbill/config"
	"github.com/talkincode/stockbill/internal/app"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	t   *testing.T
	db  *gorm.DB
	srv *webserver.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig("invoicing")
	cfg.Web.StaticDir = ""
	cfg.Web.ErrorLog = filepath.Join(dir, "errors.log")

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "invoicing.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	a := app.NewApplication(cfg, app.InvoicingSchema())
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	srv, err := webserver.NewServer(a, webserver.Options{Name: "invoicing"})
	require.NoError(t, err)
	Register(srv)
	t.Cleanup(func() { _ = srv.Close() })
	return &testEnv{t: t, db: db, srv: srv}
}

func (e *testEnv) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (e *testEnv) client(name, city string) domain.Client {
	e.t.Helper()
	c := domain.Client{Name: name, City: city}
	require.NoError(e.t, e.db.Create(&c).Error)
	return c
}

func (e *testEnv) invoice(clientID int64, amount string, paid bool) domain.Invoice {
	e.t.Helper()
	inv := domain.Invoice{
		ClientID: clientID,
		Amount:   decimal.RequireFromString(amount),
		Paid:     paid,
		Date:     domain.Today(),
	}
	require.NoError(e.t, e.db.Create(&inv).Error)
	return inv
}

func (e *testEnv) count(model interface{}, query string, args ...interface{}) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestDeleteClientWithUnpaidInvoice(t *testing.T) {
	env := newTestEnv(t)
	c := env.client("Ferreteria Norte", "Madrid")
	env.invoice(c.ID, "100.00", true)
	env.invoice(c.ID, "50.00", false)

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/clients/%d", c.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNPAID_INVOICES")

	assert.Equal(t, int64(1), env.count(&domain.Client{}, "id = ?", c.ID))
	assert.Equal(t, int64(2), env.count(&domain.Invoice{}, "client_id = ?", c.ID))
}

func TestDeleteClientRemovesPaidInvoices(t *testing.T) {
	env := newTestEnv(t)
	c := env.client("Bazar Central", "Valencia")
	env.invoice(c.ID, "10.00", true)
	other := env.client("Libreria Sur", "Madrid")
	env.invoice(other.ID, "20.00", false)

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/clients/%d", c.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Zero(t, env.count(&domain.Client{}, "id = ?", c.ID))
	assert.Zero(t, env.count(&domain.Invoice{}, "client_id = ?", c.ID))
	assert.Equal(t, int64(1), env.count(&domain.Invoice{}, "client_id = ?", other.ID))

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, fmt.Sprintf("/api/clients/%d", c.ID), nil).Code)
}

func TestClientQueries(t *testing.T) {
	env := newTestEnv(t)
	madrid := env.client("Ferreteria Norte", "Madrid")
	env.client("Bazar Central", "Valencia")
	env.invoice(madrid.ID, "100.00", true)
	env.invoice(madrid.ID, "25.50", false)

	var clients []domain.Client
	decode(t, env.do(http.MethodGet, "/api/clients", nil), &clients)
	assert.Len(t, clients, 2)

	decode(t, env.do(http.MethodGet, "/api/clients/city?city=Madrid", nil), &clients)
	require.Len(t, clients, 1)
	assert.Equal(t, madrid.ID, clients[0].ID)

	var invoices []domain.Invoice
	decode(t, env.do(http.MethodGet, fmt.Sprintf("/api/clients/%d/invoices", madrid.ID), nil), &invoices)
	assert.Len(t, invoices, 2)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/clients/999/invoices", nil).Code)

	var summaries []ClientSummary
	decode(t, env.do(http.MethodGet, "/api/clients/summary", nil), &summaries)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].InvoiceCount)
	assert.Equal(t, "125.5", summaries[0].TotalAmount.String())
	assert.Equal(t, "25.5", summaries[0].UnpaidAmount.String())
	assert.Equal(t, 0, summaries[1].InvoiceCount)
	assert.True(t, summaries[1].TotalAmount.IsZero())
}

func TestClientCreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/api/clients", map[string]string{"city": "Madrid"}).Code)

	rec := env.do(http.MethodPost, "/api/clients", map[string]string{"name": "Nuevo", "city": "Sevilla"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Client
	decode(t, rec, &created)
	require.NotZero(t, created.ID)

	rec = env.do(http.MethodPut, "/api/clients", map[string]interface{}{"id": created.ID, "name": "Renombrado", "city": "Cadiz"})
	require.Equal(t, http.StatusNoContent, rec.Code)
	var stored domain.Client
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	assert.Equal(t, "Renombrado", stored.Name)
	assert.Equal(t, "Cadiz", stored.City)

	rec = env.do(http.MethodPut, "/api/clients", map[string]interface{}{"id": 999, "name": "Nadie"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceQueries(t *testing.T) {
	env := newTestEnv(t)
	c := env.client("Ferreteria Norte", "Madrid")
	small := env.invoice(c.ID, "10.00", true)
	env.invoice(c.ID, "500.00", false)

	var invoices []domain.Invoice
	decode(t, env.do(http.MethodGet, "/api/invoices", nil), &invoices)
	assert.Len(t, invoices, 2)

	decode(t, env.do(http.MethodGet, "/api/invoices/paid", nil), &invoices)
	require.Len(t, invoices, 1)
	assert.Equal(t, small.Number, invoices[0].Number)

	decode(t, env.do(http.MethodGet, "/api/invoices/amountover/99.99", nil), &invoices)
	require.Len(t, invoices, 1)
	assert.Equal(t, "500", invoices[0].Amount.String())
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/invoices/amountover/lots", nil).Code)

	var got domain.Invoice
	decode(t, env.do(http.MethodGet, fmt.Sprintf("/api/invoices/%d", small.Number), nil), &got)
	assert.Equal(t, c.ID, got.ClientID)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/invoices/999", nil).Code)
}

func TestInvoiceMutations(t *testing.T) {
	env := newTestEnv(t)
	c := env.client("Ferreteria Norte", "Madrid")

	rec := env.do(http.MethodPost, "/api/invoices", map[string]interface{}{"client_id": 999, "amount": "10.00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CLIENT_NOT_FOUND")

	rec = env.do(http.MethodPost, "/api/invoices", map[string]interface{}{
		"client_id": c.ID, "amount": "42.10", "date": "2024-03-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Invoice
	decode(t, rec, &created)
	require.NotZero(t, created.Number)
	assert.Equal(t, "2024-03-01", created.Date.Format(dateLayout))

	rec = env.do(http.MethodPut, "/api/invoices", map[string]interface{}{
		"number": created.Number, "client_id": c.ID, "amount": "42.10", "paid": true, "date": "2024-03-01",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, int64(1), env.count(&domain.Invoice{}, "number = ? AND paid = ?", created.Number, true))

	rec = env.do(http.MethodPut, "/api/invoices", map[string]interface{}{"number": created.Number, "client_id": 999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(http.MethodPut, "/api/invoices", map[string]interface{}{"number": 999, "client_id": c.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, fmt.Sprintf("/api/invoices/%d", created.Number), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, fmt.Sprintf("/api/invoices/%d", created.Number), nil).Code)
}

func TestExportInvoices(t *testing.T) {
	env := newTestEnv(t)
	c := env.client("Ferreteria Norte", "Madrid")
	env.invoice(c.ID, "12.30", false)

	rec := env.do(http.MethodGet, "/api/invoices/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "number,date,amount,paid,client_id", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], fmt.Sprintf(",12.30,false,%d", c.ID)))
}
