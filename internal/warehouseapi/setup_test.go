package warehouseapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/stockbill/config"
	"github.com/talkincode/stockbill/internal/app"
	"github.com/talkincode/stockbill/internal/auth"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/gorm"
)

const testSecret = "warehouse-test-secret"

type testEnv struct {
	t     *testing.T
	cfg   *config.AppConfig
	app   *app.Application
	srv   *webserver.Server
	token string
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig("warehouse")
	cfg.Web.StaticDir = filepath.Join(dir, "wwwroot")
	cfg.Web.ErrorLog = filepath.Join(dir, "errors.log")
	cfg.Auth.JwtSecret = testSecret
	cfg.Auth.EncryptionKey = "warehouse-test-key"

	cfg.Database.Name = filepath.Join(dir, "warehouse.db")

	db, err := app.OpenDatabase(cfg.Database)
	require.NoError(t, err)

	a := app.NewApplication(cfg, app.WarehouseSchema())
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	srv, err := webserver.NewServer(a, webserver.Options{Name: "warehouse", Secured: true})
	require.NoError(t, err)
	Register(srv)
	t.Cleanup(func() { _ = srv.Close() })

	tokens, err := auth.NewTokenService(testSecret, 0)
	require.NoError(t, err)
	resp, err := tokens.Issue("tester@example.com")
	require.NoError(t, err)

	return &testEnv{t: t, cfg: cfg, app: a, srv: srv, token: resp.Token}
}

func (e *testEnv) db() *gorm.DB {
	return e.app.DB()
}

func (e *testEnv) send(req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	req.RemoteAddr = "192.0.2.10:4321"
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) do(method, target string, body interface{}, authed bool) *httptest.ResponseRecorder {
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
	return e.send(req, authed)
}

// decode unwraps the data envelope into out
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Error
}

func (e *testEnv) family(name string) domain.Family {
	e.t.Helper()
	f := domain.Family{Name: name}
	require.NoError(e.t, e.db().Create(&f).Error)
	return f
}

func (e *testEnv) product(name, price string, familyID int64, discontinued bool) domain.Product {
	e.t.Helper()
	p := domain.Product{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		FamilyID:     familyID,
		Discontinued: discontinued,
		OnboardDate:  domain.Today(),
	}
	require.NoError(e.t, e.db().Create(&p).Error)
	return p
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
