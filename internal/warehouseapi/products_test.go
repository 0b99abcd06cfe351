package warehouseapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/stockbill/internal/domain"
	"gorm.io/gorm"
)

func productBody(name, price string, familyID int64) map[string]interface{} {
	return map[string]interface{}{"name": name, "price": price, "family_id": familyID}
}

func TestCreateProductUnknownFamily(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/products", productBody("Ghost", "10.00", 42), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FAMILY_NOT_FOUND", errorCode(t, rec))

	var count int64
	require.NoError(t, env.db().Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Laptops")
	rec := env.do(http.MethodPost, "/api/products", productBody("Ultrabook", "999.90", f.ID), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p domain.Product
	decode(t, rec, &p)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "999.9", p.Price.String())
	assert.Equal(t, domain.Today().Format("2006-01-02"), p.OnboardDate.Format("2006-01-02"))
}

func TestBatchRejectsUnknownFamily(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Laptops")
	batch := []map[string]interface{}{
		productBody("One", "1.00", f.ID),
		productBody("Two", "2.00", 777),
	}
	rec := env.do(http.MethodPost, "/api/products/batch", batch, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, env.db().Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	batch[1]["family_id"] = f.ID
	rec = env.do(http.MethodPost, "/api/products/batch", batch, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, env.db().Model(&domain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Laptops")
	p := env.product("Old", "10.00", f.ID, false)

	body := productBody("New", "12.50", f.ID)
	body["id"] = p.ID
	body["discontinued"] = true
	rec := env.do(http.MethodPut, "/api/products", body, true)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.String())

	var stored domain.Product
	require.NoError(t, env.db().First(&stored, p.ID).Error)
	assert.Equal(t, "New", stored.Name)
	assert.True(t, stored.Discontinued)
	assert.Equal(t, "12.5", stored.Price.String())

	body["family_id"] = 999
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPut, "/api/products", body, true).Code)
	body["id"] = 999
	body["family_id"] = f.ID
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/products", body, true).Code)
}

func TestProductPages(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Accessories")
	var ids []int64
	for i := 1; i <= 5; i++ {
		ids = append(ids, env.product(fmt.Sprintf("Item %d", i), "1.00", f.ID, false).ID)
	}

	var page []domain.Product
	rec := env.do(http.MethodGet, "/api/products/page", nil, true)
	decode(t, rec, &page)
	assert.Equal(t, ids[0:2], productIDs(page))

	rec = env.do(http.MethodGet, "/api/products/page/2", nil, true)
	decode(t, rec, &page)
	assert.Equal(t, ids[2:4], productIDs(page))

	rec = env.do(http.MethodGet, "/api/products/firstpage", nil, true)
	decode(t, rec, &page)
	assert.Equal(t, ids[1:3], productIDs(page))

	rec = env.do(http.MethodGet, "/api/products/page/0", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAGE", errorCode(t, rec))

	rec = env.do(http.MethodGet, "/api/products?page=2&perPage=2&sort=id&order=ASC", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"meta":{"total":5,"page":2,"page_size":2}`)
}

func TestProductProjectionsAndGroups(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Monitors")
	env.product("Zeta", "5.00", f.ID, false)
	env.product("Alpha", "7.00", f.ID, false)
	env.product("Retired", "9.00", f.ID, true)

	rec := env.do(http.MethodGet, "/api/products/active", nil, true)
	var active []ActiveProduct
	decode(t, rec, &active)
	require.Len(t, active, 2)
	assert.Equal(t, "Alpha", active[0].ProductName)
	assert.Contains(t, rec.Body.String(), `"product_name"`)

	rec = env.do(http.MethodGet, "/api/products/fields", nil, true)
	var fields []ProductField
	decode(t, rec, &fields)
	assert.Len(t, fields, 3)
	assert.NotContains(t, rec.Body.String(), "price")

	rec = env.do(http.MethodGet, "/api/products/grouped", nil, true)
	var groups []ProductGroup
	decode(t, rec, &groups)
	require.Len(t, groups, 2)
	assert.False(t, groups[0].Discontinued)
	assert.Equal(t, 2, groups[0].Total)
	assert.True(t, groups[1].Discontinued)
	assert.Equal(t, 1, groups[1].Total)
}

func TestPriceRange(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Monitors")
	env.product("Cheap", "5.00", f.ID, false)
	env.product("Mid", "50.00", f.ID, false)
	env.product("Dear", "500.00", f.ID, false)

	// open route
	rec := env.do(http.MethodGet, "/api/products/pricerange/10/100", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	decode(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Mid", products[0].Name)

	rec = env.do(http.MethodGet, "/api/products/pricerange?from=1&to=60", nil, true)
	decode(t, rec, &products)
	assert.Len(t, products, 2)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/products/pricerange/abc/100", nil, false).Code)
	assert.Equal(t, int64(3), env.app.Counter().Value())
}

func TestFilterVariantsAgree(t *testing.T) {
	env := newTestEnv(t)
	laptops := env.family("Laptops")
	monitors := env.family("Monitors")
	env.product("Pro Laptop", "1.00", laptops.ID, false)
	env.product("Pro Monitor", "1.00", monitors.ID, false)
	env.product("Pro Legacy", "1.00", laptops.ID, true)
	env.product("Basic", "1.00", laptops.ID, false)
	env.product("ÑANDÚ Plush", "1.00", monitors.ID, false)
	env.product("Cable_50%", "1.00", monitors.ID, false)

	cases := map[string]int{
		"?name=pro": 2,
		fmt.Sprintf("?name=PRO&family_id=%d", laptops.ID): 1,
		"?discontinued=true":                              1,
		"":                                                5,
		"?name=" + url.QueryEscape("ñandú"):               1,
		"?name=" + url.QueryEscape("Ñandú plush"): 1,
		"?name=_":                       1,
		"?name=" + url.QueryEscape("%"): 1,
	}
	for query, want := range cases {
		for _, path := range []string{"/api/products/filter", "/api/products/filter/query"} {
			rec := env.do(http.MethodGet, path+query, nil, true)
			require.Equal(t, http.StatusOK, rec.Code, path+query)
			var products []domain.Product
			decode(t, rec, &products)
			assert.Len(t, products, want, path+query)
		}
	}
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/products/filter?discontinued=maybe", nil, true).Code)

	// the paged listing searches names the same way
	rec := env.do(http.MethodGet, "/api/products?q="+url.QueryEscape("ñandú"), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data []domain.Product `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Meta.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ÑANDÚ Plush", page.Data[0].Name)
}

func TestExportProducts(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Monitors")
	env.product("Monitor 24", "149.90", f.ID, false)

	rec := env.do(http.MethodGet, "/api/products/export", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,price,discontinued,onboard_date,family_id,photo_url", lines[0])
	assert.Contains(t, lines[1], "Monitor 24,149.90,false")
}

func multipartRequest(t *testing.T, method string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, "/api/products/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *testEnv) photoPath(url string) string {
	return filepath.Join(e.cfg.Web.StaticDir, filepath.FromSlash(strings.TrimPrefix(url, "/")))
}

func TestProductImageLifecycle(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Monitors")
	familyID := fmt.Sprint(f.ID)

	req := multipartRequest(t, http.MethodPost,
		map[string]string{"name": "Monitor", "price": "99.99", "family_id": familyID}, "front.PNG", []byte("first"))
	rec := env.send(req, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Product
	decode(t, rec, &created)
	require.True(t, strings.HasPrefix(created.PhotoURL, "/images/"))
	assert.True(t, strings.HasSuffix(created.PhotoURL, ".png"))
	first := env.photoPath(created.PhotoURL)
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// uploaded photos are served as static files
	rec = env.do(http.MethodGet, created.PhotoURL, nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "first", rec.Body.String())

	req = multipartRequest(t, http.MethodPut,
		map[string]string{"id": fmt.Sprint(created.ID), "name": "Monitor v2", "price": "89.99", "family_id": familyID},
		"side.jpg", []byte("second"))
	rec = env.send(req, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.Product
	decode(t, rec, &updated)
	assert.NotEqual(t, created.PhotoURL, updated.PhotoURL)
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err))
	second := env.photoPath(updated.PhotoURL)
	_, err = os.Stat(second)
	require.NoError(t, err)

	req = multipartRequest(t, http.MethodPut,
		map[string]string{"id": "999", "name": "x", "price": "1", "family_id": familyID}, "", nil)
	assert.Equal(t, http.StatusNotFound, env.send(req, true).Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/products/image/%d", created.ID), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, http.StatusNotFound,
		env.do(http.MethodDelete, fmt.Sprintf("/api/products/image/%d", created.ID), nil, true).Code)
}

func TestProductImageUnknownFamily(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, http.MethodPost,
		map[string]string{"name": "Ghost", "price": "1.00", "family_id": "404"}, "", nil)
	rec := env.send(req, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FAMILY_NOT_FOUND", errorCode(t, rec))
}

func (e *testEnv) failWrites() {
	e.t.Helper()
	boom := func(tx *gorm.DB) { _ = tx.AddError(errors.New("disk full")) }
	require.NoError(e.t, e.db().Callback().Create().Before("gorm:create").Register("test:fail_create", boom))
	require.NoError(e.t, e.db().Callback().Update().Before("gorm:update").Register("test:fail_update", boom))
}

func (e *testEnv) photoCount() int {
	e.t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.cfg.Web.StaticDir, "images"))
	require.NoError(e.t, err)
	return len(entries)
}

func TestProductImageDatabaseFailureKeepsFiles(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Monitors")
	familyID := fmt.Sprint(f.ID)

	req := multipartRequest(t, http.MethodPost,
		map[string]string{"name": "Monitor", "price": "99.99", "family_id": familyID}, "front.png", []byte("first"))
	rec := env.send(req, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created domain.Product
	decode(t, rec, &created)
	require.Equal(t, 1, env.photoCount())

	env.failWrites()

	// a failed insert leaves no orphan upload behind
	req = multipartRequest(t, http.MethodPost,
		map[string]string{"name": "Ghost", "price": "1.00", "family_id": familyID}, "ghost.png", []byte("ghost"))
	assert.Equal(t, http.StatusInternalServerError, env.send(req, true).Code)
	assert.Equal(t, 1, env.photoCount())

	// a failed update keeps the photo the row still points at
	req = multipartRequest(t, http.MethodPut,
		map[string]string{"id": fmt.Sprint(created.ID), "name": "Monitor v2", "price": "89.99", "family_id": familyID},
		"side.png", []byte("second"))
	assert.Equal(t, http.StatusInternalServerError, env.send(req, true).Code)
	assert.Equal(t, 1, env.photoCount())
	data, err := os.ReadFile(env.photoPath(created.PhotoURL))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	var stored domain.Product
	require.NoError(t, env.db().First(&stored, created.ID).Error)
	assert.Equal(t, created.PhotoURL, stored.PhotoURL)
}

func TestNegativePriceRejected(t *testing.T) {
	env := newTestEnv(t)
	f := env.family("Cables")

	rec := env.do(http.MethodPost, "/api/products", productBody("Cable", "-1.00", f.ID), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PRICE", errorCode(t, rec))

	rec = env.do(http.MethodPost, "/api/products/batch", []interface{}{
		productBody("Cable", "1.00", f.ID),
		productBody("Refund", "-0.01", f.ID),
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PRICE", errorCode(t, rec))

	req := multipartRequest(t, http.MethodPost,
		map[string]string{"name": "Cable", "price": "-5", "family_id": fmt.Sprint(f.ID)}, "", nil)
	rec = env.send(req, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PRICE", errorCode(t, rec))

	var count int64
	require.NoError(t, env.db().Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	// zero stays a valid price
	rec = env.do(http.MethodPost, "/api/products", productBody("Sample", "0", f.ID), true)
	assert.Equal(t, http.StatusOK, rec.Code)
}
