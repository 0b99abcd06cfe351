package warehouseapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/storage"
	"github.com/talkincode/stockbill/internal/webserver"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const productsPerPage = 2

type productPayload struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name" validate:"required,max=150"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Discontinued bool            `json:"discontinued"`
	FamilyID     int64           `json:"family_id" validate:"required"`
}

// ProductField is the id and name projection
type ProductField struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ActiveProduct is a product still on sale
type ActiveProduct struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
}

// ProductGroup holds the products sharing one discontinued flag
type ProductGroup struct {
	Discontinued bool             `json:"discontinued"`
	Total        int              `json:"total"`
	Products     []domain.Product `json:"products"`
}

type productFilter struct {
	Name         string `query:"name"`
	FamilyID     int64  `query:"family_id"`
	Discontinued bool   `query:"discontinued"`
}

type productCSV struct {
	ID           int64  `csv:"id"`
	Name         string `csv:"name"`
	Price        string `csv:"price"`
	Discontinued bool   `csv:"discontinued"`
	OnboardDate  string `csv:"onboard_date"`
	FamilyID     int64  `csv:"family_id"`
	PhotoURL     string `csv:"photo_url"`
}

func registerProductRoutes(s *webserver.Server) {
	s.PubGET("/products/pricerange/:from/:to", listProductsInPriceRange)
	s.ApiGET("/products/pricerange", listProductsInPriceRangeQuery)
	s.ApiGET("/products", listProducts)
	s.ApiGET("/products/firstpage", listProductsFirstPage)
	s.ApiGET("/products/page", listProductsPage)
	s.ApiGET("/products/page/:page", listProductsPage)
	s.ApiGET("/products/fields", listProductFields)
	s.ApiGET("/products/active", listActiveProducts)
	s.ApiGET("/products/grouped", listProductsGrouped)
	s.ApiGET("/products/filter", filterProductsInMemory)
	s.ApiGET("/products/filter/query", filterProductsQuery)
	s.ApiGET("/products/export", exportProducts)
	s.ApiPOST("/products", createProduct)
	s.ApiPOST("/products/batch", createProducts)
	s.ApiPOST("/products/image", createProductWithImage)
	s.ApiPUT("/products/image", updateProductWithImage)
	s.ApiPUT("/products", updateProduct)
	s.ApiDELETE("/products/:id", deleteProduct)
	s.ApiDELETE("/products/image/:id", deleteProductWithImage)
}

func findProductsInRange(c echo.Context, fromStr, toStr string) error {
	countRequest(c)
	from, err := decimal.NewFromString(fromStr)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Invalid lower price", fromStr)
	}
	to, err := decimal.NewFromString(toStr)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Invalid upper price", toStr)
	}
	var products []domain.Product
	if err := GetDB(c).Where("price >= ? AND price <= ?", from, to).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

// @Summary Products priced between two values
// @Tags products
// @Param from path number true "Lower bound"
// @Param to path number true "Upper bound"
// @Success 200 {array} domain.Product
// @Router /api/products/pricerange/{from}/{to} [get]
func listProductsInPriceRange(c echo.Context) error {
	return findProductsInRange(c, c.Param("from"), c.Param("to"))
}

// @Summary Products priced between two query values
// @Tags products
// @Param from query number true "Lowest price"
// @Param to query number true "Highest price"
// @Success 200 {array} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/pricerange [get]
func listProductsInPriceRangeQuery(c echo.Context) error {
	return findProductsInRange(c, c.QueryParam("from"), c.QueryParam("to"))
}

// @Summary Paged product listing
// @Tags products
// @Param page query int false "Page"
// @Param perPage query int false "Rows per page"
// @Param q query string false "Name contains"
// @Param sort query string false "id, name, price or onboard_date"
// @Param order query string false "ASC or DESC"
// @Success 200 {object} webserver.PagedResponse
// @Security Bearer
// @Router /api/products [get]
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":           "id",
		"name":         "name",
		"price":        "price",
		"onboard_date": "onboard_date",
	}
	sortCol, found := allowed[sortField]
	if !found {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		db = nameContains(db, q)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

// @Summary Second and third products by id
// @Tags products
// @Success 200 {array} domain.Product
// @Security Bearer
// @Router /api/products/firstpage [get]
func listProductsFirstPage(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("id").Offset(1).Limit(productsPerPage).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

// @Summary Two products per page
// @Tags products
// @Param page path int false "Page, starting at 1"
// @Success 200 {array} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/page [get]
// @Router /api/products/page/{page} [get]
func listProductsPage(c echo.Context) error {
	page := 1
	if raw := c.Param("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_PAGE", "Page must be a number", raw)
		}
		page = p
	}
	if page < 1 {
		return fail(c, http.StatusBadRequest, "INVALID_PAGE", "Page number must be greater than 0", page)
	}
	var products []domain.Product
	if err := GetDB(c).Order("id").Offset((page - 1) * productsPerPage).Limit(productsPerPage).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

// @Summary Product ids and names
// @Tags products
// @Success 200 {array} ProductField
// @Security Bearer
// @Router /api/products/fields [get]
func listProductFields(c echo.Context) error {
	var rows []ProductField
	if err := GetDB(c).Model(&domain.Product{}).Select("id", "name").Order("id").Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

// @Summary Products still on sale, by name
// @Tags products
// @Success 200 {array} ActiveProduct
// @Security Bearer
// @Router /api/products/active [get]
func listActiveProducts(c echo.Context) error {
	var rows []ActiveProduct
	err := GetDB(c).Model(&domain.Product{}).
		Select("id, name AS product_name").
		Where("discontinued = ?", false).
		Order("name").
		Scan(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

// @Summary Products grouped by discontinued flag
// @Tags products
// @Success 200 {array} ProductGroup
// @Security Bearer
// @Router /api/products/grouped [get]
func listProductsGrouped(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, groupByDiscontinued(products))
}

func groupByDiscontinued(products []domain.Product) []ProductGroup {
	index := map[bool]int{}
	groups := make([]ProductGroup, 0, 2)
	for _, p := range products {
		i, found := index[p.Discontinued]
		if !found {
			i = len(groups)
			index[p.Discontinued] = i
			groups = append(groups, ProductGroup{Discontinued: p.Discontinued})
		}
		groups[i].Products = append(groups[i].Products, p)
		groups[i].Total++
	}
	sort.Slice(groups, func(a, b int) bool { return !groups[a].Discontinued && groups[b].Discontinued })
	return groups
}

func bindFilter(c echo.Context) (*productFilter, error) {
	var filter productFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_FILTER", "Unable to parse filter", err.Error())
	}
	filter.Name = strings.TrimSpace(filter.Name)
	return &filter, nil
}

// filterProductsInMemory loads every product and filters in the handler
// @Summary Filter products in the handler
// @Tags products
// @Param name query string false "Name contains"
// @Param family_id query int false "Family ID"
// @Param discontinued query bool false "Discontinued"
// @Success 200 {array} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/filter [get]
func filterProductsInMemory(c echo.Context) error {
	filter, err := bindFilter(c)
	if filter == nil {
		return err
	}
	var products []domain.Product
	if err := GetDB(c).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	name := strings.ToLower(filter.Name)
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if filter.FamilyID != 0 && p.FamilyID != filter.FamilyID {
			continue
		}
		if p.Discontinued != filter.Discontinued {
			continue
		}
		result = append(result, p)
	}
	return ok(c, result)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// nameContains matches text anywhere in name, folding case the way
// strings.ToLower does. sqlite goes through the fold() function registered
// by app.OpenDatabase.
func nameContains(db *gorm.DB, text string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
	if db.Name() == "sqlite" {
		return db.Where(`fold(name) LIKE ? ESCAPE '\'`, pattern)
	}
	return db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
}

// filterProductsQuery composes the same filter into a single query
// @Summary Filter products in one query
// @Tags products
// @Param name query string false "Name contains"
// @Param family_id query int false "Family ID"
// @Param discontinued query bool false "Discontinued"
// @Success 200 {array} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/filter/query [get]
func filterProductsQuery(c echo.Context) error {
	filter, err := bindFilter(c)
	if filter == nil {
		return err
	}
	db := GetDB(c).Model(&domain.Product{})
	if filter.Name != "" {
		db = nameContains(db, filter.Name)
	}
	if filter.FamilyID != 0 {
		db = db.Where("family_id = ?", filter.FamilyID)
	}
	db = db.Where("discontinued = ?", filter.Discontinued)

	products := make([]domain.Product, 0)
	if err := db.Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

// @Summary Export all products as CSV
// @Tags products
// @Produce text/csv
// @Success 200 {file} file
// @Security Bearer
// @Router /api/products/export [get]
func exportProducts(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	rows := make([]*productCSV, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productCSV{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price.StringFixed(2),
			Discontinued: p.Discontinued,
			OnboardDate:  p.OnboardDate.Format("2006-01-02"),
			FamilyID:     p.FamilyID,
			PhotoURL:     p.PhotoURL,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// missingFamily returns the first id with no family row, or 0
func missingFamily(db *gorm.DB, ids ...int64) (int64, error) {
	for _, id := range ids {
		var count int64
		if err := db.Model(&domain.Family{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return id, nil
		}
	}
	return 0, nil
}

// checkFamilies writes a 400 when any id is unknown; ok is false when a response was written
func checkFamilies(c echo.Context, ids ...int64) (bool, error) {
	missing, err := missingFamily(GetDB(c), ids...)
	if err != nil {
		return false, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	if missing != 0 {
		return false, fail(c, http.StatusBadRequest, "FAMILY_NOT_FOUND", fmt.Sprintf("Family %d does not exist", missing), nil)
	}
	return true, nil
}

func (p productPayload) toProduct() domain.Product {
	return domain.Product{
		Name:         strings.TrimSpace(p.Name),
		Price:        p.Price,
		Discontinued: p.Discontinued,
		FamilyID:     p.FamilyID,
		OnboardDate:  domain.Today(),
	}
}

func bindProduct(c echo.Context) (*productPayload, error) {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return nil, handleValidationError(c, err)
	}
	if payload.Price.IsNegative() {
		return nil, negativePrice(c, payload.Price)
	}
	return &payload, nil
}

func negativePrice(c echo.Context, price decimal.Decimal) error {
	return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price cannot be negative", price.String())
}

// @Summary Create a product
// @Tags products
// @Param request body productPayload true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} webserver.ErrorResponse "Unknown family"
// @Security Bearer
// @Router /api/products [post]
func createProduct(c echo.Context) error {
	payload, err := bindProduct(c)
	if payload == nil {
		return err
	}
	if valid, err := checkFamilies(c, payload.FamilyID); !valid {
		return err
	}
	product := payload.toProduct()
	if err := GetDB(c).Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, product)
}

// @Summary Create many products at once
// @Tags products
// @Param request body []productPayload true "Products"
// @Success 200 {array} domain.Product
// @Failure 400 {object} webserver.ErrorResponse "Unknown family"
// @Security Bearer
// @Router /api/products/batch [post]
func createProducts(c echo.Context) error {
	var payloads []productPayload
	if err := c.Bind(&payloads); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse products", err.Error())
	}
	if len(payloads) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No products given", nil)
	}
	ids := make([]int64, 0, len(payloads))
	for i := range payloads {
		if err := c.Validate(&payloads[i]); err != nil {
			return handleValidationError(c, err)
		}
		if payloads[i].Price.IsNegative() {
			return negativePrice(c, payloads[i].Price)
		}
		ids = append(ids, payloads[i].FamilyID)
	}
	if valid, err := checkFamilies(c, ids...); !valid {
		return err
	}

	products := make([]domain.Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.toProduct())
	}
	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create products", err.Error())
	}
	return ok(c, products)
}

type imageForm struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	FamilyID int64
	Photo    []byte
	Filename string
}

// parseImageForm reads the multipart fields; a nil form means a response was written
func parseImageForm(c echo.Context, withID bool) (*imageForm, error) {
	form := &imageForm{Name: strings.TrimSpace(c.FormValue("name"))}
	if withID {
		id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
		if err != nil {
			return nil, fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
		}
		form.ID = id
	}
	if form.Name == "" {
		return nil, fail(c, http.StatusBadRequest, "MISSING_NAME", "Product name is required", nil)
	}
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_PRICE", "Invalid price", c.FormValue("price"))
	}
	if price.IsNegative() {
		return nil, negativePrice(c, price)
	}
	form.Price = price
	familyID, err := strconv.ParseInt(c.FormValue("family_id"), 10, 64)
	if err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_FAMILY", "Invalid family ID", nil)
	}
	form.FamilyID = familyID

	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	} else if err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read photo", err.Error())
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if form.Photo, err = io.ReadAll(src); err != nil {
		return nil, err
	}
	form.Filename = fh.Filename
	return form, nil
}

// @Summary Create a product with an optional photo
// @Tags products
// @Accept multipart/form-data
// @Param name formData string true "Name"
// @Param price formData number true "Price"
// @Param family_id formData int true "Family ID"
// @Param photo formData file false "Photo"
// @Success 200 {object} domain.Product
// @Security Bearer
// @Router /api/products/image [post]
func createProductWithImage(c echo.Context) error {
	form, err := parseImageForm(c, false)
	if form == nil {
		return err
	}
	if valid, err := checkFamilies(c, form.FamilyID); !valid {
		return err
	}
	product := domain.Product{
		Name:        form.Name,
		Price:       form.Price,
		FamilyID:    form.FamilyID,
		OnboardDate: domain.Today(),
	}
	if form.Photo != nil {
		url, err := fileStore(c).Save(c.Request().Context(), form.Photo, form.Filename, storage.ImagesFolder)
		if err != nil {
			return err
		}
		product.PhotoURL = url
	}
	if err := GetDB(c).Create(&product).Error; err != nil {
		removePhoto(c, product.PhotoURL)
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, product)
}

// removePhoto deletes a file no row points at any more
func removePhoto(c echo.Context, url string) {
	if err := fileStore(c).Delete(context.Background(), url, storage.ImagesFolder); err != nil {
		zap.L().Warn("remove product photo", zap.String("url", url), zap.Error(err))
	}
}

func findProduct(c echo.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&product).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return nil, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return &product, nil
}

// @Summary Update a product and replace its photo
// @Tags products
// @Accept multipart/form-data
// @Param id formData int true "Product ID"
// @Param name formData string true "Name"
// @Param price formData number true "Price"
// @Param family_id formData int true "Family ID"
// @Param photo formData file false "Photo"
// @Success 200 {object} domain.Product
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/image [put]
func updateProductWithImage(c echo.Context) error {
	form, err := parseImageForm(c, true)
	if form == nil {
		return err
	}
	product, err := findProduct(c, form.ID)
	if product == nil {
		return err
	}
	if valid, err := checkFamilies(c, form.FamilyID); !valid {
		return err
	}
	product.Name = form.Name
	product.Price = form.Price
	product.FamilyID = form.FamilyID
	product.OnboardDate = domain.Today()
	previous := product.PhotoURL
	if form.Photo != nil {
		url, err := fileStore(c).Save(c.Request().Context(), form.Photo, form.Filename, storage.ImagesFolder)
		if err != nil {
			return err
		}
		product.PhotoURL = url
	}
	if err := GetDB(c).Save(product).Error; err != nil {
		if product.PhotoURL != previous {
			removePhoto(c, product.PhotoURL)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	if product.PhotoURL != previous {
		removePhoto(c, previous)
	}
	return ok(c, product)
}

// @Summary Update a product
// @Tags products
// @Param request body productPayload true "Product with id"
// @Success 204
// @Failure 400 {object} webserver.ErrorResponse "Unknown family"
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products [put]
func updateProduct(c echo.Context) error {
	payload, err := bindProduct(c)
	if payload == nil {
		return err
	}
	product, err := findProduct(c, payload.ID)
	if product == nil {
		return err
	}
	if valid, err := checkFamilies(c, payload.FamilyID); !valid {
		return err
	}
	err = GetDB(c).Model(product).Updates(map[string]interface{}{
		"name":         strings.TrimSpace(payload.Name),
		"price":        payload.Price,
		"discontinued": payload.Discontinued,
		"family_id":    payload.FamilyID,
		"onboard_date": domain.Today(),
	}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func parseProductID(c echo.Context) (int64, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return 0, fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	return id, nil
}

// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 200
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/{id} [delete]
func deleteProduct(c echo.Context) error {
	id, err := parseProductID(c)
	if id == 0 {
		return err
	}
	product, err := findProduct(c, id)
	if product == nil {
		return err
	}
	if err := GetDB(c).Delete(product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return c.NoContent(http.StatusOK)
}

// @Summary Delete a product and its photo
// @Tags products
// @Param id path int true "Product ID"
// @Success 200
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/products/image/{id} [delete]
func deleteProductWithImage(c echo.Context) error {
	id, err := parseProductID(c)
	if id == 0 {
		return err
	}
	product, err := findProduct(c, id)
	if product == nil {
		return err
	}
	if err := GetDB(c).Delete(product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	removePhoto(c, product.PhotoURL)
	return c.NoContent(http.StatusOK)
}
