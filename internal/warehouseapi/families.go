package warehouseapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/gorm"
)

const familiesController = "Families"

type familyPayload struct {
	Name string `json:"name" validate:"required,max=150"`
}

// FamilySummary is a family with its product count and average price
type FamilySummary struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TotalProducts int             `json:"total_products"`
	AveragePrice  decimal.Decimal `json:"average_price" swaggertype:"string"`
	Products      []ProductItem   `json:"products"`
}

// ProductItem is the short form of a product
type ProductItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func registerFamilyRoutes(s *webserver.Server) {
	s.ApiGET("/families/sync", listFamiliesSync)
	s.ApiGET("/families/rawsql", listFamilyNamesRawSQL)
	s.ApiGET("/families/async", listFamiliesAsync)
	s.ApiGET("/families", listFamilies)
	s.RootGET("/allfamilies", listAllFamilies)
	s.ApiGET("/families/products", listFamiliesWithProducts)
	s.ApiGET("/families/namecontains/:text", listFamiliesNameContains)
	s.ApiGET("/families/sorted", listFamiliesSorted)
	s.ApiGET("/families/sorted/:asc", listFamiliesSortedBy)
	s.ApiGET("/families/sql/:id", getFamilySQL)
	s.ApiPOST("/families/sql", createFamilySQL)
	s.ApiGET("/families/:id", getFamily)
	s.ApiGET("/families/:id/products", getFamilyWithProducts)
	s.ApiGET("/families/:id/summary", getFamilySummary)
	s.ApiPOST("/families", createFamily)
	s.ApiPUT("/families/:id", updateFamily)
	s.ApiDELETE("/families/:id", deleteFamily)
}

// listFamiliesSync runs without the request context, the query cannot be cancelled
// @Summary List families without the request context
// @Tags families
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families/sync [get]
func listFamiliesSync(c echo.Context) error {
	var families []domain.Family
	if err := appContext(c).DB().Find(&families).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	return ok(c, families)
}

// @Summary Family names read with database/sql
// @Tags families
// @Success 200 {array} string
// @Router /api/families/rawsql [get]
func listFamilyNamesRawSQL(c echo.Context) error {
	sqlDB, err := appContext(c).DB().DB()
	if err != nil {
		return err
	}
	rows, err := sqlDB.QueryContext(c.Request().Context(), "SELECT id, name FROM families ORDER BY id")
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return ok(c, names)
}

func findFamilies(c echo.Context, order string) error {
	var families []domain.Family
	db := GetDB(c)
	if order != "" {
		db = db.Order(order)
	}
	if err := db.Find(&families).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	return ok(c, families)
}

// @Summary List families with the request context
// @Tags families
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families/async [get]
func listFamiliesAsync(c echo.Context) error {
	countRequest(c)
	return findFamilies(c, "")
}

// @Summary List families
// @Tags families
// @Produce json
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families [get]
func listFamilies(c echo.Context) error {
	countRequest(c)
	return findFamilies(c, "")
}

// @Summary List families from the root route
// @Tags families
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /allfamilies [get]
func listAllFamilies(c echo.Context) error {
	countRequest(c)
	audit(c, "Query", familiesController)
	return findFamilies(c, "")
}

func parseFamilyID(c echo.Context) (int64, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return 0, fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid family ID", nil)
	}
	return id, nil
}

// @Summary Get a family
// @Tags families
// @Param id path int true "Family ID"
// @Success 200 {object} domain.Family
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/{id} [get]
func getFamily(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	audit(c, fmt.Sprintf("Query family by id %d", id), familiesController)

	var family domain.Family
	if err := GetDB(c).Where("id = ?", id).First(&family).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", err.Error())
	}
	return ok(c, family)
}

// @Summary Families whose name contains text
// @Tags families
// @Param text path string true "Text"
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families/namecontains/{text} [get]
func listFamiliesNameContains(c echo.Context) error {
	text := c.Param("text")
	var families []domain.Family
	if err := GetDB(c).Where("name LIKE ?", "%"+text+"%").Find(&families).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	audit(c, "Query families containing "+text, familiesController)
	return ok(c, families)
}

// @Summary Families sorted by name
// @Tags families
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families/sorted [get]
func listFamiliesSorted(c echo.Context) error {
	audit(c, "Query families sorted", familiesController)
	return findFamilies(c, "name ASC")
}

// @Summary Families sorted by name in the given direction
// @Tags families
// @Param asc path bool true "Ascending"
// @Success 200 {array} domain.Family
// @Failure 400 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/sorted/{asc} [get]
func listFamiliesSortedBy(c echo.Context) error {
	asc, err := strconv.ParseBool(c.Param("asc"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ORDER", "Sort order must be true or false", c.Param("asc"))
	}
	audit(c, "Query families with sort order", familiesController)
	if asc {
		return findFamilies(c, "name ASC")
	}
	return findFamilies(c, "name DESC")
}

// @Summary Get a family with its products
// @Tags families
// @Param id path int true "Family ID"
// @Success 200 {object} domain.Family
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/{id}/products [get]
func getFamilyWithProducts(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	var family domain.Family
	if err := GetDB(c).Preload("Products").Where("id = ?", id).First(&family).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", err.Error())
	}
	audit(c, fmt.Sprintf("Query family %d and its products", id), familiesController)
	return ok(c, family)
}

// @Summary Families with their products
// @Tags families
// @Success 200 {array} domain.Family
// @Security Bearer
// @Router /api/families/products [get]
func listFamiliesWithProducts(c echo.Context) error {
	var families []domain.Family
	if err := GetDB(c).Preload("Products").Find(&families).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query families", err.Error())
	}
	return ok(c, families)
}

// @Summary Family with product count and average price
// @Tags families
// @Param id path int true "Family ID"
// @Success 200 {object} FamilySummary
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/{id}/summary [get]
func getFamilySummary(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	var family domain.Family
	if err := GetDB(c).Preload("Products").Where("id = ?", id).First(&family).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", err.Error())
	}
	return ok(c, summarizeFamily(family))
}

func summarizeFamily(family domain.Family) FamilySummary {
	summary := FamilySummary{
		ID:            family.ID,
		Name:          family.Name,
		TotalProducts: len(family.Products),
		AveragePrice:  decimal.Zero,
		Products:      make([]ProductItem, 0, len(family.Products)),
	}
	prices := make([]decimal.Decimal, 0, len(family.Products))
	for _, p := range family.Products {
		prices = append(prices, p.Price)
		summary.Products = append(summary.Products, ProductItem{ID: p.ID, Name: p.Name})
	}
	if len(prices) > 0 {
		summary.AveragePrice = decimal.Avg(prices[0], prices[1:]...).Round(2)
	}
	return summary
}

// @Summary Get a family with a raw SQL query
// @Tags families
// @Param id path int true "Family ID"
// @Success 200 {object} domain.Family
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/sql/{id} [get]
func getFamilySQL(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	var family domain.Family
	res := GetDB(c).Raw("SELECT * FROM families WHERE id = ?", id).Scan(&family)
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	}
	return ok(c, family)
}

func bindFamily(c echo.Context) (*familyPayload, error) {
	var payload familyPayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse family", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := c.Validate(&payload); err != nil {
		return nil, handleValidationError(c, err)
	}
	return &payload, nil
}

// @Summary Create a family with a raw SQL insert
// @Tags families
// @Param request body familyPayload true "Family"
// @Success 200 {object} map[string]int64
// @Security Bearer
// @Router /api/families/sql [post]
func createFamilySQL(c echo.Context) error {
	payload, err := bindFamily(c)
	if payload == nil {
		return err
	}
	res := GetDB(c).Exec("INSERT INTO families(name) VALUES(?)", payload.Name)
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create family", res.Error.Error())
	}
	return ok(c, map[string]int64{"rows_affected": res.RowsAffected})
}

// @Summary Create a family
// @Tags families
// @Param request body familyPayload true "Family"
// @Success 201 {object} domain.Family
// @Security Bearer
// @Router /api/families [post]
func createFamily(c echo.Context) error {
	payload, err := bindFamily(c)
	if payload == nil {
		return err
	}
	family := domain.Family{Name: payload.Name}
	if err := GetDB(c).Create(&family).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create family", err.Error())
	}
	return created(c, family)
}

// @Summary Rename a family
// @Tags families
// @Param id path int true "Family ID"
// @Param request body familyPayload true "Family"
// @Success 200 {object} domain.Family
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/{id} [put]
func updateFamily(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	payload, err := bindFamily(c)
	if payload == nil {
		return err
	}
	var family domain.Family
	if err := GetDB(c).Where("id = ?", id).First(&family).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", err.Error())
	}
	family.Name = payload.Name
	if err := GetDB(c).Model(&family).Update("name", family.Name).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update family", err.Error())
	}
	return ok(c, family)
}

// @Summary Delete a family without products
// @Tags families
// @Param id path int true "Family ID"
// @Success 204
// @Failure 400 {object} webserver.ErrorResponse "Family still has products"
// @Failure 404 {object} webserver.ErrorResponse
// @Security Bearer
// @Router /api/families/{id} [delete]
func deleteFamily(c echo.Context) error {
	id, err := parseFamilyID(c)
	if id == 0 {
		return err
	}
	var family domain.Family
	if err := GetDB(c).Where("id = ?", id).First(&family).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "FAMILY_NOT_FOUND", "Family not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query family", err.Error())
	}

	var products int64
	if err := GetDB(c).Model(&domain.Product{}).Where("family_id = ?", id).Count(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	if products > 0 {
		return fail(c, http.StatusBadRequest, "FAMILY_IN_USE",
			fmt.Sprintf("Family %d still has %d products", id, products), nil)
	}
	if err := GetDB(c).Delete(&family).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete family", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
