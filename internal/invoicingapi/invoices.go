package invoicingapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type invoicePayload struct {
	Number   int64           `json:"number"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
	Paid     bool            `json:"paid"`
	ClientID int64           `json:"client_id" validate:"required"`
}

type invoiceCSV struct {
	Number   int64  `csv:"number"`
	Date     string `csv:"date"`
	Amount   string `csv:"amount"`
	Paid     bool   `csv:"paid"`
	ClientID int64  `csv:"client_id"`
}

func registerInvoiceRoutes(s *webserver.Server) {
	s.ApiGET("/invoices", listInvoices)
	s.ApiGET("/invoices/export", exportInvoices)
	s.ApiGET("/invoices/paid", listPaidInvoices)
	s.ApiGET("/invoices/amountover/:amount", listInvoicesOver)
	s.ApiGET("/invoices/:number", getInvoice)
	s.ApiPOST("/invoices", createInvoice)
	s.ApiPUT("/invoices", updateInvoice)
	s.ApiDELETE("/invoices/:number", deleteInvoice)
}

func findInvoices(c echo.Context, query string, args ...interface{}) error {
	db := GetDB(c)
	if query != "" {
		db = db.Where(query, args...)
	}
	var invoices []domain.Invoice
	if err := db.Order("number").Find(&invoices).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	return ok(c, invoices)
}

// @Summary List invoices
// @Tags invoices
// @Success 200 {array} domain.Invoice
// @Router /api/invoices [get]
func listInvoices(c echo.Context) error {
	return findInvoices(c, "")
}

// @Summary Paid invoices
// @Tags invoices
// @Success 200 {array} domain.Invoice
// @Router /api/invoices/paid [get]
func listPaidInvoices(c echo.Context) error {
	return findInvoices(c, "paid = ?", true)
}

// @Summary Invoices with an amount greater than the given one
// @Tags invoices
// @Param amount path number true "Amount"
// @Success 200 {array} domain.Invoice
// @Failure 400 {object} webserver.ErrorResponse
// @Router /api/invoices/amountover/{amount} [get]
func listInvoicesOver(c echo.Context) error {
	amount, err := decimal.NewFromString(c.Param("amount"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a decimal number", c.Param("amount"))
	}
	return findInvoices(c, "amount > ?", amount)
}

func parseNumber(c echo.Context) (int64, error) {
	number, err := webserver.ParseIDParam(c, "number")
	if err != nil {
		return 0, fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Invalid invoice number", nil)
	}
	return number, nil
}

func findInvoice(c echo.Context, number int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := GetDB(c).Where("number = ?", number).First(&invoice).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found", nil)
	} else if err != nil {
		return nil, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoice", err.Error())
	}
	return &invoice, nil
}

// @Summary Get an invoice by number
// @Tags invoices
// @Param number path int true "Invoice number"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/invoices/{number} [get]
func getInvoice(c echo.Context) error {
	number, err := parseNumber(c)
	if number == 0 {
		return err
	}
	invoice, err := findInvoice(c, number)
	if invoice == nil {
		return err
	}
	return ok(c, invoice)
}

// bindInvoice parses and checks the body; a nil invoice means a response was written
func bindInvoice(c echo.Context) (*domain.Invoice, error) {
	var payload invoicePayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse invoice", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return nil, handleValidationError(c, err)
	}
	if payload.Amount.IsNegative() {
		return nil, fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount cannot be negative", payload.Amount.String())
	}
	date := domain.Today()
	if payload.Date != "" {
		d, err := time.ParseInLocation(dateLayout, payload.Date, time.Local)
		if err != nil {
			return nil, fail(c, http.StatusBadRequest, "INVALID_DATE", "Date must look like 2006-01-02", payload.Date)
		}
		date = d
	}

	var clients int64
	if err := GetDB(c).Model(&domain.Client{}).Where("id = ?", payload.ClientID).Count(&clients).Error; err != nil {
		return nil, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query client", err.Error())
	}
	if clients == 0 {
		return nil, fail(c, http.StatusBadRequest, "CLIENT_NOT_FOUND",
			fmt.Sprintf("Client %d does not exist", payload.ClientID), nil)
	}
	return &domain.Invoice{
		Number:   payload.Number,
		Date:     date,
		Amount:   payload.Amount,
		Paid:     payload.Paid,
		ClientID: payload.ClientID,
	}, nil
}

// @Summary Create an invoice
// @Tags invoices
// @Param request body invoicePayload true "Invoice"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} webserver.ErrorResponse "Unknown client"
// @Router /api/invoices [post]
func createInvoice(c echo.Context) error {
	invoice, err := bindInvoice(c)
	if invoice == nil {
		return err
	}
	invoice.Number = 0
	if err := GetDB(c).Create(invoice).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create invoice", err.Error())
	}
	return ok(c, invoice)
}

// @Summary Update an invoice by the number in the body
// @Tags invoices
// @Param request body invoicePayload true "Invoice with number"
// @Success 204
// @Failure 400 {object} webserver.ErrorResponse "Unknown client"
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/invoices [put]
func updateInvoice(c echo.Context) error {
	invoice, err := bindInvoice(c)
	if invoice == nil {
		return err
	}
	existing, err := findInvoice(c, invoice.Number)
	if existing == nil {
		return err
	}
	if err := GetDB(c).Model(existing).Updates(map[string]interface{}{
		"date":      invoice.Date,
		"amount":    invoice.Amount,
		"paid":      invoice.Paid,
		"client_id": invoice.ClientID,
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update invoice", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary Delete an invoice
// @Tags invoices
// @Param number path int true "Invoice number"
// @Success 204
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/invoices/{number} [delete]
func deleteInvoice(c echo.Context) error {
	number, err := parseNumber(c)
	if number == 0 {
		return err
	}
	invoice, err := findInvoice(c, number)
	if invoice == nil {
		return err
	}
	if err := GetDB(c).Delete(invoice).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete invoice", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary Export all invoices as CSV
// @Tags invoices
// @Produce text/csv
// @Success 200 {file} file
// @Router /api/invoices/export [get]
func exportInvoices(c echo.Context) error {
	var invoices []domain.Invoice
	if err := GetDB(c).Order("number").Find(&invoices).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	rows := make([]*invoiceCSV, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, &invoiceCSV{
			Number:   inv.Number,
			Date:     inv.Date.Format(dateLayout),
			Amount:   inv.Amount.StringFixed(2),
			Paid:     inv.Paid,
			ClientID: inv.ClientID,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="invoices.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
