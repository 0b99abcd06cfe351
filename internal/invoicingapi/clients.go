package invoicingapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/stockbill/internal/domain"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/gorm"
)

// errUnpaidInvoices stops a client deletion inside the transaction
var errUnpaidInvoices = errors.New("client has unpaid invoices")

type clientPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=150"`
	City string `json:"city" validate:"max=150"`
}

// ClientSummary is a client with its invoice totals
type ClientSummary struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	City         string          `json:"city"`
	InvoiceCount int             `json:"invoice_count"`
	TotalAmount  decimal.Decimal `json:"total_amount" swaggertype:"string"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount" swaggertype:"string"`
}

func registerClientRoutes(s *webserver.Server) {
	s.ApiGET("/clients", listClients)
	s.ApiGET("/clients/city", listClientsByCity)
	s.ApiGET("/clients/summary", listClientSummaries)
	s.ApiGET("/clients/:id/invoices", listClientInvoices)
	s.ApiPOST("/clients", createClient)
	s.ApiPUT("/clients", updateClient)
	s.ApiDELETE("/clients/:id", deleteClient)
}

// @Summary List clients
// @Tags clients
// @Success 200 {array} domain.Client
// @Router /api/clients [get]
func listClients(c echo.Context) error {
	var clients []domain.Client
	if err := GetDB(c).Order("id").Find(&clients).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}
	return ok(c, clients)
}

// @Summary Clients located in a city
// @Tags clients
// @Param city query string true "City"
// @Success 200 {array} domain.Client
// @Router /api/clients/city [get]
func listClientsByCity(c echo.Context) error {
	var clients []domain.Client
	if err := GetDB(c).Where("city = ?", c.QueryParam("city")).Order("id").Find(&clients).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}
	return ok(c, clients)
}

// @Summary Clients with invoice count, total and unpaid amounts
// @Tags clients
// @Success 200 {array} ClientSummary
// @Router /api/clients/summary [get]
func listClientSummaries(c echo.Context) error {
	var clients []domain.Client
	if err := GetDB(c).Preload("Invoices").Order("id").Find(&clients).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}
	summaries := make([]ClientSummary, 0, len(clients))
	for _, client := range clients {
		summaries = append(summaries, summarizeClient(client))
	}
	return ok(c, summaries)
}

func summarizeClient(client domain.Client) ClientSummary {
	summary := ClientSummary{
		ID:           client.ID,
		Name:         client.Name,
		City:         client.City,
		InvoiceCount: len(client.Invoices),
		TotalAmount:  decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}
	for _, inv := range client.Invoices {
		summary.TotalAmount = summary.TotalAmount.Add(inv.Amount)
		if !inv.Paid {
			summary.UnpaidAmount = summary.UnpaidAmount.Add(inv.Amount)
		}
	}
	return summary
}

func parseClientID(c echo.Context) (int64, error) {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return 0, fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	return id, nil
}

func findClient(c echo.Context, id int64) (*domain.Client, error) {
	var client domain.Client
	if err := GetDB(c).Where("id = ?", id).First(&client).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found", nil)
	} else if err != nil {
		return nil, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query client", err.Error())
	}
	return &client, nil
}

// @Summary Invoices of one client
// @Tags clients
// @Param id path int true "Client ID"
// @Success 200 {array} domain.Invoice
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/clients/{id}/invoices [get]
func listClientInvoices(c echo.Context) error {
	id, err := parseClientID(c)
	if id == 0 {
		return err
	}
	client, err := findClient(c, id)
	if client == nil {
		return err
	}
	var invoices []domain.Invoice
	if err := GetDB(c).Where("client_id = ?", id).Order("number").Find(&invoices).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query invoices", err.Error())
	}
	return ok(c, invoices)
}

func bindClient(c echo.Context) (*clientPayload, error) {
	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.City = strings.TrimSpace(payload.City)
	if err := c.Validate(&payload); err != nil {
		return nil, handleValidationError(c, err)
	}
	return &payload, nil
}

// @Summary Create a client
// @Tags clients
// @Param request body clientPayload true "Client"
// @Success 200 {object} domain.Client
// @Router /api/clients [post]
func createClient(c echo.Context) error {
	payload, err := bindClient(c)
	if payload == nil {
		return err
	}
	client := domain.Client{Name: payload.Name, City: payload.City}
	if err := GetDB(c).Create(&client).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create client", err.Error())
	}
	return ok(c, client)
}

// @Summary Update a client by the id in the body
// @Tags clients
// @Param request body clientPayload true "Client with id"
// @Success 204
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/clients [put]
func updateClient(c echo.Context) error {
	payload, err := bindClient(c)
	if payload == nil {
		return err
	}
	client, err := findClient(c, payload.ID)
	if client == nil {
		return err
	}
	if err := GetDB(c).Model(client).Updates(map[string]interface{}{
		"name": payload.Name,
		"city": payload.City,
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update client", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary Delete a client with no unpaid invoices
// @Description Paid invoices of the client are deleted with it.
// @Tags clients
// @Param id path int true "Client ID"
// @Success 204
// @Failure 400 {object} webserver.ErrorResponse "Client has unpaid invoices"
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/clients/{id} [delete]
func deleteClient(c echo.Context) error {
	id, err := parseClientID(c)
	if id == 0 {
		return err
	}
	client, err := findClient(c, id)
	if client == nil {
		return err
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		var unpaid int64
		if err := tx.Model(&domain.Invoice{}).Where("client_id = ? AND paid = ?", id, false).Count(&unpaid).Error; err != nil {
			return err
		}
		if unpaid > 0 {
			return errUnpaidInvoices
		}
		if err := tx.Where("client_id = ?", id).Delete(&domain.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
	if errors.Is(err, errUnpaidInvoices) {
		return fail(c, http.StatusBadRequest, "UNPAID_INVOICES",
			"The client has unpaid invoices, settle them before deleting the client", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete client", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
