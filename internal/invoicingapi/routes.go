// Package invoicingapi serves clients and their invoices.
package invoicingapi

import "github.com/talkincode/stockbill/internal/webserver"

// Register adds every invoicing route to s
func Register(s *webserver.Server) {
	registerClientRoutes(s)
	registerInvoiceRoutes(s)
}
