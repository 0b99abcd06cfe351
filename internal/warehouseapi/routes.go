// Package warehouseapi serves families, products, users and the audit log.
package warehouseapi

import "github.com/talkincode/stockbill/internal/webserver"

// Register adds every warehouse route to s
func Register(s *webserver.Server) {
	registerUserRoutes(s)
	registerFamilyRoutes(s)
	registerProductRoutes(s)
	registerLogRoutes(s)
	registerServiceRoutes(s)
}
