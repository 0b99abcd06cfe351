package invoicingapi

import (
	"github.com/labstack/echo/v4"
	"github.com/talkincode/stockbill/internal/webserver"
	"gorm.io/gorm"
)

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return webserver.Fail(c, status, code, message, details)
}

func handleValidationError(c echo.Context, err error) error {
	return webserver.HandleValidationError(c, err)
}

// GetDB returns the request scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}
