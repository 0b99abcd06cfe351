package warehouseapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/stockbill/internal/oplog"
	"github.com/talkincode/stockbill/internal/webserver"
)

func registerLogRoutes(s *webserver.Server) {
	s.ApiGET("/logs", listOperationLogs)
}

// @Summary Operation audit rows, newest first
// @Tags logs
// @Success 200 {array} domain.OperationLog
// @Security Bearer
// @Router /api/logs [get]
func listOperationLogs(c echo.Context) error {
	logs, err := oplog.NewService(oplog.NewGormRepository(GetDB(c))).List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operation logs", err.Error())
	}
	return ok(c, logs)
}
