package warehouseapi

import (
	"github.com/labstack/echo/v4"
	"github.com/talkincode/stockbill/internal/app"
	"github.com/talkincode/stockbill/internal/oplog"
	"github.com/talkincode/stockbill/internal/storage"
	"github.com/talkincode/stockbill/internal/webserver"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func created(c echo.Context, data interface{}) error {
	return webserver.Created(c, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return webserver.Fail(c, status, code, message, details)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, rows, total, page, pageSize)
}

func parsePagination(c echo.Context) (int, int) {
	return webserver.ParsePagination(c)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return webserver.ParseIDParam(c, name)
}

func handleValidationError(c echo.Context, err error) error {
	return webserver.HandleValidationError(c, err)
}

// GetDB returns the request scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func appContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

// countRequest bumps the shared request counter
func countRequest(c echo.Context) {
	appContext(c).Counter().Increment()
}

// audit writes an operation log row for the current caller
func audit(c echo.Context, action, controller string) {
	svc := oplog.NewService(oplog.NewGormRepository(GetDB(c)))
	if err := svc.Add(c.Request().Context(), c.RealIP(), action, controller); err != nil {
		zap.L().Warn("write operation log failed", zap.String("action", action), zap.Error(err))
	}
}

func fileStore(c echo.Context) storage.FileStore {
	return storage.NewLocalStore(appContext(c).Config().Web.StaticDir)
}
