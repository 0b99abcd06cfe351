package webserver

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UnhandledErrorResponse is written for errors no handler answered itself
type UnhandledErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func statusCode(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}

// HTTPErrorHandler answers echo errors with the error envelope. Any other
// error is logged, appended to errLog and answered with a 500.
func HTTPErrorHandler(errLog io.Writer) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok && m != "" {
				msg = m
			} else if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(he.Code)
				return
			}
			_ = Fail(c, he.Code, statusCode(he.Code), msg, nil)
			return
		}

		zap.L().Error("unhandled request error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		if errLog != nil {
			_, _ = fmt.Fprintf(errLog, "%s - %s\n", time.Now().Format("2006-01-02 15:04:05"), err.Error())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}
		_ = c.JSON(http.StatusInternalServerError, UnhandledErrorResponse{
			Message: err.Error(),
			Error:   fmt.Sprintf("%+v", err),
		})
	}
}
