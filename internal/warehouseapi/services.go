package warehouseapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/stockbill/internal/webserver"
)

// LifetimeIDs shows which values are shared per process, per request or per use
type LifetimeIDs struct {
	Transient  string `json:"transient"`
	Transient2 string `json:"transient2"`
	Scoped     string `json:"scoped"`
	Scoped2    string `json:"scoped2"`
	Singleton  string `json:"singleton"`
	Singleton2 string `json:"singleton2"`
}

// lifetimeProbe is built on every use and captures the ids visible to it
type lifetimeProbe struct {
	transient string
	scoped    string
	singleton string
}

func newLifetimeProbe(c echo.Context, s *webserver.Server) *lifetimeProbe {
	return &lifetimeProbe{
		transient: uuid.NewString(),
		scoped:    webserver.ScopedID(c),
		singleton: s.SingletonID(),
	}
}

func registerServiceRoutes(s *webserver.Server) {
	s.PubGET("/services", listLifetimes(s))
	s.PubGET("/services/counter", getCounter)
}

// @Summary Ids of singleton, scoped and transient values
// @Tags services
// @Success 200 {object} LifetimeIDs
// @Router /api/services [get]
func listLifetimes(s *webserver.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		direct := newLifetimeProbe(c, s)
		nested := newLifetimeProbe(c, s)
		return ok(c, LifetimeIDs{
			Transient:  direct.transient,
			Transient2: nested.transient,
			Scoped:     direct.scoped,
			Scoped2:    nested.scoped,
			Singleton:  direct.singleton,
			Singleton2: nested.singleton,
		})
	}
}

// @Summary Requests counted so far
// @Tags services
// @Success 200 {integer} int64
// @Router /api/services/counter [get]
func getCounter(c echo.Context) error {
	return ok(c, appContext(c).Counter().Value())
}
