package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/stockbill/config"
	"github.com/talkincode/stockbill/pkg/metrics"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// MetricsProvider provides the request counter and the registry it lives in
type MetricsProvider interface {
	Counter() *metrics.RequestCounter
	Registry() *prometheus.Registry
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	MetricsProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb() error
}
