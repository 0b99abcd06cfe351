package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/stockbill/config"
	"github.com/talkincode/stockbill/pkg/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

// Schema names the tables one api owns and how to seed them
type Schema struct {
	Name   string
	Tables []interface{}
	Seed   func(db *gorm.DB) error
}

type Application struct {
	appConfig *config.AppConfig
	schema    Schema
	gormDB    *gorm.DB
	sched     *cron.Cron
	registry  *prometheus.Registry
	counter   *metrics.RequestCounter
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ MetricsProvider   = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig, schema Schema) *Application {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	counter, err := metrics.NewRequestCounter(schema.Name, registry)
	if err != nil {
		zap.S().Warn("request counter not exported:", err)
		counter, _ = metrics.NewRequestCounter(schema.Name, nil)
	}
	return &Application{
		appConfig: appConfig,
		schema:    schema,
		registry:  registry,
		counter:   counter,
		sched:     cron.New(cron.WithParser(cronParser)),
	}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

// Counter returns the process-wide request counter
func (a *Application) Counter() *metrics.RequestCounter {
	return a.counter
}

// Registry returns the prometheus registry served on /metrics
func (a *Application) Registry() *prometheus.Registry {
	return a.registry
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init() error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	}
	zap.ReplaceGlobals(logger)

	a.gormDB, err = OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	if err := a.MigrateDB(cfg.Database.Debug); err != nil {
		return err
	}
	if cfg.Database.Seed && a.schema.Seed != nil {
		if err := a.schema.Seed(a.gormDB); err != nil {
			zap.L().Error("seed database failed", zap.String("schema", a.schema.Name), zap.Error(err))
		}
	}

	a.initJob()
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	if err := db.Migrator().AutoMigrate(a.schema.Tables...); err != nil {
		zap.S().Error(err)
		return err
	}
	return nil
}

// InitDb drops and recreates every table of the schema, then seeds it again
// when seeding is enabled.
func (a *Application) InitDb() error {
	if err := a.gormDB.Migrator().DropTable(a.schema.Tables...); err != nil {
		return errors.Wrap(err, "drop tables")
	}
	if err := a.gormDB.Migrator().AutoMigrate(a.schema.Tables...); err != nil {
		return errors.Wrap(err, "migrate tables")
	}
	if a.appConfig.Database.Seed && a.schema.Seed != nil {
		if err := a.schema.Seed(a.gormDB); err != nil {
			return errors.Wrapf(err, "seed %s", a.schema.Name)
		}
	}
	return nil
}

// StartBackgroundJobs runs the cron scheduler until ctx is done
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	a.sched.Start()
	go func() {
		<-ctx.Done()
		<-a.sched.Stop().Done()
	}()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
