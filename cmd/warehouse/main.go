package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/stockbill/config"
	_ "github.com/talkincode/stockbill/docs"
	"github.com/talkincode/stockbill/internal/app"
	"github.com/talkincode/stockbill/internal/oplog"
	"github.com/talkincode/stockbill/internal/warehouseapi"
	"github.com/talkincode/stockbill/internal/webserver"
)

var (
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop, recreate and reseed all tables, then exit")
)

// @title        stockbill warehouse
// @version      1.0
// @description  Families, products, users and the operation log.
// @BasePath     /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	flag.Parse()

	cfg, err := config.LoadConfig("warehouse", *conffile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err = cfg.InitDirs(); err != nil {
		log.Fatalf("init dirs: %v", err)
	}

	application := app.NewApplication(cfg, app.WarehouseSchema())
	if err = application.Init(); err != nil {
		log.Fatalf("init application: %v", err)
	}
	defer application.Release()

	if *initdb {
		if err = application.InitDb(); err != nil {
			zap.S().Fatal(err)
		}
		return
	}

	logs := oplog.NewService(oplog.NewGormRepository(application.DB()))
	err = application.AddJob(app.Job{
		Name: "purge operation log",
		Spec: "@daily",
		Run: func() {
			n, err := logs.Purge(context.Background(), cfg.Auth.LogRetentionDay)
			if err != nil {
				zap.L().Error("purge operation log", zap.Error(err))
				return
			}
			zap.L().Info("operation log purged", zap.Int64("rows", n))
		},
	})
	if err != nil {
		zap.S().Fatal(err)
	}

	srv, err := webserver.NewServer(application, webserver.Options{
		Name:    "warehouse",
		Secured: true,
		Swagger: true,
	})
	if err != nil {
		zap.S().Fatal(err)
	}
	defer srv.Close()
	warehouseapi.Register(srv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	application.StartBackgroundJobs(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	if err = g.Wait(); err != nil {
		zap.S().Error(err)
	}
}
