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
	"github.com/talkincode/stockbill/internal/invoicingapi"
	"github.com/talkincode/stockbill/internal/webserver"
)

var (
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop, recreate and reseed all tables, then exit")
)

// @title        stockbill invoicing
// @version      1.0
// @description  Clients and invoices.
// @BasePath     /
func main() {
	flag.Parse()

	cfg, err := config.LoadConfig("invoicing", *conffile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err = cfg.InitDirs(); err != nil {
		log.Fatalf("init dirs: %v", err)
	}

	application := app.NewApplication(cfg, app.InvoicingSchema())
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

	// invoicing routes are open
	srv, err := webserver.NewServer(application, webserver.Options{
		Name:    "invoicing",
		Swagger: true,
	})
	if err != nil {
		zap.S().Fatal(err)
	}
	defer srv.Close()
	invoicingapi.Register(srv)

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
