package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/volubiks/storefront/config"
	"github.com/volubiks/storefront/internal/app"
	"github.com/volubiks/storefront/internal/storeapi"
	"github.com/volubiks/storefront/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	h bool
	v bool
	c string
)

// build-time values
var (
	BuildVersion string = "dev"
	BuildTime    string = "unknown"
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&v, "v", false, "print version")
	flag.StringVar(&c, "c", "volubiks.yml", "config file")
}

func printVersion() {
	fmt.Printf("volubiksd version %s (built %s)\n", BuildVersion, BuildTime)
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		return
	}
	if v {
		printVersion()
		return
	}

	cfg := config.LoadConfig(c)
	a := app.NewApplication(cfg)
	a.Init(cfg)
	defer a.Release()

	webserver.Init(a)
	storeapi.InitRouter()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return webserver.Listen()
	})

	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sig:
			zap.S().Infof("received signal %s, shutting down", s)
			return fmt.Errorf("signal %s", s)
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		zap.S().Info(err)
	}
}
