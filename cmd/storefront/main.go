// Package main provides the storefront CLI: it restores local state, talks
// to the lesson backend, and renders the visible catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	storefrontcmd "github.com/paulkamani9/overtune/internal/cmd/storefront"
	"github.com/paulkamani9/overtune/internal/platform/config"
	"github.com/paulkamani9/overtune/internal/platform/otel"
)

func main() {
	cfg, err := storefrontcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[STOREFRONT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "overtune-storefront")
	if err != nil {
		log.Printf("otel setup: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	if err := storefrontcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("storefront: %v", err)
	}
}
