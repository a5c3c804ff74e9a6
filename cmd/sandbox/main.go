package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	sandboxcmd "github.com/louisbranch/redoubt/internal/cmd/sandbox"
	"github.com/louisbranch/redoubt/internal/platform/config"
)

func main() {
	cfg, err := sandboxcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[SANDBOX] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sandboxcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("sandbox: %v", err)
	}
}
