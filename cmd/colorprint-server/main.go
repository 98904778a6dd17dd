// colorprint-server: HTTP API for the box die-line nesting optimizer
//
// Build:
//   go build -o colorprint-server ./cmd/colorprint-server
//
// Run:
//   colorprint-server -addr :8080
package main

import (
	"flag"
	"log"

	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/api"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/nesting"
	"github.com/ayrtondeleonv02/COLOR-PRINT/internal/project"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("colorprint-server: ")

	addr := flag.String("addr", ":8080", "listen address")
	configPath := flag.String("config", project.DefaultConfigPath(), "application config file")
	flag.Parse()

	cfg, err := project.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	engine := nesting.NewEngine(cfg.CacheSize)
	server := api.NewServer(engine)

	log.Printf("listening on %s", *addr)
	if err := server.Run(*addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
