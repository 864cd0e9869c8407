package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/MJE43/haunted-slots-go/internal/api"
	"github.com/MJE43/haunted-slots-go/internal/config"
	"github.com/MJE43/haunted-slots-go/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	noJournal := flag.Bool("no-journal", false, "disable the spin audit journal")
	flag.Parse()

	logger := log.New(os.Stdout, "[SLOTD] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	gameCfg, err := cfg.Game.SlotConfig()
	if err != nil {
		logger.Fatalf("game config: %v", err)
	}

	var journal *store.Journal
	if !*noJournal {
		journal, err = store.Open(cfg.JournalPath)
		if err != nil {
			logger.Fatalf("open journal %s: %v", cfg.JournalPath, err)
		}
		defer journal.Close()
		logger.Printf("journaling spins to %s", cfg.JournalPath)
	}

	srv := api.NewServer(gameCfg, journal)
	logger.Printf("listening on %s (volatility=%s rtp=%s)", cfg.Listen, gameCfg.Volatility, gameCfg.RTPMode)
	if err := http.ListenAndServe(cfg.Listen, srv.Routes()); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
