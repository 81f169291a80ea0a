package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBDSN            string
	SummaryFile      string
	LogFile          string
	ProgressInterval time.Duration
}

func Load() Config {
	// Optional .env file; missing is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopmate.db"
	} // sqlite file in project root
	summary := os.Getenv("SUMMARY_FILE")
	if summary == "" {
		summary = "./summaries.jsonl"
	}
	logFile := os.Getenv("LOG_FILE")

	interval := 20 * time.Second
	if s := os.Getenv("PROGRESS_INTERVAL"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		} else {
			log.Printf("[config] ignoring bad PROGRESS_INTERVAL=%q", s)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, SummaryFile: summary, LogFile: logFile, ProgressInterval: interval}
	log.Printf("[config] PORT=%s DB_DSN=%s SUMMARY_FILE=%s PROGRESS_INTERVAL=%s", cfg.Port, cfg.DBDSN, cfg.SummaryFile, cfg.ProgressInterval)
	return cfg
}
