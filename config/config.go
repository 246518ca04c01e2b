package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	Timezone  string
	DBPath    string
	LogLevel  string
	LogFormat string

	SeedRoutesCSV   string
	SeedYieldsXLSX  string
	SeedYieldsSheet string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file loaded: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	return AppConfig{
		Port:            get("PORT", "8080"),
		Timezone:        get("TZ", "Europe/Prague"),
		DBPath:          get("DB_PATH", "greens.db"),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogFormat:       get("LOG_FORMAT", "json"),
		SeedRoutesCSV:   get("SEED_ROUTES_CSV", ""),
		SeedYieldsXLSX:  get("SEED_YIELDS_XLSX", ""),
		SeedYieldsSheet: get("SEED_YIELDS_SHEET", "Sheet1"),
	}
}

// Location is the farm's calendar. Delivery and harvest days are counted in it.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[cfg] unknown TZ %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
