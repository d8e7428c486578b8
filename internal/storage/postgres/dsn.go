package postgres

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/progress-tracker/config"
)

// DSN renders cfg as a keyword/value connection string understood by both
// lib/pq and pgx. An empty password is omitted.
func DSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	parts := []string{
		"host=" + cfg.Host,
		fmt.Sprintf("port=%d", cfg.Port),
		"user=" + cfg.User,
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+cfg.Password)
	}
	parts = append(parts, "dbname="+cfg.Name, "sslmode="+sslMode)
	return strings.Join(parts, " ")
}
