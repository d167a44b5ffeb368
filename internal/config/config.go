package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Provide(Load)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	ListenAddr string

	// DBPath is the location of the local SQLite file.
	DBPath string

	// Fallback shop identity used until admin settings are saved.
	ShopName    string
	ShopAddress string
	ShopPhone   string

	// Printer transport defaults.
	PrinterHost string
	PrinterPort int

	ExportDir string
}

// Load loads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "kirana"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", "127.0.0.1:7070"),
		DBPath:      getenv("DATABASE_PATH", "kirana.db"),
		ShopName:    getenv("SHOP_NAME", "Your Shop Name"),
		ShopAddress: getenv("SHOP_ADDRESS", "Your Shop Address"),
		ShopPhone:   getenv("SHOP_PHONE", "Your Phone Number"),
		PrinterHost: getenv("PRINTER_HOST", ""),
		PrinterPort: getenvInt("PRINTER_PORT", 9100),
		ExportDir:   getenv("EXPORT_DIR", "exports"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
