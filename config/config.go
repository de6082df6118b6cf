package config

import (
	"encoding/json"
	"os"

	"github.com/0x0FACED/northwind/internal/cache"
	"github.com/0x0FACED/northwind/internal/customer"
	"github.com/0x0FACED/northwind/internal/database"
	"github.com/0x0FACED/northwind/internal/server"
)

type AppConfig struct {
	Customer customer.Config `json:"customer"`
	Cache    cache.Config    `json:"cache"`
	Logger   LoggerConfig    `json:"logger"`
	Server   server.Config   `json:"server"`
	Database database.Config `json:"database"`
}

type LoggerConfig struct {
	Level   string `json:"level"`
	LogsDir string `json:"logs_dir"`
}

func Load() (*AppConfig, error) {
	var cfg AppConfig

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.json"
	}

	cfgFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer cfgFile.Close()

	if err := json.NewDecoder(cfgFile).Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
