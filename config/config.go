package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	Port         int    `json:"port"`
	DatabasePath string `json:"databasePath"`
	GeminiAPIKey string `json:"geminiApiKey"`
	GeminiModel  string `json:"geminiModel"`
	OpenBrowser  bool   `json:"openBrowser"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

var configFilePath = "./cardkeep_config.json"

func defaults(c Config) Config {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./cardkeep.db"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash"
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		// an unreadable file must not leave the server on a zero
		// config (empty db path, port 0)
		cfg = defaults(Config{OpenBrowser: true})
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		cfg = defaults(Config{OpenBrowser: true})
		return cfg, err
	}
	cfg = defaults(tempCfg)

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = defaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
