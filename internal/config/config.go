package config

import (
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ModelFileConfig holds inference backend settings from the YAML config file.
type ModelFileConfig struct {
	BaseURL        string `yaml:"base_url"`
	Name           string `yaml:"name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	Port    string
	GinMode string
	Debug   bool

	// Inference backend
	ModelBaseURL        string
	ModelName           string
	ModelTimeout        time.Duration
	ModelProbeOnStartup bool

	// Server
	ServerShutdownTimeoutSeconds int

	// CORS
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string

	// Model section of the YAML config file, applied over env values when present.
	Model *ModelFileConfig `yaml:"model"`
}

var AppConfig *Config

const DefaultModelTimeout = 30 * time.Second

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
		Debug:   getEnvOrDefault("DEBUG", "false") == "true",

		// Inference backend
		ModelBaseURL:        getEnvOrDefault("MODEL_BASE_URL", ""),
		ModelName:           getEnvOrDefault("MODEL_NAME", "Michau/t5-base-en-generate-headline"),
		ModelTimeout:        time.Duration(getEnvAsInt("MODEL_TIMEOUT_SECONDS", int(DefaultModelTimeout/time.Second))) * time.Second,
		ModelProbeOnStartup: getEnvOrDefault("MODEL_PROBE_ON_STARTUP", "true") == "true",

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "debug"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	// Load settings from an optional configuration file. The file only carries
	// the model section, so environment variables stay authoritative for
	// everything else.
	configFilePath := getEnvOrDefault("CONFIG_FILE", "config.yaml")

	configFile, err := os.Open(configFilePath)
	defer func() {
		if configFile != nil {
			configFile.Close()
		}
	}()

	if err != nil {
		log.Printf("No config file at %s, using environment variables only", configFilePath)
		return
	}

	log.Printf("Loading config file: %v", configFilePath)

	if err := LoadConfigFile(configFile, AppConfig); err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	if AppConfig.ModelBaseURL == "" {
		log.Println("Warning: MODEL_BASE_URL is not set. The service will run on fallback title generation only.")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

// LoadConfigFile decodes a YAML config file into config and applies the model
// section over the env-derived values.
func LoadConfigFile(reader io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(config); err != nil {
		return err
	}

	if config.Model != nil {
		if config.Model.BaseURL != "" {
			config.ModelBaseURL = config.Model.BaseURL
		}
		if config.Model.Name != "" {
			config.ModelName = config.Model.Name
		}
		if config.Model.TimeoutSeconds > 0 {
			config.ModelTimeout = time.Duration(config.Model.TimeoutSeconds) * time.Second
		}
	}

	return nil
}
