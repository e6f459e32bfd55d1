package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config es la configuración raíz de la aplicación.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"          env:"SERVER_HOST"          env-default:"0.0.0.0"`
	Port         int           `yaml:"port"          env:"SERVER_PORT"          env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig: con DSN vacío el servicio corre con los repos in-memory
// (modo dev), igual que el router del MVP.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DB_DSN"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-default:"dev-secret-change-me"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
	Issuer    string        `yaml:"issuer"     env:"AUTH_ISSUER"     env-default:"petcare-api"`
}

type UploadsConfig struct {
	Dir string `yaml:"dir" env:"UPLOAD_DIR" env-default:"./uploads"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load lee configuración desde un yaml opcional más variables de entorno.
// Prioridad: ENV > yaml > defaults. La ruta del archivo sale de
// CONFIG_PATH (fallback "./config.yaml"); si no existe y no fue pedida
// explícitamente, se carga solo de ENV + defaults.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}
