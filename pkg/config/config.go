package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP        HTTP
	Logger      Logger
	Database    Database
	Permissions Permissions
	Layout      Layout
	JWTSecret   string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
}

type HTTP struct {
	Port         string `env:"PORT" envDefault:"3000"`
	CORSOrigins  string `env:"CORS_ORIGINS" envDefault:"*"`
	DeviceCookie string `env:"DEVICE_COOKIE" envDefault:"clinic_device"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Database struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"`
	URL        string `env:"DATABASE_URL"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" envDefault:"clinic_portal"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"clinic-portal.db"`
}

type Permissions struct {
	BaseURL         string        `env:"PERMISSION_API_URL" envDefault:"http://localhost:8080"`
	OwnerPath       string        `env:"OWNER_PERMISSIONS_PATH" envDefault:"/api/v1/sidebar/permissions"`
	AgentPath       string        `env:"AGENT_PERMISSIONS_PATH" envDefault:"/api/v1/agent/permissions"`
	DoctorStaffPath string        `env:"DOCTOR_STAFF_PERMISSIONS_PATH" envDefault:"/api/v1/doctor-staff/permissions"`
	Timeout         time.Duration `env:"PERMISSION_TIMEOUT" envDefault:"0s"`
}

type Layout struct {
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"50"`
	MaxEditors   int `env:"LAYOUT_MAX_EDITORS" envDefault:"1000"`
}

// Load reads envPath when it exists and parses the environment into Config
func Load(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
