package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Floor    FloorConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	MaxConns   int32
	SQLitePath string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// Enabled is false when no address is configured; the service then reads straight from the database.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type FloorConfig struct {
	DefaultTenant string
	GridSize      float64
	SnapToGrid    bool
	CanvasWidth   float64
	CanvasHeight  float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "floor-layout")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SQLITE_PATH", "data/floor.db")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("DEFAULT_TENANT", "default")
	viper.SetDefault("GRID_SIZE", 8)
	viper.SetDefault("SNAP_TO_GRID", true)
	viper.SetDefault("CANVAS_WIDTH", 1200)
	viper.SetDefault("CANVAS_HEIGHT", 800)

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASS"),
			MaxConns:   viper.GetInt32("DB_MAX_CONNS"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			TTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
		Floor: FloorConfig{
			DefaultTenant: viper.GetString("DEFAULT_TENANT"),
			GridSize:      viper.GetFloat64("GRID_SIZE"),
			SnapToGrid:    viper.GetBool("SNAP_TO_GRID"),
			CanvasWidth:   viper.GetFloat64("CANVAS_WIDTH"),
			CanvasHeight:  viper.GetFloat64("CANVAS_HEIGHT"),
		},
	}

	return config, nil
}
