package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// драйверы хранилища
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"development"` // environment
	HTTPServer  HTTPServerConfig  `yaml:"http_server"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Storage     StorageConfig     `yaml:"storage"`
	Mongo       MongoConfig       `yaml:"mongo"`
	Database    DatabaseConfig    `yaml:"database"`
	Migrations  MigrationsConfig  `yaml:"migrations"`
	Pagination  PaginationConfig  `yaml:"pagination"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DiagnosticsConfig: отдельный сервер с /metrics и /health.
// Без значения по умолчанию: cleanenv подставил бы его поверх явного false.
type DiagnosticsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address" env-default:"localhost:9090"`
}

// StorageConfig выбирает реализацию шлюза к хранилищу
type StorageConfig struct {
	Driver         string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"10s"`
}

// MongoConfig настройка документной БД
type MongoConfig struct {
	URI                string `yaml:"-" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database           string `yaml:"database" env-default:"products_db"`
	ProductsCollection string `yaml:"products_collection" env-default:"products"`
	OrdersCollection   string `yaml:"orders_collection" env-default:"orders"`
}

// DatabaseConfig структура по работе с Postgres
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// PaginationConfig: размер страницы, если limit не передан
type PaginationConfig struct {
	DefaultLimit int64 `yaml:"default_limit" env-default:"10"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}
