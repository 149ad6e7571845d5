package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "LIBRARY"
	configName = "library"
	configType = "yaml"
)

// Journal engines and postgres adapters which can be configured.
const (
	JournalMemory   = "memory"
	JournalPostgres = "postgres"
	AdapterPGX      = "pgx"
	AdapterSQL      = "sql"
	AdapterSQLX     = "sqlx"
)

var (
	// ErrReadingConfigFailed is returned when a config file exists but can't be read.
	ErrReadingConfigFailed = errors.New("reading config failed")

	// ErrInvalidConfig is returned when the loaded settings don't validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds all settings of the library process.
type Config struct {
	LibraryName string  `mapstructure:"library_name" validate:"required"`
	LogLevel    string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string  `mapstructure:"log_format" validate:"oneof=text json"`
	CatalogFile string  `mapstructure:"catalog_file"`
	Journal     Journal `mapstructure:"journal"`
	Metrics     Metrics `mapstructure:"metrics"`
}

// Journal selects where the lending history is kept.
type Journal struct {
	Engine     string `mapstructure:"engine" validate:"oneof=memory postgres"`
	Adapter    string `mapstructure:"adapter" validate:"oneof=pgx sql sqlx"`
	DSN        string `mapstructure:"dsn" validate:"required_if=Engine postgres"`
	ReplicaDSN string `mapstructure:"replica_dsn"`
	TableName  string `mapstructure:"table_name" validate:"required"`
}

// Metrics configures the prometheus metrics of the process.
type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("library_name", "City Library")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("catalog_file", "")
	v.SetDefault("journal.engine", JournalMemory)
	v.SetDefault("journal.adapter", AdapterPGX)
	v.SetDefault("journal.dsn", PostgresDefaultDSN())
	v.SetDefault("journal.replica_dsn", "")
	v.SetDefault("journal.table_name", "events")
	v.SetDefault("metrics.enabled", false)
}

// Load reads the settings. With an empty configFile, library.yaml is looked up in the working
// directory and its absence is fine; an explicitly named file must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Join(ErrReadingConfigFailed, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Join(ErrReadingConfigFailed, err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &config, nil
}

// SlogLevel maps LogLevel to a slog.Level, falling back to Info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}
