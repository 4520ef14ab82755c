// Package config provides Viper-based configuration loading for the forge tools.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Claim store backends.
const (
	ClaimStoreMemory   = "memory"
	ClaimStorePostgres = "postgres"
)

// GenerationConfig holds the dungeon and character parameters of a run.
type GenerationConfig struct {
	// MaxDepth bounds the depth a caller may request.
	MaxDepth int `mapstructure:"max_depth"`
	// ObjGood and ObjGreat cap the good and great percentages.
	ObjGood  int `mapstructure:"obj_good"`
	ObjGreat int `mapstructure:"obj_great"`
	// Luck is "none", "good" or "bad".
	Luck        string `mapstructure:"luck"`
	Personality string `mapstructure:"personality"`
	PlayerLevel int    `mapstructure:"player_level"`
	// Seed fixes the random stream; 0 draws a fresh seed.
	Seed uint64 `mapstructure:"seed"`
	// ClaimStore selects where fixed artifact claims persist: "memory" or "postgres".
	ClaimStore string `mapstructure:"claim_store"`
}

// ContentConfig locates the YAML and Lua content.
type ContentConfig struct {
	ItemsDir     string `mapstructure:"items_dir"`
	EgosDir      string `mapstructure:"egos_dir"`
	ArtifactsDir string `mapstructure:"artifacts_dir"`
	// ScriptsDir may be empty to disable post-enchant hooks.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit caps opcodes per hook call; 0 uses the default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Generation GenerationConfig `mapstructure:"generation"`
	Content    ContentConfig    `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	// The database is only consulted by the postgres claim store.
	if c.Generation.ClaimStore == ClaimStorePostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGeneration(c.Generation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGeneration(g GenerationConfig) error {
	var errs []string
	if g.MaxDepth < 1 || g.MaxDepth > 128 {
		errs = append(errs, fmt.Sprintf("generation.max_depth must be 1-128, got %d", g.MaxDepth))
	}
	if g.ObjGood < 0 || g.ObjGood > 100 {
		errs = append(errs, fmt.Sprintf("generation.obj_good must be 0-100, got %d", g.ObjGood))
	}
	if g.ObjGreat < 0 || g.ObjGreat > 100 {
		errs = append(errs, fmt.Sprintf("generation.obj_great must be 0-100, got %d", g.ObjGreat))
	}
	validLuck := map[string]bool{"none": true, "good": true, "bad": true}
	if !validLuck[g.Luck] {
		errs = append(errs, fmt.Sprintf("generation.luck must be one of [none, good, bad], got %q", g.Luck))
	}
	if g.PlayerLevel < 0 {
		errs = append(errs, fmt.Sprintf("generation.player_level must be >= 0, got %d", g.PlayerLevel))
	}
	if g.ClaimStore != ClaimStoreMemory && g.ClaimStore != ClaimStorePostgres {
		errs = append(errs, fmt.Sprintf("generation.claim_store must be one of [memory, postgres], got %q", g.ClaimStore))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
	}
	if c.EgosDir == "" {
		errs = append(errs, "content.egos_dir must not be empty")
	}
	if c.ArtifactsDir == "" {
		errs = append(errs, "content.artifacts_dir must not be empty")
	}
	if c.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ITEMFORGE_ prefix
	v.SetEnvPrefix("ITEMFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "itemforge")
	v.SetDefault("database.password", "itemforge")
	v.SetDefault("database.name", "itemforge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("generation.max_depth", 128)
	v.SetDefault("generation.obj_good", 75)
	v.SetDefault("generation.obj_great", 20)
	v.SetDefault("generation.luck", "none")
	v.SetDefault("generation.personality", "")
	v.SetDefault("generation.player_level", 1)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.claim_store", ClaimStoreMemory)

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.egos_dir", "content/egos")
	v.SetDefault("content.artifacts_dir", "content/artifacts")
	v.SetDefault("content.scripts_dir", "content/scripts")
	v.SetDefault("content.script_instruction_limit", 0)
}
