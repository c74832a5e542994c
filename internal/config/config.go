// Package config loads apt-ext settings from the config file and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
)

// Keys shared between the config file and command-line flags.
const (
	KeyRoot         = "root"
	KeyAdminDir     = "admin_dir"
	KeyDataDir      = "data_dir"
	KeyExclude      = "exclude"
	KeyInstaller    = "installer"
	KeyLister       = "lister"
	KeyListerColumn = "lister_column"
	KeySourcesList  = "sources_list"
)

// Config holds the effective settings for one invocation.
type Config struct {
	Root         string   `mapstructure:"root" toml:"root"`
	AdminDir     string   `mapstructure:"admin_dir" toml:"admin_dir"`
	DataDir      string   `mapstructure:"data_dir" toml:"data_dir"`
	Exclude      []string `mapstructure:"exclude" toml:"exclude"`
	Installer    []string `mapstructure:"installer" toml:"installer"`
	Lister       []string `mapstructure:"lister" toml:"lister"`
	ListerColumn int      `mapstructure:"lister_column" toml:"lister_column"`
	SourcesList  string   `mapstructure:"sources_list" toml:"sources_list"`
}

// Dir returns the apt-ext config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/apt-ext if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "apt-ext"), nil
}

// SetDefaults registers the built-in value of every key on v.
func SetDefaults(v *viper.Viper, exclude []string) {
	v.SetDefault(KeyRoot, "/")
	v.SetDefault(KeyAdminDir, "/var/lib/dpkg")
	v.SetDefault(KeyDataDir, "~/.apt-ext")
	v.SetDefault(KeyExclude, exclude)
	v.SetDefault(KeyInstaller, []string{"apt-get", "install"})
	v.SetDefault(KeyLister, []string{"apt-mark", "showmanual"})
	v.SetDefault(KeyListerColumn, 1)
	v.SetDefault(KeySourcesList, "/etc/apt/sources.list")
}

// Load reads the config file into v and returns the effective Config.
// An explicit path must exist; the default config.toml in Dir() is optional.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	dataDir, err := expandHome(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings that would otherwise fail deep inside a verb.
func (c *Config) Validate() error {
	if len(c.Installer) == 0 {
		return errors.New("config: installer must not be empty")
	}
	if len(c.Lister) == 0 {
		return errors.New("config: lister must not be empty")
	}
	if c.ListerColumn < 1 {
		return fmt.Errorf("config: lister_column must be at least 1, got %d", c.ListerColumn)
	}
	if c.DataDir == "" {
		return errors.New("config: data_dir must not be empty")
	}
	return nil
}

// DBPath returns the backup history database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "apt-ext.db")
}

// BackupDir returns the directory for backups written without a destination.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// TOML renders the effective configuration in config-file form.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
