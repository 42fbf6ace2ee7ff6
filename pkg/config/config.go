package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"todoboard/pkg/keymaps"
)

// EnvPrefix prefixes every environment override, e.g. TODOBOARD_API_URL
const EnvPrefix = "TODOBOARD"

// Config holds the application configuration
type Config struct {
	APIURL        string            `mapstructure:"api_url"`
	Token         string            `mapstructure:"token"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	ToastDuration time.Duration     `mapstructure:"toast_duration"`
	Verbose       bool              `mapstructure:"verbose"`
	LogFile       string            `mapstructure:"log_file"`
	KeyMap        map[string]string `mapstructure:"keymap"`
	StylesFile    string            `mapstructure:"styles_file"`

	// Used by the serve command
	Database string `mapstructure:"database"`
	Addr     string `mapstructure:"addr"`
}

// Styles holds the application colors
type Styles struct {
	// UI element colors
	BorderColor string `mapstructure:"border_color"`
	AccentColor string `mapstructure:"accent_color"`

	// Text colors
	NormalTextColor   string `mapstructure:"normal_text_color"`
	MutedTextColor    string `mapstructure:"muted_text_color"`
	SelectedTextColor string `mapstructure:"selected_text_color"`
	SelectedBgColor   string `mapstructure:"selected_bg_color"`
	ErrorColor        string `mapstructure:"error_color"`
	SuccessColor      string `mapstructure:"success_color"`

	// Status badge colors
	FinishColor   string `mapstructure:"finish_color"`
	UnfinishColor string `mapstructure:"unfinish_color"`
}

// DefaultStyles are written to the styles file on first run
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "252",
		MutedTextColor:    "244",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		SuccessColor:      "42",
		FinishColor:       "42",
		UnfinishColor:     "75",
	}
}

// DefaultDir is where the config and styles files live unless overridden
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "todoboard"), nil
}

// setDefaults registers every default on v
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("timeout", "10s")
	v.SetDefault("toast_duration", "4s")
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))
	v.SetDefault("database", filepath.Join(configDir, "todos.db"))
	v.SetDefault("addr", ":8080")
}

// Load reads the configuration into v. Flags bound to v beforehand take precedence
// over environment variables, which take precedence over the file.
func Load(v *viper.Viper, configPath string) (Config, Styles, error) {
	if configPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, Styles{}, err
		}
		configPath = filepath.Join(dir, "config.json")
	}
	configDir := filepath.Dir(configPath)

	setDefaults(v, configDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return Config{}, Styles{}, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, create default config
		if err := writeDefaults(configPath, configDir); err != nil {
			return Config{}, Styles{}, fmt.Errorf("write default config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Styles{}, fmt.Errorf("decode config: %w", err)
	}

	styles, err := LoadStyles(cfg.StylesFile)
	if err != nil {
		return cfg, styles, fmt.Errorf("error loading styles: %w", err)
	}
	return cfg, styles, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// writeDefaults writes only the defaults, never values that came from env or flags
func writeDefaults(configPath, configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	d := viper.New()
	setDefaults(d, configDir)
	return d.WriteConfigAs(configPath)
}

// LoadStyles loads the styles file, creating it with defaults when missing
func LoadStyles(stylesPath string) (Styles, error) {
	defaults := DefaultStyles()
	if stylesPath == "" {
		return defaults, nil
	}

	v := viper.New()
	v.SetDefault("border_color", defaults.BorderColor)
	v.SetDefault("accent_color", defaults.AccentColor)
	v.SetDefault("normal_text_color", defaults.NormalTextColor)
	v.SetDefault("muted_text_color", defaults.MutedTextColor)
	v.SetDefault("selected_text_color", defaults.SelectedTextColor)
	v.SetDefault("selected_bg_color", defaults.SelectedBgColor)
	v.SetDefault("error_color", defaults.ErrorColor)
	v.SetDefault("success_color", defaults.SuccessColor)
	v.SetDefault("finish_color", defaults.FinishColor)
	v.SetDefault("unfinish_color", defaults.UnfinishColor)
	v.SetConfigFile(stylesPath)

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return defaults, err
		}
		// Create the directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
			return defaults, err
		}
		if err := v.WriteConfigAs(stylesPath); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	var loaded Styles
	if err := v.Unmarshal(&loaded); err != nil {
		return defaults, err
	}
	return loaded, nil
}
