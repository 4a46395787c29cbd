package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr    = "0.0.0.0:5000"
	DefaultStylesheetURL = "https://cdnjs.cloudflare.com/ajax/libs/github-markdown-css/5.2.0/github-markdown.min.css"
	DefaultMaxBodyBytes  = 8 << 20
)

type Config struct {
	NotesDir      string
	ListenAddr    string
	StylesheetURL string
	MaxBodyBytes  int64
	LogLevel      string
	LogPretty     bool
	DevLog        string
}

type Option struct {
	Key     string
	Default any
	Comment string
}

// Options lists every recognised key with its default.
func Options() []Option {
	return []Option{
		{Key: "notes_dir", Default: defaultNotesDir(), Comment: "Directory holding one <slug>.txt file per note"},
		{Key: "listen_addr", Default: DefaultListenAddr, Comment: "HTTP listen address"},
		{Key: "stylesheet_url", Default: DefaultStylesheetURL, Comment: "Stylesheet linked from the preview page"},
		{Key: "max_body_bytes", Default: DefaultMaxBodyBytes, Comment: "Largest accepted save request body"},
		{Key: "log_level", Default: "info", Comment: "debug, info, warn or error"},
		{Key: "log_pretty", Default: false, Comment: "Human readable console logs instead of JSON"},
		{Key: "dev_log", Default: "", Comment: "Also write debug logs to this file"},
	}
}

// Load resolves configuration with precedence:
// defaults < config file < .env file < environment < bound flags.
func Load(v *viper.Viper) (Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("notepad")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "notepad"))
		}
		v.AddConfigPath(".")
	}

	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := loadEnvFile(envFileName); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", envFileName, err)
	}

	v.SetEnvPrefix("notepad")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		NotesDir:      expandHome(strings.TrimSpace(v.GetString("notes_dir"))),
		ListenAddr:    strings.TrimSpace(v.GetString("listen_addr")),
		StylesheetURL: strings.TrimSpace(v.GetString("stylesheet_url")),
		MaxBodyBytes:  v.GetInt64("max_body_bytes"),
		LogLevel:      strings.TrimSpace(v.GetString("log_level")),
		LogPretty:     v.GetBool("log_pretty"),
		DevLog:        strings.TrimSpace(v.GetString("dev_log")),
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.NotesDir == "" {
		errs = append(errs, errors.New("notes_dir is required"))
	}
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr is required"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be greater than 0"))
	}
	return errors.Join(errs...)
}

// EnsureNotesDir creates the notes directory if it is missing.
func (c Config) EnsureNotesDir() error {
	if err := os.MkdirAll(c.NotesDir, 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	return nil
}

// defaultNotesDir keeps notes next to the running binary.
func defaultNotesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "notes"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "notes")
}

func expandHome(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}
