package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultPort         = 8080
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

type Config struct {
	Port          int           `yaml:"port"`
	ConfigFile    string        `yaml:"-"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	SeedTasks     bool          `yaml:"seed_tasks"`
	StrictOptions bool          `yaml:"strict_options"`
	CORSOrigin    string        `yaml:"cors_origin"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

// Defaults returns a Config pre-populated with default values.
func Defaults() Config {
	return Config{
		Port:          DefaultPort,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		SeedTasks:     true,
		StrictOptions: true,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		IdleTimeout:   DefaultIdleTimeout,
	}
}

// Loader remembers the parsed CLI flags and the config file path so the
// layered configuration can be rebuilt when the file changes.
type Loader struct {
	path  string
	flags Config
	set   map[string]bool
}

// NewLoader parses args and loads the .env file. It does not read the yaml
// file; call Load for the merged Config.
func NewLoader(args []string) (*Loader, error) {
	var flags Config
	var envFile string

	fs := flag.NewFlagSet("taskpoll", flag.ContinueOnError)

	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to yaml config file")
	fs.StringVar(&envFile, "env-file", ".env", "Path to .env file (ignored if missing)")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&flags.LogFormat, "log-format", "", "Log format (text or json)")
	fs.BoolVar(&flags.SeedTasks, "seed", true, "Seed the task list with example tasks")
	fs.BoolVar(&flags.StrictOptions, "strict-options", true, "Reject options whose poll does not exist")
	fs.StringVar(&flags.CORSOrigin, "cors-origin", "", "Allowed CORS origin (default: echo request Origin)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %q: %w", envFile, err)
	}

	path := flags.ConfigFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	return &Loader{path: path, flags: flags, set: set}, nil
}

// Path returns the yaml config file path, or "" when none was given.
func (l *Loader) Path() string {
	return l.path
}

// Load builds the configuration from, in increasing precedence: defaults,
// the yaml config file, environment variables, and CLI flags.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()
	if l.path != "" {
		if err := loadFile(l.path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.ConfigFile = l.path

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if l.set["p"] {
		cfg.Port = l.flags.Port
	}
	if l.set["log-level"] {
		cfg.LogLevel = l.flags.LogLevel
	}
	if l.set["log-format"] {
		cfg.LogFormat = l.flags.LogFormat
	}
	if l.set["seed"] {
		cfg.SeedTasks = l.flags.SeedTasks
	}
	if l.set["strict-options"] {
		cfg.StrictOptions = l.flags.StrictOptions
	}
	if l.set["cors-origin"] {
		cfg.CORSOrigin = l.flags.CORSOrigin
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlags builds the configuration from, in increasing precedence:
// defaults, the yaml config file, environment variables (after loading
// the .env file), and CLI flags.
func ParseFlags(args []string) (Config, error) {
	l, err := NewLoader(args)
	if err != nil {
		return Config{}, err
	}
	return l.Load()
}

// Load reads the yaml config file at path on top of the defaults.
// Environment variables and flags are not consulted.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.ConfigFile = path
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}
	if v := os.Getenv("SEED_TASKS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid SEED_TASKS env variable")
		}
		cfg.SeedTasks = b
	}
	if v := os.Getenv("STRICT_OPTIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid STRICT_OPTIONS env variable")
		}
		cfg.StrictOptions = b
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range [1, 65535]", cfg.Port)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q unknown: want text|json", cfg.LogFormat)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.IdleTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
