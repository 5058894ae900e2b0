package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	motmedelConfigErrors "github.com/Motmedel/static_server_go/pkg/config/errors"
	motmedelEnv "github.com/Motmedel/static_server_go/pkg/env"
	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	"github.com/Motmedel/static_server_go/pkg/flagutil"
	"github.com/Motmedel/static_server_go/pkg/http/static/path_resolver"
	"github.com/Motmedel/static_server_go/pkg/memory"
	"github.com/jessevdk/go-flags"
)

const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 3000
	DefaultRootDirectory   = "./public"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRateLimitBurst  = 20
	ProductionEnvironment  = "production"
)

// Config is the explicit configuration of the server. Values are taken, in
// increasing order of precedence, from Default, the TOML config file, the
// environment and the command line.
type Config struct {
	ConfigFile        string            `long:"config" env:"CONFIG_FILE" description:"Path to a TOML config file" toml:"-"`
	Host              string            `long:"host" env:"HOST" description:"Listen host" toml:"host"`
	Port              int               `long:"port" env:"PORT" description:"Listen port" toml:"port"`
	CacheEnabled      flagutil.Toggle   `long:"cache-enabled" env:"CACHE_ENABLED" description:"Cache file contents in memory (only \"false\" disables)" toml:"cache_enabled"`
	RootDirectory     string            `long:"root" env:"ROOT_DIRECTORY" description:"Directory to serve" toml:"root_directory"`
	DefaultResource   string            `long:"default-resource" env:"DEFAULT_RESOURCE" description:"Resource served for /" toml:"default_resource"`
	Environment       string            `long:"environment" env:"NODE_ENV" description:"Deployment environment; \"production\" enables memory logging and JSON logs" toml:"environment"`
	LogLevel          flagutil.LogLevel `long:"log-level" env:"LOG_LEVEL" description:"Log level" toml:"log_level"`
	MemoryLogInterval time.Duration     `long:"memory-log-interval" env:"MEMORY_LOG_INTERVAL" description:"Interval between memory usage log records in production" toml:"memory_log_interval"`
	ShutdownTimeout   time.Duration     `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" description:"Time allowed for in-flight requests on shutdown" toml:"shutdown_timeout"`
	RateLimit         float64           `long:"rate-limit" env:"RATE_LIMIT" description:"Requests per second per client address; 0 disables" toml:"rate_limit"`
	RateLimitBurst    int               `long:"rate-limit-burst" env:"RATE_LIMIT_BURST" description:"Burst size of the per-client rate limit" toml:"rate_limit_burst"`
}

func Default() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		CacheEnabled:      true,
		RootDirectory:     DefaultRootDirectory,
		DefaultResource:   path_resolver.DefaultResource,
		LogLevel:          flagutil.LogLevel{Level: slog.LevelInfo},
		MemoryLogInterval: memory.DefaultLogInterval,
		ShutdownTimeout:   DefaultShutdownTimeout,
		RateLimitBurst:    DefaultRateLimitBurst,
	}
}

func (config *Config) Production() bool {
	return strings.EqualFold(config.Environment, ProductionEnvironment)
}

func (config *Config) Address() string {
	return net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
}

func (config *Config) Validate() error {
	if config == nil {
		return motmedelErrors.NewWithTrace(motmedelConfigErrors.ErrNilConfig)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %d", motmedelConfigErrors.ErrBadPort, config.Port),
			config.Port,
		)
	}

	if config.RootDirectory == "" {
		return motmedelErrors.NewWithTrace(motmedelConfigErrors.ErrEmptyRoot)
	}

	defaultResource := config.DefaultResource
	if defaultResource == "" || strings.ContainsAny(defaultResource, `/\`) || defaultResource == ".." {
		return motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %q", motmedelConfigErrors.ErrBadDefaultResource, defaultResource),
			defaultResource,
		)
	}

	return nil
}

// DecodeFile overlays the values of the TOML file at path onto config.
func (config *Config) DecodeFile(path string) error {
	metaData, err := toml.DecodeFile(path, config)
	if err != nil {
		return motmedelErrors.New(fmt.Errorf("toml decode file: %w", err), path)
	}

	if undecoded := metaData.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %s", motmedelConfigErrors.ErrUndecodedKeys, strings.Join(keys, ", ")),
			path,
		)
	}

	return nil
}

type configFileOptions struct {
	ConfigFile string `long:"config" env:"CONFIG_FILE"`
}

// Load builds a Config from the defaults, an optional config file, the
// environment and args. A request for help yields an error wrapping a
// *flags.Error of type flags.ErrHelp.
func Load(args []string) (*Config, error) {
	var fileOptions configFileOptions
	if _, err := flags.NewParser(&fileOptions, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return nil, motmedelErrors.New(fmt.Errorf("flags parse args (config file): %w", err), args)
	}

	config := Default()
	if fileOptions.ConfigFile != "" {
		if err := config.DecodeFile(fileOptions.ConfigFile); err != nil {
			return nil, fmt.Errorf("decode file: %w", err)
		}
	}

	if config.Environment == "" {
		config.Environment, _ = motmedelEnv.GetFirstEnv("ENVIRONMENT", "GO_ENV")
	}

	parser := flags.NewParser(config, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, err
		}
		return nil, motmedelErrors.New(fmt.Errorf("flags parse args: %w", err), args)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return config, nil
}
