package config

import (
	"os"
	"strings"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultJobName     = "fridge"
	DefaultLogLevel    = "info"
	DefaultPushTimeout = 15
	DefaultWorkers     = 4
	defaultHistoryDB   = "/var/lib/fridgewatch/runs.db"
)

type Config struct {
	LogsDir        string `mapstructure:"logs_dir"`
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	MachineName    string `mapstructure:"machine_name"`
	JobName        string `mapstructure:"job_name"`
	PushTimeout    int    `mapstructure:"push_timeout"`
	Workers        int    `mapstructure:"workers"`
	LogLevel       string `mapstructure:"log_level"`
	RunHistory     bool   `mapstructure:"run_history"`
	RunHistoryDB   string `mapstructure:"run_history_db"`
}

// Load reads configuration from a TOML file, FRIDGEWATCH_* environment
// variables and command-line flags, in increasing order of precedence.
// The config file is located via --config, the FRIDGEWATCH_CONFIG
// environment variable, or the default search paths.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	errFactory := errors.New()

	flags := pflag.NewFlagSet("fridgewatch", pflag.ContinueOnError)
	configFile := flags.String("config", "", "Path to config file")
	flags.String("logs-dir", "", "Root directory of the controller's log folders")
	flags.String("pushgateway-url", "", "Pushgateway endpoint URL")
	flags.String("machine-name", "", "Instance label attached to pushed metrics")
	flags.String("job-name", DefaultJobName, "Pushgateway job name")
	flags.Int("push-timeout", DefaultPushTimeout, "Push timeout in seconds")
	flags.Int("workers", DefaultWorkers, "Number of concurrent file parsers")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("run-history", false, "Record per-run summaries in a local database")
	flags.String("run-history-db", defaultHistoryDB, "Path to the run history database")

	if err := flags.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	// Required keys get empty defaults so environment-only values are still
	// seen by Unmarshal.
	v.SetDefault("logs_dir", "")
	v.SetDefault("pushgateway_url", "")
	v.SetDefault("machine_name", "")
	v.SetDefault("job_name", DefaultJobName)
	v.SetDefault("push_timeout", DefaultPushTimeout)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("run_history", false)
	v.SetDefault("run_history_db", defaultHistoryDB)

	v.SetEnvPrefix("FRIDGEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	switch {
	case *configFile != "":
		v.SetConfigFile(*configFile)
	case os.Getenv("FRIDGEWATCH_CONFIG") != "":
		v.SetConfigFile(os.Getenv("FRIDGEWATCH_CONFIG"))
	default:
		v.SetConfigName("fridgewatch")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/fridgewatch")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.WithMessage(errors.ErrReadConfig,
				"Failed to read config file: "+err.Error())
		}
	}

	// Explicitly set flags override file and environment values
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.LogsDir == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "logs_dir is required")
	}
	if c.PushgatewayURL == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "pushgateway_url is required")
	}
	if c.MachineName == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "machine_name is required")
	}
	if c.PushTimeout <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "push_timeout must be positive")
	}
	if c.Workers <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "workers must be positive")
	}
	if c.RunHistory && c.RunHistoryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "run_history_db is required when run_history is enabled")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errFactory.Wrap(errors.ErrInvalidLogLevel, err)
	}

	return nil
}
