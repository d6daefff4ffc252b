package config

import (
	"errors"
	"log/slog"
	"net"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/htmllog/pkg/htmllog"
	"github.com/angeloszaimis/htmllog/pkg/logger"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// EnvPrefix is prepended to every environment override, e.g.
// HTMLLOG_REPORT_LOGS_PATH.
const EnvPrefix = "HTMLLOG"

type ReportConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	LogsPath    string `mapstructure:"logs_path"`
}

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load reads configuration. An empty path searches ./config and . for
// htmllog.yaml; a missing file there is not an error. An explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("report.title", "htmllog")
	v.SetDefault("report.description", "")
	v.SetDefault("report.logs_path", "./logs")
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", logger.LevelInfo)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("htmllog")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Report,
			validation.By(func(value interface{}) error {
				rc, ok := value.(ReportConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ReportConfig")
				}
				return validation.ValidateStruct(&rc,
					validation.Field(&rc.Title,
						validation.Required,
						validation.Match(htmllog.TitlePattern).Error("must only contain letters, digits, '.', '_' or '-'"),
					),
					validation.Field(&rc.LogsPath, validation.Required),
				)
			}),
		),
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(ValidateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelError),
					),
				)
			}),
		),
	)
}

// ValidateHostPort checks a host:port listen address. The host may be empty.
func ValidateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
