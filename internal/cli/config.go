package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/firstwords/internal/logging"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix prefixes environment overrides, e.g. FIRSTWORDS_LOG_LEVEL.
	envPrefix = "FIRSTWORDS"

	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeySyncStrategy    = "sync_strategy"
	cfgKeyCorpusPath      = "corpus.path"
	cfgKeyCorpusSortByAge = "corpus.sort_by_age"
	cfgKeyLogLevel        = "log.level"
	cfgKeyLogFormat       = "log.format"
)

// envKeys are the settings that may be overridden from the environment.
// data_dir is resolved separately so that FIRSTWORDS_DATA_DIR keeps its
// place below config.yaml.
var envKeys = []string{
	cfgKeySyncStrategy,
	cfgKeyCorpusPath,
	cfgKeyCorpusSortByAge,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// appConfig is the content of config.yaml.
type appConfig struct {
	Backend      string       `mapstructure:"backend" yaml:"backend" validate:"required,oneof=sqlite"`
	DataDir      string       `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	SyncStrategy string       `mapstructure:"sync_strategy" yaml:"sync_strategy" validate:"omitempty,oneof=immediate on_close"`
	Corpus       corpusConfig `mapstructure:"corpus" yaml:"corpus"`
	Log          logConfig    `mapstructure:"log" yaml:"log"`
}

type corpusConfig struct {
	// Path of a corpus CSV. Empty selects the built-in corpus.
	Path      string `mapstructure:"path" yaml:"path"`
	SortByAge bool   `mapstructure:"sort_by_age" yaml:"sort_by_age"`
}

type logConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

func defaultConfig() appConfig {
	return appConfig{
		Backend:      types.BackendSQLite,
		SyncStrategy: types.SyncImmediate,
		Log: logConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
	}
}

// backendConfig returns the Cupboard configuration for this invocation.
func (a *app) backendConfig() types.Config {
	return types.Config{
		Backend:      a.cfg.Backend,
		DataDir:      a.dataDir,
		SyncStrategy: a.cfg.SyncStrategy,
	}
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. Environment variables with the
// FIRSTWORDS_ prefix override file values. The result is validated.
func loadConfig(configDir string) (appConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return appConfig{}, systemError("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultConfig()); err != nil {
		return appConfig{}, systemError("write default config: %w", err)
	}

	def := defaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDataDir, def.DataDir)
	v.SetDefault(cfgKeySyncStrategy, def.SyncStrategy)
	v.SetDefault(cfgKeyCorpusPath, def.Corpus.Path)
	v.SetDefault(cfgKeyCorpusSortByAge, def.Corpus.SortByAge)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return appConfig{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return appConfig{}, fmt.Errorf("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, cfg appConfig) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# firstwords configuration\n# corpus.path: leave empty for the built-in word list\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// validateConfig reports the first invalid setting as a
// *types.ValidationError named by its config key.
func validateConfig(cfg appConfig) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}
	msg := "is invalid"
	switch fe.Tag() {
	case "required":
		msg = "must not be empty"
	case "oneof":
		msg = fmt.Sprintf("%q is not one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return &types.ValidationError{Field: key, Message: msg}
}
