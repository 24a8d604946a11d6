package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix        = "ASKAI"
	LegacyBaseURLEnv = "VITE_API_BASE"
	DotEnvFile       = ".env"
	DefaultDir       = ".askai"
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 60 * time.Second
	DefaultSendPath  = "messages"
	DefaultLogLevel  = "warn"

	KeyBaseURL      = "api.base_url"
	KeyTimeout      = "api.timeout"
	KeySendPath     = "api.send_path"
	KeySessionPath  = "session.path"
	KeySecretsDir   = "secrets.dir"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeySingleThread = "chat.single_thread"

	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Secrets SecretsConfig
	Log     LogConfig
	Chat    ChatConfig
}

type APIConfig struct {
	BaseURL  string
	Timeout  time.Duration
	SendPath string
}

type SessionConfig struct {
	Path string
}

type SecretsConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

type ChatConfig struct {
	SingleThread bool
}

var configKeys = []string{
	KeyBaseURL,
	KeyTimeout,
	KeySendPath,
	KeySessionPath,
	KeySecretsDir,
	KeyLogLevel,
	KeyLogFormat,
	KeySingleThread,
}

// Load reads ~/.askai/config.toml (or configFile when set), a .env file in the
// working directory and the ASKAI_* environment, in increasing precedence. A
// missing default file is not an error. The returned viper instance is shared
// with adapters that read their own keys.
func Load(configFile string) (Config, *viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil, fmt.Errorf("resolve home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(homeDir, DefaultDir))
		v.SetConfigName("config")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyBaseURL, EnvPrefix+"_API_BASE_URL", LegacyBaseURLEnv); err != nil {
		return Config{}, nil, fmt.Errorf("bind %s: %w", KeyBaseURL, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyDotEnv(v, DotEnvFile); err != nil {
		return Config{}, nil, err
	}

	cfg := Config{
		API: APIConfig{
			BaseURL:  strings.TrimSpace(v.GetString(KeyBaseURL)),
			Timeout:  v.GetDuration(KeyTimeout),
			SendPath: strings.TrimSpace(v.GetString(KeySendPath)),
		},
		Session: SessionConfig{Path: strings.TrimSpace(v.GetString(KeySessionPath))},
		Secrets: SecretsConfig{Dir: strings.TrimSpace(v.GetString(KeySecretsDir))},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
		Chat: ChatConfig{SingleThread: v.GetBool(KeySingleThread)},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}

	return cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeySendPath, DefaultSendPath)
	v.SetDefault(KeySessionPath, "")
	v.SetDefault(KeySecretsDir, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, FormatConsole)
	v.SetDefault(KeySingleThread, false)
}

// envNames lists the variables that feed key, highest precedence first.
func envNames(key string) []string {
	names := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if key == KeyBaseURL {
		names = append(names, LegacyBaseURLEnv)
	}
	return names
}

// applyDotEnv copies values from a dotenv file into v without touching the
// process environment. Variables already set in the environment win.
func applyDotEnv(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for _, key := range configKeys {
		names := envNames(key)
		if inEnvironment(names) {
			continue
		}
		for _, name := range names {
			if value := strings.TrimSpace(values[name]); value != "" {
				v.Set(key, value)
				break
			}
		}
	}

	return nil
}

func inEnvironment(names []string) bool {
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) != "" {
			return true
		}
	}
	return false
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", FormatConsole, FormatJSON, c.Log.Format)
	}

	return nil
}

// SecretsDir returns the configured secrets directory or ~/.askai/secrets.
func (c Config) SecretsDir() (string, error) {
	if c.Secrets.Dir != "" {
		return c.Secrets.Dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, DefaultDir, "secrets"), nil
}
