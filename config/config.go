package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
	// ErrorLog receives one line per unhandled request error
	ErrorLog string `yaml:"error_log"`
}

// DBConfig database configuration, postgres or sqlite
type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	SSLMode  string `yaml:"sslmode"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
	Seed     bool   `yaml:"seed"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// AuthConfig token signing and data protection keys
type AuthConfig struct {
	JwtSecret       string `yaml:"jwt_secret"`
	TokenDays       int    `yaml:"token_days"`
	EncryptionKey   string `yaml:"encryption_key"`
	LogRetentionDay int    `yaml:"log_retention_days"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Auth     AuthConfig `yaml:"auth"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir(), c.Web.StaticDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	return nil
}

// DefaultConfig returns the built-in configuration for the named api
// ("warehouse" or "invoicing").
func DefaultConfig(appid string) *AppConfig {
	workdir := path.Join("var", appid)
	port := 8080
	if appid == "invoicing" {
		port = 8081
	}
	return &AppConfig{
		System: SysConfig{
			Appid:    appid,
			Location: "Europe/Madrid",
			Workdir:  workdir,
		},
		Web: WebConfig{
			Host:      "0.0.0.0",
			Port:      port,
			StaticDir: path.Join(workdir, "wwwroot"),
			ErrorLog:  path.Join(workdir, "logs", "errors.log"),
		},
		Database: DBConfig{
			Type:     "sqlite",
			Name:     path.Join(workdir, "data", appid+".db"),
			SSLMode:  "disable",
			MaxConn:  50,
			IdleConn: 10,
			Seed:     true,
		},
		Logger: LogConfig{
			Mode:     "development",
			Filename: path.Join(workdir, "logs", appid+".log"),
		},
		Auth: AuthConfig{
			TokenDays:       30,
			LogRetentionDay: 365,
		},
	}
}

// LoadConfig reads the yaml file (if any) on top of the defaults, then
// applies environment overrides.
func LoadConfig(appid, cfile string) (*AppConfig, error) {
	cfg := DefaultConfig(appid)
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

const envPrefix = "STOCKBILL_"

func setEnvValue(name string, val *string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = cast.ToBool(strings.TrimSpace(v))
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(envPrefix + name); v != "" {
		if n, err := cast.ToIntE(strings.TrimSpace(v)); err == nil {
			*val = n
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("WEB_PORT", &cfg.Web.Port)
	setEnvValue("WEB_STATIC_DIR", &cfg.Web.StaticDir)
	setEnvValue("WEB_ERROR_LOG", &cfg.Web.ErrorLog)

	setEnvValue("DB_TYPE", &cfg.Database.Type)
	setEnvValue("DB_HOST", &cfg.Database.Host)
	setEnvIntValue("DB_PORT", &cfg.Database.Port)
	setEnvValue("DB_NAME", &cfg.Database.Name)
	setEnvValue("DB_USER", &cfg.Database.User)
	setEnvValue("DB_PASSWD", &cfg.Database.Passwd)
	setEnvValue("DB_SSLMODE", &cfg.Database.SSLMode)
	setEnvBoolValue("DB_DEBUG", &cfg.Database.Debug)
	setEnvBoolValue("DB_SEED", &cfg.Database.Seed)

	setEnvValue("LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvValue("JWT_SECRET", &cfg.Auth.JwtSecret)
	setEnvIntValue("JWT_TOKEN_DAYS", &cfg.Auth.TokenDays)
	setEnvValue("ENCRYPTION_KEY", &cfg.Auth.EncryptionKey)
	setEnvIntValue("LOG_RETENTION_DAYS", &cfg.Auth.LogRetentionDay)
}
