package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid" validate:"required"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir" validate:"required"`
	Locale   string `yaml:"locale" validate:"required"`
	Currency string `yaml:"currency" validate:"required,len=3"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port" validate:"min=1,max=65535"`
	Secret string `yaml:"secret" validate:"required"`
}

// StorageConfig selects the key/value backend holding the inventory.
// Namespace is the bucket (bolt) or namespace column (postgres) name.
type StorageConfig struct {
	Type      string `yaml:"type" validate:"oneof=bolt postgres memory"`
	Path      string `yaml:"path"`
	Dsn       string `yaml:"dsn"`
	Namespace string `yaml:"namespace" validate:"required"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" validate:"oneof=development production"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// BackupConfig periodic copies of the bolt file
type BackupConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
	Keep     int    `yaml:"keep" validate:"min=0"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Logger  LogConfig     `yaml:"logger"`
	Backup  BackupConfig  `yaml:"backup"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetBackupDir() string {
	return filepath.Join(c.System.Workdir, "backup")
}

// StoragePath returns the bolt file location, defaulting into the data dir.
func (c *AppConfig) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.GetDataDir(), "webestoque.db")
}

func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir(), c.GetBackupDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// Validate checks the struct tags of every section.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Storage.Type == "postgres" && c.Storage.Dsn == "" {
		return errors.New("invalid config: storage.dsn is required for postgres")
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *AppConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "WebEstoque",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/webestoque",
		Locale:   "pt-BR",
		Currency: "BRL",
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   8080,
		Secret: "9b6de5cc-0731-4b4b-8c45-6a1e8e3f2b0d",
	},
	Storage: StorageConfig{
		Type:      "bolt",
		Namespace: "web-estoque",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/webestoque/logs/webestoque.log",
	},
	Backup: BackupConfig{
		Enabled:  true,
		Schedule: "@daily",
		Keep:     7,
	},
}

// LoadConfig reads the YAML file at cfile over the defaults. An empty path
// or a missing file yields the defaults. Environment overrides always apply.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
	}
	cfg.applyEnvOverrides()
	return &cfg, cfg.Validate()
}

func (c *AppConfig) applyEnvOverrides() {
	setEnvValue("WEBESTOQUE_SYSTEM_WORKER_DIR", &c.System.Workdir)
	setEnvValue("WEBESTOQUE_SYSTEM_LOCATION", &c.System.Location)
	setEnvValue("WEBESTOQUE_SYSTEM_LOCALE", &c.System.Locale)
	setEnvValue("WEBESTOQUE_SYSTEM_CURRENCY", &c.System.Currency)
	setEnvBoolValue("WEBESTOQUE_SYSTEM_DEBUG", &c.System.Debug)

	setEnvValue("WEBESTOQUE_WEB_HOST", &c.Web.Host)
	setEnvIntValue("WEBESTOQUE_WEB_PORT", &c.Web.Port)
	setEnvValue("WEBESTOQUE_WEB_SECRET", &c.Web.Secret)

	setEnvValue("WEBESTOQUE_STORAGE_TYPE", &c.Storage.Type)
	setEnvValue("WEBESTOQUE_STORAGE_PATH", &c.Storage.Path)
	setEnvValue("WEBESTOQUE_STORAGE_DSN", &c.Storage.Dsn)
	setEnvValue("WEBESTOQUE_STORAGE_NAMESPACE", &c.Storage.Namespace)

	setEnvValue("WEBESTOQUE_LOGGER_MODE", &c.Logger.Mode)
	setEnvBoolValue("WEBESTOQUE_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)

	setEnvBoolValue("WEBESTOQUE_BACKUP_ENABLED", &c.Backup.Enabled)
	setEnvValue("WEBESTOQUE_BACKUP_SCHEDULE", &c.Backup.Schedule)
	setEnvIntValue("WEBESTOQUE_BACKUP_KEEP", &c.Backup.Keep)
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}
