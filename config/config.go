package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig describes the two catalog feeds. Empty URLs fall back to
// files under <workdir>/data so the daemon can self-serve its own feeds.
type CatalogConfig struct {
	JsonURL  string `yaml:"json_url"`
	XlsxURL  string `yaml:"xlsx_url"`
	Interval int    `yaml:"interval"` // poll interval in seconds
}

// PaymentConfig points at optional upstream payment backends. All of them
// are best-effort; an empty or unreachable URL degrades to a user notice.
type PaymentConfig struct {
	CheckoutSessionURL string `yaml:"checkout_session_url"`
	PaystackURL        string `yaml:"paystack_url"`
	OpayURL            string `yaml:"opay_url"`
	SimulateDelayMs    int    `yaml:"simulate_delay_ms"`
}

type PromoConfig struct {
	Seed          int64 `yaml:"seed"` // 0 means time-seeded
	CooldownHours int   `yaml:"cooldown_hours"`
	EngineSecs    int   `yaml:"engine_secs"`
	SampleSize    int   `yaml:"sample_size"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Catalog CatalogConfig `yaml:"catalog"`
	Payment PaymentConfig `yaml:"payment"`
	Promo   PromoConfig   `yaml:"promo"`
	Logger  LogConfig     `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "VolubiksStore",
		Location: "Africa/Lagos",
		Workdir:  "/var/volubiks",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8106,
	},
	Catalog: CatalogConfig{
		Interval: 10,
	},
	Payment: PaymentConfig{
		SimulateDelayMs: 1000,
	},
	Promo: PromoConfig{
		CooldownHours: 24,
		EngineSecs:    8,
		SampleSize:    3,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/volubiks/volubiks.log",
	},
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(c.GetDataDir(), 0755)
	_ = os.MkdirAll(c.GetLogDir(), 0755)
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML config file when it exists, otherwise starts
// from defaults, then applies environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("VOLUBIKS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("VOLUBIKS_WEB_HOST", &cfg.Web.Host)
	setEnvValue("VOLUBIKS_CATALOG_JSON_URL", &cfg.Catalog.JsonURL)
	setEnvValue("VOLUBIKS_CATALOG_XLSX_URL", &cfg.Catalog.XlsxURL)
	setEnvBoolValue("VOLUBIKS_SYSTEM_DEBUG", &cfg.System.Debug)

	if cfg.Catalog.Interval <= 0 {
		cfg.Catalog.Interval = 10
	}
	if cfg.Promo.SampleSize <= 0 {
		cfg.Promo.SampleSize = 3
	}

	cfg.initDirs()
	return cfg
}
