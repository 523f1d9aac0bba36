package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "ecotronix_hub"
	ConfigFileName = "hub"
	// ConfigFileKey holds an explicit config file path, usually bound to the
	// --config flag.
	ConfigFileKey = "config"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads the process wide configuration once. It panics when the
// file cannot be read since nothing can run without it.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		cfg, err := Load(viper.GetViper())
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

// Load reads hub.yaml (or the file named by the config key) into v and
// decodes it on top of the defaults. Environment variables prefixed with
// ECOTRONIX_HUB_ override file values.
func Load(v *viper.Viper) (AppConfig, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if file := v.GetString(ConfigFileKey); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
	}
	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, err
	}

	var polls []TelemetryPollConfig
	if err := v.UnmarshalKey("telemetry.polls", &polls); err != nil {
		return AppConfig{}, fmt.Errorf("decoding telemetry polls: %w", err)
	}

	cfg := AppConfig{
		General: GeneralConfig{
			LogLevel:     v.GetString("general.log_level"),
			OTelEnabled:  v.GetBool("general.otel_enabled"),
			OTelEndpoint: v.GetString("general.otel_endpoint"),
		},
		MQTTClient: MQTTClientConfig{
			Broker:   v.GetString("mqtt_client.broker"),
			ClientID: v.GetString("mqtt_client.client_id"),
			Username: v.GetString("mqtt_client.username"),
			Password: v.GetString("mqtt_client.password"),
			QoS:      byte(v.GetUint("mqtt_client.qos")),
		},
		HTTP: HTTPConfig{
			Address:        v.GetString("http.address"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Dispatch: DispatchConfig{
			CommandTimeout: v.GetDuration("dispatch.command_timeout"),
			SweepInterval:  v.GetDuration("dispatch.sweep_interval"),
		},
		Catalog: CatalogConfig{
			Path:  v.GetString("catalog.path"),
			Watch: v.GetBool("catalog.watch"),
		},
		Journal: JournalConfig{
			Driver: v.GetString("journal.driver"),
			DSN:    v.GetString("journal.dsn"),
		},
		Speech: SensingConfig{
			Enabled: v.GetBool("speech.enabled"),
			Command: v.GetStringSlice("speech.command"),
		},
		Identity: SensingConfig{
			Enabled: v.GetBool("identity.enabled"),
			Command: v.GetStringSlice("identity.command"),
		},
		TTS: TTSConfig{
			Binary: v.GetString("tts.binary"),
			Speed:  v.GetInt("tts.speed"),
		},
		Local: LocalConfig{
			Shell: v.GetString("local.shell"),
		},
		Telemetry: TelemetryConfig{
			TTL:               v.GetDuration("telemetry.ttl"),
			ReconcileInterval: v.GetDuration("telemetry.reconcile_interval"),
			PollInterval:      v.GetDuration("telemetry.poll_interval"),
			Polls:             polls,
		},
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.otel_enabled", false)
	v.SetDefault("general.otel_endpoint", "localhost:4317")
	v.SetDefault("mqtt_client.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt_client.client_id", "ecotronix_hub")
	v.SetDefault("mqtt_client.qos", 1)
	v.SetDefault("http.address", ":3000")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("dispatch.command_timeout", 10*time.Second)
	v.SetDefault("dispatch.sweep_interval", time.Second)
	v.SetDefault("catalog.path", "config/home.yaml")
	v.SetDefault("catalog.watch", true)
	v.SetDefault("journal.driver", "sqlite")
	v.SetDefault("journal.dsn", "ecotronix.db")
	v.SetDefault("speech.enabled", false)
	v.SetDefault("identity.enabled", false)
	v.SetDefault("tts.binary", "espeak")
	v.SetDefault("tts.speed", 150)
	v.SetDefault("local.shell", "/bin/sh")
	v.SetDefault("telemetry.ttl", 10*time.Minute)
	v.SetDefault("telemetry.reconcile_interval", 30*time.Second)
	v.SetDefault("telemetry.poll_interval", 15*time.Second)
}

type AppConfig struct {
	General    GeneralConfig
	MQTTClient MQTTClientConfig
	HTTP       HTTPConfig
	Dispatch   DispatchConfig
	Catalog    CatalogConfig
	Journal    JournalConfig
	Speech     SensingConfig
	Identity   SensingConfig
	TTS        TTSConfig
	Local      LocalConfig
	Telemetry  TelemetryConfig
}

func (c AppConfig) Validate() error {
	if c.Dispatch.CommandTimeout <= 0 {
		return fmt.Errorf("dispatch.command_timeout must be positive")
	}
	if c.Dispatch.SweepInterval <= 0 || c.Dispatch.SweepInterval >= c.Dispatch.CommandTimeout {
		return fmt.Errorf("dispatch.sweep_interval must be positive and shorter than dispatch.command_timeout")
	}
	if c.MQTTClient.QoS > 2 {
		return fmt.Errorf("mqtt_client.qos must be 0, 1 or 2")
	}
	if c.Speech.Enabled && len(c.Speech.Command) == 0 {
		return fmt.Errorf("speech.command is required when speech is enabled")
	}
	if c.Identity.Enabled && len(c.Identity.Command) == 0 {
		return fmt.Errorf("identity.command is required when identity is enabled")
	}
	if c.Telemetry.ReconcileInterval <= 0 || c.Telemetry.PollInterval <= 0 {
		return fmt.Errorf("telemetry intervals must be positive")
	}
	return nil
}

type GeneralConfig struct {
	LogLevel     string
	OTelEnabled  bool
	OTelEndpoint string
}

type MQTTClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
}

type HTTPConfig struct {
	Address        string
	AllowedOrigins []string
}

type DispatchConfig struct {
	CommandTimeout time.Duration
	SweepInterval  time.Duration
}

type CatalogConfig struct {
	Path  string
	Watch bool
}

type JournalConfig struct {
	Driver string
	DSN    string
}

// SensingConfig describes a recognizer process streaming JSON lines.
type SensingConfig struct {
	Enabled bool
	Command []string
}

type TTSConfig struct {
	Binary string
	Speed  int
}

type LocalConfig struct {
	Shell string
}

type TelemetryConfig struct {
	TTL               time.Duration
	ReconcileInterval time.Duration
	PollInterval      time.Duration
	Polls             []TelemetryPollConfig
}

type TelemetryPollConfig struct {
	Schedule   string `mapstructure:"schedule"`
	Room       string `mapstructure:"room"`
	Position   string `mapstructure:"position"`
	Peripheral string `mapstructure:"peripheral"`
	Subtype    string `mapstructure:"subtype"`
}
