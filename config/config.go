package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig

	// Calendar providers
	Google  OAuthClientConfig
	Outlook OAuthClientConfig

	// Engine tunables
	Scheduling SchedulingConfig

	// Request limits
	RateLimitPerMin int
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	Path string
}

// OAuthClientConfig holds the OAuth app registration for one provider.
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Azure AD tenant, unused for Google.
	Tenant string
}

// Configured reports whether the provider can be wired at startup.
func (c OAuthClientConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// SchedulingConfig holds the engine tunables exposed through configuration.
// Zero values fall back to the engine defaults.
type SchedulingConfig struct {
	ConflictBufferMinutes int
	WorkingHoursStart     int
	WorkingHoursEnd       int
	SlotStepMinutes       int
	MaxSlots              int
	DefaultSearchDays     int
	FallbackSearchDays    int
	Scoring               ScoringConfig
}

// ScoringConfig holds the slot ranking weights. Penalties are negative.
type ScoringConfig struct {
	PreferredBonus   int
	ShoulderBonus    int
	OffHoursPenalty  int
	NearEventPenalty int
	AdjacentPenalty  int
	MidweekBonus     int
	WeekEdgePenalty  int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Storage
	cfg.Database.Path = viper.GetString("database.path")
	if dbPath := viper.GetString("database_path"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Google
	cfg.Google.ClientID = viper.GetString("google.client_id")
	cfg.Google.ClientSecret = expandEnvVar(viper.GetString("google.client_secret"))
	cfg.Google.RedirectURL = viper.GetString("google.redirect_url")
	if id := viper.GetString("google_client_id"); id != "" {
		cfg.Google.ClientID = id
	}
	if secret := viper.GetString("google_client_secret"); secret != "" {
		cfg.Google.ClientSecret = secret
	}

	// Outlook
	cfg.Outlook.ClientID = viper.GetString("outlook.client_id")
	cfg.Outlook.ClientSecret = expandEnvVar(viper.GetString("outlook.client_secret"))
	cfg.Outlook.RedirectURL = viper.GetString("outlook.redirect_url")
	cfg.Outlook.Tenant = viper.GetString("outlook.tenant")
	if id := viper.GetString("outlook_client_id"); id != "" {
		cfg.Outlook.ClientID = id
	}
	if secret := viper.GetString("outlook_client_secret"); secret != "" {
		cfg.Outlook.ClientSecret = secret
	}

	// Engine tunables
	cfg.Scheduling.ConflictBufferMinutes = viper.GetInt("scheduling.conflict_buffer_minutes")
	cfg.Scheduling.WorkingHoursStart = viper.GetInt("scheduling.working_hours_start")
	cfg.Scheduling.WorkingHoursEnd = viper.GetInt("scheduling.working_hours_end")
	cfg.Scheduling.SlotStepMinutes = viper.GetInt("scheduling.slot_step_minutes")
	cfg.Scheduling.MaxSlots = viper.GetInt("scheduling.max_slots")
	cfg.Scheduling.DefaultSearchDays = viper.GetInt("scheduling.default_search_days")
	cfg.Scheduling.FallbackSearchDays = viper.GetInt("scheduling.fallback_search_days")
	cfg.Scheduling.Scoring.PreferredBonus = viper.GetInt("scheduling.scoring.preferred_bonus")
	cfg.Scheduling.Scoring.ShoulderBonus = viper.GetInt("scheduling.scoring.shoulder_bonus")
	cfg.Scheduling.Scoring.OffHoursPenalty = viper.GetInt("scheduling.scoring.off_hours_penalty")
	cfg.Scheduling.Scoring.NearEventPenalty = viper.GetInt("scheduling.scoring.near_event_penalty")
	cfg.Scheduling.Scoring.AdjacentPenalty = viper.GetInt("scheduling.scoring.adjacent_penalty")
	cfg.Scheduling.Scoring.MidweekBonus = viper.GetInt("scheduling.scoring.midweek_bonus")
	cfg.Scheduling.Scoring.WeekEdgePenalty = viper.GetInt("scheduling.scoring.week_edge_penalty")

	cfg.RateLimitPerMin = viper.GetInt("rate_limit_per_min")

	if !cfg.Google.Configured() && !cfg.Outlook.Configured() {
		return nil, fmt.Errorf("no calendar provider configured - set google or outlook OAuth credentials")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("database.path", "./data/scheduler.db")
	viper.SetDefault("outlook.tenant", "common")
	viper.SetDefault("rate_limit_per_min", 60)

	// Engine defaults
	viper.SetDefault("scheduling.conflict_buffer_minutes", 15)
	viper.SetDefault("scheduling.working_hours_start", 9)
	viper.SetDefault("scheduling.working_hours_end", 17)
	viper.SetDefault("scheduling.slot_step_minutes", 30)
	viper.SetDefault("scheduling.max_slots", 20)
	viper.SetDefault("scheduling.default_search_days", 14)
	viper.SetDefault("scheduling.fallback_search_days", 7)
	viper.SetDefault("scheduling.scoring.preferred_bonus", 20)
	viper.SetDefault("scheduling.scoring.shoulder_bonus", 10)
	viper.SetDefault("scheduling.scoring.off_hours_penalty", -20)
	viper.SetDefault("scheduling.scoring.near_event_penalty", -30)
	viper.SetDefault("scheduling.scoring.adjacent_penalty", -15)
	viper.SetDefault("scheduling.scoring.midweek_bonus", 10)
	viper.SetDefault("scheduling.scoring.week_edge_penalty", -5)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
