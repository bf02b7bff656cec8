package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	oauthGoogle "golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	calendarAPI "google.golang.org/api/calendar/v3"

	"sales-scheduler/config"
	"sales-scheduler/internal/credential"
	connectHTTP "sales-scheduler/internal/credential/delivery/http"
	credSqlite "sales-scheduler/internal/credential/repository/sqlite"
	"sales-scheduler/internal/httpserver"
	"sales-scheduler/internal/middleware"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
	googleProvider "sales-scheduler/internal/provider/google"
	outlookProvider "sales-scheduler/internal/provider/outlook"
	schedulingHTTP "sales-scheduler/internal/scheduling/delivery/http"
	schedulingUC "sales-scheduler/internal/scheduling/usecase"
	"sales-scheduler/pkg/log"
)

// Per-key calls per second against one provider API.
const providerCallsPerSecond = 5

// @title       Sales Scheduler API
// @description Calendar availability and meeting scheduling across Google Calendar and Outlook.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Sales Scheduler...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Credential storage
	credRepo, err := credSqlite.New(logger, cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open credential database: ", err)
		return
	}
	defer credRepo.Close()

	// 4. OAuth apps per provider
	oauthConfigs := make(map[model.ProviderID]*oauth2.Config)
	if cfg.Google.Configured() {
		oauthConfigs[model.ProviderGoogle] = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Endpoint:     oauthGoogle.Endpoint,
			Scopes:       []string{calendarAPI.CalendarScope},
		}
	}
	if cfg.Outlook.Configured() {
		oauthConfigs[model.ProviderOutlook] = &oauth2.Config{
			ClientID:     cfg.Outlook.ClientID,
			ClientSecret: cfg.Outlook.ClientSecret,
			RedirectURL:  cfg.Outlook.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint(cfg.Outlook.Tenant),
			Scopes: []string{
				"offline_access",
				"https://graph.microsoft.com/Calendars.ReadWrite",
			},
		}
	}

	credStore := credential.New(logger, credRepo, oauthConfigs)

	// 5. Provider adapters
	throttle := provider.NewThrottle(providerCallsPerSecond)

	var providers []provider.CalendarProvider
	if cfg.Google.Configured() {
		providers = append(providers, googleProvider.New(logger, credStore, throttle, googleProvider.Config{}))
		logger.Info(ctx, "Google Calendar provider registered")
	}
	if cfg.Outlook.Configured() {
		providers = append(providers, outlookProvider.New(logger, credStore, throttle, outlookProvider.Config{}))
		logger.Info(ctx, "Outlook provider registered")
	}

	// 6. Scheduling engine
	ucCfg := schedulingUC.DefaultConfig()
	applySchedulingConfig(&ucCfg, cfg.Scheduling)
	schedUC := schedulingUC.New(logger, providers, credStore, ucCfg)

	// 7. HTTP delivery
	schedHandler := schedulingHTTP.New(logger, schedUC)
	connectHandler := connectHTTP.New(logger, credStore, oauthConfigs)
	mw := middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.RateLimitPerMin})

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		SchedulingHandler: schedHandler,
		ConnectHandler:    connectHandler,
		Middleware:        mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// applySchedulingConfig overlays the configured tunables onto the engine
// defaults, leaving unset values alone.
func applySchedulingConfig(ucCfg *schedulingUC.Config, sc config.SchedulingConfig) {
	if sc.ConflictBufferMinutes > 0 {
		ucCfg.ConflictBuffer = time.Duration(sc.ConflictBufferMinutes) * time.Minute
	}
	if sc.WorkingHoursStart > 0 {
		ucCfg.WorkingHoursStart = sc.WorkingHoursStart
	}
	if sc.WorkingHoursEnd > 0 {
		ucCfg.WorkingHoursEnd = sc.WorkingHoursEnd
	}
	if sc.SlotStepMinutes > 0 {
		ucCfg.SlotStepMinutes = sc.SlotStepMinutes
	}
	if sc.MaxSlots > 0 {
		ucCfg.MaxSlots = sc.MaxSlots
	}
	if sc.DefaultSearchDays > 0 {
		ucCfg.DefaultSearchDays = sc.DefaultSearchDays
	}
	if sc.FallbackSearchDays > 0 {
		ucCfg.FallbackSearchDays = sc.FallbackSearchDays
	}

	w := sc.Scoring
	if w.PreferredBonus > 0 {
		ucCfg.Scoring.PreferredBonus = w.PreferredBonus
	}
	if w.ShoulderBonus > 0 {
		ucCfg.Scoring.ShoulderBonus = w.ShoulderBonus
	}
	if w.OffHoursPenalty < 0 {
		ucCfg.Scoring.OffHoursPenalty = w.OffHoursPenalty
	}
	if w.NearEventPenalty < 0 {
		ucCfg.Scoring.NearEventPenalty = w.NearEventPenalty
	}
	if w.AdjacentPenalty < 0 {
		ucCfg.Scoring.AdjacentPenalty = w.AdjacentPenalty
	}
	if w.MidweekBonus > 0 {
		ucCfg.Scoring.MidweekBonus = w.MidweekBonus
	}
	if w.WeekEdgePenalty < 0 {
		ucCfg.Scoring.WeekEdgePenalty = w.WeekEdgePenalty
	}
}
