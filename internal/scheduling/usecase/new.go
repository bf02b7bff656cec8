package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/model"
	"sales-scheduler/internal/provider"
	pkgLog "sales-scheduler/pkg/log"
)

// Scoring holds the slot ranking weights. The values are product-tuned
// constants, kept configurable rather than hard-coded.
type Scoring struct {
	PreferredHours []int // slot start hours that get the big bonus
	ShoulderHours  []int // acceptable edge hours

	PreferredBonus  int
	ShoulderBonus   int
	OffHoursPenalty int

	NearEventPenalty int // event starts within NearEventWindow of the slot
	AdjacentPenalty  int // event starts within AdjacentWindow of the slot
	NearEventWindow  time.Duration
	AdjacentWindow   time.Duration

	MidweekBonus    int // Tuesday through Thursday
	WeekEdgePenalty int // Monday or Friday
}

// Config holds engine tunables.
type Config struct {
	ConflictBuffer     time.Duration // symmetric expansion around conflict windows
	AggregateTimeout   time.Duration // shared deadline for the provider fan-out
	ScheduleTimeout    time.Duration // outer deadline for a full orchestration
	WorkingHoursStart  int
	WorkingHoursEnd    int
	ExcludeWeekends    bool
	SlotStepMinutes    int
	MaxSlots           int
	MinLeadTime        time.Duration // earliest offset for unanchored searches
	DefaultSearchDays  int           // unanchored search horizon
	FallbackSearchDays int           // horizon after a preferred-time conflict
	Scoring            Scoring
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		ConflictBuffer:     15 * time.Minute,
		AggregateTimeout:   8 * time.Second,
		ScheduleTimeout:    30 * time.Second,
		WorkingHoursStart:  9,
		WorkingHoursEnd:    17,
		ExcludeWeekends:    true,
		SlotStepMinutes:    30,
		MaxSlots:           20,
		MinLeadTime:        time.Hour,
		DefaultSearchDays:  14,
		FallbackSearchDays: 7,
		Scoring: Scoring{
			PreferredHours:   []int{10, 14},
			ShoulderHours:    []int{9, 16},
			PreferredBonus:   20,
			ShoulderBonus:    10,
			OffHoursPenalty:  -20,
			NearEventPenalty: -30,
			AdjacentPenalty:  -15,
			NearEventWindow:  30 * time.Minute,
			AdjacentWindow:   60 * time.Minute,
			MidweekBonus:     10,
			WeekEdgePenalty:  -5,
		},
	}
}

type implUseCase struct {
	l         pkgLog.Logger
	providers []provider.CalendarProvider
	creds     credential.Store
	cfg       Config

	now   func() time.Time
	newID func() string

	// last successful provider read per (user, provider), for syncStatus.
	syncMu    sync.Mutex
	lastSyncs map[string]time.Time
}

// New creates a new scheduling UseCase instance.
func New(l pkgLog.Logger, providers []provider.CalendarProvider, creds credential.Store, cfg Config) *implUseCase {
	return &implUseCase{
		l:         l,
		providers: providers,
		creds:     creds,
		cfg:       cfg,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		lastSyncs: make(map[string]time.Time),
	}
}

func (uc *implUseCase) recordSync(userID string, providerID model.ProviderID) {
	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()
	uc.lastSyncs[userID+"/"+string(providerID)] = uc.now()
}

func (uc *implUseCase) lastSync(userID string, providerID model.ProviderID) time.Time {
	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()
	return uc.lastSyncs[userID+"/"+string(providerID)]
}
