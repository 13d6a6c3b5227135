package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/engine"
	"github.com/tree-d/kiosk_api/model"
	"github.com/tree-d/kiosk_api/shared"
)

// AnalyticsService serves the read side: completion rates and summaries
// folded from the live counters, or replayed from the interaction log when
// an audit view is wanted. Results are briefly cached in redis; the cache
// is best-effort and the fold proceeds without it.
type AnalyticsService struct {
	appContext.DefaultService

	store    EventStore
	redisSvc *RedisService

	cacheTTL time.Duration
}

const ANALYTICS_SVC = "analytics_svc"

const ratesCachePrefix = "analytics:rates:"
const summaryCachePrefix = "analytics:summary:"

func (svc AnalyticsService) Id() string {
	return ANALYTICS_SVC
}

func (svc *AnalyticsService) Configure(ctx *appContext.Context) error {
	svc.cacheTTL = 30 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalyticsService) Start() error {
	if s, ok := svc.Service(POSTGRES_SVC).(EventStore); ok {
		svc.store = s
	} else if s, ok := svc.Service(SQLITE_SVC).(EventStore); ok {
		svc.store = s
	} else {
		return errors.New("no event store service registered")
	}

	if r, ok := svc.Service(REDIS_SVC).(*RedisService); ok {
		svc.redisSvc = r
	}
	return nil
}

func normalizeSource(source string) string {
	if source == dto.SourceLog {
		return dto.SourceLog
	}
	return dto.SourceCounters
}

func (svc *AnalyticsService) records(source string) ([]*model.CounterRecord, error) {
	if source == dto.SourceLog {
		entries, err := svc.store.StreamInteractions(nil, nil)
		if err != nil {
			return nil, err
		}
		return engine.Replay(entries), nil
	}
	return svc.store.StreamCounters()
}

// CompletionRates returns per-(artifact, language) listen statistics sorted
// by completion rate descending.
func (svc *AnalyticsService) CompletionRates(source string) (*dto.CompletionRatesResponse, error) {
	source = normalizeSource(source)

	var cached dto.CompletionRatesResponse
	if svc.cacheGet(ratesCachePrefix+source, &cached) {
		return &cached, nil
	}

	records, err := svc.records(source)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}

	resp := &dto.CompletionRatesResponse{
		Source: source,
		Rates:  engine.CompletionRates(records),
	}
	svc.cachePut(ratesCachePrefix+source, resp)
	return resp, nil
}

// CompletionSummary returns the overall completion rate across every pair.
func (svc *AnalyticsService) CompletionSummary(source string) (*dto.CompletionSummaryResponse, error) {
	source = normalizeSource(source)

	var cached dto.CompletionSummaryResponse
	if svc.cacheGet(summaryCachePrefix+source, &cached) {
		return &cached, nil
	}

	records, err := svc.records(source)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}

	summary := engine.Summary(records)
	resp := &dto.CompletionSummaryResponse{
		Source:           source,
		TotalScans:       summary.TotalScans,
		CompletedListens: summary.CompletedListens,
		OverallRate:      summary.OverallRate,
	}
	svc.cachePut(summaryCachePrefix+source, resp)
	return resp, nil
}

// Counters returns every device's counter record, dashboard-shaped.
func (svc *AnalyticsService) Counters() (*dto.CounterCollectionResponse, error) {
	records, err := svc.store.StreamCounters()
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}
	return &dto.CounterCollectionResponse{StoredData: records}, nil
}

// Interactions returns the time-ordered interaction log, optionally bounded.
func (svc *AnalyticsService) Interactions(start, end *time.Time) (*dto.InteractionListResponse, error) {
	entries, err := svc.store.StreamInteractions(start, end)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}
	return &dto.InteractionListResponse{Interactions: entries, Count: len(entries)}, nil
}

// MigrateLanguageCounters folds the legacy "languages" counter space into
// "language".
func (svc *AnalyticsService) MigrateLanguageCounters() (*dto.MigrateCountersResponse, error) {
	migrated, err := svc.store.MigrateLanguageCounters()
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}
	svc.invalidateCache()
	return &dto.MigrateCountersResponse{MigratedDevices: migrated}, nil
}

func (svc *AnalyticsService) cacheGet(key string, dest interface{}) bool {
	if svc.redisSvc == nil {
		return false
	}
	hit, err := svc.redisSvc.GetJSON(context.Background(), key, dest)
	if err != nil {
		log.WithError(err).Debug("Analytics cache read failed")
		return false
	}
	return hit
}

func (svc *AnalyticsService) cachePut(key string, value interface{}) {
	if svc.redisSvc == nil {
		return
	}
	if err := svc.redisSvc.Set(context.Background(), key, value, svc.cacheTTL); err != nil {
		log.WithError(err).Debug("Analytics cache write failed")
	}
}

func (svc *AnalyticsService) invalidateCache() {
	if svc.redisSvc == nil {
		return
	}
	for _, source := range []string{dto.SourceCounters, dto.SourceLog} {
		if err := svc.redisSvc.Delete(context.Background(), ratesCachePrefix+source, summaryCachePrefix+source); err != nil {
			log.WithError(err).Debug(fmt.Sprintf("Failed to invalidate %s analytics cache", source))
		}
	}
}
