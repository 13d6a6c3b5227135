package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tree-d/kiosk_api/model"
)

// EventStore is the persistence contract the ingest and analytics paths
// consume. Counter increments are atomic per-path adds; snapshot writes are
// full overwrites.
type EventStore interface {
	GetSnapshot(deviceID string) (*model.DeviceSnapshot, error)
	PutSnapshot(snapshot *model.DeviceSnapshot) error
	IncrementCounter(deviceID string, path []string, amount int64) error
	StreamCounters() ([]*model.CounterRecord, error)
	AppendInteraction(record *model.Interaction) error
	StreamInteractions(start, end *time.Time) ([]model.Interaction, error)
	MigrateLanguageCounters() ([]string, error)
	HandleError(err error) error
}

// eventStore carries the gorm implementation shared by the postgres and
// sqlite services.
type eventStore struct {
	db *gorm.DB
}

func storeModels() []interface{} {
	return []interface{}{
		&model.DeviceSnapshot{},
		&model.CounterBucket{},
		&model.Interaction{},
	}
}

func (es *eventStore) Db() *gorm.DB {
	return es.db
}

func (es *eventStore) GetSnapshot(deviceID string) (*model.DeviceSnapshot, error) {
	var snapshot model.DeviceSnapshot
	err := es.db.Where("device_id = ?", deviceID).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (es *eventStore) PutSnapshot(snapshot *model.DeviceSnapshot) error {
	snapshot.UpdatedAt = time.Now()
	return es.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(snapshot).Error
}

// IncrementCounter applies an atomic add to the counter cell addressed by
// path: [space, slot, lang] for nested spaces, [space, lang] for the flat
// language space. Intermediate structure is created on first touch.
func (es *eventStore) IncrementCounter(deviceID string, path []string, amount int64) error {
	bucket, err := bucketFromPath(deviceID, path)
	if err != nil {
		return err
	}
	bucket.Count = amount
	bucket.UpdatedAt = time.Now()

	return es.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "device_id"}, {Name: "space"}, {Name: "slot"}, {Name: "lang_key"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("counter_buckets.count + excluded.count"),
			"updated_at": time.Now(),
		}),
	}).Create(bucket).Error
}

func bucketFromPath(deviceID string, path []string) (*model.CounterBucket, error) {
	switch len(path) {
	case 2:
		if path[0] != model.SpaceLanguage && path[0] != model.SpaceLanguageLegacy {
			return nil, fmt.Errorf("counter path %q: space %q takes three segments", strings.Join(path, "."), path[0])
		}
		return &model.CounterBucket{DeviceID: deviceID, Space: path[0], LangKey: path[1]}, nil
	case 3:
		if path[0] != model.SpaceArtifacts && path[0] != model.SpaceCompletions {
			return nil, fmt.Errorf("counter path %q: unknown space %q", strings.Join(path, "."), path[0])
		}
		return &model.CounterBucket{DeviceID: deviceID, Space: path[0], Slot: path[1], LangKey: path[2]}, nil
	default:
		return nil, fmt.Errorf("counter path %q: want 2 or 3 segments", strings.Join(path, "."))
	}
}

func (es *eventStore) StreamCounters() ([]*model.CounterRecord, error) {
	var buckets []model.CounterBucket
	if err := es.db.Order("device_id").Find(&buckets).Error; err != nil {
		return nil, err
	}

	var records []*model.CounterRecord
	byDevice := map[string]*model.CounterRecord{}
	for _, b := range buckets {
		rec, ok := byDevice[b.DeviceID]
		if !ok {
			rec = model.NewCounterRecord(b.DeviceID)
			byDevice[b.DeviceID] = rec
			records = append(records, rec)
		}
		rec.Add(b)
	}
	return records, nil
}

func (es *eventStore) AppendInteraction(record *model.Interaction) error {
	record.CreatedAt = time.Now()
	return es.db.Create(record).Error
}

func (es *eventStore) StreamInteractions(start, end *time.Time) ([]model.Interaction, error) {
	q := es.db.Order("received_at")
	if start != nil {
		q = q.Where("received_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("received_at < ?", *end)
	}

	var entries []model.Interaction
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// MigrateLanguageCounters folds legacy "languages" buckets into the
// "language" space and removes them. Returns the devices touched.
func (es *eventStore) MigrateLanguageCounters() ([]string, error) {
	var migrated []string

	err := es.db.Transaction(func(tx *gorm.DB) error {
		var legacy []model.CounterBucket
		if err := tx.Where("space = ?", model.SpaceLanguageLegacy).Find(&legacy).Error; err != nil {
			return err
		}

		seen := map[string]struct{}{}
		for _, b := range legacy {
			target := model.CounterBucket{
				DeviceID:  b.DeviceID,
				Space:     model.SpaceLanguage,
				LangKey:   b.LangKey,
				Count:     b.Count,
				UpdatedAt: time.Now(),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "device_id"}, {Name: "space"}, {Name: "slot"}, {Name: "lang_key"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"count":      gorm.Expr("counter_buckets.count + excluded.count"),
					"updated_at": time.Now(),
				}),
			}).Create(&target).Error
			if err != nil {
				return err
			}

			if err := tx.Delete(&model.CounterBucket{}, "device_id = ? AND space = ? AND slot = ? AND lang_key = ?",
				b.DeviceID, model.SpaceLanguageLegacy, b.Slot, b.LangKey).Error; err != nil {
				return err
			}

			if _, ok := seen[b.DeviceID]; !ok {
				seen[b.DeviceID] = struct{}{}
				migrated = append(migrated, b.DeviceID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return migrated, nil
}

func (es *eventStore) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusServiceUnavailable // 503, retryable
			errorType = "STORE_UNAVAILABLE"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
