package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/engine"
	"github.com/tree-d/kiosk_api/model"
	"github.com/tree-d/kiosk_api/shared"
)

// ScanService runs the ingest pipeline: serialize per device, classify the
// report, close out the previous segment, apply counter increments and
// overwrite the snapshot. Devices are independent; only same-device reports
// queue behind each other.
type ScanService struct {
	context.DefaultService

	store EventStore
	locks engine.KeyLocks

	clock func() time.Time
}

const SCAN_SVC = "scan_svc"

func (svc ScanService) Id() string {
	return SCAN_SVC
}

func (svc *ScanService) Configure(ctx *context.Context) error {
	svc.clock = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *ScanService) Start() error {
	if s, ok := svc.Service(POSTGRES_SVC).(EventStore); ok {
		svc.store = s
	} else if s, ok := svc.Service(SQLITE_SVC).(EventStore); ok {
		svc.store = s
	} else {
		return errors.New("no event store service registered")
	}
	return nil
}

// Ingest processes one device report to completion. Safe to re-invoke with
// the same payload; a retried report double-counts rather than corrupting
// state.
func (svc *ScanService) Ingest(req dto.ScanRequest) (*dto.IngestResponse, error) {
	deviceID := engine.NormalizeDeviceID(req.ID)
	if deviceID == "" {
		return nil, shared.NewBadRequestError(errors.New("missing device id"), "Missing 'id' in data")
	}

	raw, err := json.Marshal(req)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid request")
	}

	now := svc.clock()

	// The snapshot read-compare-write below must not interleave for one
	// device.
	mu := svc.locks.Lock(deviceID)
	defer mu.Unlock()

	prev, err := svc.store.GetSnapshot(deviceID)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}

	classification := engine.Classify(engine.Report{
		DeviceID: deviceID,
		Statue:   req.Statue,
		Language: req.Language,
		Explicit: req.ExplicitEvent(),
	})

	// The previous segment is evaluated no matter how the current report
	// classified; the new report only decides what gets incremented next.
	completion, completed := engine.InferCompletion(prev, now)

	var paths [][]string
	switch classification.Type {
	case engine.EventStatue:
		paths = append(paths, []string{model.SpaceArtifacts, classification.Slot, classification.LangKey})
	case engine.EventLanguage:
		paths = append(paths, []string{model.SpaceLanguage, classification.LangKey})
	}
	if completed {
		paths = append(paths, []string{model.SpaceCompletions, completion.Slot, completion.LangKey})
	}

	incremented := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := svc.store.IncrementCounter(deviceID, path, 1); err != nil {
			return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
		}
		joined := strings.Join(path, ".")
		incremented = append(incremented, joined)
		log.WithFields(log.Fields{"device_id": deviceID, "path": joined}).Info("Incremented counter")
	}

	recordScanEvent(string(classification.Type))
	if completed {
		recordCompletion(completion.Slot, completion.LangKey)
	}

	// Every report is appended, unclassified ones included: they carry no
	// counters, but they overwrite the snapshot and so break the live
	// completion segment. The log must record the same boundary or a replay
	// would pair the statue reads on either side of the gap.
	interaction := &model.Interaction{
		ID:         uuid.New().String(),
		DeviceID:   deviceID,
		EventType:  string(classification.Type),
		Slot:       classification.Slot,
		LangKey:    classification.LangKey,
		ReceivedAt: now,
	}
	if err := svc.store.AppendInteraction(interaction); err != nil {
		// The log is the audit extension, not the source of truth for
		// counters; losing one entry is tolerated over failing the scan.
		log.WithError(err).WithField("device_id", deviceID).Warn("Failed to append interaction log entry")
	}

	snapshot := &model.DeviceSnapshot{
		DeviceID:      deviceID,
		StatueName:    req.Statue,
		LanguageName:  req.Language,
		ExplicitEvent: req.ExplicitEvent(),
		EventType:     string(classification.Type),
		Slot:          classification.Slot,
		LangKey:       classification.LangKey,
		Raw:           raw,
		ReceivedAt:    now,
	}
	if err := svc.store.PutSnapshot(snapshot); err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}

	return &dto.IngestResponse{
		Message:          ingestMessage(classification, incremented),
		EventType:        string(classification.Type),
		DeviceID:         deviceID,
		IncrementedPaths: incremented,
	}, nil
}

func ingestMessage(c engine.Classification, incremented []string) string {
	switch c.Type {
	case engine.EventUnclassified:
		if c.Reason == "no event type" {
			return "Stored raw scan; could not infer event type. No counters incremented."
		}
		return fmt.Sprintf("Stored raw scan; %s. No counters incremented.", c.Reason)
	case engine.EventPowerOff:
		if len(incremented) == 0 {
			return "Stored power-off signal. No counters incremented."
		}
		return fmt.Sprintf("Stored power-off signal; incremented %s", strings.Join(incremented, ", "))
	default:
		return fmt.Sprintf("Stored; incremented %s", strings.Join(incremented, ", "))
	}
}

// Snapshot returns the last stored report for a device.
func (svc *ScanService) Snapshot(deviceID string) (*model.DeviceSnapshot, error) {
	normalized := engine.NormalizeDeviceID(deviceID)
	snapshot, err := svc.store.GetSnapshot(normalized)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(svc.store.HandleError(err), "Store unavailable")
	}
	if snapshot == nil {
		return nil, shared.NewNotFoundError(fmt.Errorf("no snapshot for device %s", normalized), "Not Found")
	}
	return snapshot, nil
}
