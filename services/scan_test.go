package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/engine"
	"github.com/tree-d/kiosk_api/model"
	"github.com/tree-d/kiosk_api/shared"
)

// fakeEventStore is an in-memory EventStore for exercising the ingest
// pipeline without a database.
type fakeEventStore struct {
	snapshots map[string]*model.DeviceSnapshot
	counters  map[string]map[string]int64
	log       []model.Interaction

	failIncrements bool
	failSnapshots  bool
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		snapshots: map[string]*model.DeviceSnapshot{},
		counters:  map[string]map[string]int64{},
	}
}

func (f *fakeEventStore) GetSnapshot(deviceID string) (*model.DeviceSnapshot, error) {
	if f.failSnapshots {
		return nil, errors.New("store down")
	}
	return f.snapshots[deviceID], nil
}

func (f *fakeEventStore) PutSnapshot(snapshot *model.DeviceSnapshot) error {
	if f.failSnapshots {
		return errors.New("store down")
	}
	f.snapshots[snapshot.DeviceID] = snapshot
	return nil
}

func (f *fakeEventStore) IncrementCounter(deviceID string, path []string, amount int64) error {
	if f.failIncrements {
		return errors.New("store down")
	}
	if f.counters[deviceID] == nil {
		f.counters[deviceID] = map[string]int64{}
	}
	f.counters[deviceID][strings.Join(path, ".")] += amount
	return nil
}

func (f *fakeEventStore) StreamCounters() ([]*model.CounterRecord, error) {
	return nil, nil
}

func (f *fakeEventStore) AppendInteraction(record *model.Interaction) error {
	f.log = append(f.log, *record)
	return nil
}

func (f *fakeEventStore) StreamInteractions(start, end *time.Time) ([]model.Interaction, error) {
	return f.log, nil
}

func (f *fakeEventStore) MigrateLanguageCounters() ([]string, error) {
	return nil, nil
}

func (f *fakeEventStore) HandleError(err error) error {
	return err
}

func newTestScanService(store EventStore, now *time.Time) *ScanService {
	return &ScanService{
		store: store,
		clock: func() time.Time { return *now },
	}
}

func TestIngestStatueRead(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	resp, err := svc.Ingest(dto.ScanRequest{ID: "ES33", Statue: "roman", Language: "English"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if resp.DeviceID != "es33" {
		t.Errorf("device id = %q, want normalized es33", resp.DeviceID)
	}
	if resp.EventType != "statue" {
		t.Errorf("event type = %q, want statue", resp.EventType)
	}
	if resp.Message != "Stored; incremented artifacts.st4.en" {
		t.Errorf("message = %q", resp.Message)
	}
	if got := store.counters["es33"]["artifacts.st4.en"]; got != 1 {
		t.Errorf("artifacts.st4.en = %d, want 1", got)
	}

	snap := store.snapshots["es33"]
	if snap == nil {
		t.Fatal("snapshot not stored")
	}
	if snap.Slot != "st4" || snap.LangKey != "en" || !snap.ReceivedAt.Equal(now) {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(store.log) != 1 || store.log[0].EventType != "statue" {
		t.Errorf("interaction log = %+v, want one statue entry", store.log)
	}
}

func TestIngestCompletionBoundary(t *testing.T) {
	// st4/en runs 85 seconds; the completion boundary is 76.5.
	tests := []struct {
		name          string
		elapsed       time.Duration
		wantCompleted bool
	}{
		{"segment closed at 60s is not completed", 60 * time.Second, false},
		{"segment closed at 90s is completed", 90 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeEventStore()
			now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
			svc := newTestScanService(store, &now)

			if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "roman", Language: "English"}); err != nil {
				t.Fatalf("first Ingest() error = %v", err)
			}

			now = now.Add(tt.elapsed)
			resp, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "church", Language: "English"})
			if err != nil {
				t.Fatalf("second Ingest() error = %v", err)
			}

			if got := store.counters["es33"]["artifacts.st9.en"]; got != 1 {
				t.Errorf("artifacts.st9.en = %d, want 1", got)
			}

			completions := store.counters["es33"]["completions.st4.en"]
			if tt.wantCompleted && completions != 1 {
				t.Errorf("completions.st4.en = %d, want 1", completions)
			}
			if !tt.wantCompleted && completions != 0 {
				t.Errorf("completions.st4.en = %d, want 0", completions)
			}

			if tt.wantCompleted && !strings.Contains(resp.Message, "completions.st4.en") {
				t.Errorf("message %q does not mention the completion", resp.Message)
			}
		})
	}
}

func TestIngestPowerOffClosesSegment(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "roman", Language: "English"}); err != nil {
		t.Fatalf("first Ingest() error = %v", err)
	}

	now = now.Add(90 * time.Second)
	resp, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "NULL", Language: "NULL"})
	if err != nil {
		t.Fatalf("power-off Ingest() error = %v", err)
	}

	if resp.EventType != "power_off" {
		t.Errorf("event type = %q, want power_off", resp.EventType)
	}
	if got := store.counters["es33"]["completions.st4.en"]; got != 1 {
		t.Errorf("completions.st4.en = %d, want 1", got)
	}
	if resp.Message != "Stored power-off signal; incremented completions.st4.en" {
		t.Errorf("message = %q", resp.Message)
	}

	// The power-off still overwrites the snapshot.
	if snap := store.snapshots["es33"]; snap == nil || snap.EventType != "power_off" {
		t.Errorf("snapshot = %+v, want power_off", snap)
	}
}

func TestIngestUnmappedStatue(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	resp, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "Atlantis", Language: "English"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if resp.EventType != "unclassified" {
		t.Errorf("event type = %q, want unclassified", resp.EventType)
	}
	if len(resp.IncrementedPaths) != 0 {
		t.Errorf("incremented paths = %v, want none", resp.IncrementedPaths)
	}
	if len(store.counters["es33"]) != 0 {
		t.Errorf("counters = %v, want none", store.counters["es33"])
	}
	if resp.Message != "Stored raw scan; statue unmapped. No counters incremented." {
		t.Errorf("message = %q", resp.Message)
	}

	// Raw snapshot is stored even for unclassified reports.
	if store.snapshots["es33"] == nil {
		t.Error("snapshot not stored")
	}
	// Unclassified reports are logged too; they are segment boundaries.
	if len(store.log) != 1 || store.log[0].EventType != "unclassified" {
		t.Errorf("interaction log = %+v, want one unclassified entry", store.log)
	}
	if store.log[0].Slot != "" || store.log[0].LangKey != "" {
		t.Errorf("unclassified entry carries keys: %+v", store.log[0])
	}
}

func TestIngestUnclassifiedBreaksSegment(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	// st4/en at t0, a garbage read at t0+30 overwriting the snapshot, then
	// another statue at t0+90. The 90s gap spans the garbage read, so neither
	// the live path nor a log replay may award the st4/en completion.
	if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "roman", Language: "English"}); err != nil {
		t.Fatalf("first Ingest() error = %v", err)
	}
	now = now.Add(30 * time.Second)
	if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "Atlantis", Language: "English"}); err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	now = now.Add(60 * time.Second)
	if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "church", Language: "English"}); err != nil {
		t.Fatalf("third Ingest() error = %v", err)
	}

	if got := store.counters["es33"]["completions.st4.en"]; got != 0 {
		t.Errorf("live completions.st4.en = %d, want 0", got)
	}

	records := engine.Replay(store.log)
	if len(records) != 1 {
		t.Fatalf("replay produced %d records, want 1", len(records))
	}
	if got := records[0].Completions["st4"]["en"]; got != 0 {
		t.Errorf("replayed completions.st4.en = %d, want 0", got)
	}
	if records[0].Artifacts["st4"]["en"] != 1 || records[0].Artifacts["st9"]["en"] != 1 {
		t.Errorf("replayed artifacts = %+v, want st4/en and st9/en at 1", records[0].Artifacts)
	}
}

func TestIngestMissingDeviceID(t *testing.T) {
	store := newFakeEventStore()
	now := time.Now()
	svc := newTestScanService(store, &now)

	_, err := svc.Ingest(dto.ScanRequest{ID: "   "})
	if err == nil {
		t.Fatal("Ingest() error = nil, want bad request")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 400 {
		t.Errorf("error = %v, want 400 AppError", err)
	}
}

func TestIngestReplayDoublesCounters(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	sequence := func() {
		if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "roman", Language: "English"}); err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if _, err := svc.Ingest(dto.ScanRequest{ID: "es33", Language: "Spanish"}); err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
	}

	sequence()
	first := map[string]int64{}
	for k, v := range store.counters["es33"] {
		first[k] = v
	}

	sequence()
	for k, v := range store.counters["es33"] {
		if v != 2*first[k] {
			t.Errorf("counter %s = %d after replay, want %d", k, v, 2*first[k])
		}
	}
}

func TestIngestStoreUnavailable(t *testing.T) {
	store := newFakeEventStore()
	store.failIncrements = true
	now := time.Now()
	svc := newTestScanService(store, &now)

	_, err := svc.Ingest(dto.ScanRequest{ID: "es33", Statue: "roman", Language: "English"})
	if err == nil {
		t.Fatal("Ingest() error = nil, want store unavailable")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 503 {
		t.Errorf("error = %v, want 503 AppError", err)
	}
}

func TestSnapshotNotFound(t *testing.T) {
	store := newFakeEventStore()
	now := time.Now()
	svc := newTestScanService(store, &now)

	_, err := svc.Snapshot("es99")
	if err == nil {
		t.Fatal("Snapshot() error = nil, want not found")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 404 {
		t.Errorf("error = %v, want 404 AppError", err)
	}
}

func TestSnapshotNormalizesDeviceID(t *testing.T) {
	store := newFakeEventStore()
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := newTestScanService(store, &now)

	if _, err := svc.Ingest(dto.ScanRequest{ID: "ES33", Statue: "roman", Language: "English"}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	snap, err := svc.Snapshot("  ES33 ")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.DeviceID != "es33" {
		t.Errorf("snapshot device id = %q, want es33", snap.DeviceID)
	}
}
