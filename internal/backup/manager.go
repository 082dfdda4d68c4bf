package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"menuforge/internal/logging"
	"menuforge/internal/services"
	"menuforge/internal/session"
	"menuforge/internal/snapshot"
)

// DefaultRetention is the number of snapshots kept when none is configured.
const DefaultRetention = 20

const nameTimeLayout = "20060102T150405.000000000Z"

// Storage is the durable boundary the manager writes through. Implemented by
// *snapshot.Store.
type Storage interface {
	Write(ctx context.Context, name string, createdAt time.Time, payload []byte) error
	List(ctx context.Context) ([]snapshot.Entry, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Prune(ctx context.Context, keep int) (int64, error)
	Latest(ctx context.Context) (*snapshot.Entry, error)
}

// envelope is the serialized snapshot payload.
type envelope struct {
	Timestamp time.Time       `json:"timestamp"`
	SessionID string          `json:"session_id"`
	Record    *session.Record `json:"record"`
}

// Manager owns the snapshot rotation for one session.
type Manager struct {
	storage Storage
	keep    int
	logger  *slog.Logger

	mu    sync.Mutex
	clock func() time.Time
	last  time.Time
}

// Option customizes the manager.
type Option func(*Manager)

// WithClock overrides the snapshot timestamp source (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewManager constructs a manager over the given storage. A non-positive
// retention falls back to DefaultRetention.
func NewManager(storage Storage, retention int, logger *slog.Logger, opts ...Option) *Manager {
	if retention <= 0 {
		retention = DefaultRetention
	}
	m := &Manager{
		storage: storage,
		keep:    retention,
		logger:  logging.WithComponent(logger, "backup"),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot serializes the record into a new timestamped snapshot and prunes
// the rotation. Implements session.Snapshotter.
func (m *Manager) Snapshot(rec *session.Record) error {
	ts := m.nextTimestamp()
	payload, err := json.Marshal(envelope{Timestamp: ts, SessionID: rec.SessionID, Record: rec})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	ctx := context.Background()
	name := "backup_" + ts.Format(nameTimeLayout)
	if err := m.storage.Write(ctx, name, ts, payload); err != nil {
		return err
	}
	if _, err := m.storage.Prune(ctx, m.keep); err != nil {
		m.logger.Warn("snapshot rotation prune failed", logging.Error(err))
	}
	m.logger.Debug("snapshot written",
		slog.String(logging.FieldSnapshot, name),
		slog.String(logging.FieldSessionID, rec.SessionID))
	return nil
}

// nextTimestamp returns a strictly increasing wall-clock timestamp so
// snapshot names written within the same instant still rotate in order.
func (m *Manager) nextTimestamp() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.clock().UTC()
	if !ts.After(m.last) {
		ts = m.last.Add(time.Nanosecond)
	}
	m.last = ts
	return ts
}

// List returns the stored snapshots, oldest first.
func (m *Manager) List(ctx context.Context) ([]snapshot.Entry, error) {
	return m.storage.List(ctx)
}

// Restore reads a snapshot by name and returns its record after structural
// validation. The caller applies it to the live store; a failed restore
// therefore never touches live state.
func (m *Manager) Restore(ctx context.Context, name string) (*session.Record, error) {
	payload, err := m.storage.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, services.Wrap(services.ErrNotFound, "backup", "restore", name, nil)
	}
	rec, err := decodeRecord(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "backup", "restore", "snapshot is not structurally valid", err)
	}
	m.logger.Info("snapshot restored",
		slog.String(logging.FieldSnapshot, name),
		slog.String(logging.FieldSessionID, rec.SessionID))
	return rec, nil
}

// RestoreLatest restores the newest snapshot, returning nil when the store
// holds none.
func (m *Manager) RestoreLatest(ctx context.Context) (*session.Record, error) {
	latest, err := m.storage.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return m.Restore(ctx, latest.Name)
}

// Export serializes a record for manual round-tripping, independent of the
// rotation.
func Export(rec *session.Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export record: %w", err)
	}
	return data, nil
}

// Import deserializes a record previously produced by Export and validates
// its structure.
func Import(data []byte) (*session.Record, error) {
	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, services.Wrap(services.ErrValidation, "backup", "import", "payload is not a record", err)
	}
	if err := session.CheckRecord(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeRecord(payload []byte) (*session.Record, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, err
	}
	if env.Record == nil {
		return nil, fmt.Errorf("snapshot envelope has no record")
	}
	if err := session.CheckRecord(env.Record); err != nil {
		return nil, err
	}
	return env.Record, nil
}
