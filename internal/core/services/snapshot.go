// internal/core/services/snapshot.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// SchemaVersion is the current version of persisted snapshots.
// Payloads without an envelope are version 0, the browser-era layout with epoch-millisecond timestamps.
const SchemaVersion = 1

const (
	productsKeySuffix = "products"
	sessionKeySuffix  = "current_session"
)

// SnapshotKeys names the two persisted documents
type SnapshotKeys struct {
	Products string
	Session  string
}

// NewSnapshotKeys derives the snapshot keys from a key prefix
func NewSnapshotKeys(prefix string) SnapshotKeys {
	if prefix == "" {
		return SnapshotKeys{Products: productsKeySuffix, Session: sessionKeySuffix}
	}
	return SnapshotKeys{
		Products: prefix + ":" + productsKeySuffix,
		Session:  prefix + ":" + sessionKeySuffix,
	}
}

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// EncodeProducts serializes the catalog snapshot
func EncodeProducts(products []domain.Product) ([]byte, error) {
	if products == nil {
		products = []domain.Product{}
	}
	return encodeEnvelope(products)
}

// EncodeSession serializes the session snapshot
func EncodeSession(session *domain.InventorySession) ([]byte, error) {
	if session == nil {
		return nil, errors.New("session is nil")
	}
	return encodeEnvelope(session)
}

func encodeEnvelope(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot data: %w", err)
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
}

// DecodeProducts parses a catalog snapshot of any known version
func DecodeProducts(raw []byte) ([]domain.Product, error) {
	version, data, err := openEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products (version %d): %w", version, err)
	}
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
	}
	return products, nil
}

// DecodeSession parses a session snapshot of any known version
func DecodeSession(raw []byte) (*domain.InventorySession, error) {
	version, data, err := openEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var session *domain.InventorySession
	switch version {
	case 0:
		session, err = migrateLegacySession(data)
	default:
		err = json.Unmarshal(data, &session)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal session (version %d): %w", version, err)
	}
	if session == nil {
		return nil, errors.New("session snapshot is null")
	}
	if session.Records == nil {
		session.Records = make(map[string]domain.InventoryRecord)
	}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session snapshot: %w", err)
	}
	return session, nil
}

// openEnvelope returns the schema version and payload of raw
func openEnvelope(raw []byte) (int, []byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, nil, errors.New("empty snapshot")
	}

	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return 0, nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		if _, ok := probe["schemaVersion"]; ok {
			var env envelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return 0, nil, fmt.Errorf("failed to parse snapshot envelope: %w", err)
			}
			if env.SchemaVersion < 1 || env.SchemaVersion > SchemaVersion {
				return 0, nil, fmt.Errorf("unsupported snapshot schema version %d", env.SchemaVersion)
			}
			return env.SchemaVersion, env.Data, nil
		}
	}

	return 0, trimmed, nil
}

type legacySession struct {
	ID            legacyID                        `json:"id"`
	StartDate     int64                           `json:"startDate"`
	CompletedDate *int64                          `json:"completedDate"`
	Records       map[string]legacyInventoryEntry `json:"records"`
	Status        domain.SessionStatus            `json:"status"`
}

type legacyInventoryEntry struct {
	ProductID     string  `json:"productId"`
	FullBottles   int     `json:"fullBottles"`
	PartialBottle float64 `json:"partialBottle"`
	UpdatedAt     int64   `json:"updatedAt"`
}

// migrateLegacySession converts a version 0 session.
// Out-of-range quantities the old client could store are clamped into range.
func migrateLegacySession(data []byte) (*domain.InventorySession, error) {
	var legacy legacySession
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}

	session := &domain.InventorySession{
		ID:        string(legacy.ID),
		StartDate: fromEpochMillis(legacy.StartDate),
		Records:   make(map[string]domain.InventoryRecord, len(legacy.Records)),
		Status:    legacy.Status,
	}
	if legacy.CompletedDate != nil {
		completed := fromEpochMillis(*legacy.CompletedDate)
		session.CompletedDate = &completed
	}
	if session.Status == "" {
		session.Status = domain.SessionActive
	}

	for key, entry := range legacy.Records {
		productID := entry.ProductID
		if productID == "" {
			productID = key
		}
		partial := entry.PartialBottle
		if math.IsNaN(partial) {
			partial = 0
		}
		session.Records[productID] = domain.InventoryRecord{
			ProductID:     productID,
			FullBottles:   max(entry.FullBottles, 0),
			PartialBottle: math.Min(math.Max(partial, 0), 1),
			UpdatedAt:     fromEpochMillis(entry.UpdatedAt),
		}
	}
	return session, nil
}

// legacyID accepts ids written either as JSON strings or numbers
type legacyID string

func (id *legacyID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = legacyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid session id: %s", b)
	}
	*id = legacyID(n.String())
	return nil
}

func fromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// SnapshotRepository loads and saves the catalog and session documents.
// Malformed or missing documents load as defaults; read errors are returned.
type SnapshotRepository struct {
	store  ports.SnapshotStore
	keys   SnapshotKeys
	logger *slog.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(store ports.SnapshotStore, keys SnapshotKeys, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		store:  store,
		keys:   keys,
		logger: logger.With(slog.String("component", "snapshots")),
	}
}

// Keys returns the document keys in use
func (r *SnapshotRepository) Keys() SnapshotKeys {
	return r.keys
}

// LoadProducts returns the persisted catalog. found is false when the document is
// absent or malformed, in which case the default catalog is returned. Any other
// store error is returned as is.
func (r *SnapshotRepository) LoadProducts(ctx context.Context) (products []domain.Product, found bool, err error) {
	raw, err := r.store.Load(ctx, r.keys.Products)
	if errors.Is(err, ports.ErrSnapshotNotFound) {
		return domain.DefaultProducts(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog snapshot %s: %w", r.keys.Products, err)
	}

	products, err = DecodeProducts(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "malformed catalog snapshot, using default catalog",
			slog.String("key", r.keys.Products),
			slog.String("error", err.Error()))
		return domain.DefaultProducts(), false, nil
	}
	return products, true, nil
}

// LoadSession returns the persisted session, or nil when absent or malformed
func (r *SnapshotRepository) LoadSession(ctx context.Context) (*domain.InventorySession, error) {
	raw, err := r.store.Load(ctx, r.keys.Session)
	if errors.Is(err, ports.ErrSnapshotNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session snapshot %s: %w", r.keys.Session, err)
	}

	session, err := DecodeSession(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "malformed session snapshot, starting new session",
			slog.String("key", r.keys.Session),
			slog.String("error", err.Error()))
		return nil, nil
	}
	return session, nil
}

// SaveProducts writes the catalog snapshot
func (r *SnapshotRepository) SaveProducts(ctx context.Context, products []domain.Product) error {
	data, err := EncodeProducts(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}
	if err := r.store.Save(ctx, r.keys.Products, data); err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}
	return nil
}

// SaveSession writes the session snapshot
func (r *SnapshotRepository) SaveSession(ctx context.Context, session *domain.InventorySession) error {
	data, err := EncodeSession(session)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := r.store.Save(ctx, r.keys.Session, data); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}
