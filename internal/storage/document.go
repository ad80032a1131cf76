package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// DocumentVersion is the schema version written into every snapshot.
const DocumentVersion uint = 1

// Sink persists whole snapshot documents by name.
type Sink interface {
	// Read returns nil data and no error when the document does not exist yet.
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Migrator converts a record written under an older document version.
type Migrator[T any] func(version uint, raw json.RawMessage) (T, error)

type DocumentOpt[T any] func(*DocumentStore[T])

// WithMigrator sets the function used to upgrade records from older documents.
func WithMigrator[T any](m Migrator[T]) DocumentOpt[T] {
	return func(s *DocumentStore[T]) {
		s.migrate = m
	}
}

type document[T any] struct {
	Version uint         `json:"version"`
	Records map[string]T `json:"records"`
}

// DocumentStore keeps a record set in memory and persists it as a single document.
type DocumentStore[T any] struct {
	*MemoryStore[T]

	name    string
	sink    Sink
	migrate Migrator[T]
}

func NewDocumentStore[T any](name string, sink Sink, opts ...DocumentOpt[T]) *DocumentStore[T] {
	s := &DocumentStore[T]{
		MemoryStore: NewMemoryStore[T](),
		name:        name,
		sink:        sink,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *DocumentStore[T]) Name() string {
	return s.name
}

// Load replaces the in-memory records with the persisted document. Documents
// without a version envelope are treated as version 0: a bare id to record map.
func (s *DocumentStore[T]) Load(ctx context.Context) error {
	data, err := s.sink.Read(ctx, s.name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.name, err)
	}

	records := map[string]T{}
	if len(data) == 0 {
		s.replace(records)
		return nil
	}

	version, raws, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", s.name, err)
	}
	if version > DocumentVersion {
		return fmt.Errorf("%s: unsupported document version %d", s.name, version)
	}

	for id, raw := range raws {
		if isNull(raw) {
			slog.WarnContext(ctx, "skipping null record", "document", s.name, "id", id)
			continue
		}
		rec, err := s.decodeRecord(version, raw)
		if err != nil {
			return fmt.Errorf("%s record %q: %w", s.name, id, err)
		}
		records[id] = rec
	}

	if version < DocumentVersion {
		slog.InfoContext(ctx, "migrated document", "document", s.name, "from", version, "to", DocumentVersion, "records", len(records))
	}

	s.replace(records)
	return nil
}

func (s *DocumentStore[T]) decodeRecord(version uint, raw json.RawMessage) (T, error) {
	if version < DocumentVersion && s.migrate != nil {
		return s.migrate(version, raw)
	}

	var rec T
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeDocument(data []byte) (uint, map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return 0, nil, err
	}

	rawVersion, hasVersion := top["version"]
	rawRecords, hasRecords := top["records"]
	if !hasVersion || !hasRecords {
		return 0, top, nil
	}

	var version uint
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return 0, nil, fmt.Errorf("version: %w", err)
	}

	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(rawRecords, &records); err != nil {
		return 0, nil, fmt.Errorf("records: %w", err)
	}

	return version, records, nil
}

// Snapshot encodes the current record set. Callers that mutate records in place
// must hold their own lock while taking the snapshot.
func (s *DocumentStore[T]) Snapshot() ([]byte, error) {
	doc := document[T]{
		Version: DocumentVersion,
		Records: s.GetAll(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", s.name, err)
	}
	return data, nil
}

// Write persists a snapshot previously taken with Snapshot.
func (s *DocumentStore[T]) Write(ctx context.Context, data []byte) error {
	err := s.sink.Write(ctx, s.name, data)
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// Flush takes a snapshot and writes it.
func (s *DocumentStore[T]) Flush(ctx context.Context) error {
	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	return s.Write(ctx, data)
}
