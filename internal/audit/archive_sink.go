package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/ids"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

const archiveContentType = "application/x-ndjson"

// ArchiveSink batches entries into JSON-lines objects in blob storage.
// A batch is flushed when it reaches the batch size and on every Run tick.
type ArchiveSink struct {
	storage   model.Storage
	logger    *logger.Logger
	batchSize int

	mu      sync.Mutex
	pending []model.AuditEntry
}

func NewArchiveSink(storage model.Storage, batchSize int, logger *logger.Logger) *ArchiveSink {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ArchiveSink{storage: storage, batchSize: batchSize, logger: logger}
}

func (s *ArchiveSink) Emit(ctx context.Context, e model.AuditEntry) {
	s.mu.Lock()
	s.pending = append(s.pending, e)
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()

	if full {
		if err := s.Flush(ctx); err != nil {
			s.logger.Error("Audit archive: flush failed", "error", err.Error())
		}
	}
}

// Run flushes on every interval until ctx is done, then flushes once more.
func (s *ArchiveSink) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("Audit archive: periodic flush failed", "error", err.Error())
			}
		case <-ctx.Done():
			if err := s.Flush(context.Background()); err != nil {
				s.logger.Error("Audit archive: final flush failed", "error", err.Error())
			}
			return
		}
	}
}

// Flush uploads pending entries. On failure the entries are kept for the next attempt.
func (s *ArchiveSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range batch {
		if err := enc.Encode(toRecord(e)); err != nil {
			return fmt.Errorf("failed to encode audit entry: %w", err)
		}
	}

	key := objectKey(batch[0].At)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), archiveContentType); err != nil {
		s.mu.Lock()
		s.pending = append(batch, s.pending...)
		s.mu.Unlock()
		return fmt.Errorf("failed to archive %d audit entries: %w", len(batch), err)
	}

	s.logger.Debug("Audit archive: batch uploaded", "key", key, "entries", len(batch))
	return nil
}

type record struct {
	ID             string         `json:"id"`
	Action         string         `json:"action"`
	At             time.Time      `json:"at"`
	ActorID        *uuid.UUID     `json:"actor_id,omitempty"`
	OrganizationID *uuid.UUID     `json:"organization_id,omitempty"`
	IPAddress      string         `json:"ip,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

func toRecord(e model.AuditEntry) record {
	return record{
		ID:             e.ID,
		Action:         e.Action,
		At:             e.At,
		ActorID:        e.ActorID,
		OrganizationID: e.OrganizationID,
		IPAddress:      e.IPAddress,
		UserAgent:      e.UserAgent,
		Metadata:       e.Metadata,
	}
}

// objectKey partitions objects by day: audit/2026/10/15/<ulid>.jsonl.
func objectKey(at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("audit/%04d/%02d/%02d/%s.jsonl", at.Year(), at.Month(), at.Day(), ids.NewAt(at))
}
