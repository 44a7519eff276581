package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/testutil"
)

type captureSink struct {
	mu      sync.Mutex
	entries []model.AuditEntry
	block   chan struct{}
}

func (s *captureSink) Emit(_ context.Context, e model.AuditEntry) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *captureSink) all() []model.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditEntry(nil), s.entries...)
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	a, b := &captureSink{}, &captureSink{}
	d := NewDispatcher(Config{BufferSize: 8}, a, b)

	actor := uuid.New()
	d.Record(context.Background(), model.AuditEntry{Action: model.AuditMemberAdded, ActorID: &actor})
	d.Close()

	for _, s := range []*captureSink{a, b} {
		entries := s.all()
		require.Len(t, entries, 1)
		assert.Equal(t, model.AuditMemberAdded, entries[0].Action)
		assert.Len(t, entries[0].ID, 26)
		assert.False(t, entries[0].At.IsZero())
	}
}

func TestDispatcher_DropIfFull(t *testing.T) {
	sink := &captureSink{block: make(chan struct{})}
	d := NewDispatcher(Config{BufferSize: 1, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Record(context.Background(), model.AuditEntry{Action: "x"})
	}
	assert.Eventually(t, func() bool { return d.Dropped() >= 8 }, time.Second, 10*time.Millisecond)

	close(sink.block)
	d.Close()
	assert.Equal(t, uint64(10), d.Dropped()+uint64(len(sink.all())))
}

func TestDispatcher_RecordAfterCloseIsIgnored(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(Config{BufferSize: 1}, sink)
	d.Close()

	d.Record(context.Background(), model.AuditEntry{Action: "late"})
	assert.Empty(t, sink.all())

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() {
		nilDispatcher.Record(context.Background(), model.AuditEntry{})
		nilDispatcher.Close()
	})
}

func TestLogSink_Emit(t *testing.T) {
	s := NewLogSink(testutil.MakeNoopLogger())
	org := uuid.New()
	assert.NotPanics(t, func() {
		s.Emit(context.Background(), model.AuditEntry{Action: model.AuditRoleCreated, OrganizationID: &org, Metadata: map[string]any{"role": "EDITOR"}})
	})
}
