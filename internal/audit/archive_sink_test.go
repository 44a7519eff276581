package audit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/testutil"
)

type memoryStorage struct {
	objects map[string][]byte
	err     error
}

func (m *memoryStorage) Upload(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size || contentType != archiveContentType {
		return errors.New("unexpected upload parameters")
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = b
	return nil
}

func TestArchiveSink_FlushesFullBatch(t *testing.T) {
	store := &memoryStorage{}
	s := NewArchiveSink(store, 2, testutil.MakeNoopLogger())
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	s.Emit(context.Background(), model.AuditEntry{ID: "1", Action: model.AuditRoleCreated, At: at})
	assert.Empty(t, store.objects)

	s.Emit(context.Background(), model.AuditEntry{ID: "2", Action: model.AuditRoleDeleted, At: at, Metadata: map[string]any{"role": "EDITOR"}})
	require.Len(t, store.objects, 1)

	for key, body := range store.objects {
		assert.True(t, strings.HasPrefix(key, "audit/2026/10/15/"))
		assert.True(t, strings.HasSuffix(key, ".jsonl"))

		var lines []map[string]any
		sc := bufio.NewScanner(bytes.NewReader(body))
		for sc.Scan() {
			var line map[string]any
			require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
			lines = append(lines, line)
		}
		require.Len(t, lines, 2)
		assert.Equal(t, model.AuditRoleCreated, lines[0]["action"])
		assert.Equal(t, "EDITOR", lines[1]["metadata"].(map[string]any)["role"])
	}
}

func TestArchiveSink_KeepsBatchOnFailure(t *testing.T) {
	store := &memoryStorage{err: errors.New("s3 down")}
	s := NewArchiveSink(store, 10, testutil.MakeNoopLogger())

	s.Emit(context.Background(), model.AuditEntry{ID: "1", Action: "a", At: time.Now()})
	require.Error(t, s.Flush(context.Background()))

	store.err = nil
	require.NoError(t, s.Flush(context.Background()))
	assert.Len(t, store.objects, 1)

	require.NoError(t, s.Flush(context.Background()), "empty flush is a no-op")
	assert.Len(t, store.objects, 1)
}

func TestArchiveSink_RunFlushesOnShutdown(t *testing.T) {
	store := &memoryStorage{}
	s := NewArchiveSink(store, 100, testutil.MakeNoopLogger())
	s.Emit(context.Background(), model.AuditEntry{ID: "1", Action: "a", At: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()
	<-done

	assert.Len(t, store.objects, 1)
}
