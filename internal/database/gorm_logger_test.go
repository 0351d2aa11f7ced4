package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/merchstore/internal/logger"
)

type entry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (r *recordingLogger) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level: level, msg: msg})
}

func (r *recordingLogger) Debug(msg string, _ ...logger.Field) { r.add("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...logger.Field)  { r.add("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...logger.Field)  { r.add("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...logger.Field) { r.add("error", msg) }
func (r *recordingLogger) Fatal(msg string, _ ...logger.Field) { r.add("fatal", msg) }
func (r *recordingLogger) With(...logger.Field) logger.Logger  { return r }
func (r *recordingLogger) Sync() error                         { return nil }

func (r *recordingLogger) logged() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entry(nil), r.entries...)
}

func query() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		level gormlogger.LogLevel
		begin time.Time
		err   error
		want  []entry
	}{
		{"failed query", gormlogger.Warn, time.Now(), errors.New("boom"), []entry{{"error", "query failed"}}},
		{"record not found is quiet", gormlogger.Warn, time.Now(), gorm.ErrRecordNotFound, nil},
		{"slow query", gormlogger.Warn, time.Now().Add(-time.Second), nil, []entry{{"warn", "slow query"}}},
		{"fast query at warn", gormlogger.Warn, time.Now(), nil, nil},
		{"fast query at info", gormlogger.Info, time.Now(), nil, []entry{{"debug", "query"}}},
		{"silent", gormlogger.Silent, time.Now(), errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecordingLogger()
			newGormLogger(rec, tt.level).Trace(ctx, tt.begin, query, tt.err)
			assert.Equal(t, tt.want, rec.logged())
		})
	}
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	rec := newRecordingLogger()
	base := newGormLogger(rec, gormlogger.Warn)
	verbose := base.LogMode(gormlogger.Info)

	base.Info(context.Background(), "hidden %d", 1)
	verbose.Info(context.Background(), "shown %d", 2)

	got := rec.logged()
	require.Len(t, got, 1)
	assert.Equal(t, entry{"info", "shown 2"}, got[0])
}
