package gormlogger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormLog "gorm.io/gorm/logger"
)

func newTestLogger(buf *bytes.Buffer) *GormLogger {
	return NewGormLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), 100*time.Millisecond, true)
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	gl := newTestLogger(&buf)
	ctx := context.Background()

	gl.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	assert.Contains(t, buf.String(), "SQL error")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	gl.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 2", 1 }, nil)
	assert.Contains(t, buf.String(), "SLOW SQL")

	buf.Reset()
	gl.LogMode(gormLog.Silent).Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 3", 0 }, errors.New("boom"))
	assert.Empty(t, buf.String())
}

func TestParamsFilter(t *testing.T) {
	var buf bytes.Buffer
	gl := newTestLogger(&buf)
	_, params := gl.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Nil(t, params)

	gl.ParameterizedQueries = false
	_, params = gl.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Equal(t, []interface{}{1}, params)
}
