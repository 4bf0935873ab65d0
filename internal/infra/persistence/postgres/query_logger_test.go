package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestQueryLogger(opts queryLogOptions) (*queryLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newQueryLogger(base, opts), buf
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}

	return lines
}

func fixedQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestQueryLogger_ParamsFilter(t *testing.T) {
	redacting, _ := newTestQueryLogger(queryLogOptions{})
	sql, params := redacting.ParamsFilter(context.Background(), "SELECT * FROM accounts WHERE email = $1", "ada@example.com")
	assert.Equal(t, "SELECT * FROM accounts WHERE email = $1", sql)
	assert.Nil(t, params)

	verbose, _ := newTestQueryLogger(queryLogOptions{withParams: true})
	_, params = verbose.ParamsFilter(context.Background(), "SELECT 1", "ada@example.com")
	assert.Equal(t, []any{"ada@example.com"}, params)
}

func TestQueryLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query is logged at error", func(t *testing.T) {
		l, buf := newTestQueryLogger(queryLogOptions{})
		l.Trace(ctx, time.Now(), fixedQuery("INSERT INTO accounts", 0), errors.New("boom"))

		lines := decodeLogLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "ERROR", lines[0]["level"])
		assert.Equal(t, "boom", lines[0]["error"])
		assert.Equal(t, "account_store", lines[0]["component"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, buf := newTestQueryLogger(queryLogOptions{})
		l.Trace(ctx, time.Now(), fixedQuery("SELECT", 0), gorm.ErrRecordNotFound)

		assert.Empty(t, decodeLogLines(t, buf))
	})

	t.Run("slow query is logged at warn", func(t *testing.T) {
		l, buf := newTestQueryLogger(queryLogOptions{slowThreshold: time.Millisecond})
		l.Trace(ctx, time.Now().Add(-time.Second), fixedQuery("SELECT", 1), nil)

		lines := decodeLogLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "WARN", lines[0]["level"])
		assert.Equal(t, "Account store slow query", lines[0]["msg"])
	})

	t.Run("fast query is only logged in debug", func(t *testing.T) {
		quiet, quietBuf := newTestQueryLogger(queryLogOptions{slowThreshold: time.Hour})
		quiet.Trace(ctx, time.Now(), fixedQuery("SELECT", 1), nil)
		assert.Empty(t, decodeLogLines(t, quietBuf))

		debug, debugBuf := newTestQueryLogger(queryLogOptions{debug: true, slowThreshold: time.Hour})
		debug.Trace(ctx, time.Now(), fixedQuery("SELECT", 1), nil)
		lines := decodeLogLines(t, debugBuf)
		require.Len(t, lines, 1)
		assert.Equal(t, "SELECT", lines[0]["sql"])
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		l, buf := newTestQueryLogger(queryLogOptions{})
		silent := l.LogMode(logger.Silent)
		silent.Trace(ctx, time.Now(), fixedQuery("INSERT", 0), errors.New("boom"))

		assert.Empty(t, decodeLogLines(t, buf))
	})
}
