package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, format string) (*Logger, *bytes.Buffer) {
	t.Helper()

	l, err := NewLogger(&Config{Level: DebugLevel, Format: format, AppName: "vehicle-rental"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func TestJSONFormatIncludesFields(t *testing.T) {
	l, buf := newBufferedLogger(t, "json")

	l.WithField("vehicle_id", 7).Info("vehicle reserved")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vehicle reserved", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "vehicle-rental", entry["app"])
	assert.EqualValues(t, 7, entry["vehicle_id"])
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferedLogger(t, "json")

	_ = l.WithField("booking_id", 1)
	l.Info("plain")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry["booking_id"]
	assert.False(t, ok)
}

func TestWithContextPicksUpRequestAndUser(t *testing.T) {
	l, buf := newBufferedLogger(t, "json")

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, 42)
	l.WithContext(ctx).Warn("ctx")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 42, entry["user_id"])
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestLogBookingEvent(t *testing.T) {
	l, buf := newBufferedLogger(t, "json")

	l.LogBookingEvent(3, "booking.created", map[string]interface{}{"total_amount": 100})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "booking_event", entry["type"])
	assert.Equal(t, "booking.created", entry["event"])
	assert.EqualValues(t, 100, entry["total_amount"])
}

func TestTextFormatSortsFields(t *testing.T) {
	l, buf := newBufferedLogger(t, "text")

	l.WithFields(map[string]interface{}{"b": 2, "a": 1}).Error("boom")

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "[vehicle-rental]")
	assert.Contains(t, out, "boom a=1 b=2")
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(t, "json")
	l.SetLevel(WarnLevel)

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.NotZero(t, buf.Len())
}
