package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("hello", F("k", "v"))
	mock.Warn("careful")

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, []Field{{Key: "k", Value: "v"}}, entries[0].Fields)
	assert.True(t, mock.HasEntry("WARN", "careful"))
	assert.False(t, mock.HasEntry("ERROR", "careful"))
}

// Entries logged through derived loggers must land in the root mock's sink,
// since tests only hold the root.
func TestMockLoggerDerivedLoggersShareSink(t *testing.T) {
	mock := NewMockLogger()
	err := errors.New("boom")

	mock.WithError(err).Error("failed")
	mock.WithField("bank", "bac_cr").Debug("detected")
	mock.WithFields(F("a", 1), F("b", 2)).Info("both")

	entries := mock.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, err, entries[0].Error)
	assert.Equal(t, []Field{{Key: "bank", Value: "bac_cr"}}, entries[1].Fields)
	assert.Len(t, entries[2].Fields, 2)
}
