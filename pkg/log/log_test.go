package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedLogger(t *testing.T) *test.Hook {
	t.Helper()

	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	previous := L
	L = &logger{entry: logrus.NewEntry(base)}
	t.Cleanup(func() { L = previous })

	return hook
}

func TestIsRelevantField(t *testing.T) {
	for _, key := range []string{FieldYear, FieldQuantity, FieldSource, FieldCorrelationID, "operator_email"} {
		assert.True(t, isRelevantField(key), key)
	}
	for _, key := range []string{"user_agent", "referer", "remote_addr"} {
		assert.False(t, isRelevantField(key), key)
	}
}

func TestWithFields_DevelopmentKeepsKPIFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	hook := newCapturedLogger(t)

	L.WithFields(Fields{FieldYear: 2020, FieldQuantity: "aum", "user_agent": "curl"}).Info("relatório")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 2020, entry.Data[FieldYear])
	assert.Equal(t, "aum", entry.Data[FieldQuantity])
	assert.NotContains(t, entry.Data, "user_agent")
}

func TestWithFields_ProductionKeepsEverything(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	hook := newCapturedLogger(t)

	L.WithFields(Fields{FieldYear: 2020, "user_agent": "curl"}).Info("relatório")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "curl", entry.Data["user_agent"])
}

func TestForReport(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	hook := newCapturedLogger(t)

	ctx, correlationID := WithCorrelationID(context.Background())
	assert.Equal(t, correlationID, GetCorrelationID(ctx))

	ForReport(ctx, 2019, "investors").Warn("linha ausente")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 2019, entry.Data[FieldYear])
	assert.Equal(t, "investors", entry.Data[FieldQuantity])
	assert.Equal(t, correlationID, entry.Data[FieldCorrelationID])

	ForReport(context.Background(), 2019, "").Info("sem quantidade")
	assert.NotContains(t, hook.LastEntry().Data, FieldQuantity)
}

func TestGetCorrelationID_Missing(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
}
