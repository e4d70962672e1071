package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/config"
	applogger "MacroPulse/pkg/logger"
)

func newTestApp(enabled bool, schedule string) *App {
	cfg := &config.Config{}
	cfg.Refresh.Enabled = enabled
	cfg.Refresh.Schedule = schedule
	return New(cfg, applogger.Nop(), nil, nil, cache.NewMemoryCache())
}

func TestScheduleRefreshDisabled(t *testing.T) {
	a := newTestApp(false, "@daily")
	require.NoError(t, a.scheduleRefresh(context.Background()))
	assert.Nil(t, a.cron)
}

func TestScheduleRefreshRejectsBadSchedule(t *testing.T) {
	a := newTestApp(true, "every tuesday")
	err := a.scheduleRefresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
	assert.Nil(t, a.cron)
}

func TestScheduleRefreshRegistersJob(t *testing.T) {
	a := newTestApp(true, "@every 1h")
	require.NoError(t, a.scheduleRefresh(context.Background()))
	require.NotNil(t, a.cron)
	assert.Len(t, a.cron.Entries(), 1)
	<-a.cron.Stop().Done()
	require.NoError(t, a.cache.Close())
}
