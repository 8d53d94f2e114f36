package service

import (
	"testing"

	"github.com/yukkurinet/hyakki-portal/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerStatusSeeded(t *testing.T) {
	setup()
	defer teardown()

	svc := ServerStatusService{}

	status, err := svc.Get()
	require.NoError(t, err)
	assert.True(t, status.Online)
	assert.Equal(t, 100, status.MaxPlayers)
	assert.Equal(t, "blood_moon_festival", status.Event)
	assert.Equal(t, 124, status.UptimeDays)
}

func TestRandomizePlayersRange(t *testing.T) {
	setup()
	defer teardown()

	svc := ServerStatusService{}

	for i := 0; i < 50; i++ {
		status, err := svc.RandomizePlayers()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, status.Players, 30)
		assert.LessOrEqual(t, status.Players, 50)
	}

	// The last randomized count is what the next read sees.
	randomized, err := svc.RandomizePlayers()
	require.NoError(t, err)
	persisted, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, randomized.Players, persisted.Players)
}

func TestServerStatusUpdatePartial(t *testing.T) {
	setup()
	defer teardown()

	svc := ServerStatusService{}

	offline := false
	event := "calm_night"
	updated, err := svc.Update(StatusUpdate{Online: &offline, Event: &event})
	require.NoError(t, err)
	assert.False(t, updated.Online)
	assert.Equal(t, "calm_night", updated.Event)
	// Untouched fields survive.
	assert.Equal(t, 100, updated.MaxPlayers)
	assert.Equal(t, 124, updated.UptimeDays)

	maxPlayers := 200
	uptime := entity.Uptime{Days: 1, Hours: 2, Minutes: 3}
	updated, err = svc.Update(StatusUpdate{MaxPlayers: &maxPlayers, Uptime: &uptime})
	require.NoError(t, err)
	assert.Equal(t, 200, updated.MaxPlayers)
	assert.Equal(t, 1, updated.UptimeDays)
	assert.Equal(t, 2, updated.UptimeHours)
	assert.Equal(t, 3, updated.UptimeMinutes)
	assert.False(t, updated.Online)
}
