package job

import (
	"os"
	"testing"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLogger() {
	os.Setenv("PORTAL_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
}

func TestRunAbsorbsPanic(t *testing.T) {
	initTestLogger()

	// No database is initialized, so the refresh panics internally. The
	// scheduler must never see it.
	assert.NotPanics(t, func() {
		NewServerStatusJob().Run()
	})
}

func TestRunRefreshesPlayers(t *testing.T) {
	initTestLogger()

	dbPath := "test.db"
	os.Remove(dbPath)
	require.NoError(t, database.InitDB(dbPath))
	defer func() {
		database.CloseDB()
		os.Remove(dbPath)
	}()

	NewServerStatusJob().Run()

	var players int
	err := database.GetDB().Table("server_statuses").
		Select("players").Where("id = ?", 1).Scan(&players).Error
	require.NoError(t, err)
	assert.GreaterOrEqual(t, players, 30)
	assert.LessOrEqual(t, players, 50)
}
