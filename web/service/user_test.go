package service

import (
	"os"
	"sync"
	"testing"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/oauth"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() {
	os.Setenv("PORTAL_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	database.CloseDB()
	os.Remove("test.db")
}

func TestRegisterAndLogin(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	user, err := svc.Register("DarkSamurai2", "samurai2@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)
	assert.Equal(t, "DarkSamurai2", user.Username)
	assert.Equal(t, model.RoleMember, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	loggedIn, err := svc.Login("samurai2@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.Id, loggedIn.Id)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	_, err := svc.Register("First", "taken@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register("Second", "taken@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", "taken@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	_, err := svc.Register("DarkSamurai2", "samurai2@example.com", "password123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login("samurai2@example.com", "wrong")
	_, unknownEmail := svc.Login("nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginDiscordOnlyAccount(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	user, err := svc.UpsertDiscordUser(&oauth.Profile{
		Id:       "123456789",
		Username: "oni_king",
		Email:    "oni@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login("oni@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpsertDiscordUserResync(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	created, err := svc.UpsertDiscordUser(&oauth.Profile{
		Id:         "123456789",
		Username:   "oni_king",
		Email:      "oni@example.com",
		AvatarHash: "abc123",
	})
	require.NoError(t, err)
	require.NotNil(t, created.DiscordId)
	assert.Equal(t, "123456789", *created.DiscordId)
	require.NotNil(t, created.Avatar)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/123456789/abc123.png", *created.Avatar)

	// Second login with changed details updates the same row.
	updated, err := svc.UpsertDiscordUser(&oauth.Profile{
		Id:         "123456789",
		Username:   "oni_emperor",
		AvatarHash: "def456",
	})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "123456789", *updated.DiscordId)
	assert.Equal(t, "oni_emperor", updated.Username)
	// Provider omitted the email this time, so the stored one is kept.
	assert.Equal(t, "oni@example.com", updated.Email)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/123456789/def456.png", *updated.Avatar)

	var count int64
	database.GetDB().Model(&model.User{}).Where("discord_id = ?", "123456789").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpsertDiscordUserPlaceholderEmail(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	user, err := svc.UpsertDiscordUser(&oauth.Profile{
		Id:       "987654321",
		Username: "mute_fairy",
	})
	require.NoError(t, err)
	assert.Equal(t, "987654321@discord.com", user.Email)
	assert.Nil(t, user.Avatar)
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register("Racer", "race@example.com", "password123")
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch err {
		case nil:
			succeeded++
		case ErrEmailTaken:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", "race@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	user, err := svc.Register("DarkSamurai2", "samurai2@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(user.Id, "", "", "wrong", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.UpdateProfile(user.Id, "LightSamurai", "", "password123", "newpassword")
	require.NoError(t, err)

	_, err = svc.Login("samurai2@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, err := svc.Login("samurai2@example.com", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, "LightSamurai", loggedIn.Username)
}

func TestSeededDemoUser(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{}

	user, err := svc.Login("demo@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "DarkSamurai", user.Username)
	assert.Equal(t, model.RoleAdmin, user.Role)
}
