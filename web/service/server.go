package service

import (
	"errors"
	"time"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/util/random"
	"github.com/yukkurinet/hyakki-portal/web/entity"
)

var ErrStatusNotFound = errors.New("server status not found")

// serverStatusId is the singleton row key.
const serverStatusId = 1

type ServerStatusService struct{}

func (s *ServerStatusService) Get() (*model.ServerStatus, error) {
	db := database.GetDB()

	status := &model.ServerStatus{}
	err := db.Where("id = ?", serverStatusId).First(status).Error
	if database.IsNotFound(err) {
		return nil, ErrStatusNotFound
	}
	if err != nil {
		return nil, err
	}
	return status, nil
}

// RandomizePlayers simulates live population movement: a fresh count between
// 30 and 50, persisted for the next reader.
func (s *ServerStatusService) RandomizePlayers() (*model.ServerStatus, error) {
	status, err := s.Get()
	if err != nil {
		return nil, err
	}

	status.Players = random.Num(21) + 30
	status.LastUpdated = time.Now()
	if err := database.GetDB().Save(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}

// StatusUpdate carries the optional fields of a status mutation; nil fields
// are left untouched.
type StatusUpdate struct {
	Online     *bool
	MaxPlayers *int
	Event      *string
	Uptime     *entity.Uptime
}

func (s *ServerStatusService) Update(update StatusUpdate) (*model.ServerStatus, error) {
	status, err := s.Get()
	if err != nil {
		return nil, err
	}

	if update.Online != nil {
		status.Online = *update.Online
	}
	if update.MaxPlayers != nil {
		status.MaxPlayers = *update.MaxPlayers
	}
	if update.Event != nil {
		status.Event = *update.Event
	}
	if update.Uptime != nil {
		status.UptimeDays = update.Uptime.Days
		status.UptimeHours = update.Uptime.Hours
		status.UptimeMinutes = update.Uptime.Minutes
	}
	status.LastUpdated = time.Now()

	if err := database.GetDB().Save(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}
