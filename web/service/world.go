package service

import (
	"errors"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/entity"
)

var ErrBossNotFound = errors.New("boss not found")

type WorldService struct{}

// GetWorldMap returns every boss with the defeat tally.
func (s *WorldService) GetWorldMap() (*entity.WorldMapResponse, error) {
	db := database.GetDB()

	bosses := make([]model.Boss, 0)
	if err := db.Find(&bosses).Error; err != nil {
		return nil, err
	}

	defeated := 0
	for _, boss := range bosses {
		if boss.Defeated {
			defeated++
		}
	}

	return &entity.WorldMapResponse{
		Bosses:        bosses,
		DefeatedCount: defeated,
		TotalCount:    len(bosses),
	}, nil
}

// SetBossDefeated flips a boss's defeat flag.
func (s *WorldService) SetBossDefeated(id int, defeated bool) (*model.Boss, error) {
	db := database.GetDB()

	boss := &model.Boss{}
	err := db.Where("id = ?", id).First(boss).Error
	if database.IsNotFound(err) {
		return nil, ErrBossNotFound
	}
	if err != nil {
		return nil, err
	}

	boss.Defeated = defeated
	if err := db.Save(boss).Error; err != nil {
		return nil, err
	}

	logger.Infof("Boss %s status updated", boss.Name)
	return boss, nil
}
