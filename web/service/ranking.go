package service

import (
	"fmt"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/entity"
)

type RankingService struct{}

// GetAll returns both leaderboards, each ordered by rank. The score column is
// relabeled per board: defeats for hyakki, kills for pvp.
func (s *RankingService) GetAll() (*entity.RankingsResponse, error) {
	hyakki, err := s.listByType(model.RankingHyakki)
	if err != nil {
		return nil, err
	}
	pvp, err := s.listByType(model.RankingPvp)
	if err != nil {
		return nil, err
	}

	resp := &entity.RankingsResponse{
		HyakkiRanking: make([]entity.RankingRow, 0, len(hyakki)),
		PvpRanking:    make([]entity.RankingRow, 0, len(pvp)),
	}
	for _, r := range hyakki {
		score := r.Score
		resp.HyakkiRanking = append(resp.HyakkiRanking, entity.RankingRow{
			Rank:    r.Rank,
			Player:  r.Player,
			Defeats: &score,
		})
	}
	for _, r := range pvp {
		score := r.Score
		resp.PvpRanking = append(resp.PvpRanking, entity.RankingRow{
			Rank:   r.Rank,
			Player: r.Player,
			Kills:  &score,
		})
	}
	return resp, nil
}

func (s *RankingService) listByType(rankingType string) ([]model.Ranking, error) {
	db := database.GetDB()

	rankings := make([]model.Ranking, 0)
	err := db.Where("type = ?", rankingType).
		Order("rank asc").
		Find(&rankings).Error
	return rankings, err
}

// Upsert writes one leaderboard row, creating it when the slot is empty.
func (s *RankingService) Upsert(rankingType string, rank int, player string, score int) (*model.Ranking, error) {
	db := database.GetDB()

	ranking := &model.Ranking{}
	err := db.Where("type = ? AND rank = ?", rankingType, rank).First(ranking).Error
	if database.IsNotFound(err) {
		ranking = &model.Ranking{
			Id:     fmt.Sprintf("%s-%d", rankingType, rank),
			Type:   rankingType,
			Rank:   rank,
			Player: player,
			Score:  score,
		}
		if err := db.Create(ranking).Error; err != nil {
			return nil, err
		}
		return ranking, nil
	}
	if err != nil {
		return nil, err
	}

	ranking.Player = player
	ranking.Score = score
	if err := db.Save(ranking).Error; err != nil {
		return nil, err
	}

	logger.Infof("Ranking updated: %s rank %d", rankingType, rank)
	return ranking, nil
}
