package database

import (
	"log"
	"time"

	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/util/crypto"

	"github.com/google/uuid"
)

// Seed populates the database with initial content on first start. A
// populated server_status table means seeding already ran.
func Seed() error {
	var count int64
	if err := db.Model(&model.ServerStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding database...")

	status := &model.ServerStatus{
		Id:            1,
		Online:        true,
		Players:       42,
		MaxPlayers:    100,
		Event:         "blood_moon_festival",
		UptimeDays:    124,
		UptimeHours:   7,
		UptimeMinutes: 32,
		LastUpdated:   time.Now(),
	}
	if err := db.Create(status).Error; err != nil {
		return err
	}

	bosses := []model.Boss{
		{Name: "炎の守護者", Location: "溶岩洞窟", Defeated: true},
		{Name: "森の古老", Location: "魔法の森", Defeated: false},
		{Name: "深海の王", Location: "沈没船", Defeated: true},
		{Name: "虚無の王", Location: "異界の門", Defeated: false},
		{Name: "砂漠の幻影", Location: "古代神殿", Defeated: true},
	}
	if err := db.Create(&bosses).Error; err != nil {
		return err
	}

	rankings := []model.Ranking{
		{Id: "hyakki-1", Type: model.RankingHyakki, Rank: 1, Player: "DarkSamurai", Score: 247},
		{Id: "hyakki-2", Type: model.RankingHyakki, Rank: 2, Player: "MagicMaster99", Score: 213},
		{Id: "hyakki-3", Type: model.RankingHyakki, Rank: 3, Player: "NinjaWarrior", Score: 189},
		{Id: "hyakki-4", Type: model.RankingHyakki, Rank: 4, Player: "ShadowHunter", Score: 176},
		{Id: "hyakki-5", Type: model.RankingHyakki, Rank: 5, Player: "DragonSlayer", Score: 154},
		{Id: "pvp-1", Type: model.RankingPvp, Rank: 1, Player: "BloodMoon", Score: 532},
		{Id: "pvp-2", Type: model.RankingPvp, Rank: 2, Player: "SilentAssassin", Score: 487},
		{Id: "pvp-3", Type: model.RankingPvp, Rank: 3, Player: "VoidWalker", Score: 421},
		{Id: "pvp-4", Type: model.RankingPvp, Rank: 4, Player: "ThunderBlade", Score: 398},
		{Id: "pvp-5", Type: model.RankingPvp, Rank: 5, Player: "FrostQueen", Score: 356},
	}
	if err := db.Create(&rankings).Error; err != nil {
		return err
	}

	hash, err := crypto.HashPassword("password123")
	if err != nil {
		return err
	}
	demo := &model.User{
		Id:           uuid.NewString(),
		Username:     "DarkSamurai",
		Email:        "demo@example.com",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(demo).Error; err != nil {
		return err
	}

	character := &model.Character{
		Id:       uuid.NewString(),
		Username: "DarkSamurai",
		Race:     "human",
		Class:    "warrior",
		Level:    25,
		UserId:   demo.Id,
	}
	return db.Create(character).Error
}
