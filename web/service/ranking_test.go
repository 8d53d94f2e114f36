package service

import (
	"testing"

	"github.com/yukkurinet/hyakki-portal/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingGetAllSeeded(t *testing.T) {
	setup()
	defer teardown()

	svc := RankingService{}

	rankings, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, rankings.HyakkiRanking, 5)
	require.Len(t, rankings.PvpRanking, 5)

	top := rankings.HyakkiRanking[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "DarkSamurai", top.Player)
	require.NotNil(t, top.Defeats)
	assert.Equal(t, 247, *top.Defeats)
	assert.Nil(t, top.Kills)

	pvpTop := rankings.PvpRanking[0]
	require.NotNil(t, pvpTop.Kills)
	assert.Equal(t, 532, *pvpTop.Kills)
	assert.Nil(t, pvpTop.Defeats)

	// Rows come back ordered by rank.
	for i, row := range rankings.HyakkiRanking {
		assert.Equal(t, i+1, row.Rank)
	}
	for i, row := range rankings.PvpRanking {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestRankingUpsert(t *testing.T) {
	setup()
	defer teardown()

	svc := RankingService{}

	// Overwrite an existing row.
	updated, err := svc.Upsert(model.RankingHyakki, 1, "NewChampion", 300)
	require.NoError(t, err)
	assert.Equal(t, "hyakki-1", updated.Id)
	assert.Equal(t, "NewChampion", updated.Player)
	assert.Equal(t, 300, updated.Score)

	// Create a brand new slot.
	created, err := svc.Upsert(model.RankingPvp, 6, "Challenger", 301)
	require.NoError(t, err)
	assert.Equal(t, "pvp-6", created.Id)

	rankings, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, rankings.HyakkiRanking, 5)
	require.Len(t, rankings.PvpRanking, 6)
	assert.Equal(t, "NewChampion", rankings.HyakkiRanking[0].Player)
	assert.Equal(t, "Challenger", rankings.PvpRanking[5].Player)
}
