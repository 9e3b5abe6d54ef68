package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/achievements"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/progress"
)

func (s *IntegrationTestSuite) getCatalogRequest(ctx context.Context) []achievements.Achievement {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/achievements", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var catalog []achievements.Achievement
	require.NoError(s.T(), json.Unmarshal(respBytes, &catalog))
	return catalog
}

func (s *IntegrationTestSuite) getUserAchievementsRequest(ctx context.Context, userID string) []achievements.UserAchievement {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/users/%s/achievements", serverEndpoint, userID),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var userAchievements []achievements.UserAchievement
	require.NoError(s.T(), json.Unmarshal(respBytes, &userAchievements))
	return userAchievements
}

func (s *IntegrationTestSuite) TestAchievements() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()

	t.Run("catalog", func(t *testing.T) {
		catalog := s.getCatalogRequest(ctx)
		require.Len(t, catalog, 16)

		// the catalog order is stable, driven by sort_order
		for i := 1; i < len(catalog); i++ {
			assert.True(t, catalog[i-1].SortOrder < catalog[i].SortOrder)
		}

		assert.Equal(t, "first-workout", catalog[0].ID)
		assert.Equal(t, "First Step", catalog[0].Name)
		assert.Equal(t, "workouts", catalog[0].MetricType)
		assert.Equal(t, 1, catalog[0].Target)
		assert.Equal(t, 50, catalog[0].XPReward)
		assert.Equal(t, "common", catalog[0].Rarity)

		assert.Equal(t, "program-3", catalog[15].ID)
		assert.Equal(t, "legendary", catalog[15].Rarity)

		metricTypes := map[string]int{}
		for _, a := range catalog {
			metricTypes[a.MetricType]++
		}
		assert.Equal(t, map[string]int{
			"workouts":          5,
			"streak":            4,
			"nutrition":         3,
			"consistency":       2,
			"programCompletion": 2,
		}, metricTypes)
	})

	t.Run("fresh user has everything locked", func(t *testing.T) {
		userAchievements := s.getUserAchievementsRequest(ctx, userID)
		require.Len(t, userAchievements, 16)
		for _, ua := range userAchievements {
			assert.False(t, ua.Unlocked, "achievement %s should be locked", ua.ID)
		}
	})

	t.Run("unlock shows up in the user view", func(t *testing.T) {
		resp := s.programRequest(ctx, userID, "/complete", "starter-plan")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var completeResp progress.CompleteProgramResponse
		require.NoError(t, json.Unmarshal(respBytes, &completeResp))
		require.Len(t, completeResp.UnlockedAchievements, 1)
		assert.Equal(t, "first-program", completeResp.UnlockedAchievements[0].ID)

		userAchievements := s.getUserAchievementsRequest(ctx, userID)
		require.Len(t, userAchievements, 16)

		unlockedCount := 0
		for _, ua := range userAchievements {
			if ua.Unlocked {
				unlockedCount++
				assert.Equal(t, "first-program", ua.ID)
			}
		}
		assert.Equal(t, 1, unlockedCount)
	})
}
