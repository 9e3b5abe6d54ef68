package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/progress"
)

func (s *IntegrationTestSuite) getProgressRequest(ctx context.Context, userID string) progress.UserProgress {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/users/%s/progress", serverEndpoint, userID),
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

	var userProgress progress.UserProgress
	require.NoError(s.T(), json.Unmarshal(respBytes, &userProgress))
	return userProgress
}

func (s *IntegrationTestSuite) addXPRequest(ctx context.Context, userID string, amount int) progress.UserProgress {
	reqJson, err := json.Marshal(progress.AddXPRequest{Amount: amount})
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/users/%s/progress/xp", serverEndpoint, userID),
		bytes.NewReader(reqJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var userProgress progress.UserProgress
	require.NoError(s.T(), json.Unmarshal(respBytes, &userProgress))
	return userProgress
}

func (s *IntegrationTestSuite) programRequest(ctx context.Context, userID, action, programID string) *http.Response {
	var body io.Reader
	if programID != "" {
		reqJson, err := json.Marshal(progress.ProgramRequest{ProgramID: programID})
		require.NoError(s.T(), err)
		body = bytes.NewReader(reqJson)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/users/%s/program%s", serverEndpoint, userID, action),
		body,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)
	if programID != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) TestProgress() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()

	t.Run("authorization missing", func(t *testing.T) {
		req, err := http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/users/%s/progress", serverEndpoint, userID),
			nil,
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		req, err = http.NewRequestWithContext(
			ctx,
			"GET", fmt.Sprintf("%s/users/%s/progress", serverEndpoint, userID),
			nil,
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-MOMENTUM-TOKEN", "invalid-token")

		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("new user defaults", func(t *testing.T) {
		userProgress := s.getProgressRequest(ctx, userID)
		assert.Equal(t, userID, userProgress.UserID)
		assert.Equal(t, 1, userProgress.CurrentLevel)
		assert.Equal(t, 0, userProgress.TotalXP)
		assert.Equal(t, 0, userProgress.CurrentStreak)
		assert.Equal(t, 0, userProgress.LongestStreak)
		assert.Equal(t, 0, userProgress.TotalWorkoutsCompleted)
		assert.Empty(t, userProgress.AchievementsUnlocked)
		assert.Nil(t, userProgress.CurrentProgram)
		assert.Equal(t, 1, userProgress.CurrentWeek)
		assert.Empty(t, userProgress.CompletedPrograms)
	})

	t.Run("xp and levels", func(t *testing.T) {
		// 250 xp crosses the 100 xp boundary of level 2
		userProgress := s.addXPRequest(ctx, userID, 250)
		assert.Equal(t, 250, userProgress.TotalXP)
		assert.Equal(t, 2, userProgress.CurrentLevel)

		// non-positive amounts are rejected
		reqJson, err := json.Marshal(progress.AddXPRequest{Amount: -50})
		require.NoError(t, err)
		req, err := http.NewRequestWithContext(
			ctx,
			"POST", fmt.Sprintf("%s/users/%s/progress/xp", serverEndpoint, userID),
			bytes.NewReader(reqJson),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("program lifecycle", func(t *testing.T) {
		resp := s.programRequest(ctx, userID, "", "foundation-builder")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var userProgress progress.UserProgress
		require.NoError(t, json.Unmarshal(respBytes, &userProgress))
		require.NotNil(t, userProgress.CurrentProgram)
		assert.Equal(t, "foundation-builder", *userProgress.CurrentProgram)
		assert.Equal(t, 1, userProgress.CurrentWeek)

		for _, expectedWeek := range []int{2, 3} {
			resp := s.programRequest(ctx, userID, "/advance-week", "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			resp.Body.Close()

			require.NoError(t, json.Unmarshal(respBytes, &userProgress))
			assert.Equal(t, expectedWeek, userProgress.CurrentWeek)
		}
	})

	t.Run("full update needs an admin session", func(t *testing.T) {
		programID := "foundation-builder"
		updateJson, err := json.Marshal(progress.UserProgress{
			TotalXP:        420,
			CurrentLevel:   99, // the level is derived, not taken from the payload
			CurrentProgram: &programID,
			CurrentWeek:    3,
		})
		require.NoError(t, err)

		// the shared app secret is not enough for a full overwrite
		req, err := http.NewRequestWithContext(
			ctx,
			"PUT", fmt.Sprintf("%s/users/%s/progress", serverEndpoint, userID),
			bytes.NewReader(updateJson),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-MOMENTUM-TOKEN", testAppSecret)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		adminToken := doLogin(ctx, t)
		req, err = http.NewRequestWithContext(
			ctx,
			"PUT", fmt.Sprintf("%s/users/%s/progress", serverEndpoint, userID),
			bytes.NewReader(updateJson),
		)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-MOMENTUM-TOKEN", adminToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var updated progress.UserProgress
		require.NoError(t, json.Unmarshal(respBytes, &updated))
		assert.Equal(t, 420, updated.TotalXP)
		assert.Equal(t, 3, updated.CurrentLevel)
		assert.Equal(t, 3, updated.CurrentWeek)
	})

	t.Run("complete program", func(t *testing.T) {
		resp := s.programRequest(ctx, userID, "/complete", "foundation-builder")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var completeResp progress.CompleteProgramResponse
		require.NoError(t, json.Unmarshal(respBytes, &completeResp))

		require.Len(t, completeResp.UnlockedAchievements, 1)
		assert.Equal(t, "first-program", completeResp.UnlockedAchievements[0].ID)
		assert.Equal(t, 300, completeResp.UnlockedAchievements[0].XPReward)

		require.NotNil(t, completeResp.Progress)
		assert.Equal(t, []string{"foundation-builder"}, completeResp.Progress.CompletedPrograms)
		assert.Nil(t, completeResp.Progress.CurrentProgram)
		assert.Equal(t, 1, completeResp.Progress.CurrentWeek)
		assert.Contains(t, completeResp.Progress.AchievementsUnlocked, "first-program")
		// 420 from the overwrite above plus the 300 xp achievement reward
		assert.Equal(t, 720, completeResp.Progress.TotalXP)
		assert.Equal(t, 3, completeResp.Progress.CurrentLevel)

		// finishing the same program again must change nothing
		resp = s.programRequest(ctx, userID, "/complete", "foundation-builder")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		respBytes, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		require.NoError(t, json.Unmarshal(respBytes, &completeResp))
		assert.Empty(t, completeResp.UnlockedAchievements)
		assert.Equal(t, []string{"foundation-builder"}, completeResp.Progress.CompletedPrograms)
		assert.Equal(t, 720, completeResp.Progress.TotalXP)
	})
}
