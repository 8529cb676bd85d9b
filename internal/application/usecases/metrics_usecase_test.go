package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/campushub/analytics-api/internal/domain/apperrors"
	"github.com/campushub/analytics-api/internal/domain/entities"
	"github.com/campushub/analytics-api/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMetricsRepo struct {
	dailyErr error

	daily    []string // "campo:delta"
	content  []string // "ação tipo/id"
	realtime []string
}

func (s *stubMetricsRepo) BumpDailyMetric(_ context.Context, _ string, _ time.Time, field string, delta int) error {
	if s.dailyErr != nil {
		return s.dailyErr
	}
	s.daily = append(s.daily, fmt.Sprintf("%s:%d", field, delta))
	return nil
}

func (s *stubMetricsRepo) BumpContentMetric(_ context.Context, contentType string, contentID int64, _ time.Time, _ int, action string) error {
	s.content = append(s.content, fmt.Sprintf("%s %s/%d", action, contentType, contentID))
	return nil
}

func (s *stubMetricsRepo) BumpRealtimeWindow(_ context.Context, metricName string, _ time.Time) error {
	s.realtime = append(s.realtime, metricName)
	return nil
}

func userEvent(actionType string) *entities.BehaviorEvent {
	userID := "user-1"
	return &entities.BehaviorEvent{
		SessionID:  "sess-1",
		UserID:     &userID,
		ActionType: actionType,
		EventTime:  time.Now().UTC(),
	}
}

func TestAggregateEvent_PageView(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	err := uc.AggregateEvent(context.Background(), userEvent(entities.ActionPageView), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"actions_performed:1", "page_views:1"}, repo.daily)
	assert.Equal(t, []string{RealtimeActions, RealtimePageViews}, repo.realtime)
	assert.Empty(t, repo.content)
}

func TestAggregateEvent_AnonymousSkipsDailyMetrics(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	event := userEvent(entities.ActionPageView)
	event.UserID = nil

	require.NoError(t, uc.AggregateEvent(context.Background(), event, nil))

	assert.Empty(t, repo.daily)
	assert.Equal(t, []string{RealtimeActions, RealtimePageViews}, repo.realtime)
}

func TestAggregateEvent_ContentEngagement(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	data := &entities.ActionData{ContentType: "course", ContentID: 42}
	err := uc.AggregateEvent(context.Background(), userEvent(entities.ActionContentEngagement), data)
	require.NoError(t, err)

	assert.Equal(t, []string{"actions_performed:1", "content_consumed:1"}, repo.daily)
	assert.Equal(t, []string{"view course/42"}, repo.content)
}

func TestAggregateEvent_ContentEngagementWithoutContentKeySkipsContentRollup(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	err := uc.AggregateEvent(context.Background(), userEvent(entities.ActionContentEngagement), &entities.ActionData{})
	require.NoError(t, err)

	assert.Equal(t, []string{"actions_performed:1", "content_consumed:1"}, repo.daily)
	assert.Empty(t, repo.content)
}

func TestAggregateEvent_DownloadAndShareMapping(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	data := &entities.ActionData{ContentType: "document", ContentID: 7}

	require.NoError(t, uc.AggregateEvent(context.Background(), userEvent(entities.ActionDownload), data))
	require.NoError(t, uc.AggregateEvent(context.Background(), userEvent(entities.ActionSocialShare), data))

	assert.Contains(t, repo.daily, "downloads:1")
	assert.Contains(t, repo.daily, "social_shares:1")
	assert.Equal(t, []string{
		repositories.ContentActionDownload + " document/7",
		repositories.ContentActionShare + " document/7",
	}, repo.content)
}

func TestAggregateEvent_EventRegistration(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	require.NoError(t, uc.AggregateEvent(context.Background(), userEvent(entities.ActionEventRegistration), nil))
	assert.Equal(t, []string{"actions_performed:1", "events_registered:1"}, repo.daily)
}

func TestAggregateEvent_PartialFailureStillRunsOtherRollups(t *testing.T) {
	repo := &stubMetricsRepo{dailyErr: errors.New("connection refused")}
	uc := NewMetricsUseCase(repo)

	err := uc.AggregateEvent(context.Background(), userEvent(entities.ActionPageView), nil)
	require.ErrorIs(t, err, apperrors.ErrAggregationFailure)

	// Os rollups de tempo real não dependem do rollup diário que falhou.
	assert.Equal(t, []string{RealtimeActions, RealtimePageViews}, repo.realtime)
}

func TestAggregateSessionOpen(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	userID := "user-1"
	session := &entities.Session{
		SessionID:    "sess-1",
		UserID:       &userID,
		SessionStart: time.Now().UTC(),
	}

	require.NoError(t, uc.AggregateSessionOpen(context.Background(), session))
	assert.Equal(t, []string{RealtimeActiveSessions}, repo.realtime)
	assert.Equal(t, []string{"sessions_count:1"}, repo.daily)
}

func TestAggregateSessionOpen_AnonymousSkipsDaily(t *testing.T) {
	repo := &stubMetricsRepo{}
	uc := NewMetricsUseCase(repo)

	session := &entities.Session{SessionID: "sess-1", SessionStart: time.Now().UTC()}

	require.NoError(t, uc.AggregateSessionOpen(context.Background(), session))
	assert.Equal(t, []string{RealtimeActiveSessions}, repo.realtime)
	assert.Empty(t, repo.daily)
}
