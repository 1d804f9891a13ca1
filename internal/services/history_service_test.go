package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/pkg/liveresults"
)

func TestSnapshotMergesAnnouncedResults(t *testing.T) {
	repo := newMemHistoryRepo()
	feed := &fakeFeed{result: &liveresults.Result{Morning: "12", Evening: ""}}
	svc := NewHistoryService(repo, feed, fixedClock{t: time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)})

	require.NoError(t, svc.Snapshot(context.Background()))

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-01-05", records[0].Date)
	assert.Equal(t, "12", records[0].Morning)
	assert.Equal(t, models.HistoryPlaceholder, records[0].Evening)
}

func TestSnapshotSkipsWeekend(t *testing.T) {
	repo := newMemHistoryRepo()
	feed := &fakeFeed{result: &liveresults.Result{Morning: "12", Evening: "34"}}
	// 2026-01-03 is a Saturday.
	svc := NewHistoryService(repo, feed, fixedClock{t: time.Date(2026, 1, 3, 12, 30, 0, 0, time.UTC)})

	require.NoError(t, svc.Snapshot(context.Background()))

	assert.Zero(t, feed.calls)
	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSnapshotSwallowsFeedFailure(t *testing.T) {
	repo := newMemHistoryRepo()
	feed := &fakeFeed{err: errors.New("connection refused")}
	svc := NewHistoryService(repo, feed, fixedClock{t: time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)})

	require.NoError(t, svc.Snapshot(context.Background()))

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSnapshotSkipsAllPlaceholderResult(t *testing.T) {
	repo := newMemHistoryRepo()
	feed := &fakeFeed{result: &liveresults.Result{}}
	svc := NewHistoryService(repo, feed, fixedClock{t: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)})

	require.NoError(t, svc.Snapshot(context.Background()))

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSnapshotNeverDowngradesRecordedResult(t *testing.T) {
	repo := newMemHistoryRepo()
	feed := &fakeFeed{result: &liveresults.Result{Morning: "12", Evening: ""}}
	clock := fixedClock{t: time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)}
	svc := NewHistoryService(repo, feed, clock)

	// Morning announced, then the feed briefly reports evening only.
	require.NoError(t, svc.Snapshot(context.Background()))
	feed.result = &liveresults.Result{Morning: "", Evening: "34"}
	require.NoError(t, svc.Snapshot(context.Background()))

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12", records[0].Morning)
	assert.Equal(t, "34", records[0].Evening)
}

func TestAddManualTreatsEmptyAsPlaceholder(t *testing.T) {
	repo := newMemHistoryRepo()
	svc := NewHistoryService(repo, &fakeFeed{}, fixedClock{t: time.Now()})

	require.NoError(t, svc.AddManual(context.Background(), "2026-01-05", "12", ""))

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12", records[0].Morning)
	assert.Equal(t, models.HistoryPlaceholder, records[0].Evening)
}

func TestAddManualRejectsBadDate(t *testing.T) {
	svc := NewHistoryService(newMemHistoryRepo(), &fakeFeed{}, fixedClock{t: time.Now()})

	assert.Error(t, svc.AddManual(context.Background(), "05-01-2026", "12", "34"))
	assert.Error(t, svc.AddManual(context.Background(), "", "12", "34"))
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	repo := newMemHistoryRepo()
	svc := NewHistoryService(repo, &fakeFeed{}, fixedClock{t: time.Now()})
	ctx := context.Background()

	require.NoError(t, svc.AddManual(ctx, "2026-01-02", "11", "22"))
	require.NoError(t, svc.AddManual(ctx, "2026-01-05", "33", "44"))
	require.NoError(t, svc.AddManual(ctx, "2026-01-04", "55", "66"))

	records, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-01-05", records[0].Date)
	assert.Equal(t, "2026-01-04", records[1].Date)
}
