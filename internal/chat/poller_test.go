package chat

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/freshmart/admin-console/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

type snapshotSink struct {
	mu    sync.Mutex
	items []Snapshot
}

func (s *snapshotSink) push(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, snap)
}

func (s *snapshotSink) last() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return Snapshot{}, false
	}
	return s.items[len(s.items)-1], true
}

func newTestPoller(t *testing.T, rt roundTripFunc, sink *snapshotSink, interval time.Duration) *Poller {
	t.Helper()
	svc := newChatService(t, rt)
	params := PollerParams{
		Service:  svc,
		Logger:   testLogger(),
		Interval: interval,
	}
	if sink != nil {
		params.OnUpdate = sink.push
	}
	poller, err := NewPoller(params)
	require.NoError(t, err)
	return poller
}

func TestPollerAbsorbsMissingFeature(t *testing.T) {
	var requests atomic.Int64
	poller := newTestPoller(t, func(req *http.Request) (*http.Response, error) {
		requests.Add(1)
		return jsonResponse(http.StatusNotFound, "not found"), nil
	}, nil, 5*time.Millisecond)

	require.NoError(t, poller.Start(context.Background()))
	require.Eventually(t, func() bool {
		return poller.State() == PanelUnavailable
	}, time.Second, time.Millisecond)

	// The loop must be dead: no further requests after absorption.
	seen := requests.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, requests.Load())

	// Restarting stays rejected for the rest of the session.
	err := poller.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeFeatureMissing, pkgerrors.CodeOf(err))

	poller.Stop()
	assert.Equal(t, PanelUnavailable, poller.State())
}

func TestPollerAutoSelectsFirstConversation(t *testing.T) {
	sink := &snapshotSink{}
	poller := newTestPoller(t, func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/admin/customer/conversations":
			return jsonResponse(http.StatusOK, `{"ok":true,"items":[
				{"id":9,"customerName":"王小明","lastMessage":"在吗","lastMessageTime":"2026-08-30T10:00:00","unreadCount":4},
				{"id":3,"customerName":"李华","lastMessage":"好的","lastMessageTime":"2026-08-30T09:00:00","unreadCount":2}
			]}`), nil
		case "/api/admin/customer/messages/9":
			return jsonResponse(http.StatusOK, `{"ok":true,"items":[
				{"id":1,"senderType":"customer","content":"在吗","createdAt":"2026-08-30T10:00:00"}
			]}`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	}, sink, time.Hour)

	require.NoError(t, poller.Start(context.Background()))
	require.Eventually(t, func() bool {
		_, ok := sink.last()
		return ok
	}, time.Second, time.Millisecond)
	poller.Stop()

	snap, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, PanelActive, snap.State)
	assert.Equal(t, int64(9), snap.ActiveID)
	assert.Equal(t, "王小明", snap.ActiveName)
	require.Len(t, snap.Conversations, 2)

	// Auto-selection marked the first conversation read, so only the
	// second still counts toward the badge.
	assert.False(t, snap.Conversations[0].HasNew)
	assert.True(t, snap.Conversations[1].HasNew)
	assert.Equal(t, 2, snap.TotalUnread)

	require.Len(t, snap.Timeline, 2)
	assert.Equal(t, KindSeparator, snap.Timeline[0].Kind)
	assert.Equal(t, KindMessage, snap.Timeline[1].Kind)
}

func TestPollerContinuesAfterTransientFailure(t *testing.T) {
	var requests atomic.Int64
	sink := &snapshotSink{}
	poller := newTestPoller(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/admin/customer/conversations" {
			return jsonResponse(http.StatusOK, `{"ok":true,"items":[]}`), nil
		}
		if requests.Add(1) == 1 {
			return jsonResponse(http.StatusBadGateway, "<html>bad gateway</html>"), nil
		}
		return jsonResponse(http.StatusOK, `{"ok":true,"items":[]}`), nil
	}, sink, 5*time.Millisecond)

	require.NoError(t, poller.Start(context.Background()))
	require.Eventually(t, func() bool {
		return requests.Load() >= 3
	}, time.Second, time.Millisecond)
	poller.Stop()

	assert.Equal(t, PanelInactive, poller.State())
	first := sink.items[0]
	assert.NotEmpty(t, first.Notice)
	assert.Equal(t, PanelActive, first.State)
}

func TestPollerStopHaltsRequests(t *testing.T) {
	var requests atomic.Int64
	poller := newTestPoller(t, func(req *http.Request) (*http.Response, error) {
		requests.Add(1)
		return jsonResponse(http.StatusOK, `{"ok":true,"items":[]}`), nil
	}, nil, 5*time.Millisecond)

	require.NoError(t, poller.Start(context.Background()))
	require.Eventually(t, func() bool {
		return requests.Load() >= 2
	}, time.Second, time.Millisecond)
	poller.Stop()

	seen := requests.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, requests.Load())

	// A second Stop is a harmless no-op, and Start works again.
	poller.Stop()
	require.NoError(t, poller.Start(context.Background()))
	poller.Stop()
}

func TestPollerSelectMarksRead(t *testing.T) {
	sink := &snapshotSink{}
	cursors := NewReadCursors()
	svc := newChatService(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"ok":true,"items":[]}`), nil
	})
	poller, err := NewPoller(PollerParams{
		Service:  svc,
		Cursors:  cursors,
		Logger:   testLogger(),
		OnUpdate: sink.push,
	})
	require.NoError(t, err)

	require.NoError(t, poller.Select(context.Background(), 42))
	assert.Equal(t, int64(42), poller.ActiveID())
	_, marked := cursors.Get(42)
	assert.True(t, marked)

	snap, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, int64(42), snap.ActiveID)
}

func TestPollerSendNeedsSelection(t *testing.T) {
	poller := newTestPoller(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected without a selected conversation")
		return nil, nil
	}, nil, time.Hour)

	err := poller.Send(context.Background(), "你好", "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
