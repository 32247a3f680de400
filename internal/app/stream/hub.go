// Package stream fans out result snapshots to live subscribers. The hub owns
// an explicit subscriber registry per election: subscribers register on
// subscribe and are removed on unsubscribe or when they fall behind.
package stream

import (
	"context"
	"sync"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/logger"
	"github.com/pobimgroup/election-dashboard/internal/platform/metrics"
)

// subscriberBuffer bounds the per-subscriber queue. A subscriber that cannot
// drain it misses broadcasts instead of blocking the fan-out; delivery is
// best effort and a dropped client simply re-subscribes.
const subscriberBuffer = 8

type subscriber struct {
	ch chan domain.ResultSnapshot
}

type Hub struct {
	results domain.ResultsService

	mu          sync.Mutex
	subscribers map[domain.ElectionID]map[*subscriber]struct{}
}

func NewHub(results domain.ResultsService) *Hub {
	return &Hub{
		results:     results,
		subscribers: make(map[domain.ElectionID]map[*subscriber]struct{}),
	}
}

// Subscribe registers a new listener and delivers one full snapshot
// immediately. The returned cancel func deregisters the listener; it is safe
// to call more than once.
func (h *Hub) Subscribe(ctx context.Context, electionID domain.ElectionID) (<-chan domain.ResultSnapshot, func(), error) {
	snapshot, err := h.results.Snapshot(ctx, electionID)
	if err != nil {
		return nil, nil, err
	}
	snapshot.Event = "snapshot"

	sub := &subscriber{ch: make(chan domain.ResultSnapshot, subscriberBuffer)}
	sub.ch <- snapshot

	h.mu.Lock()
	if h.subscribers[electionID] == nil {
		h.subscribers[electionID] = make(map[*subscriber]struct{})
	}
	h.subscribers[electionID][sub] = struct{}{}
	h.mu.Unlock()
	metrics.IncStreamSubscribers()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[electionID], sub)
			if len(h.subscribers[electionID]) == 0 {
				delete(h.subscribers, electionID)
			}
			h.mu.Unlock()
			metrics.DecStreamSubscribers()
		})
	}
	return sub.ch, cancel, nil
}

// NotifyVoteUpdate recomputes the election snapshot once and broadcasts it to
// every subscriber. The subscriber set is copied under the lock and iterated
// outside it, so a concurrent subscribe or unsubscribe never races the
// fan-out.
func (h *Hub) NotifyVoteUpdate(electionID domain.ElectionID) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.subscribers[electionID]))
	for sub := range h.subscribers[electionID] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()
	if len(targets) == 0 {
		return
	}

	snapshot, err := h.results.Snapshot(context.Background(), electionID)
	if err != nil {
		logger.Error("snapshot recompute failed, skipping broadcast", "electionId", electionID, "err", err)
		return
	}

	for _, sub := range targets {
		select {
		case sub.ch <- snapshot:
		default:
			// Slow subscriber: skip this update rather than block.
		}
	}
}

// SubscriberCount reports the current number of listeners for an election.
func (h *Hub) SubscriberCount(electionID domain.ElectionID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[electionID])
}

var _ domain.ResultNotifier = (*Hub)(nil)
