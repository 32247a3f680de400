package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	redisstorage "github.com/pobimgroup/election-dashboard/internal/platform/storage/redis"
)

func (a *API) electionResults(w http.ResponseWriter, r *http.Request) {
	electionID := domain.ElectionID(r.PathValue("id"))
	results, err := a.results.Compute(r.Context(), electionID)
	if err != nil {
		a.logger.Error("compute results failed", "election", electionID, "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (a *API) districtResults(w http.ResponseWriter, r *http.Request) {
	electionID := domain.ElectionID(r.PathValue("id"))
	var provinceID *domain.ProvinceID
	if v := r.URL.Query().Get("provinceId"); v != "" {
		id := domain.ProvinceID(v)
		provinceID = &id
	}

	results, err := a.results.ByDistrict(r.Context(), electionID, provinceID)
	if err != nil {
		a.logger.Error("district results failed", "election", electionID, "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// streamResults serves the live result feed over server-sent events. The
// first event is a full snapshot; vote_update events follow as ballots land.
// Heartbeat comments keep idle proxies from closing the connection.
func (a *API) streamResults(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, fmt.Errorf("streaming unsupported by this connection"))
		return
	}

	electionID := domain.ElectionID(r.PathValue("id"))
	updates, cancel, err := a.hub.Subscribe(r.Context(), electionID)
	if err != nil {
		respondError(w, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(a.heartbeat)
	defer heartbeat.Stop()

	a.logger.Info("stream opened", "election", electionID)
	for {
		select {
		case <-r.Context().Done():
			a.logger.Info("stream closed", "election", electionID)
			return
		case <-heartbeat.C:
			a.writeHeartbeat(r.Context(), w, electionID)
			flusher.Flush()
		case snapshot, open := <-updates:
			if !open {
				return
			}
			if err := writeSSE(w, snapshot); err != nil {
				a.logger.Warn("stream write failed", "election", electionID, "err", err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeHeartbeat keeps the connection warm. With a counter available it also
// carries the running ballot-row total, so idle clients see movement without
// triggering a full recompute. The counter spans all three ballot types, so
// the field is named ballotsRecorded rather than reusing the snapshot's
// party-list totalVotes.
func (a *API) writeHeartbeat(ctx context.Context, w http.ResponseWriter, electionID domain.ElectionID) {
	if a.counter == nil {
		fmt.Fprint(w, ": heartbeat\n\n")
		return
	}
	total, err := a.counter.Get(ctx, redisstorage.CastTotalKey(electionID))
	if err != nil {
		fmt.Fprint(w, ": heartbeat\n\n")
		return
	}
	fmt.Fprintf(w, "event: heartbeat\ndata: {\"electionId\":%q,\"ballotsRecorded\":%d}\n\n", electionID, total)
}

func writeSSE(w http.ResponseWriter, snapshot domain.ResultSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", snapshot.Event, payload)
	return err
}
