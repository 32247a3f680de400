package httpapi

import (
	"net/http"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

func (a *API) submitBatch(w http.ResponseWriter, r *http.Request) {
	var in domain.BatchSubmission
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user := currentUser(r)
	batch, err := a.batches.Submit(r.Context(), user, in)
	if err != nil {
		a.logger.Warn("batch submission rejected", "district", in.DistrictID, "user", user.ID, "err", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, batch)
	a.logger.Info("batch submitted", "batch", batch.ID, "district", batch.DistrictID, "by", user.ID)
}

func (a *API) listBatches(w http.ResponseWriter, r *http.Request) {
	var electionID *domain.ElectionID
	var status *domain.BatchStatus
	var districtID *domain.DistrictID
	q := r.URL.Query()
	if v := q.Get("electionId"); v != "" {
		id := domain.ElectionID(v)
		electionID = &id
	}
	if v := q.Get("status"); v != "" {
		s := domain.BatchStatus(v)
		status = &s
	}
	if v := q.Get("districtId"); v != "" {
		id := domain.DistrictID(v)
		districtID = &id
	}

	batches, err := a.batches.List(r.Context(), currentUser(r), electionID, status, districtID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, batches)
}

func (a *API) getBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := a.batches.Get(r.Context(), domain.BatchID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, batch)
}

func (a *API) approveBatch(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id := domain.BatchID(r.PathValue("id"))

	batch, err := a.batches.Approve(r.Context(), user, id)
	if err != nil {
		a.logger.Warn("batch approval rejected", "batch", id, "user", user.ID, "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, batch)
	a.logger.Info("batch approved", "batch", batch.ID, "by", user.ID)
}

type rejectBatchRequest struct {
	Reason string `json:"reason"`
}

func (a *API) rejectBatch(w http.ResponseWriter, r *http.Request) {
	var req rejectBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user := currentUser(r)
	batch, err := a.batches.Reject(r.Context(), user, domain.BatchID(r.PathValue("id")), req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, batch)
	a.logger.Info("batch rejected", "batch", batch.ID, "by", user.ID, "reason", req.Reason)
}

func (a *API) deleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := a.batches.Delete(r.Context(), currentUser(r), domain.BatchID(r.PathValue("id"))); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
