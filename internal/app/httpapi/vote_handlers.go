package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

func (a *API) castBallot(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if !rbac.HasPermission(user.Role, rbac.PermVoteCast) || user.CitizenID == nil {
		respondError(w, fmt.Errorf("%w: only voters may cast ballots", domain.ErrForbidden))
		return
	}

	var selections domain.BallotSelections
	if err := decodeJSON(r, &selections); err != nil {
		respondError(w, err)
		return
	}

	electionID := domain.ElectionID(r.PathValue("id"))
	receipts, err := a.voting.CastBallot(r.Context(), *user.CitizenID, electionID, selections)
	if err != nil {
		a.logger.Warn("cast rejected", "election", electionID, "user", user.ID, "err", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"receipts": receipts})
	a.logger.Info("ballot cast", "election", electionID, "user", user.ID, "receipts", len(receipts))
}

func (a *API) voteStatus(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.CitizenID == nil {
		respondError(w, fmt.Errorf("%w: only voters have a vote status", domain.ErrForbidden))
		return
	}

	status, err := a.voting.Status(r.Context(), *user.CitizenID, domain.ElectionID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
