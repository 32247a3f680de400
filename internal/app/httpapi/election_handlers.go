package httpapi

import (
	"net/http"

	"github.com/pobimgroup/election-dashboard/internal/app/electionmgmt"
	"github.com/pobimgroup/election-dashboard/internal/domain"
)

func (a *API) listElections(w http.ResponseWriter, r *http.Request) {
	var status *domain.ElectionStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.ElectionStatus(s)
		status = &st
	}

	elections, err := a.mgmt.ListElections(r.Context(), status)
	if err != nil {
		a.logger.Error("list elections failed", "err", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, elections)
}

func (a *API) getElection(w http.ResponseWriter, r *http.Request) {
	election, err := a.mgmt.GetElection(r.Context(), domain.ElectionID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, election)
}

func (a *API) createElection(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.ElectionInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	election, err := a.mgmt.CreateElection(r.Context(), currentUser(r), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, election)
	a.logger.Info("election created", "election", election.ID, "by", currentUser(r).ID)
}

func (a *API) updateElection(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.ElectionInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	election, err := a.mgmt.UpdateElection(r.Context(), currentUser(r), domain.ElectionID(r.PathValue("id")), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, election)
}

type statusTransitionRequest struct {
	Status domain.ElectionStatus `json:"status"`
}

func (a *API) transitionElectionStatus(w http.ResponseWriter, r *http.Request) {
	var req statusTransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	election, err := a.mgmt.TransitionStatus(r.Context(), currentUser(r), domain.ElectionID(r.PathValue("id")), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, election)
	a.logger.Info("election status changed", "election", election.ID, "status", election.Status, "by", currentUser(r).ID)
}

func (a *API) deleteElection(w http.ResponseWriter, r *http.Request) {
	if err := a.mgmt.DeleteElection(r.Context(), currentUser(r), domain.ElectionID(r.PathValue("id"))); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) listParties(w http.ResponseWriter, r *http.Request) {
	parties, err := a.mgmt.ListParties(r.Context(), domain.ElectionID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, parties)
}

func (a *API) createParty(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.PartyInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	party, err := a.mgmt.CreateParty(r.Context(), currentUser(r), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, party)
}

func (a *API) updateParty(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.PartyInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	party, err := a.mgmt.UpdateParty(r.Context(), currentUser(r), domain.PartyID(r.PathValue("id")), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, party)
}

func (a *API) deleteParty(w http.ResponseWriter, r *http.Request) {
	if err := a.mgmt.DeleteParty(r.Context(), currentUser(r), domain.PartyID(r.PathValue("id"))); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := a.mgmt.ListQuestions(r.Context(), domain.ElectionID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

func (a *API) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.QuestionInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	question, err := a.mgmt.CreateQuestion(r.Context(), currentUser(r), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, question)
}

func (a *API) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := a.mgmt.DeleteQuestion(r.Context(), currentUser(r), domain.QuestionID(r.PathValue("id"))); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) listCandidates(w http.ResponseWriter, r *http.Request) {
	filter := domain.CandidateFilter{}
	q := r.URL.Query()
	if v := q.Get("electionId"); v != "" {
		id := domain.ElectionID(v)
		filter.ElectionID = &id
	}
	if v := q.Get("districtId"); v != "" {
		id := domain.DistrictID(v)
		filter.DistrictID = &id
	}
	if v := q.Get("partyId"); v != "" {
		id := domain.PartyID(v)
		filter.PartyID = &id
	}

	candidates, err := a.mgmt.ListCandidates(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, candidates)
}

func (a *API) getCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.mgmt.GetCandidate(r.Context(), domain.CandidateID(r.PathValue("id")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, candidate)
}

func (a *API) createCandidate(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.CandidateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	candidate, err := a.mgmt.CreateCandidate(r.Context(), currentUser(r), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, candidate)
}

func (a *API) updateCandidate(w http.ResponseWriter, r *http.Request) {
	var in electionmgmt.CandidateInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}

	candidate, err := a.mgmt.UpdateCandidate(r.Context(), currentUser(r), domain.CandidateID(r.PathValue("id")), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, candidate)
}

func (a *API) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := a.mgmt.DeleteCandidate(r.Context(), currentUser(r), domain.CandidateID(r.PathValue("id"))); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
