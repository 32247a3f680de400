// Package httpapi exposes the REST and SSE boundary and translates HTTP
// requests into service calls. Routes are registered centrally so tests and
// alternative servers can mount the same mux.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pobimgroup/election-dashboard/internal/app/auth"
	"github.com/pobimgroup/election-dashboard/internal/app/electionmgmt"
	"github.com/pobimgroup/election-dashboard/internal/app/stream"
	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/token"
)

type API struct {
	auth      *auth.Service
	mgmt      *electionmgmt.Service
	voting    domain.VotingService
	batches   domain.BatchService
	results   domain.ResultsService
	hub       *stream.Hub
	geo       domain.GeoRepository
	counter   domain.Counter
	issuer    token.Issuer
	logger    *slog.Logger
	heartbeat time.Duration
}

type Options struct {
	Auth      *auth.Service
	Mgmt      *electionmgmt.Service
	Voting    domain.VotingService
	Batches   domain.BatchService
	Results   domain.ResultsService
	Hub       *stream.Hub
	Geo       domain.GeoRepository
	Counter   domain.Counter
	Issuer    token.Issuer
	Logger    *slog.Logger
	Heartbeat time.Duration
}

func New(opts Options) *API {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &API{
		auth:      opts.Auth,
		mgmt:      opts.Mgmt,
		voting:    opts.Voting,
		batches:   opts.Batches,
		results:   opts.Results,
		hub:       opts.Hub,
		geo:       opts.Geo,
		counter:   opts.Counter,
		issuer:    opts.Issuer,
		logger:    opts.Logger,
		heartbeat: opts.Heartbeat,
	}
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/voter/login", a.voterLogin)
	mux.HandleFunc("POST /api/auth/login", a.officialLogin)
	mux.HandleFunc("POST /api/auth/logout", a.logout)
	mux.HandleFunc("GET /api/auth/me", a.requireAuth(a.me))

	mux.HandleFunc("GET /api/elections", a.listElections)
	mux.HandleFunc("GET /api/elections/{id}", a.getElection)
	mux.HandleFunc("POST /api/elections", a.requireAuth(a.createElection))
	mux.HandleFunc("PUT /api/elections/{id}", a.requireAuth(a.updateElection))
	mux.HandleFunc("POST /api/elections/{id}/status", a.requireAuth(a.transitionElectionStatus))
	mux.HandleFunc("DELETE /api/elections/{id}", a.requireAuth(a.deleteElection))

	mux.HandleFunc("GET /api/elections/{id}/parties", a.listParties)
	mux.HandleFunc("POST /api/parties", a.requireAuth(a.createParty))
	mux.HandleFunc("PUT /api/parties/{id}", a.requireAuth(a.updateParty))
	mux.HandleFunc("DELETE /api/parties/{id}", a.requireAuth(a.deleteParty))

	mux.HandleFunc("GET /api/elections/{id}/questions", a.listQuestions)
	mux.HandleFunc("POST /api/questions", a.requireAuth(a.createQuestion))
	mux.HandleFunc("DELETE /api/questions/{id}", a.requireAuth(a.deleteQuestion))

	mux.HandleFunc("GET /api/candidates", a.listCandidates)
	mux.HandleFunc("GET /api/candidates/{id}", a.getCandidate)
	mux.HandleFunc("POST /api/candidates", a.requireAuth(a.createCandidate))
	mux.HandleFunc("PUT /api/candidates/{id}", a.requireAuth(a.updateCandidate))
	mux.HandleFunc("DELETE /api/candidates/{id}", a.requireAuth(a.deleteCandidate))

	mux.HandleFunc("GET /api/geo/regions", a.listRegions)
	mux.HandleFunc("GET /api/geo/provinces", a.listProvinces)
	mux.HandleFunc("GET /api/geo/districts", a.listDistricts)

	mux.HandleFunc("POST /api/elections/{id}/votes", a.requireAuth(a.castBallot))
	mux.HandleFunc("GET /api/elections/{id}/votes/status", a.requireAuth(a.voteStatus))

	mux.HandleFunc("POST /api/batches", a.requireAuth(a.submitBatch))
	mux.HandleFunc("GET /api/batches", a.requireAuth(a.listBatches))
	mux.HandleFunc("GET /api/batches/{id}", a.requireAuth(a.getBatch))
	mux.HandleFunc("POST /api/batches/{id}/approve", a.requireAuth(a.approveBatch))
	mux.HandleFunc("POST /api/batches/{id}/reject", a.requireAuth(a.rejectBatch))
	mux.HandleFunc("DELETE /api/batches/{id}", a.requireAuth(a.deleteBatch))

	mux.HandleFunc("GET /api/elections/{id}/results", a.electionResults)
	mux.HandleFunc("GET /api/elections/{id}/results/districts", a.districtResults)
	mux.HandleFunc("GET /api/elections/{id}/results/stream", a.streamResults)
}
