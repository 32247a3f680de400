// Package voting implements the ballot casting rules: eligibility checks,
// per-election dedup and receipt generation.
package voting

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/logger"
	"github.com/pobimgroup/election-dashboard/internal/platform/metrics"
	redisstorage "github.com/pobimgroup/election-dashboard/internal/platform/storage/redis"
	"github.com/pobimgroup/election-dashboard/internal/platform/voterhash"
)

// Service concentrates the casting rules and delegates persistence to the
// repositories.
type Service struct {
	elections  domain.ElectionRepository
	parties    domain.PartyRepository
	candidates domain.CandidateRepository
	questions  domain.QuestionRepository
	votes      domain.VoteRepository
	counter    domain.Counter
	limiter    domain.RateLimiter
	notifier   domain.ResultNotifier
	hasher     voterhash.Hasher
	clock      domain.Clock
	ids        *ids.Generator
}

func NewService(
	elections domain.ElectionRepository,
	parties domain.PartyRepository,
	candidates domain.CandidateRepository,
	questions domain.QuestionRepository,
	votes domain.VoteRepository,
	counter domain.Counter,
	limiter domain.RateLimiter,
	notifier domain.ResultNotifier,
	hasher voterhash.Hasher,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		questions:  questions,
		votes:      votes,
		counter:    counter,
		limiter:    limiter,
		notifier:   notifier,
		hasher:     hasher,
		clock:      clock,
		ids:        idsGen,
	}
}

// CastBallot casts every enabled ballot type of one request in a single
// transaction. A selection whose ballot type the election disabled is skipped
// silently; a request left with no selections is a validation error. A voter
// casts at most once per election, across all ballot types at once.
func (s *Service) CastBallot(ctx context.Context, citizenID string, electionID domain.ElectionID, selections domain.BallotSelections) ([]domain.Receipt, error) {
	if citizenID == "" || electionID == "" {
		return nil, fmt.Errorf("%w: citizen id and election id are required", domain.ErrValidation)
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, "cast:"+citizenID); err != nil {
			metrics.ObserveBallotCast("rate_limited")
			return nil, err
		}
	}

	election, err := s.elections.FindByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if election.Status != domain.ElectionOpen {
		metrics.ObserveBallotCast("rejected")
		return nil, fmt.Errorf("%w: election is not open for voting", domain.ErrInvalidState)
	}

	now := s.clock.Now()
	voterHash := s.hasher.Hash(citizenID, string(electionID))

	votes, err := s.buildVotes(ctx, election, voterHash, selections)
	if err != nil {
		metrics.ObserveBallotCast("rejected")
		return nil, err
	}
	if len(votes) == 0 {
		metrics.ObserveBallotCast("rejected")
		return nil, fmt.Errorf("%w: no castable ballot selection in request", domain.ErrValidation)
	}

	record := domain.VoterRecord{VoterHash: voterHash, ElectionID: electionID}
	if err := s.votes.Cast(ctx, record, votes); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.ObserveBallotCast("duplicate")
		} else {
			metrics.ObserveBallotCast("error")
		}
		return nil, err
	}
	metrics.ObserveBallotCast("accepted")

	if s.counter != nil {
		if _, err := s.counter.Increment(ctx, redisstorage.CastTotalKey(electionID), int64(len(votes))); err != nil {
			// The ledger is the source of truth; a stale counter is tolerable.
			logger.Error("vote counter increment failed", "electionId", electionID, "err", err)
		}
	}

	if s.notifier != nil {
		// The cast response never waits on stream fan-out.
		go s.notifier.NotifyVoteUpdate(electionID)
	}

	receipts := make([]domain.Receipt, len(votes))
	for i, vote := range votes {
		code, err := confirmationCode()
		if err != nil {
			return nil, fmt.Errorf("generate confirmation code: %w", err)
		}
		receipts[i] = domain.Receipt{
			BallotType:       vote.BallotType,
			ConfirmationCode: code,
			Timestamp:        now,
		}
	}
	return receipts, nil
}

// buildVotes validates each selection against the election config and the
// catalog, returning one vote row per enabled selected ballot type.
func (s *Service) buildVotes(ctx context.Context, election domain.Election, voterHash string, selections domain.BallotSelections) ([]domain.Vote, error) {
	var votes []domain.Vote

	if selections.Party != nil && election.HasPartyList {
		party, err := s.parties.FindByID(ctx, selections.Party.PartyID)
		if err != nil {
			return nil, fmt.Errorf("party %s: %w", selections.Party.PartyID, err)
		}
		if party.ElectionID != election.ID {
			return nil, fmt.Errorf("%w: party does not belong to this election", domain.ErrValidation)
		}
		partyID := party.ID
		votes = append(votes, domain.Vote{
			ID:         domain.VoteID(s.ids.New()),
			ElectionID: election.ID,
			BallotType: domain.BallotPartyList,
			VoterHash:  voterHash,
			PartyID:    &partyID,
		})
	}

	if selections.Constituency != nil && election.HasConstituency {
		candidate, err := s.candidates.FindByID(ctx, selections.Constituency.CandidateID)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", selections.Constituency.CandidateID, err)
		}
		if candidate.ElectionID != election.ID {
			return nil, fmt.Errorf("%w: candidate does not belong to this election", domain.ErrValidation)
		}
		candidateID := candidate.ID
		votes = append(votes, domain.Vote{
			ID:          domain.VoteID(s.ids.New()),
			ElectionID:  election.ID,
			BallotType:  domain.BallotConstituency,
			VoterHash:   voterHash,
			CandidateID: &candidateID,
		})
	}

	if len(selections.Referendum) > 0 && election.HasReferendum {
		questions, err := s.questions.ListByElection(ctx, election.ID)
		if err != nil {
			return nil, err
		}
		known := make(map[domain.QuestionID]bool, len(questions))
		for _, q := range questions {
			known[q.ID] = true
		}

		// One row per answered question, all under the same referendum ballot.
		seen := make(map[domain.QuestionID]bool, len(selections.Referendum))
		for _, sel := range selections.Referendum {
			if !known[sel.QuestionID] {
				return nil, fmt.Errorf("%w: referendum question %s", domain.ErrNotFound, sel.QuestionID)
			}
			if seen[sel.QuestionID] {
				return nil, fmt.Errorf("%w: duplicate answer for question %s", domain.ErrValidation, sel.QuestionID)
			}
			seen[sel.QuestionID] = true
			if !validAnswer(sel.Answer) {
				return nil, fmt.Errorf("%w: invalid referendum answer %q", domain.ErrValidation, sel.Answer)
			}
			questionID := sel.QuestionID
			answer := sel.Answer
			votes = append(votes, domain.Vote{
				ID:                   domain.VoteID(s.ids.New()),
				ElectionID:           election.ID,
				BallotType:           domain.BallotReferendum,
				VoterHash:            voterHash,
				ReferendumQuestionID: &questionID,
				ReferendumAnswer:     &answer,
			})
		}
	}

	return votes, nil
}

// Status reports whether the citizen already cast in the election and which
// ballot types the cast covered.
func (s *Service) Status(ctx context.Context, citizenID string, electionID domain.ElectionID) (domain.VoteStatus, error) {
	if _, err := s.elections.FindByID(ctx, electionID); err != nil {
		return domain.VoteStatus{}, err
	}

	voterHash := s.hasher.Hash(citizenID, string(electionID))
	votes, err := s.votes.FindByVoter(ctx, electionID, voterHash)
	if err != nil {
		return domain.VoteStatus{}, err
	}
	if len(votes) == 0 {
		return domain.VoteStatus{HasVoted: false}, nil
	}

	status := domain.VoteStatus{HasVoted: true}
	for _, vote := range votes {
		status.BallotTypes = append(status.BallotTypes, vote.BallotType)
	}
	votedAt := votes[0].CreatedAt
	status.VotedAt = &votedAt
	return status, nil
}

func validAnswer(a domain.ReferendumAnswer) bool {
	switch a {
	case domain.AnswerApprove, domain.AnswerDisapprove, domain.AnswerAbstain:
		return true
	}
	return false
}

// confirmationCode returns 8 hex characters from a CSPRNG. The code carries
// no information about the ballot; it exists for voter reassurance only.
func confirmationCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf[:])), nil
}

var _ domain.VotingService = (*Service)(nil)
