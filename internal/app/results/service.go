// Package results recomputes election aggregates from the vote ledger on
// every call. Nothing here is cached: the ledger is the single source of
// truth and the queries are cheap at demonstration scale.
package results

import (
	"context"
	"fmt"
	"sort"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/metrics"
)

type Service struct {
	elections  domain.ElectionRepository
	parties    domain.PartyRepository
	candidates domain.CandidateRepository
	questions  domain.QuestionRepository
	votes      domain.VoteRepository
	geo        domain.GeoRepository
	clock      domain.Clock
}

func NewService(
	elections domain.ElectionRepository,
	parties domain.PartyRepository,
	candidates domain.CandidateRepository,
	questions domain.QuestionRepository,
	votes domain.VoteRepository,
	geo domain.GeoRepository,
	clock domain.Clock,
) *Service {
	return &Service{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		questions:  questions,
		votes:      votes,
		geo:        geo,
		clock:      clock,
	}
}

// Compute builds the national aggregate: party-list tally, referendum tally
// and turnout. Percentages divide by the ballot-type total, guarded to 0 when
// nothing was cast yet.
func (s *Service) Compute(ctx context.Context, electionID domain.ElectionID) (domain.ElectionResults, error) {
	election, err := s.elections.FindByID(ctx, electionID)
	if err != nil {
		return domain.ElectionResults{}, err
	}

	partyResults, totalPartyVotes, err := s.partyTally(ctx, electionID)
	if err != nil {
		return domain.ElectionResults{}, err
	}

	referendumResults, err := s.referendumTally(ctx, electionID)
	if err != nil {
		return domain.ElectionResults{}, err
	}

	eligible, err := s.geo.SumVoterCounts(ctx, nil)
	if err != nil {
		return domain.ElectionResults{}, err
	}

	turnout := 0.0
	if eligible > 0 {
		turnout = float64(totalPartyVotes) / float64(eligible) * 100
	}

	return domain.ElectionResults{
		ElectionID:          election.ID,
		ElectionName:        election.NameTh,
		Status:              election.Status,
		LastUpdated:         s.clock.Now(),
		TotalEligibleVoters: eligible,
		TotalVotesCast:      totalPartyVotes,
		TurnoutPercentage:   turnout,
		PartyListResults:    partyResults,
		ReferendumResults:   referendumResults,
	}, nil
}

// partyTally returns one entry per registered party, zero-filled for parties
// without votes, ordered by vote count descending. Ties keep the party-number
// listing order.
func (s *Service) partyTally(ctx context.Context, electionID domain.ElectionID) ([]domain.PartyResult, int64, error) {
	parties, err := s.parties.ListByElection(ctx, electionID)
	if err != nil {
		return nil, 0, err
	}
	counts, err := s.votes.CountByParty(ctx, electionID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	results := make([]domain.PartyResult, len(parties))
	for i, party := range parties {
		count := counts[party.ID]
		percentage := 0.0
		if total > 0 {
			percentage = float64(count) / float64(total) * 100
		}
		results[i] = domain.PartyResult{
			PartyID:     party.ID,
			PartyName:   party.Name,
			PartyNameTh: party.NameTh,
			PartyColor:  party.Color,
			VoteCount:   count,
			Percentage:  percentage,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})
	return results, total, nil
}

func (s *Service) referendumTally(ctx context.Context, electionID domain.ElectionID) ([]domain.ReferendumResult, error) {
	questions, err := s.questions.ListByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	counts, err := s.votes.CountReferendum(ctx, electionID)
	if err != nil {
		return nil, err
	}

	byQuestion := map[domain.QuestionID]map[domain.ReferendumAnswer]int64{}
	for _, c := range counts {
		if byQuestion[c.QuestionID] == nil {
			byQuestion[c.QuestionID] = map[domain.ReferendumAnswer]int64{}
		}
		byQuestion[c.QuestionID][c.Answer] = c.Total
	}

	results := make([]domain.ReferendumResult, len(questions))
	for i, question := range questions {
		answers := byQuestion[question.ID]
		approve := answers[domain.AnswerApprove]
		disapprove := answers[domain.AnswerDisapprove]
		abstain := answers[domain.AnswerAbstain]
		total := approve + disapprove + abstain

		approvePct, disapprovePct := 0.0, 0.0
		if total > 0 {
			approvePct = float64(approve) / float64(total) * 100
			disapprovePct = float64(disapprove) / float64(total) * 100
		}

		outcome := "TIE"
		switch {
		case approve > disapprove:
			outcome = "APPROVED"
		case approve < disapprove:
			outcome = "DISAPPROVED"
		}

		results[i] = domain.ReferendumResult{
			QuestionID:           question.ID,
			QuestionText:         question.QuestionText,
			ApproveCount:         approve,
			DisapproveCount:      disapprove,
			AbstainCount:         abstain,
			ApprovePercentage:    approvePct,
			DisapprovePercentage: disapprovePct,
			Result:               outcome,
		}
	}
	return results, nil
}

// ByDistrict builds per-district constituency tallies, optionally narrowed to
// one province. The winner of a district is the candidate with the most
// votes; on a tie the lowest candidate number wins.
func (s *Service) ByDistrict(ctx context.Context, electionID domain.ElectionID, provinceID *domain.ProvinceID) ([]domain.DistrictResult, error) {
	if _, err := s.elections.FindByID(ctx, electionID); err != nil {
		return nil, err
	}

	districts, err := s.geo.ListDistricts(ctx, provinceID, nil)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidates.List(ctx, domain.CandidateFilter{ElectionID: &electionID})
	if err != nil {
		return nil, err
	}
	counts, err := s.votes.CountByCandidate(ctx, electionID)
	if err != nil {
		return nil, err
	}

	partyNames := map[domain.PartyID]domain.Party{}
	parties, err := s.parties.ListByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	for _, party := range parties {
		partyNames[party.ID] = party
	}

	byDistrict := map[domain.DistrictID][]domain.Candidate{}
	for _, candidate := range candidates {
		byDistrict[candidate.DistrictID] = append(byDistrict[candidate.DistrictID], candidate)
	}

	provinceNames := map[domain.ProvinceID]string{}

	results := make([]domain.DistrictResult, 0, len(districts))
	for _, district := range districts {
		provinceName, ok := provinceNames[district.ProvinceID]
		if !ok {
			province, err := s.geo.FindProvince(ctx, district.ProvinceID)
			if err != nil {
				return nil, fmt.Errorf("district %s: %w", district.ID, err)
			}
			provinceName = province.NameTh
			provinceNames[district.ProvinceID] = provinceName
		}

		districtCandidates := byDistrict[district.ID]
		sort.Slice(districtCandidates, func(i, j int) bool {
			ci, cj := districtCandidates[i], districtCandidates[j]
			vi, vj := counts[ci.ID], counts[cj.ID]
			if vi != vj {
				return vi > vj
			}
			return ci.CandidateNumber < cj.CandidateNumber
		})

		var totalVotes int64
		for _, candidate := range districtCandidates {
			totalVotes += counts[candidate.ID]
		}

		candidateResults := make([]domain.CandidateResult, len(districtCandidates))
		for i, candidate := range districtCandidates {
			count := counts[candidate.ID]
			percentage := 0.0
			if totalVotes > 0 {
				percentage = float64(count) / float64(totalVotes) * 100
			}
			cr := domain.CandidateResult{
				CandidateID:   candidate.ID,
				CandidateName: candidate.TitleTh + candidate.FirstNameTh + " " + candidate.LastNameTh,
				VoteCount:     count,
				Percentage:    percentage,
				IsWinner:      i == 0 && len(districtCandidates) > 0,
			}
			if candidate.PartyID != nil {
				if party, ok := partyNames[*candidate.PartyID]; ok {
					cr.PartyName = party.NameTh
					cr.PartyColor = party.Color
				}
			}
			candidateResults[i] = cr
		}

		turnout := 0.0
		if district.VoterCount > 0 {
			turnout = float64(totalVotes) / float64(district.VoterCount) * 100
		}

		result := domain.DistrictResult{
			DistrictID:        district.ID,
			DistrictName:      district.NameTh,
			ProvinceName:      provinceName,
			VoterCount:        district.VoterCount,
			TotalVotes:        totalVotes,
			TurnoutPercentage: turnout,
			Candidates:        candidateResults,
		}
		if len(candidateResults) > 0 {
			winner := candidateResults[0]
			result.Winner = &winner
		}
		results = append(results, result)
	}
	return results, nil
}

// Snapshot is the lean aggregate pushed to stream subscribers: party-list
// totals only.
func (s *Service) Snapshot(ctx context.Context, electionID domain.ElectionID) (domain.ResultSnapshot, error) {
	start := s.clock.Now()

	partyResults, total, err := s.partyTally(ctx, electionID)
	if err != nil {
		return domain.ResultSnapshot{}, err
	}

	now := s.clock.Now()
	metrics.ObserveSnapshotDuration(now.Sub(start).Seconds())

	return domain.ResultSnapshot{
		Event:        "vote_update",
		ElectionID:   electionID,
		Timestamp:    now,
		TotalVotes:   total,
		PartyResults: partyResults,
	}, nil
}

var _ domain.ResultsService = (*Service)(nil)
