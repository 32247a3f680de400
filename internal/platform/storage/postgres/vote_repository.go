package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// VoteRepository appends to the individual vote ledger and exposes the
// aggregate counts the result computations read.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Cast inserts the voter record and every ballot of the cast in one
// transaction. The voter_records primary key on (voter_hash, election_id)
// serializes the dedup check: a concurrent duplicate cast fails here and the
// whole transaction rolls back, so no partial ballots survive.
func (r *VoteRepository) Cast(ctx context.Context, record domain.VoterRecord, votes []domain.Vote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: already voted in this election", domain.ErrConflict)
			}
			return fmt.Errorf("gorm votes: voter record: %w", err)
		}

		if len(votes) == 0 {
			return nil
		}

		if err := tx.Create(&votes).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: duplicate ballot", domain.ErrConflict)
			}
			return fmt.Errorf("gorm votes: insert ballots: %w", err)
		}
		return nil
	})
}

func (r *VoteRepository) FindByVoter(ctx context.Context, electionID domain.ElectionID, voterHash string) ([]domain.Vote, error) {
	var votes []domain.Vote
	if err := r.db.WithContext(ctx).
		Where("election_id = ? AND voter_hash = ?", electionID, voterHash).
		Order("created_at ASC").
		Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("gorm votes: find by voter: %w", err)
	}
	return votes, nil
}

func (r *VoteRepository) CountByParty(ctx context.Context, electionID domain.ElectionID) (map[domain.PartyID]int64, error) {
	type row struct {
		PartyID string
		Total   int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select("party_id as party_id, COUNT(*) as total").
		Where("election_id = ? AND ballot_type = ? AND party_id IS NOT NULL", electionID, domain.BallotPartyList).
		Group("party_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm votes: count by party: %w", err)
	}

	totals := make(map[domain.PartyID]int64, len(rows))
	for _, item := range rows {
		totals[domain.PartyID(item.PartyID)] = item.Total
	}
	return totals, nil
}

func (r *VoteRepository) CountByCandidate(ctx context.Context, electionID domain.ElectionID) (map[domain.CandidateID]int64, error) {
	type row struct {
		CandidateID string
		Total       int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select("candidate_id as candidate_id, COUNT(*) as total").
		Where("election_id = ? AND ballot_type = ? AND candidate_id IS NOT NULL", electionID, domain.BallotConstituency).
		Group("candidate_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm votes: count by candidate: %w", err)
	}

	totals := make(map[domain.CandidateID]int64, len(rows))
	for _, item := range rows {
		totals[domain.CandidateID(item.CandidateID)] = item.Total
	}
	return totals, nil
}

func (r *VoteRepository) CountReferendum(ctx context.Context, electionID domain.ElectionID) ([]domain.ReferendumCount, error) {
	type row struct {
		QuestionID string
		Answer     string
		Total      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select("referendum_question_id as question_id, referendum_answer as answer, COUNT(*) as total").
		Where("election_id = ? AND ballot_type = ?", electionID, domain.BallotReferendum).
		Group("referendum_question_id, referendum_answer").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm votes: count referendum: %w", err)
	}

	counts := make([]domain.ReferendumCount, len(rows))
	for i, item := range rows {
		counts[i] = domain.ReferendumCount{
			QuestionID: domain.QuestionID(item.QuestionID),
			Answer:     domain.ReferendumAnswer(item.Answer),
			Total:      item.Total,
		}
	}
	return counts, nil
}

var _ domain.VoteRepository = (*VoteRepository)(nil)
