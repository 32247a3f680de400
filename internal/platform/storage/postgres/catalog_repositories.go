package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// PartyRepository, CandidateRepository and QuestionRepository persist the
// per-election catalog entities. All three map duplicate-number inserts to
// the conflict error.

type PartyRepository struct {
	db *gorm.DB
}

func NewPartyRepository(db *gorm.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

func (r *PartyRepository) Create(ctx context.Context, p domain.Party) error {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: party number already used in this election", domain.ErrConflict)
		}
		return fmt.Errorf("gorm parties: insert: %w", err)
	}
	return nil
}

func (r *PartyRepository) Update(ctx context.Context, p domain.Party) error {
	res := r.db.WithContext(ctx).Model(&domain.Party{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":     p.Name,
			"name_th":  p.NameTh,
			"color":    p.Color,
			"logo_url": p.LogoURL,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm parties: update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartyRepository) Delete(ctx context.Context, id domain.PartyID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Party{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("gorm parties: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartyRepository) FindByID(ctx context.Context, id domain.PartyID) (domain.Party, error) {
	var party domain.Party
	if err := r.db.WithContext(ctx).First(&party, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Party{}, domain.ErrNotFound
		}
		return domain.Party{}, fmt.Errorf("gorm parties: find: %w", err)
	}
	return party, nil
}

func (r *PartyRepository) ListByElection(ctx context.Context, electionID domain.ElectionID) ([]domain.Party, error) {
	var parties []domain.Party
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("party_number ASC").
		Find(&parties).Error; err != nil {
		return nil, fmt.Errorf("gorm parties: list: %w", err)
	}
	return parties, nil
}

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, c domain.Candidate) error {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: candidate number already used in this district", domain.ErrConflict)
		}
		return fmt.Errorf("gorm candidates: insert: %w", err)
	}
	return nil
}

func (r *CandidateRepository) Update(ctx context.Context, c domain.Candidate) error {
	res := r.db.WithContext(ctx).Model(&domain.Candidate{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"party_id":      c.PartyID,
			"title_th":      c.TitleTh,
			"first_name_th": c.FirstNameTh,
			"last_name_th":  c.LastNameTh,
			"photo_url":     c.PhotoURL,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm candidates: update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) Delete(ctx context.Context, id domain.CandidateID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("gorm candidates: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	var candidate domain.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Candidate{}, domain.ErrNotFound
		}
		return domain.Candidate{}, fmt.Errorf("gorm candidates: find: %w", err)
	}
	return candidate, nil
}

func (r *CandidateRepository) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	q := r.db.WithContext(ctx).Order("candidate_number ASC")
	if filter.ElectionID != nil {
		q = q.Where("election_id = ?", *filter.ElectionID)
	}
	if filter.DistrictID != nil {
		q = q.Where("district_id = ?", *filter.DistrictID)
	}
	if filter.PartyID != nil {
		q = q.Where("party_id = ?", *filter.PartyID)
	}
	var candidates []domain.Candidate
	if err := q.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("gorm candidates: list: %w", err)
	}
	return candidates, nil
}

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q domain.ReferendumQuestion) error {
	if err := r.db.WithContext(ctx).Create(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: question number already used in this election", domain.ErrConflict)
		}
		return fmt.Errorf("gorm questions: insert: %w", err)
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	res := r.db.WithContext(ctx).Delete(&domain.ReferendumQuestion{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("gorm questions: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) ListByElection(ctx context.Context, electionID domain.ElectionID) ([]domain.ReferendumQuestion, error) {
	var questions []domain.ReferendumQuestion
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("question_number ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("gorm questions: list: %w", err)
	}
	return questions, nil
}

var (
	_ domain.PartyRepository     = (*PartyRepository)(nil)
	_ domain.CandidateRepository = (*CandidateRepository)(nil)
	_ domain.QuestionRepository  = (*QuestionRepository)(nil)
)
