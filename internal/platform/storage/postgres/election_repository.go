package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

type ElectionRepository struct {
	db *gorm.DB
}

func NewElectionRepository(db *gorm.DB) *ElectionRepository {
	return &ElectionRepository{db: db}
}

func (r *ElectionRepository) Create(ctx context.Context, e domain.Election) error {
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return fmt.Errorf("gorm elections: insert: %w", err)
	}
	return nil
}

func (r *ElectionRepository) Update(ctx context.Context, e domain.Election) error {
	res := r.db.WithContext(ctx).Model(&domain.Election{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":             e.Name,
			"name_th":          e.NameTh,
			"description":      e.Description,
			"status":           e.Status,
			"has_party_list":   e.HasPartyList,
			"has_constituency": e.HasConstituency,
			"has_referendum":   e.HasReferendum,
			"start_date":       e.StartDate,
			"end_date":         e.EndDate,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm elections: update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ElectionRepository) FindByID(ctx context.Context, id domain.ElectionID) (domain.Election, error) {
	var election domain.Election
	if err := r.db.WithContext(ctx).First(&election, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Election{}, domain.ErrNotFound
		}
		return domain.Election{}, fmt.Errorf("gorm elections: find: %w", err)
	}
	return election, nil
}

func (r *ElectionRepository) List(ctx context.Context, status *domain.ElectionStatus) ([]domain.Election, error) {
	q := r.db.WithContext(ctx).Order("start_date DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var elections []domain.Election
	if err := q.Find(&elections).Error; err != nil {
		return nil, fmt.Errorf("gorm elections: list: %w", err)
	}
	return elections, nil
}

func (r *ElectionRepository) Delete(ctx context.Context, id domain.ElectionID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Election{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("gorm elections: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.ElectionRepository = (*ElectionRepository)(nil)
