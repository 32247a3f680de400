package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// BatchRepository persists vote batches with their nested count rows.
type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create runs the single-pending check and the insert in one transaction so
// two officials cannot both succeed for the same (election, district).
func (r *BatchRepository) Create(ctx context.Context, b *domain.VoteBatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&domain.VoteBatch{}).
			Where("election_id = ? AND district_id = ? AND status = ?", b.ElectionID, b.DistrictID, domain.BatchPending).
			Count(&pending).Error; err != nil {
			return fmt.Errorf("gorm batches: pending check: %w", err)
		}
		if pending > 0 {
			return fmt.Errorf("%w: a pending batch already exists for this district", domain.ErrConflict)
		}

		// Create cascades into the nested count rows via the association
		// foreign keys.
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("gorm batches: insert: %w", err)
		}
		return nil
	})
}

func (r *BatchRepository) FindByID(ctx context.Context, id domain.BatchID) (domain.VoteBatch, error) {
	var batch domain.VoteBatch
	if err := r.db.WithContext(ctx).
		Preload("PartyVotes").
		Preload("ConstituencyVotes").
		Preload("ReferendumVotes").
		First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VoteBatch{}, domain.ErrNotFound
		}
		return domain.VoteBatch{}, fmt.Errorf("gorm batches: find: %w", err)
	}
	return batch, nil
}

// SetStatus performs the guarded PENDING -> terminal transition. The WHERE
// clause on the current status makes the transition race-safe: a second
// concurrent approval matches zero rows.
func (r *BatchRepository) SetStatus(ctx context.Context, id domain.BatchID, status domain.BatchStatus, actor domain.UserID, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.VoteBatch{}).
		Where("id = ? AND status = ?", id, domain.BatchPending).
		Updates(map[string]any{
			"status":           status,
			"approved_by_id":   string(actor),
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm batches: set status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: batch is not pending", domain.ErrInvalidState)
	}
	return nil
}

func (r *BatchRepository) Delete(ctx context.Context, id domain.BatchID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Explicit child deletes keep the behavior identical on engines
		// where the cascade constraint is not enforced.
		if err := tx.Where("batch_id = ?", id).Delete(&domain.BatchPartyVote{}).Error; err != nil {
			return fmt.Errorf("gorm batches: delete party counts: %w", err)
		}
		if err := tx.Where("batch_id = ?", id).Delete(&domain.BatchConstituencyVote{}).Error; err != nil {
			return fmt.Errorf("gorm batches: delete constituency counts: %w", err)
		}
		if err := tx.Where("batch_id = ?", id).Delete(&domain.BatchReferendumVote{}).Error; err != nil {
			return fmt.Errorf("gorm batches: delete referendum counts: %w", err)
		}
		if err := tx.Delete(&domain.VoteBatch{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("gorm batches: delete: %w", err)
		}
		return nil
	})
}

func (r *BatchRepository) List(ctx context.Context, filter domain.BatchFilter) ([]domain.VoteBatch, error) {
	q := r.db.WithContext(ctx).
		Preload("PartyVotes").
		Preload("ConstituencyVotes").
		Preload("ReferendumVotes").
		Order("created_at DESC")

	if filter.ElectionID != nil {
		q = q.Where("election_id = ?", *filter.ElectionID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.DistrictIDs != nil {
		if len(filter.DistrictIDs) == 0 {
			return []domain.VoteBatch{}, nil
		}
		q = q.Where("district_id IN ?", filter.DistrictIDs)
	}

	var batches []domain.VoteBatch
	if err := q.Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("gorm batches: list: %w", err)
	}
	return batches, nil
}

var _ domain.BatchRepository = (*BatchRepository)(nil)
