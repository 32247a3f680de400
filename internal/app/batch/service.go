// Package batch implements the aggregate-count submission workflow: district
// officials upload tabulated totals, scope-matching admins approve or reject
// them. Batch counts never feed the individual vote ledger.
package batch

import (
	"context"
	"fmt"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/metrics"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type Service struct {
	batches   domain.BatchRepository
	elections domain.ElectionRepository
	geo       domain.GeoRepository
	ids       *ids.Generator
}

func NewService(
	batches domain.BatchRepository,
	elections domain.ElectionRepository,
	geo domain.GeoRepository,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		batches:   batches,
		elections: elections,
		geo:       geo,
		ids:       idsGen,
	}
}

// Submit creates a PENDING batch with nested count rows in one transaction.
// Batch upload happens after polls close, so the election must be CLOSED.
func (s *Service) Submit(ctx context.Context, official domain.User, in domain.BatchSubmission) (domain.VoteBatch, error) {
	if !rbac.HasPermission(official.Role, rbac.PermVoteBatchUpload) {
		return domain.VoteBatch{}, fmt.Errorf("%w: role %s may not upload batches", domain.ErrForbidden, official.Role)
	}
	if in.ElectionID == "" || in.DistrictID == "" {
		return domain.VoteBatch{}, fmt.Errorf("%w: election id and district id are required", domain.ErrValidation)
	}
	if len(in.PartyVotes) == 0 && len(in.ConstituencyVotes) == 0 && len(in.ReferendumVotes) == 0 {
		return domain.VoteBatch{}, fmt.Errorf("%w: batch must carry at least one count", domain.ErrValidation)
	}

	election, err := s.elections.FindByID(ctx, in.ElectionID)
	if err != nil {
		return domain.VoteBatch{}, err
	}
	if election.Status != domain.ElectionClosed {
		return domain.VoteBatch{}, fmt.Errorf("%w: batches are submitted after the election closes", domain.ErrInvalidState)
	}

	ref, err := s.geo.ResolveDistrict(ctx, in.DistrictID)
	if err != nil {
		return domain.VoteBatch{}, err
	}
	if !rbac.CanAccessDistrict(official.Role, official.Scope(), string(ref.DistrictID), string(ref.ProvinceID), string(ref.RegionID)) {
		return domain.VoteBatch{}, fmt.Errorf("%w: district outside the submitter's scope", domain.ErrForbidden)
	}

	for _, pv := range in.PartyVotes {
		if pv.VoteCount < 0 {
			return domain.VoteBatch{}, fmt.Errorf("%w: negative party vote count", domain.ErrValidation)
		}
	}
	for _, cv := range in.ConstituencyVotes {
		if cv.VoteCount < 0 {
			return domain.VoteBatch{}, fmt.Errorf("%w: negative constituency vote count", domain.ErrValidation)
		}
	}
	for _, rv := range in.ReferendumVotes {
		if rv.ApproveCount < 0 || rv.DisapproveCount < 0 || rv.AbstainCount < 0 {
			return domain.VoteBatch{}, fmt.Errorf("%w: negative referendum count", domain.ErrValidation)
		}
	}

	batch := domain.VoteBatch{
		ID:            domain.BatchID(s.ids.New()),
		ElectionID:    in.ElectionID,
		DistrictID:    in.DistrictID,
		SubmittedByID: official.ID,
		Status:        domain.BatchPending,
		Notes:         in.Notes,
		TotalVotes:    representativeTotal(in),
	}
	for _, pv := range in.PartyVotes {
		batch.PartyVotes = append(batch.PartyVotes, domain.BatchPartyVote{
			ID:        s.ids.New(),
			PartyID:   pv.PartyID,
			VoteCount: pv.VoteCount,
		})
	}
	for _, cv := range in.ConstituencyVotes {
		batch.ConstituencyVotes = append(batch.ConstituencyVotes, domain.BatchConstituencyVote{
			ID:          s.ids.New(),
			CandidateID: cv.CandidateID,
			VoteCount:   cv.VoteCount,
		})
	}
	for _, rv := range in.ReferendumVotes {
		batch.ReferendumVotes = append(batch.ReferendumVotes, domain.BatchReferendumVote{
			ID:              s.ids.New(),
			QuestionID:      rv.QuestionID,
			ApproveCount:    rv.ApproveCount,
			DisapproveCount: rv.DisapproveCount,
			AbstainCount:    rv.AbstainCount,
		})
	}

	if err := s.batches.Create(ctx, &batch); err != nil {
		return domain.VoteBatch{}, err
	}
	metrics.ObserveBatchTransition("submitted")
	return batch, nil
}

// representativeTotal is the larger of the two per-ballot-type sums; the two
// may legitimately differ because turnout differs per ballot type.
func representativeTotal(in domain.BatchSubmission) int {
	partySum, constituencySum := 0, 0
	for _, pv := range in.PartyVotes {
		partySum += pv.VoteCount
	}
	for _, cv := range in.ConstituencyVotes {
		constituencySum += cv.VoteCount
	}
	if partySum > constituencySum {
		return partySum
	}
	return constituencySum
}

func (s *Service) Approve(ctx context.Context, admin domain.User, id domain.BatchID) (domain.VoteBatch, error) {
	if err := s.authorizeTransition(ctx, admin, id); err != nil {
		return domain.VoteBatch{}, err
	}
	if err := s.batches.SetStatus(ctx, id, domain.BatchApproved, admin.ID, ""); err != nil {
		return domain.VoteBatch{}, err
	}
	metrics.ObserveBatchTransition("approved")
	return s.batches.FindByID(ctx, id)
}

func (s *Service) Reject(ctx context.Context, admin domain.User, id domain.BatchID, reason string) (domain.VoteBatch, error) {
	if reason == "" {
		return domain.VoteBatch{}, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	if err := s.authorizeTransition(ctx, admin, id); err != nil {
		return domain.VoteBatch{}, err
	}
	if err := s.batches.SetStatus(ctx, id, domain.BatchRejected, admin.ID, reason); err != nil {
		return domain.VoteBatch{}, err
	}
	metrics.ObserveBatchTransition("rejected")
	return s.batches.FindByID(ctx, id)
}

// authorizeTransition checks that the admin's scope covers the batch's
// district. The status guard itself lives in the repository update so that
// two concurrent approvals cannot both pass.
func (s *Service) authorizeTransition(ctx context.Context, admin domain.User, id domain.BatchID) error {
	if !rbac.HasPermission(admin.Role, rbac.PermVoteBatchApprove) {
		return fmt.Errorf("%w: role %s may not approve batches", domain.ErrForbidden, admin.Role)
	}

	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ref, err := s.geo.ResolveDistrict(ctx, batch.DistrictID)
	if err != nil {
		return err
	}
	if !rbac.CanAccessDistrict(admin.Role, admin.Scope(), string(ref.DistrictID), string(ref.ProvinceID), string(ref.RegionID)) {
		return fmt.Errorf("%w: batch district outside the admin's scope", domain.ErrForbidden)
	}
	return nil
}

// Delete removes a PENDING batch. Only the submitter or a super admin may do
// this.
func (s *Service) Delete(ctx context.Context, actor domain.User, id domain.BatchID) error {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if batch.Status != domain.BatchPending {
		return fmt.Errorf("%w: only pending batches can be deleted", domain.ErrInvalidState)
	}
	if actor.ID != batch.SubmittedByID && actor.Role != rbac.RoleSuperAdmin {
		return fmt.Errorf("%w: only the submitter or a super admin may delete a batch", domain.ErrForbidden)
	}
	if err := s.batches.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ObserveBatchTransition("deleted")
	return nil
}

func (s *Service) Get(ctx context.Context, id domain.BatchID) (domain.VoteBatch, error) {
	return s.batches.FindByID(ctx, id)
}

// List narrows results to the caller's scope before applying explicit
// filters. A scoped caller asking for a district outside their scope gets an
// empty list, not an error.
func (s *Service) List(ctx context.Context, actor domain.User, electionID *domain.ElectionID, status *domain.BatchStatus, districtID *domain.DistrictID) ([]domain.VoteBatch, error) {
	scopeDistricts, err := s.scopeDistricts(ctx, actor)
	if err != nil {
		return nil, err
	}

	filter := domain.BatchFilter{ElectionID: electionID, Status: status}
	switch {
	case scopeDistricts == nil:
		if districtID != nil {
			filter.DistrictIDs = []domain.DistrictID{*districtID}
		}
	case districtID != nil:
		filter.DistrictIDs = []domain.DistrictID{}
		for _, id := range scopeDistricts {
			if id == *districtID {
				filter.DistrictIDs = append(filter.DistrictIDs, id)
				break
			}
		}
	default:
		filter.DistrictIDs = scopeDistricts
	}

	return s.batches.List(ctx, filter)
}

// scopeDistricts resolves the caller's visibility: nil means unrestricted, an
// empty slice means no district is visible.
func (s *Service) scopeDistricts(ctx context.Context, actor domain.User) ([]domain.DistrictID, error) {
	switch actor.Role {
	case rbac.RoleSuperAdmin:
		return nil, nil
	case rbac.RoleRegionalAdmin:
		if actor.ScopeRegionID == nil {
			return []domain.DistrictID{}, nil
		}
		return s.geo.DistrictIDsByRegion(ctx, *actor.ScopeRegionID)
	case rbac.RoleProvinceAdmin:
		if actor.ScopeProvinceID == nil {
			return []domain.DistrictID{}, nil
		}
		return s.geo.DistrictIDsByProvince(ctx, *actor.ScopeProvinceID)
	case rbac.RoleDistrictOfficial:
		if actor.ScopeDistrictID == nil {
			return []domain.DistrictID{}, nil
		}
		return []domain.DistrictID{*actor.ScopeDistrictID}, nil
	default:
		return []domain.DistrictID{}, nil
	}
}

var _ domain.BatchService = (*Service)(nil)
