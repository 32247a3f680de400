package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
)

func TestPartyRepository_Create_DuplicateNumberSameElection_ReturnsConflict(t *testing.T) {
	db := setupDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	election := seedElection(t, db, domain.ElectionDraft)

	first := domain.Party{ID: domain.PartyID(ids.NewULID()), ElectionID: election.ID, PartyNumber: 7, Name: "Forward Party", NameTh: "พรรคก้าวหน้า"}
	require.NoError(t, repo.Create(ctx, first))

	dup := domain.Party{ID: domain.PartyID(ids.NewULID()), ElectionID: election.ID, PartyNumber: 7, Name: "Other Party"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Same number in another election is fine.
	other := seedElection(t, db, domain.ElectionDraft)
	again := domain.Party{ID: domain.PartyID(ids.NewULID()), ElectionID: other.ID, PartyNumber: 7, Name: "Forward Party"}
	require.NoError(t, repo.Create(ctx, again))
}

func TestPartyRepository_ListByElection_OrdersByNumber(t *testing.T) {
	db := setupDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	election := seedElection(t, db, domain.ElectionDraft)
	for _, n := range []int{3, 1, 2} {
		p := domain.Party{ID: domain.PartyID(ids.NewULID()), ElectionID: election.ID, PartyNumber: n, Name: "Party"}
		require.NoError(t, repo.Create(ctx, p))
	}

	parties, err := repo.ListByElection(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, parties, 3)
	assert.Equal(t, 1, parties[0].PartyNumber)
	assert.Equal(t, 3, parties[2].PartyNumber)
}

func TestCandidateRepository_Create_DuplicateNumberSameDistrict_ReturnsConflict(t *testing.T) {
	db := setupDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()

	election := seedElection(t, db, domain.ElectionDraft)
	_, _, district := seedGeo(t, db)

	first := domain.Candidate{ID: domain.CandidateID(ids.NewULID()), ElectionID: election.ID, DistrictID: district.ID, CandidateNumber: 1, FirstNameTh: "สมชาย", LastNameTh: "ใจดี"}
	require.NoError(t, repo.Create(ctx, first))

	dup := domain.Candidate{ID: domain.CandidateID(ids.NewULID()), ElectionID: election.ID, DistrictID: district.ID, CandidateNumber: 1, FirstNameTh: "สมหญิง", LastNameTh: "ขยัน"}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCandidateRepository_List_FiltersByDistrict(t *testing.T) {
	db := setupDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()

	election := seedElection(t, db, domain.ElectionDraft)
	_, province, district := seedGeo(t, db)

	other := domain.District{ID: "chiang-mai-2", ProvinceID: province.ID, ZoneNumber: 2, Name: "Chiang Mai Zone 2"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, repo.Create(ctx, domain.Candidate{ID: domain.CandidateID(ids.NewULID()), ElectionID: election.ID, DistrictID: district.ID, CandidateNumber: 1, FirstNameTh: "ก", LastNameTh: "ข"}))
	require.NoError(t, repo.Create(ctx, domain.Candidate{ID: domain.CandidateID(ids.NewULID()), ElectionID: election.ID, DistrictID: other.ID, CandidateNumber: 1, FirstNameTh: "ค", LastNameTh: "ง"}))

	scoped, err := repo.List(ctx, domain.CandidateFilter{ElectionID: &election.ID, DistrictID: &district.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, district.ID, scoped[0].DistrictID)
}

func TestElectionRepository_Update_Missing_ReturnsNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewElectionRepository(db)

	missing := domain.Election{ID: domain.ElectionID(ids.NewULID()), Name: "Ghost"}
	err := repo.Update(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestElectionRepository_List_FiltersByStatus(t *testing.T) {
	db := setupDB(t)
	repo := NewElectionRepository(db)
	ctx := context.Background()

	seedElection(t, db, domain.ElectionDraft)
	open := seedElection(t, db, domain.ElectionOpen)

	status := domain.ElectionOpen
	got, err := repo.List(ctx, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.ID, got[0].ID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserRepository_FindByCitizenID(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	citizenID := "1234567890123"
	user := domain.User{ID: domain.UserID(ids.NewULID()), CitizenID: &citizenID, Name: "สมชาย ใจดี", Role: "voter"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByCitizenID(ctx, citizenID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByCitizenID(ctx, "9999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
