package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
)

// setupDB opens an in-memory sqlite database with the same TranslateError
// setting as production, so duplicate-key behavior matches Postgres.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.Region{},
		&domain.Province{},
		&domain.District{},
		&domain.Election{},
		&domain.Party{},
		&domain.Candidate{},
		&domain.ReferendumQuestion{},
		&domain.Vote{},
		&domain.VoterRecord{},
		&domain.VoteBatch{},
		&domain.BatchPartyVote{},
		&domain.BatchConstituencyVote{},
		&domain.BatchReferendumVote{},
		&domain.User{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func seedElection(t *testing.T, db *gorm.DB, status domain.ElectionStatus) domain.Election {
	t.Helper()

	now := time.Now().UTC()
	e := domain.Election{
		ID:              domain.ElectionID(ids.NewULID()),
		Name:            "General Election 2569",
		NameTh:          "การเลือกตั้งทั่วไป 2569",
		Status:          status,
		HasPartyList:    true,
		HasConstituency: true,
		HasReferendum:   true,
		StartDate:       now.Add(-time.Hour),
		EndDate:         now.Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedGeo(t *testing.T, db *gorm.DB) (domain.Region, domain.Province, domain.District) {
	t.Helper()

	region := domain.Region{ID: "NORTH", Name: "North", NameTh: "ภาคเหนือ"}
	require.NoError(t, db.Create(&region).Error)

	province := domain.Province{ID: "chiang-mai", Code: 50, Name: "Chiang Mai", NameTh: "เชียงใหม่", RegionID: region.ID}
	require.NoError(t, db.Create(&province).Error)

	district := domain.District{ID: "chiang-mai-1", ProvinceID: province.ID, ZoneNumber: 1, Name: "Chiang Mai Zone 1", NameTh: "เชียงใหม่ เขต 1", VoterCount: 120000}
	require.NoError(t, db.Create(&district).Error)

	return region, province, district
}
