// Package migrations holds the versioned schema applied at startup.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: nil db")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202609010001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
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
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"users",
					"batch_referendum_votes",
					"batch_constituency_votes",
					"batch_party_votes",
					"vote_batches",
					"voter_records",
					"votes",
					"referendum_questions",
					"candidates",
					"parties",
					"elections",
					"districts",
					"provinces",
					"regions",
				)
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: apply failed: %w", err)
	}

	return nil
}
