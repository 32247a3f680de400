package domain

import (
	"context"
	"time"
)

// DistrictRef resolves a district to the province and region it belongs to,
// which is everything the scope checks need.
type DistrictRef struct {
	DistrictID DistrictID
	ProvinceID ProvinceID
	RegionID   RegionID
}

// ReferendumCount is one (question, answer) bucket of the referendum tally.
type ReferendumCount struct {
	QuestionID QuestionID
	Answer     ReferendumAnswer
	Total      int64
}

type ElectionRepository interface {
	Create(ctx context.Context, e Election) error
	Update(ctx context.Context, e Election) error
	FindByID(ctx context.Context, id ElectionID) (Election, error)
	List(ctx context.Context, status *ElectionStatus) ([]Election, error)
	Delete(ctx context.Context, id ElectionID) error
}

type GeoRepository interface {
	ListRegions(ctx context.Context) ([]Region, error)
	ListProvinces(ctx context.Context, regionID *RegionID) ([]Province, error)
	FindProvince(ctx context.Context, id ProvinceID) (Province, error)
	ListDistricts(ctx context.Context, provinceID *ProvinceID, regionID *RegionID) ([]District, error)
	FindDistrict(ctx context.Context, id DistrictID) (District, error)
	ResolveDistrict(ctx context.Context, id DistrictID) (DistrictRef, error)
	DistrictIDsByProvince(ctx context.Context, provinceID ProvinceID) ([]DistrictID, error)
	DistrictIDsByRegion(ctx context.Context, regionID RegionID) ([]DistrictID, error)
	SumVoterCounts(ctx context.Context, provinceID *ProvinceID) (int64, error)
}

type PartyRepository interface {
	Create(ctx context.Context, p Party) error
	Update(ctx context.Context, p Party) error
	Delete(ctx context.Context, id PartyID) error
	FindByID(ctx context.Context, id PartyID) (Party, error)
	ListByElection(ctx context.Context, electionID ElectionID) ([]Party, error)
}

// CandidateFilter narrows candidate listings; nil fields are ignored.
type CandidateFilter struct {
	ElectionID *ElectionID
	DistrictID *DistrictID
	PartyID    *PartyID
}

type CandidateRepository interface {
	Create(ctx context.Context, c Candidate) error
	Update(ctx context.Context, c Candidate) error
	Delete(ctx context.Context, id CandidateID) error
	FindByID(ctx context.Context, id CandidateID) (Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, q ReferendumQuestion) error
	Delete(ctx context.Context, id QuestionID) error
	ListByElection(ctx context.Context, electionID ElectionID) ([]ReferendumQuestion, error)
}

type VoteRepository interface {
	// Cast persists the voter record and all ballots of one cast in a single
	// transaction. A duplicate voter record surfaces as ErrConflict and
	// leaves no partial write behind.
	Cast(ctx context.Context, record VoterRecord, votes []Vote) error
	FindByVoter(ctx context.Context, electionID ElectionID, voterHash string) ([]Vote, error)
	CountByParty(ctx context.Context, electionID ElectionID) (map[PartyID]int64, error)
	CountByCandidate(ctx context.Context, electionID ElectionID) (map[CandidateID]int64, error)
	CountReferendum(ctx context.Context, electionID ElectionID) ([]ReferendumCount, error)
}

// BatchFilter narrows batch listings. DistrictIDs nil means unrestricted;
// an empty non-nil slice matches nothing (a scoped user with no districts).
type BatchFilter struct {
	ElectionID  *ElectionID
	Status      *BatchStatus
	DistrictIDs []DistrictID
}

type BatchRepository interface {
	// Create inserts the batch with its nested count rows in one transaction
	// and returns ErrConflict when a PENDING batch already exists for the
	// same (election, district).
	Create(ctx context.Context, b *VoteBatch) error
	FindByID(ctx context.Context, id BatchID) (VoteBatch, error)
	SetStatus(ctx context.Context, id BatchID, status BatchStatus, actor UserID, reason string) error
	Delete(ctx context.Context, id BatchID) error
	List(ctx context.Context, filter BatchFilter) ([]VoteBatch, error)
}

type UserRepository interface {
	Create(ctx context.Context, u User) error
	FindByID(ctx context.Context, id UserID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByCitizenID(ctx context.Context, citizenID string) (User, error)
}

// Counter is a fast monotonic counter (Redis in production) used for cheap
// live totals; the vote ledger stays the source of truth.
type Counter interface {
	Increment(ctx context.Context, key string, delta int64) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

type Clock interface {
	Now() time.Time
}

// RateLimiter throttles repeated cast attempts; implementations return a
// typed error when the caller exceeded its window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) error
}

// CitizenInfo is what the external identity verifier returns for a valid
// citizen ID.
type CitizenInfo struct {
	CitizenID        string `json:"citizenId"`
	TitleTh          string `json:"titleTh"`
	FirstNameTh      string `json:"firstNameTh"`
	LastNameTh       string `json:"lastNameTh"`
	EligibleProvince string `json:"eligibleProvince"`
	EligibleZone     int    `json:"eligibleZone"`
}

// IdentityVerifier is the mock citizen-ID verification collaborator. ok is
// false when the ID is malformed or unknown.
type IdentityVerifier interface {
	Verify(citizenID string) (CitizenInfo, bool)
}

// ResultNotifier receives a signal after every committed vote-affecting
// mutation; the streaming hub implements it.
type ResultNotifier interface {
	NotifyVoteUpdate(electionID ElectionID)
}

// Ballot selection payloads for one cast.
type PartySelection struct {
	PartyID PartyID `json:"partyId"`
}

type ConstituencySelection struct {
	CandidateID CandidateID `json:"candidateId"`
}

type ReferendumSelection struct {
	QuestionID QuestionID       `json:"questionId"`
	Answer     ReferendumAnswer `json:"answer"`
}

type BallotSelections struct {
	Party        *PartySelection        `json:"partyVote,omitempty"`
	Constituency *ConstituencySelection `json:"constituencyVote,omitempty"`
	Referendum   []ReferendumSelection  `json:"referendumVotes,omitempty"`
}

// Count inputs of a batch submission.
type PartyCountInput struct {
	PartyID   PartyID `json:"partyId"`
	VoteCount int     `json:"voteCount"`
}

type CandidateCountInput struct {
	CandidateID CandidateID `json:"candidateId"`
	VoteCount   int         `json:"voteCount"`
}

type ReferendumCountInput struct {
	QuestionID      QuestionID `json:"questionId"`
	ApproveCount    int        `json:"approveCount"`
	DisapproveCount int        `json:"disapproveCount"`
	AbstainCount    int        `json:"abstainCount"`
}

type BatchSubmission struct {
	ElectionID        ElectionID             `json:"electionId"`
	DistrictID        DistrictID             `json:"districtId"`
	Notes             string                 `json:"notes"`
	PartyVotes        []PartyCountInput      `json:"partyVotes"`
	ConstituencyVotes []CandidateCountInput  `json:"constituencyVotes"`
	ReferendumVotes   []ReferendumCountInput `json:"referendumVotes"`
}

// Service interfaces consumed by the HTTP boundary.

type VotingService interface {
	CastBallot(ctx context.Context, citizenID string, electionID ElectionID, selections BallotSelections) ([]Receipt, error)
	Status(ctx context.Context, citizenID string, electionID ElectionID) (VoteStatus, error)
}

type BatchService interface {
	Submit(ctx context.Context, official User, in BatchSubmission) (VoteBatch, error)
	Approve(ctx context.Context, admin User, id BatchID) (VoteBatch, error)
	Reject(ctx context.Context, admin User, id BatchID, reason string) (VoteBatch, error)
	Delete(ctx context.Context, actor User, id BatchID) error
	Get(ctx context.Context, id BatchID) (VoteBatch, error)
	List(ctx context.Context, actor User, electionID *ElectionID, status *BatchStatus, districtID *DistrictID) ([]VoteBatch, error)
}

type ResultsService interface {
	Compute(ctx context.Context, electionID ElectionID) (ElectionResults, error)
	ByDistrict(ctx context.Context, electionID ElectionID, provinceID *ProvinceID) ([]DistrictResult, error)
	Snapshot(ctx context.Context, electionID ElectionID) (ResultSnapshot, error)
}
