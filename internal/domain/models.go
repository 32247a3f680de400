package domain

import (
	"time"

	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type (
	RegionID    string
	ProvinceID  string
	DistrictID  string
	ElectionID  string
	PartyID     string
	CandidateID string
	QuestionID  string
	VoteID      string
	BatchID     string
	UserID      string
)

type ElectionStatus string

const (
	ElectionDraft    ElectionStatus = "DRAFT"
	ElectionOpen     ElectionStatus = "OPEN"
	ElectionClosed   ElectionStatus = "CLOSED"
	ElectionArchived ElectionStatus = "ARCHIVED"
)

type BallotType string

const (
	BallotPartyList    BallotType = "PARTY_LIST"
	BallotConstituency BallotType = "CONSTITUENCY"
	BallotReferendum   BallotType = "REFERENDUM"
)

type ReferendumAnswer string

const (
	AnswerApprove    ReferendumAnswer = "APPROVE"
	AnswerDisapprove ReferendumAnswer = "DISAPPROVE"
	AnswerAbstain    ReferendumAnswer = "ABSTAIN"
)

type BatchStatus string

const (
	BatchPending  BatchStatus = "PENDING"
	BatchApproved BatchStatus = "APPROVED"
	BatchRejected BatchStatus = "REJECTED"
)

// Region is one of the fixed top-level zones of the country.
type Region struct {
	ID     RegionID `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name   string   `gorm:"column:name;type:text;not null" json:"name"`
	NameTh string   `gorm:"column:name_th;type:text;not null" json:"nameTh"`
}

type Province struct {
	ID       ProvinceID `gorm:"column:id;type:text;primaryKey" json:"id"`
	Code     int        `gorm:"column:code;not null" json:"code"`
	Name     string     `gorm:"column:name;type:text;not null" json:"name"`
	NameTh   string     `gorm:"column:name_th;type:text;not null" json:"nameTh"`
	RegionID RegionID   `gorm:"column:region_id;type:text;not null;index" json:"regionId"`
}

// District is a constituency zone inside a province. (provinceId, zoneNumber)
// identifies it uniquely; voterCount is the number of eligible voters and may
// be corrected administratively.
type District struct {
	ID         DistrictID `gorm:"column:id;type:text;primaryKey" json:"id"`
	ProvinceID ProvinceID `gorm:"column:province_id;type:text;not null;uniqueIndex:idx_districts_province_zone" json:"provinceId"`
	ZoneNumber int        `gorm:"column:zone_number;not null;uniqueIndex:idx_districts_province_zone" json:"zoneNumber"`
	Name       string     `gorm:"column:name;type:text;not null" json:"name"`
	NameTh     string     `gorm:"column:name_th;type:text" json:"nameTh"`
	VoterCount int        `gorm:"column:voter_count;not null;default:0" json:"voterCount"`
}

type Election struct {
	ID              ElectionID     `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	Name            string         `gorm:"column:name;type:text;not null" json:"name"`
	NameTh          string         `gorm:"column:name_th;type:text" json:"nameTh"`
	Description     string         `gorm:"column:description;type:text" json:"description"`
	Status          ElectionStatus `gorm:"column:status;type:text;not null;default:DRAFT" json:"status"`
	HasPartyList    bool           `gorm:"column:has_party_list;not null;default:true" json:"hasPartyList"`
	HasConstituency bool           `gorm:"column:has_constituency;not null;default:true" json:"hasConstituency"`
	HasReferendum   bool           `gorm:"column:has_referendum;not null;default:false" json:"hasReferendum"`
	StartDate       time.Time      `gorm:"column:start_date;not null" json:"startDate"`
	EndDate         time.Time      `gorm:"column:end_date;not null" json:"endDate"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type Party struct {
	ID          PartyID    `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	ElectionID  ElectionID `gorm:"column:election_id;type:char(26);not null;uniqueIndex:idx_parties_election_number" json:"electionId"`
	PartyNumber int        `gorm:"column:party_number;not null;uniqueIndex:idx_parties_election_number" json:"partyNumber"`
	Name        string     `gorm:"column:name;type:text;not null" json:"name"`
	NameTh      string     `gorm:"column:name_th;type:text" json:"nameTh"`
	Color       string     `gorm:"column:color;type:text" json:"color"`
	LogoURL     string     `gorm:"column:logo_url;type:text" json:"logoUrl"`
}

// Candidate runs in exactly one district of one election. PartyID is nil for
// unaffiliated candidates.
type Candidate struct {
	ID              CandidateID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	ElectionID      ElectionID  `gorm:"column:election_id;type:char(26);not null;uniqueIndex:idx_candidates_election_district_number" json:"electionId"`
	DistrictID      DistrictID  `gorm:"column:district_id;type:text;not null;uniqueIndex:idx_candidates_election_district_number" json:"districtId"`
	PartyID         *PartyID    `gorm:"column:party_id;type:char(26)" json:"partyId"`
	CandidateNumber int         `gorm:"column:candidate_number;not null;uniqueIndex:idx_candidates_election_district_number" json:"candidateNumber"`
	TitleTh         string      `gorm:"column:title_th;type:text" json:"titleTh"`
	FirstNameTh     string      `gorm:"column:first_name_th;type:text;not null" json:"firstNameTh"`
	LastNameTh      string      `gorm:"column:last_name_th;type:text;not null" json:"lastNameTh"`
	PhotoURL        string      `gorm:"column:photo_url;type:text" json:"photoUrl"`
}

type ReferendumQuestion struct {
	ID             QuestionID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	ElectionID     ElectionID `gorm:"column:election_id;type:char(26);not null;uniqueIndex:idx_questions_election_number" json:"electionId"`
	QuestionNumber int        `gorm:"column:question_number;not null;uniqueIndex:idx_questions_election_number" json:"questionNumber"`
	QuestionText   string     `gorm:"column:question_text;type:text;not null" json:"questionText"`
}

// Vote is one individual ballot. Exactly one of PartyID, CandidateID and the
// referendum pair is set, matching BallotType. Per-voter dedup lives on
// VoterRecord, not here: one cast may hold several referendum rows, one per
// question answered.
type Vote struct {
	ID                   VoteID            `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	ElectionID           ElectionID        `gorm:"column:election_id;type:char(26);not null;index:idx_votes_election_voter" json:"electionId"`
	BallotType           BallotType        `gorm:"column:ballot_type;type:text;not null" json:"ballotType"`
	VoterHash            string            `gorm:"column:voter_hash;type:char(64);not null;index:idx_votes_election_voter" json:"-"`
	PartyID              *PartyID          `gorm:"column:party_id;type:char(26);index" json:"partyId,omitempty"`
	CandidateID          *CandidateID      `gorm:"column:candidate_id;type:char(26);index" json:"candidateId,omitempty"`
	ReferendumQuestionID *QuestionID       `gorm:"column:referendum_question_id;type:char(26)" json:"referendumQuestionId,omitempty"`
	ReferendumAnswer     *ReferendumAnswer `gorm:"column:referendum_answer;type:text" json:"referendumAnswer,omitempty"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// VoterRecord marks that a voter hash has cast in an election. Its composite
// primary key on (voterHash, electionId) is what serializes concurrent casts
// by the same voter: the record is inserted in the same transaction as the
// ballots, so a second concurrent cast fails on the constraint instead of
// double-voting.
type VoterRecord struct {
	VoterHash  string     `gorm:"column:voter_hash;type:char(64);primaryKey" json:"-"`
	ElectionID ElectionID `gorm:"column:election_id;type:char(26);primaryKey" json:"electionId"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// VoteBatch is an aggregate count submission from a district official. Batches
// are a reporting channel parallel to the individual vote ledger; they are
// never folded into per-candidate tallies automatically.
type VoteBatch struct {
	ID                BatchID                 `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	ElectionID        ElectionID              `gorm:"column:election_id;type:char(26);not null;index" json:"electionId"`
	DistrictID        DistrictID              `gorm:"column:district_id;type:text;not null;index" json:"districtId"`
	SubmittedByID     UserID                  `gorm:"column:submitted_by_id;type:char(26);not null" json:"submittedById"`
	Status            BatchStatus             `gorm:"column:status;type:text;not null;default:PENDING" json:"status"`
	ApprovedByID      *UserID                 `gorm:"column:approved_by_id;type:char(26)" json:"approvedById,omitempty"`
	RejectionReason   string                  `gorm:"column:rejection_reason;type:text" json:"rejectionReason,omitempty"`
	Notes             string                  `gorm:"column:notes;type:text" json:"notes,omitempty"`
	TotalVotes        int                     `gorm:"column:total_votes;not null;default:0" json:"totalVotes"`
	PartyVotes        []BatchPartyVote        `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"partyVotes"`
	ConstituencyVotes []BatchConstituencyVote `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"constituencyVotes"`
	ReferendumVotes   []BatchReferendumVote   `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"referendumVotes"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type BatchPartyVote struct {
	ID        string  `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	BatchID   BatchID `gorm:"column:batch_id;type:char(26);not null;index" json:"batchId"`
	PartyID   PartyID `gorm:"column:party_id;type:char(26);not null" json:"partyId"`
	VoteCount int     `gorm:"column:vote_count;not null" json:"voteCount"`
}

type BatchConstituencyVote struct {
	ID          string      `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	BatchID     BatchID     `gorm:"column:batch_id;type:char(26);not null;index" json:"batchId"`
	CandidateID CandidateID `gorm:"column:candidate_id;type:char(26);not null" json:"candidateId"`
	VoteCount   int         `gorm:"column:vote_count;not null" json:"voteCount"`
}

type BatchReferendumVote struct {
	ID              string     `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	BatchID         BatchID    `gorm:"column:batch_id;type:char(26);not null;index" json:"batchId"`
	QuestionID      QuestionID `gorm:"column:question_id;type:char(26);not null" json:"questionId"`
	ApproveCount    int        `gorm:"column:approve_count;not null;default:0" json:"approveCount"`
	DisapproveCount int        `gorm:"column:disapprove_count;not null;default:0" json:"disapproveCount"`
	AbstainCount    int        `gorm:"column:abstain_count;not null;default:0" json:"abstainCount"`
}

// User covers both officials (email+password, role+scope) and voters
// (citizen ID, provisioned on first login through the identity verifier).
type User struct {
	ID              UserID      `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	CitizenID       *string     `gorm:"column:citizen_id;type:char(13);uniqueIndex" json:"citizenId,omitempty"`
	Email           *string     `gorm:"column:email;type:text;uniqueIndex" json:"email,omitempty"`
	PasswordHash    string      `gorm:"column:password_hash;type:text" json:"-"`
	Name            string      `gorm:"column:name;type:text;not null" json:"name"`
	Role            rbac.Role   `gorm:"column:role;type:text;not null" json:"role"`
	ScopeRegionID   *RegionID   `gorm:"column:scope_region_id;type:text" json:"scopeRegionId,omitempty"`
	ScopeProvinceID *ProvinceID `gorm:"column:scope_province_id;type:text" json:"scopeProvinceId,omitempty"`
	ScopeDistrictID *DistrictID `gorm:"column:scope_district_id;type:text" json:"scopeDistrictId,omitempty"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// Scope maps the stored optional scope columns to the tagged variant the rbac
// checks work with.
func (u User) Scope() rbac.Scope {
	switch u.Role {
	case rbac.RoleSuperAdmin:
		return rbac.Unconstrained()
	case rbac.RoleRegionalAdmin:
		if u.ScopeRegionID != nil {
			return rbac.RegionScope(string(*u.ScopeRegionID))
		}
	case rbac.RoleProvinceAdmin:
		if u.ScopeProvinceID != nil {
			return rbac.ProvinceScope(string(*u.ScopeProvinceID))
		}
	case rbac.RoleDistrictOfficial:
		if u.ScopeDistrictID != nil {
			return rbac.DistrictScope(string(*u.ScopeDistrictID))
		}
	}
	return rbac.NoScope()
}

func (Region) TableName() string             { return "regions" }
func (Province) TableName() string           { return "provinces" }
func (District) TableName() string           { return "districts" }
func (Election) TableName() string           { return "elections" }
func (Party) TableName() string              { return "parties" }
func (Candidate) TableName() string          { return "candidates" }
func (ReferendumQuestion) TableName() string { return "referendum_questions" }
func (Vote) TableName() string               { return "votes" }
func (VoterRecord) TableName() string        { return "voter_records" }
func (VoteBatch) TableName() string          { return "vote_batches" }
func (BatchPartyVote) TableName() string     { return "batch_party_votes" }
func (BatchConstituencyVote) TableName() string { return "batch_constituency_votes" }
func (BatchReferendumVote) TableName() string   { return "batch_referendum_votes" }
func (User) TableName() string { return "users" }
