// Package electionmgmt covers the administrative side of an election: the
// election record itself plus the parties, candidates and referendum
// questions registered under it. Reads are open; every write goes through
// the permission table, and candidate writes additionally through the
// geographic scope check.
package electionmgmt

import (
	"context"
	"fmt"
	"time"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type Service struct {
	elections  domain.ElectionRepository
	parties    domain.PartyRepository
	candidates domain.CandidateRepository
	questions  domain.QuestionRepository
	geo        domain.GeoRepository
	ids        *ids.Generator
}

func NewService(
	elections domain.ElectionRepository,
	parties domain.PartyRepository,
	candidates domain.CandidateRepository,
	questions domain.QuestionRepository,
	geo domain.GeoRepository,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		questions:  questions,
		geo:        geo,
		ids:        idsGen,
	}
}

// ElectionInput is the mutable part of an election record. Ballot-type flags
// are frozen together with the rest once the election leaves DRAFT.
type ElectionInput struct {
	Name            string    `json:"name"`
	NameTh          string    `json:"nameTh"`
	Description     string    `json:"description"`
	HasPartyList    bool      `json:"hasPartyList"`
	HasConstituency bool      `json:"hasConstituency"`
	HasReferendum   bool      `json:"hasReferendum"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
}

func (in ElectionInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: election name is required", domain.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if !in.EndDate.After(in.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}
	if !in.HasPartyList && !in.HasConstituency && !in.HasReferendum {
		return fmt.Errorf("%w: election must enable at least one ballot type", domain.ErrValidation)
	}
	return nil
}

func (s *Service) ListElections(ctx context.Context, status *domain.ElectionStatus) ([]domain.Election, error) {
	return s.elections.List(ctx, status)
}

func (s *Service) GetElection(ctx context.Context, id domain.ElectionID) (domain.Election, error) {
	return s.elections.FindByID(ctx, id)
}

func (s *Service) CreateElection(ctx context.Context, actor domain.User, in ElectionInput) (domain.Election, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionCreate) {
		return domain.Election{}, fmt.Errorf("%w: role %s may not create elections", domain.ErrForbidden, actor.Role)
	}
	if err := in.validate(); err != nil {
		return domain.Election{}, err
	}

	election := domain.Election{
		ID:              domain.ElectionID(s.ids.New()),
		Name:            in.Name,
		NameTh:          in.NameTh,
		Description:     in.Description,
		Status:          domain.ElectionDraft,
		HasPartyList:    in.HasPartyList,
		HasConstituency: in.HasConstituency,
		HasReferendum:   in.HasReferendum,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
	}
	if err := s.elections.Create(ctx, election); err != nil {
		return domain.Election{}, err
	}
	return election, nil
}

// UpdateElection rewrites the descriptive fields of an election. Status is
// not touched here; TransitionStatus is the only way to move it.
func (s *Service) UpdateElection(ctx context.Context, actor domain.User, id domain.ElectionID, in ElectionInput) (domain.Election, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionUpdate) {
		return domain.Election{}, fmt.Errorf("%w: role %s may not update elections", domain.ErrForbidden, actor.Role)
	}
	if err := in.validate(); err != nil {
		return domain.Election{}, err
	}

	election, err := s.elections.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, err
	}
	election.Name = in.Name
	election.NameTh = in.NameTh
	election.Description = in.Description
	election.HasPartyList = in.HasPartyList
	election.HasConstituency = in.HasConstituency
	election.HasReferendum = in.HasReferendum
	election.StartDate = in.StartDate
	election.EndDate = in.EndDate

	if err := s.elections.Update(ctx, election); err != nil {
		return domain.Election{}, err
	}
	return election, nil
}

// statusOrder pins the one legal lifecycle: DRAFT, OPEN, CLOSED, ARCHIVED.
var statusOrder = map[domain.ElectionStatus]int{
	domain.ElectionDraft:    0,
	domain.ElectionOpen:     1,
	domain.ElectionClosed:   2,
	domain.ElectionArchived: 3,
}

// TransitionStatus advances an election exactly one step along the
// lifecycle. Skipping a step or moving backwards is rejected.
func (s *Service) TransitionStatus(ctx context.Context, actor domain.User, id domain.ElectionID, next domain.ElectionStatus) (domain.Election, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionManageStatus) {
		return domain.Election{}, fmt.Errorf("%w: role %s may not manage election status", domain.ErrForbidden, actor.Role)
	}
	nextOrder, ok := statusOrder[next]
	if !ok {
		return domain.Election{}, fmt.Errorf("%w: unknown election status %q", domain.ErrValidation, next)
	}

	election, err := s.elections.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, err
	}
	if nextOrder != statusOrder[election.Status]+1 {
		return domain.Election{}, fmt.Errorf("%w: cannot move election from %s to %s", domain.ErrInvalidState, election.Status, next)
	}

	election.Status = next
	if err := s.elections.Update(ctx, election); err != nil {
		return domain.Election{}, err
	}
	return election, nil
}

// DeleteElection removes a DRAFT election. Anything that has opened stays on
// record forever; ARCHIVED is the terminal state for it.
func (s *Service) DeleteElection(ctx context.Context, actor domain.User, id domain.ElectionID) error {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionDelete) {
		return fmt.Errorf("%w: role %s may not delete elections", domain.ErrForbidden, actor.Role)
	}
	election, err := s.elections.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if election.Status != domain.ElectionDraft {
		return fmt.Errorf("%w: only draft elections can be deleted", domain.ErrInvalidState)
	}
	return s.elections.Delete(ctx, id)
}

// PartyInput registers or rewrites a party inside one election.
type PartyInput struct {
	ElectionID  domain.ElectionID `json:"electionId"`
	PartyNumber int               `json:"partyNumber"`
	Name        string            `json:"name"`
	NameTh      string            `json:"nameTh"`
	Color       string            `json:"color"`
	LogoURL     string            `json:"logoUrl"`
}

func (s *Service) ListParties(ctx context.Context, electionID domain.ElectionID) ([]domain.Party, error) {
	return s.parties.ListByElection(ctx, electionID)
}

func (s *Service) CreateParty(ctx context.Context, actor domain.User, in PartyInput) (domain.Party, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermPartyCreate) {
		return domain.Party{}, fmt.Errorf("%w: role %s may not create parties", domain.ErrForbidden, actor.Role)
	}
	if in.ElectionID == "" || in.Name == "" {
		return domain.Party{}, fmt.Errorf("%w: election id and party name are required", domain.ErrValidation)
	}
	if in.PartyNumber <= 0 {
		return domain.Party{}, fmt.Errorf("%w: party number must be positive", domain.ErrValidation)
	}
	if _, err := s.elections.FindByID(ctx, in.ElectionID); err != nil {
		return domain.Party{}, err
	}

	party := domain.Party{
		ID:          domain.PartyID(s.ids.New()),
		ElectionID:  in.ElectionID,
		PartyNumber: in.PartyNumber,
		Name:        in.Name,
		NameTh:      in.NameTh,
		Color:       in.Color,
		LogoURL:     in.LogoURL,
	}
	if err := s.parties.Create(ctx, party); err != nil {
		return domain.Party{}, err
	}
	return party, nil
}

// UpdateParty rewrites the descriptive fields of a party. The election and
// the ballot number are fixed at registration.
func (s *Service) UpdateParty(ctx context.Context, actor domain.User, id domain.PartyID, in PartyInput) (domain.Party, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermPartyUpdate) {
		return domain.Party{}, fmt.Errorf("%w: role %s may not update parties", domain.ErrForbidden, actor.Role)
	}
	if in.Name == "" {
		return domain.Party{}, fmt.Errorf("%w: party name is required", domain.ErrValidation)
	}

	party, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return domain.Party{}, err
	}
	party.Name = in.Name
	party.NameTh = in.NameTh
	party.Color = in.Color
	party.LogoURL = in.LogoURL

	if err := s.parties.Update(ctx, party); err != nil {
		return domain.Party{}, err
	}
	return party, nil
}

func (s *Service) DeleteParty(ctx context.Context, actor domain.User, id domain.PartyID) error {
	if !rbac.HasPermission(actor.Role, rbac.PermPartyDelete) {
		return fmt.Errorf("%w: role %s may not delete parties", domain.ErrForbidden, actor.Role)
	}
	return s.parties.Delete(ctx, id)
}

// QuestionInput registers a referendum question inside one election.
type QuestionInput struct {
	ElectionID     domain.ElectionID `json:"electionId"`
	QuestionNumber int               `json:"questionNumber"`
	QuestionText   string            `json:"questionText"`
}

func (s *Service) ListQuestions(ctx context.Context, electionID domain.ElectionID) ([]domain.ReferendumQuestion, error) {
	return s.questions.ListByElection(ctx, electionID)
}

// CreateQuestion gates on election update permission: questions are part of
// the election definition and have no permission entries of their own.
func (s *Service) CreateQuestion(ctx context.Context, actor domain.User, in QuestionInput) (domain.ReferendumQuestion, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionUpdate) {
		return domain.ReferendumQuestion{}, fmt.Errorf("%w: role %s may not manage referendum questions", domain.ErrForbidden, actor.Role)
	}
	if in.ElectionID == "" || in.QuestionText == "" {
		return domain.ReferendumQuestion{}, fmt.Errorf("%w: election id and question text are required", domain.ErrValidation)
	}
	if in.QuestionNumber <= 0 {
		return domain.ReferendumQuestion{}, fmt.Errorf("%w: question number must be positive", domain.ErrValidation)
	}
	election, err := s.elections.FindByID(ctx, in.ElectionID)
	if err != nil {
		return domain.ReferendumQuestion{}, err
	}
	if !election.HasReferendum {
		return domain.ReferendumQuestion{}, fmt.Errorf("%w: election has no referendum ballot", domain.ErrValidation)
	}

	question := domain.ReferendumQuestion{
		ID:             domain.QuestionID(s.ids.New()),
		ElectionID:     in.ElectionID,
		QuestionNumber: in.QuestionNumber,
		QuestionText:   in.QuestionText,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return domain.ReferendumQuestion{}, err
	}
	return question, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, actor domain.User, id domain.QuestionID) error {
	if !rbac.HasPermission(actor.Role, rbac.PermElectionUpdate) {
		return fmt.Errorf("%w: role %s may not manage referendum questions", domain.ErrForbidden, actor.Role)
	}
	return s.questions.Delete(ctx, id)
}

// CandidateInput registers or rewrites a candidate in one district of one
// election. PartyID nil means unaffiliated.
type CandidateInput struct {
	ElectionID      domain.ElectionID `json:"electionId"`
	DistrictID      domain.DistrictID `json:"districtId"`
	PartyID         *domain.PartyID   `json:"partyId"`
	CandidateNumber int               `json:"candidateNumber"`
	TitleTh         string            `json:"titleTh"`
	FirstNameTh     string            `json:"firstNameTh"`
	LastNameTh      string            `json:"lastNameTh"`
	PhotoURL        string            `json:"photoUrl"`
}

func (s *Service) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	return s.candidates.List(ctx, filter)
}

func (s *Service) GetCandidate(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	return s.candidates.FindByID(ctx, id)
}

// CreateCandidate requires both the candidate permission and geographic
// authority over the district, so a province admin can only register
// candidates inside their own province.
func (s *Service) CreateCandidate(ctx context.Context, actor domain.User, in CandidateInput) (domain.Candidate, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermCandidateCreate) {
		return domain.Candidate{}, fmt.Errorf("%w: role %s may not create candidates", domain.ErrForbidden, actor.Role)
	}
	if in.ElectionID == "" || in.DistrictID == "" {
		return domain.Candidate{}, fmt.Errorf("%w: election id and district id are required", domain.ErrValidation)
	}
	if in.FirstNameTh == "" || in.LastNameTh == "" {
		return domain.Candidate{}, fmt.Errorf("%w: candidate name is required", domain.ErrValidation)
	}
	if in.CandidateNumber <= 0 {
		return domain.Candidate{}, fmt.Errorf("%w: candidate number must be positive", domain.ErrValidation)
	}
	if err := s.authorizeDistrict(ctx, actor, in.DistrictID); err != nil {
		return domain.Candidate{}, err
	}
	if _, err := s.elections.FindByID(ctx, in.ElectionID); err != nil {
		return domain.Candidate{}, err
	}
	if err := s.checkPartyElection(ctx, in.PartyID, in.ElectionID); err != nil {
		return domain.Candidate{}, err
	}

	candidate := domain.Candidate{
		ID:              domain.CandidateID(s.ids.New()),
		ElectionID:      in.ElectionID,
		DistrictID:      in.DistrictID,
		PartyID:         in.PartyID,
		CandidateNumber: in.CandidateNumber,
		TitleTh:         in.TitleTh,
		FirstNameTh:     in.FirstNameTh,
		LastNameTh:      in.LastNameTh,
		PhotoURL:        in.PhotoURL,
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return domain.Candidate{}, err
	}
	return candidate, nil
}

// UpdateCandidate rewrites the descriptive fields and party affiliation. The
// election, district and ballot number are fixed at registration; the scope
// check runs against the stored district, not a caller-supplied one.
func (s *Service) UpdateCandidate(ctx context.Context, actor domain.User, id domain.CandidateID, in CandidateInput) (domain.Candidate, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermCandidateUpdate) {
		return domain.Candidate{}, fmt.Errorf("%w: role %s may not update candidates", domain.ErrForbidden, actor.Role)
	}
	if in.FirstNameTh == "" || in.LastNameTh == "" {
		return domain.Candidate{}, fmt.Errorf("%w: candidate name is required", domain.ErrValidation)
	}

	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, err
	}
	if err := s.authorizeDistrict(ctx, actor, candidate.DistrictID); err != nil {
		return domain.Candidate{}, err
	}
	if err := s.checkPartyElection(ctx, in.PartyID, candidate.ElectionID); err != nil {
		return domain.Candidate{}, err
	}

	candidate.PartyID = in.PartyID
	candidate.TitleTh = in.TitleTh
	candidate.FirstNameTh = in.FirstNameTh
	candidate.LastNameTh = in.LastNameTh
	candidate.PhotoURL = in.PhotoURL

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return domain.Candidate{}, err
	}
	return candidate, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, actor domain.User, id domain.CandidateID) error {
	if !rbac.HasPermission(actor.Role, rbac.PermCandidateDelete) {
		return fmt.Errorf("%w: role %s may not delete candidates", domain.ErrForbidden, actor.Role)
	}
	return s.candidates.Delete(ctx, id)
}

func (s *Service) authorizeDistrict(ctx context.Context, actor domain.User, districtID domain.DistrictID) error {
	ref, err := s.geo.ResolveDistrict(ctx, districtID)
	if err != nil {
		return err
	}
	if !rbac.CanAccessDistrict(actor.Role, actor.Scope(), string(ref.DistrictID), string(ref.ProvinceID), string(ref.RegionID)) {
		return fmt.Errorf("%w: district outside the caller's scope", domain.ErrForbidden)
	}
	return nil
}

// checkPartyElection rejects a party affiliation pointing at a party
// registered under a different election.
func (s *Service) checkPartyElection(ctx context.Context, partyID *domain.PartyID, electionID domain.ElectionID) error {
	if partyID == nil {
		return nil
	}
	party, err := s.parties.FindByID(ctx, *partyID)
	if err != nil {
		return err
	}
	if party.ElectionID != electionID {
		return fmt.Errorf("%w: party belongs to a different election", domain.ErrValidation)
	}
	return nil
}
