package electionmgmt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type fixture struct {
	elections  *inMemoryElectionRepo
	parties    *inMemoryPartyRepo
	candidates *inMemoryCandidateRepo
	questions  *inMemoryQuestionRepo
	geo        *staticGeo
	service    *Service
	election   domain.Election
}

// The fixture geography: two districts in Chiang Mai (north region) and one
// in Phuket (south region).
func newFixture() *fixture {
	geo := &staticGeo{
		refs: map[domain.DistrictID]domain.DistrictRef{
			"p50-z1": {DistrictID: "p50-z1", ProvinceID: "p50", RegionID: "north"},
			"p50-z2": {DistrictID: "p50-z2", ProvinceID: "p50", RegionID: "north"},
			"p83-z1": {DistrictID: "p83-z1", ProvinceID: "p83", RegionID: "south"},
		},
	}

	elections := newInMemoryElectionRepo()
	election := domain.Election{
		ID:              "election-1",
		Name:            "General Election",
		Status:          domain.ElectionDraft,
		HasPartyList:    true,
		HasConstituency: true,
		HasReferendum:   true,
		StartDate:       time.Date(2570, 5, 1, 8, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2570, 5, 1, 17, 0, 0, 0, time.UTC),
	}
	elections.data[election.ID] = election

	parties := newInMemoryPartyRepo()
	candidates := newInMemoryCandidateRepo()
	questions := newInMemoryQuestionRepo()
	return &fixture{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		questions:  questions,
		geo:        geo,
		service:    NewService(elections, parties, candidates, questions, geo, ids.NewGenerator()),
		election:   election,
	}
}

func superAdmin(id string) domain.User {
	return domain.User{ID: domain.UserID(id), Role: rbac.RoleSuperAdmin}
}

func provinceAdmin(id string, provinceID domain.ProvinceID) domain.User {
	return domain.User{ID: domain.UserID(id), Role: rbac.RoleProvinceAdmin, ScopeProvinceID: &provinceID}
}

func regionalAdmin(id string, regionID domain.RegionID) domain.User {
	return domain.User{ID: domain.UserID(id), Role: rbac.RoleRegionalAdmin, ScopeRegionID: &regionID}
}

func districtOfficial(id string, districtID domain.DistrictID) domain.User {
	return domain.User{ID: domain.UserID(id), Role: rbac.RoleDistrictOfficial, ScopeDistrictID: &districtID}
}

func electionInput() ElectionInput {
	return ElectionInput{
		Name:            "Senate Election",
		NameTh:          "การเลือกตั้งสมาชิกวุฒิสภา",
		HasPartyList:    true,
		HasConstituency: true,
		StartDate:       time.Date(2570, 6, 1, 8, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2570, 6, 1, 17, 0, 0, 0, time.UTC),
	}
}

func TestCreateElection_StartsAsDraft(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateElection(context.Background(), superAdmin("admin-1"), electionInput())
	if err != nil {
		t.Fatalf("expected create to succeed, got: %v", err)
	}
	if created.Status != domain.ElectionDraft {
		t.Fatalf("new election must be DRAFT, got %s", created.Status)
	}
	if created.ID == "" {
		t.Fatalf("election id not assigned")
	}
	if _, err := f.service.GetElection(context.Background(), created.ID); err != nil {
		t.Fatalf("created election not persisted: %v", err)
	}
}

func TestCreateElection_NonSuperAdmin_ReturnsForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateElection(context.Background(), provinceAdmin("admin-1", "p50"), electionInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}
}

func TestCreateElection_InvalidInput_ReturnsValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ElectionInput)
	}{
		{"missing name", func(in *ElectionInput) { in.Name = "" }},
		{"end before start", func(in *ElectionInput) { in.EndDate = in.StartDate.Add(-time.Hour) }},
		{"no ballot types", func(in *ElectionInput) {
			in.HasPartyList, in.HasConstituency, in.HasReferendum = false, false, false
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := electionInput()
			tc.mutate(&in)

			_, err := f.service.CreateElection(context.Background(), superAdmin("admin-1"), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got: %v", err)
			}
		})
	}
}

func TestUpdateElection_DoesNotTouchStatus(t *testing.T) {
	f := newFixture()

	in := electionInput()
	in.Description = "moved to a new date"
	updated, err := f.service.UpdateElection(context.Background(), superAdmin("admin-1"), f.election.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Description != "moved to a new date" {
		t.Fatalf("description not updated, got %q", updated.Description)
	}
	if updated.Status != domain.ElectionDraft {
		t.Fatalf("update must leave status alone, got %s", updated.Status)
	}
}

func TestTransitionStatus_LinearOnly(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.ElectionStatus
		to      domain.ElectionStatus
		wantErr error
	}{
		{"draft to open", domain.ElectionDraft, domain.ElectionOpen, nil},
		{"open to closed", domain.ElectionOpen, domain.ElectionClosed, nil},
		{"closed to archived", domain.ElectionClosed, domain.ElectionArchived, nil},
		{"draft skips to closed", domain.ElectionDraft, domain.ElectionClosed, domain.ErrInvalidState},
		{"closed back to open", domain.ElectionClosed, domain.ElectionOpen, domain.ErrInvalidState},
		{"archived is terminal", domain.ElectionArchived, domain.ElectionArchived, domain.ErrInvalidState},
		{"unknown status", domain.ElectionDraft, domain.ElectionStatus("PAUSED"), domain.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			election := f.election
			election.Status = tc.from
			f.elections.data[election.ID] = election

			moved, err := f.service.TransitionStatus(context.Background(), superAdmin("admin-1"), election.ID, tc.to)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got: %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("transition failed: %v", err)
			}
			if moved.Status != tc.to {
				t.Fatalf("expected %s, got %s", tc.to, moved.Status)
			}
		})
	}
}

func TestDeleteElection_OnlyWhileDraft(t *testing.T) {
	f := newFixture()

	open := f.election
	open.ID = "election-open"
	open.Status = domain.ElectionOpen
	f.elections.data[open.ID] = open

	err := f.service.DeleteElection(context.Background(), superAdmin("admin-1"), open.ID)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("an opened election must not be deletable, got: %v", err)
	}

	if err := f.service.DeleteElection(context.Background(), superAdmin("admin-1"), f.election.ID); err != nil {
		t.Fatalf("draft delete failed: %v", err)
	}
	if _, err := f.service.GetElection(context.Background(), f.election.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("election should be gone, got: %v", err)
	}
}

func partyInput(electionID domain.ElectionID, number int) PartyInput {
	return PartyInput{
		ElectionID:  electionID,
		PartyNumber: number,
		Name:        "People First",
		NameTh:      "พรรคประชาชนต้องมาก่อน",
		Color:       "#E3242B",
	}
}

func TestCreateParty_DuplicateNumber_ReturnsConflict(t *testing.T) {
	f := newFixture()

	if _, err := f.service.CreateParty(context.Background(), superAdmin("admin-1"), partyInput(f.election.ID, 1)); err != nil {
		t.Fatalf("first party failed: %v", err)
	}
	_, err := f.service.CreateParty(context.Background(), superAdmin("admin-1"), partyInput(f.election.ID, 1))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on reused number, got: %v", err)
	}
}

func TestCreateParty_NonSuperAdmin_ReturnsForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateParty(context.Background(), regionalAdmin("admin-1", "north"), partyInput(f.election.ID, 1))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}
}

func TestCreateParty_InvalidNumber_ReturnsValidation(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateParty(context.Background(), superAdmin("admin-1"), partyInput(f.election.ID, 0))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestUpdateParty_KeepsElectionAndNumber(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateParty(context.Background(), superAdmin("admin-1"), partyInput(f.election.ID, 7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := partyInput("election-other", 99)
	in.Name = "Renamed"
	updated, err := f.service.UpdateParty(context.Background(), superAdmin("admin-1"), created.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated, got %q", updated.Name)
	}
	if updated.ElectionID != f.election.ID || updated.PartyNumber != 7 {
		t.Fatalf("election and number must be immutable, got %s #%d", updated.ElectionID, updated.PartyNumber)
	}
}

func TestCreateQuestion_RequiresReferendumBallot(t *testing.T) {
	f := newFixture()

	noRef := f.election
	noRef.ID = "election-no-ref"
	noRef.HasReferendum = false
	f.elections.data[noRef.ID] = noRef

	_, err := f.service.CreateQuestion(context.Background(), superAdmin("admin-1"), QuestionInput{
		ElectionID:     noRef.ID,
		QuestionNumber: 1,
		QuestionText:   "เห็นชอบหรือไม่",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}

	question, err := f.service.CreateQuestion(context.Background(), superAdmin("admin-1"), QuestionInput{
		ElectionID:     f.election.ID,
		QuestionNumber: 1,
		QuestionText:   "เห็นชอบหรือไม่",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if question.ID == "" {
		t.Fatalf("question id not assigned")
	}
}

func TestCreateQuestion_NonSuperAdmin_ReturnsForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateQuestion(context.Background(), regionalAdmin("admin-1", "north"), QuestionInput{
		ElectionID:     f.election.ID,
		QuestionNumber: 1,
		QuestionText:   "เห็นชอบหรือไม่",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}
}

func candidateInput(electionID domain.ElectionID, districtID domain.DistrictID) CandidateInput {
	return CandidateInput{
		ElectionID:      electionID,
		DistrictID:      districtID,
		CandidateNumber: 1,
		TitleTh:         "นาย",
		FirstNameTh:     "สมชาย",
		LastNameTh:      "ใจดี",
	}
}

func TestCreateCandidate_ScopeMatrix(t *testing.T) {
	cases := []struct {
		name    string
		actor   domain.User
		wantErr error
	}{
		{"super admin anywhere", superAdmin("admin-1"), nil},
		{"province admin own province", provinceAdmin("admin-2", "p50"), nil},
		{"province admin other province", provinceAdmin("admin-3", "p83"), domain.ErrForbidden},
		{"regional admin own region", regionalAdmin("admin-4", "north"), nil},
		{"regional admin other region", regionalAdmin("admin-5", "south"), domain.ErrForbidden},
		{"district official may not create", districtOfficial("official-1", "p50-z1"), domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			created, err := f.service.CreateCandidate(context.Background(), tc.actor, candidateInput(f.election.ID, "p50-z1"))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got: %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected create to succeed, got: %v", err)
			}
			if created.DistrictID != "p50-z1" {
				t.Fatalf("district not recorded, got %s", created.DistrictID)
			}
		})
	}
}

func TestCreateCandidate_PartyFromOtherElection_ReturnsValidation(t *testing.T) {
	f := newFixture()

	other := f.election
	other.ID = "election-other"
	f.elections.data[other.ID] = other
	party, err := f.service.CreateParty(context.Background(), superAdmin("admin-1"), partyInput(other.ID, 1))
	if err != nil {
		t.Fatalf("party create failed: %v", err)
	}

	in := candidateInput(f.election.ID, "p50-z1")
	in.PartyID = &party.ID
	_, err = f.service.CreateCandidate(context.Background(), superAdmin("admin-1"), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestUpdateCandidate_ScopeChecksStoredDistrict(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateCandidate(context.Background(), superAdmin("admin-1"), candidateInput(f.election.ID, "p83-z1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A north-province admin cannot touch a Phuket candidate even though the
	// input carries no district at all.
	in := candidateInput(f.election.ID, "p83-z1")
	in.FirstNameTh = "สมหญิง"
	_, err = f.service.UpdateCandidate(context.Background(), provinceAdmin("admin-2", "p50"), created.ID, in)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}

	updated, err := f.service.UpdateCandidate(context.Background(), provinceAdmin("admin-3", "p83"), created.ID, in)
	if err != nil {
		t.Fatalf("in-scope update failed: %v", err)
	}
	if updated.FirstNameTh != "สมหญิง" {
		t.Fatalf("name not updated, got %q", updated.FirstNameTh)
	}
	if updated.DistrictID != "p83-z1" {
		t.Fatalf("district must be immutable, got %s", updated.DistrictID)
	}
}

func TestDeleteCandidate_ProvinceAdmin_ReturnsForbidden(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateCandidate(context.Background(), superAdmin("admin-1"), candidateInput(f.election.ID, "p50-z1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = f.service.DeleteCandidate(context.Background(), provinceAdmin("admin-2", "p50"), created.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got: %v", err)
	}

	if err := f.service.DeleteCandidate(context.Background(), superAdmin("admin-1"), created.ID); err != nil {
		t.Fatalf("super admin delete failed: %v", err)
	}
}

// --- in-memory fakes ---

type inMemoryElectionRepo struct {
	mu   sync.Mutex
	data map[domain.ElectionID]domain.Election
}

func newInMemoryElectionRepo() *inMemoryElectionRepo {
	return &inMemoryElectionRepo{data: make(map[domain.ElectionID]domain.Election)}
}

func (r *inMemoryElectionRepo) Create(_ context.Context, e domain.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[e.ID] = e
	return nil
}

func (r *inMemoryElectionRepo) Update(_ context.Context, e domain.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[e.ID] = e
	return nil
}

func (r *inMemoryElectionRepo) FindByID(_ context.Context, id domain.ElectionID) (domain.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.data[id]
	if !ok {
		return domain.Election{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *inMemoryElectionRepo) List(_ context.Context, status *domain.ElectionStatus) ([]domain.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Election
	for _, e := range r.data {
		if status == nil || e.Status == *status {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *inMemoryElectionRepo) Delete(_ context.Context, id domain.ElectionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

type inMemoryPartyRepo struct {
	mu   sync.Mutex
	data map[domain.PartyID]domain.Party
}

func newInMemoryPartyRepo() *inMemoryPartyRepo {
	return &inMemoryPartyRepo{data: make(map[domain.PartyID]domain.Party)}
}

func (r *inMemoryPartyRepo) Create(_ context.Context, p domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.ElectionID == p.ElectionID && existing.PartyNumber == p.PartyNumber {
			return domain.ErrConflict
		}
	}
	r.data[p.ID] = p
	return nil
}

func (r *inMemoryPartyRepo) Update(_ context.Context, p domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[p.ID] = p
	return nil
}

func (r *inMemoryPartyRepo) Delete(_ context.Context, id domain.PartyID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryPartyRepo) FindByID(_ context.Context, id domain.PartyID) (domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return domain.Party{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *inMemoryPartyRepo) ListByElection(_ context.Context, electionID domain.ElectionID) ([]domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Party
	for _, p := range r.data {
		if p.ElectionID == electionID {
			result = append(result, p)
		}
	}
	return result, nil
}

type inMemoryCandidateRepo struct {
	mu   sync.Mutex
	data map[domain.CandidateID]domain.Candidate
}

func newInMemoryCandidateRepo() *inMemoryCandidateRepo {
	return &inMemoryCandidateRepo{data: make(map[domain.CandidateID]domain.Candidate)}
}

func (r *inMemoryCandidateRepo) Create(_ context.Context, c domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.ElectionID == c.ElectionID && existing.DistrictID == c.DistrictID && existing.CandidateNumber == c.CandidateNumber {
			return domain.ErrConflict
		}
	}
	r.data[c.ID] = c
	return nil
}

func (r *inMemoryCandidateRepo) Update(_ context.Context, c domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[c.ID] = c
	return nil
}

func (r *inMemoryCandidateRepo) Delete(_ context.Context, id domain.CandidateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryCandidateRepo) FindByID(_ context.Context, id domain.CandidateID) (domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return domain.Candidate{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *inMemoryCandidateRepo) List(_ context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Candidate
	for _, c := range r.data {
		if filter.ElectionID != nil && c.ElectionID != *filter.ElectionID {
			continue
		}
		if filter.DistrictID != nil && c.DistrictID != *filter.DistrictID {
			continue
		}
		if filter.PartyID != nil && (c.PartyID == nil || *c.PartyID != *filter.PartyID) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

type inMemoryQuestionRepo struct {
	mu   sync.Mutex
	data map[domain.QuestionID]domain.ReferendumQuestion
}

func newInMemoryQuestionRepo() *inMemoryQuestionRepo {
	return &inMemoryQuestionRepo{data: make(map[domain.QuestionID]domain.ReferendumQuestion)}
}

func (r *inMemoryQuestionRepo) Create(_ context.Context, q domain.ReferendumQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.ElectionID == q.ElectionID && existing.QuestionNumber == q.QuestionNumber {
			return domain.ErrConflict
		}
	}
	r.data[q.ID] = q
	return nil
}

func (r *inMemoryQuestionRepo) Delete(_ context.Context, id domain.QuestionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryQuestionRepo) ListByElection(_ context.Context, electionID domain.ElectionID) ([]domain.ReferendumQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ReferendumQuestion
	for _, q := range r.data {
		if q.ElectionID == electionID {
			result = append(result, q)
		}
	}
	return result, nil
}

// staticGeo serves district lookups from a fixed map.
type staticGeo struct {
	refs map[domain.DistrictID]domain.DistrictRef
}

func (g *staticGeo) ListRegions(context.Context) ([]domain.Region, error) { return nil, nil }

func (g *staticGeo) ListProvinces(context.Context, *domain.RegionID) ([]domain.Province, error) {
	return nil, nil
}

func (g *staticGeo) FindProvince(context.Context, domain.ProvinceID) (domain.Province, error) {
	return domain.Province{}, domain.ErrNotFound
}

func (g *staticGeo) ListDistricts(context.Context, *domain.ProvinceID, *domain.RegionID) ([]domain.District, error) {
	return nil, nil
}

func (g *staticGeo) FindDistrict(_ context.Context, id domain.DistrictID) (domain.District, error) {
	if _, ok := g.refs[id]; !ok {
		return domain.District{}, domain.ErrNotFound
	}
	return domain.District{ID: id}, nil
}

func (g *staticGeo) ResolveDistrict(_ context.Context, id domain.DistrictID) (domain.DistrictRef, error) {
	ref, ok := g.refs[id]
	if !ok {
		return domain.DistrictRef{}, domain.ErrNotFound
	}
	return ref, nil
}

func (g *staticGeo) DistrictIDsByProvince(_ context.Context, provinceID domain.ProvinceID) ([]domain.DistrictID, error) {
	var result []domain.DistrictID
	for id, ref := range g.refs {
		if ref.ProvinceID == provinceID {
			result = append(result, id)
		}
	}
	return result, nil
}

func (g *staticGeo) DistrictIDsByRegion(_ context.Context, regionID domain.RegionID) ([]domain.DistrictID, error) {
	var result []domain.DistrictID
	for id, ref := range g.refs {
		if ref.RegionID == regionID {
			result = append(result, id)
		}
	}
	return result, nil
}

func (g *staticGeo) SumVoterCounts(context.Context, *domain.ProvinceID) (int64, error) {
	return 0, nil
}
