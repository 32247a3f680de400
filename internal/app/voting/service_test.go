package voting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/voterhash"
)

type serviceDependencies struct {
	elections  *inMemoryElectionRepo
	parties    *inMemoryPartyRepo
	candidates *inMemoryCandidateRepo
	questions  *inMemoryQuestionRepo
	votes      *inMemoryVoteRepo
	counter    *recordingCounter
	notifier   *recordingNotifier
	hasher     voterhash.Hasher
	clock      *staticClock
	idGen      *ids.Generator
	baseTime   time.Time
}

func newServiceDeps() serviceDependencies {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	return serviceDependencies{
		elections:  newInMemoryElectionRepo(),
		parties:    newInMemoryPartyRepo(),
		candidates: newInMemoryCandidateRepo(),
		questions:  newInMemoryQuestionRepo(),
		votes:      newInMemoryVoteRepo(),
		counter:    &recordingCounter{values: map[string]int64{}},
		notifier:   &recordingNotifier{},
		hasher:     voterhash.New("test-salt"),
		clock:      &staticClock{now: base},
		idGen:      ids.NewGenerator(),
		baseTime:   base,
	}
}

func (d serviceDependencies) service() *Service {
	return NewService(
		d.elections,
		d.parties,
		d.candidates,
		d.questions,
		d.votes,
		d.counter,
		nil,
		d.notifier,
		d.hasher,
		d.clock,
		d.idGen,
	)
}

func (d serviceDependencies) seedOpenElection(hasPartyList, hasConstituency, hasReferendum bool) domain.Election {
	e := domain.Election{
		ID:              domain.ElectionID(d.idGen.New()),
		Name:            "Test Election",
		Status:          domain.ElectionOpen,
		HasPartyList:    hasPartyList,
		HasConstituency: hasConstituency,
		HasReferendum:   hasReferendum,
		StartDate:       d.baseTime.Add(-time.Hour),
		EndDate:         d.baseTime.Add(24 * time.Hour),
	}
	d.elections.data[e.ID] = e
	return e
}

func (d serviceDependencies) seedParty(electionID domain.ElectionID, number int) domain.Party {
	p := domain.Party{ID: domain.PartyID(d.idGen.New()), ElectionID: electionID, PartyNumber: number, Name: "Party"}
	d.parties.data[p.ID] = p
	return p
}

func (d serviceDependencies) seedCandidate(electionID domain.ElectionID, districtID domain.DistrictID, number int) domain.Candidate {
	c := domain.Candidate{ID: domain.CandidateID(d.idGen.New()), ElectionID: electionID, DistrictID: districtID, CandidateNumber: number, FirstNameTh: "สมชาย", LastNameTh: "ใจดี"}
	d.candidates.data[c.ID] = c
	return c
}

func (d serviceDependencies) seedQuestion(electionID domain.ElectionID, number int) domain.ReferendumQuestion {
	q := domain.ReferendumQuestion{ID: domain.QuestionID(d.idGen.New()), ElectionID: electionID, QuestionNumber: number, QuestionText: "เห็นชอบหรือไม่"}
	d.questions.data[q.ID] = q
	return q
}

func TestCastBallot_AllThreeBallotTypes(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, true, true)
	party := deps.seedParty(election.ID, 1)
	candidate := deps.seedCandidate(election.ID, "p10-z1", 1)
	question := deps.seedQuestion(election.ID, 1)

	receipts, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Party:        &domain.PartySelection{PartyID: party.ID},
		Constituency: &domain.ConstituencySelection{CandidateID: candidate.ID},
		Referendum:   []domain.ReferendumSelection{{QuestionID: question.ID, Answer: domain.AnswerApprove}},
	})
	if err != nil {
		t.Fatalf("expected cast to succeed, got: %v", err)
	}

	if len(receipts) != 3 {
		t.Fatalf("expected 3 receipts, got %d", len(receipts))
	}
	for _, receipt := range receipts {
		if len(receipt.ConfirmationCode) != 8 {
			t.Fatalf("confirmation code should be 8 hex chars, got %q", receipt.ConfirmationCode)
		}
		if receipt.ConfirmationCode != strings.ToUpper(receipt.ConfirmationCode) {
			t.Fatalf("confirmation code should be upper-case hex, got %q", receipt.ConfirmationCode)
		}
		if !receipt.Timestamp.Equal(deps.baseTime) {
			t.Fatalf("receipt timestamp should come from the clock, got %v", receipt.Timestamp)
		}
	}

	if got := deps.votes.count(election.ID); got != 3 {
		t.Fatalf("expected 3 persisted votes, got %d", got)
	}
	if deps.counter.values["election:"+string(election.ID)+":votes"] != 3 {
		t.Fatalf("live counter should have been incremented by 3")
	}
}

func TestCastBallot_DisabledBallotTypeIsSilentlySkipped(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, false, false)
	party := deps.seedParty(election.ID, 1)
	candidate := deps.seedCandidate(election.ID, "p10-z1", 1)

	receipts, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Party:        &domain.PartySelection{PartyID: party.ID},
		Constituency: &domain.ConstituencySelection{CandidateID: candidate.ID},
	})
	if err != nil {
		t.Fatalf("expected cast to succeed, got: %v", err)
	}

	if len(receipts) != 1 {
		t.Fatalf("expected exactly 1 receipt, got %d", len(receipts))
	}
	if receipts[0].BallotType != domain.BallotPartyList {
		t.Fatalf("expected party-list receipt, got %s", receipts[0].BallotType)
	}
}

func TestCastBallot_SecondCastSameElection_ReturnsConflict(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, false, false)
	party := deps.seedParty(election.ID, 1)

	selections := domain.BallotSelections{Party: &domain.PartySelection{PartyID: party.ID}}

	if _, err := service.CastBallot(context.Background(), "1234567890123", election.ID, selections); err != nil {
		t.Fatalf("first cast should succeed: %v", err)
	}

	_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, selections)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second cast should conflict, got: %v", err)
	}

	if got := deps.votes.count(election.ID); got != 1 {
		t.Fatalf("only the first ballot may persist, got %d votes", got)
	}
}

func TestCastBallot_ConcurrentCastsSameVoter_ExactlyOneSucceeds(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, false, false)
	party := deps.seedParty(election.ID, 1)
	selections := domain.BallotSelections{Party: &domain.PartySelection{PartyID: party.ID}}

	const casters = 32
	errs := make(chan error, casters)

	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := 0; i < casters; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, selections)
			errs <- err
		}()
	}
	start.Done()
	done.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error from concurrent cast: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("exactly one cast may succeed, got %d", succeeded)
	}
	if conflicted != casters-1 {
		t.Fatalf("expected %d conflicts, got %d", casters-1, conflicted)
	}
	if got := deps.votes.count(election.ID); got != 1 {
		t.Fatalf("exactly one vote may persist, got %d", got)
	}
}

func TestCastBallot_ElectionNotOpen_ReturnsInvalidState(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, false, false)
	election.Status = domain.ElectionClosed
	deps.elections.data[election.ID] = election
	party := deps.seedParty(election.ID, 1)

	_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Party: &domain.PartySelection{PartyID: party.ID},
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got: %v", err)
	}
}

func TestCastBallot_NoUsableSelection_ReturnsValidation(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	// Constituency is the only selection but the election disabled it.
	election := deps.seedOpenElection(true, false, false)
	candidate := deps.seedCandidate(election.ID, "p10-z1", 1)

	_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Constituency: &domain.ConstituencySelection{CandidateID: candidate.ID},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestCastBallot_PartyFromAnotherElection_ReturnsValidation(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, false, false)
	other := deps.seedOpenElection(true, false, false)
	foreignParty := deps.seedParty(other.ID, 1)

	_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Party: &domain.PartySelection{PartyID: foreignParty.ID},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestCastBallot_MultipleReferendumQuestions_OneRowEach(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(false, false, true)
	q1 := deps.seedQuestion(election.ID, 1)
	q2 := deps.seedQuestion(election.ID, 2)

	receipts, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Referendum: []domain.ReferendumSelection{
			{QuestionID: q1.ID, Answer: domain.AnswerApprove},
			{QuestionID: q2.ID, Answer: domain.AnswerAbstain},
		},
	})
	if err != nil {
		t.Fatalf("expected cast to succeed, got: %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("expected one receipt per answered question, got %d", len(receipts))
	}
	if got := deps.votes.count(election.ID); got != 2 {
		t.Fatalf("expected 2 referendum rows, got %d", got)
	}
}

func TestCastBallot_DuplicateQuestionAnswer_ReturnsValidation(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(false, false, true)
	question := deps.seedQuestion(election.ID, 1)

	_, err := service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Referendum: []domain.ReferendumSelection{
			{QuestionID: question.ID, Answer: domain.AnswerApprove},
			{QuestionID: question.ID, Answer: domain.AnswerDisapprove},
		},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestStatus_ReportsCastBallotTypes(t *testing.T) {
	deps := newServiceDeps()
	service := deps.service()

	election := deps.seedOpenElection(true, true, false)
	party := deps.seedParty(election.ID, 1)
	candidate := deps.seedCandidate(election.ID, "p10-z1", 1)

	before, err := service.Status(context.Background(), "1234567890123", election.ID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if before.HasVoted {
		t.Fatal("voter has not cast yet")
	}

	_, err = service.CastBallot(context.Background(), "1234567890123", election.ID, domain.BallotSelections{
		Party:        &domain.PartySelection{PartyID: party.ID},
		Constituency: &domain.ConstituencySelection{CandidateID: candidate.ID},
	})
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	after, err := service.Status(context.Background(), "1234567890123", election.ID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !after.HasVoted {
		t.Fatal("expected hasVoted after cast")
	}
	if len(after.BallotTypes) != 2 {
		t.Fatalf("expected 2 ballot types, got %v", after.BallotTypes)
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

type inMemoryVoteRepo struct {
	mu      sync.Mutex
	records map[string]bool
	votes   []domain.Vote
}

func newInMemoryVoteRepo() *inMemoryVoteRepo {
	return &inMemoryVoteRepo{records: make(map[string]bool)}
}

func (r *inMemoryVoteRepo) Cast(_ context.Context, record domain.VoterRecord, votes []domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := record.VoterHash + "|" + string(record.ElectionID)
	if r.records[key] {
		return domain.ErrConflict
	}
	r.records[key] = true
	r.votes = append(r.votes, votes...)
	return nil
}

func (r *inMemoryVoteRepo) FindByVoter(_ context.Context, electionID domain.ElectionID, voterHash string) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Vote
	for _, v := range r.votes {
		if v.ElectionID == electionID && v.VoterHash == voterHash {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *inMemoryVoteRepo) CountByParty(_ context.Context, electionID domain.ElectionID) (map[domain.PartyID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := map[domain.PartyID]int64{}
	for _, v := range r.votes {
		if v.ElectionID == electionID && v.PartyID != nil {
			result[*v.PartyID]++
		}
	}
	return result, nil
}

func (r *inMemoryVoteRepo) CountByCandidate(_ context.Context, electionID domain.ElectionID) (map[domain.CandidateID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := map[domain.CandidateID]int64{}
	for _, v := range r.votes {
		if v.ElectionID == electionID && v.CandidateID != nil {
			result[*v.CandidateID]++
		}
	}
	return result, nil
}

func (r *inMemoryVoteRepo) CountReferendum(_ context.Context, electionID domain.ElectionID) ([]domain.ReferendumCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := map[domain.QuestionID]map[domain.ReferendumAnswer]int64{}
	for _, v := range r.votes {
		if v.ElectionID != electionID || v.ReferendumQuestionID == nil || v.ReferendumAnswer == nil {
			continue
		}
		if totals[*v.ReferendumQuestionID] == nil {
			totals[*v.ReferendumQuestionID] = map[domain.ReferendumAnswer]int64{}
		}
		totals[*v.ReferendumQuestionID][*v.ReferendumAnswer]++
	}
	var result []domain.ReferendumCount
	for questionID, answers := range totals {
		for answer, total := range answers {
			result = append(result, domain.ReferendumCount{QuestionID: questionID, Answer: answer, Total: total})
		}
	}
	return result, nil
}

func (r *inMemoryVoteRepo) count(electionID domain.ElectionID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.votes {
		if v.ElectionID == electionID {
			n++
		}
	}
	return n
}

type recordingCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func (c *recordingCounter) Increment(_ context.Context, key string, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] += delta
	return c.values[key], nil
}

func (c *recordingCounter) Get(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []domain.ElectionID
}

func (n *recordingNotifier) NotifyVoteUpdate(electionID domain.ElectionID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, electionID)
}

type staticClock struct {
	now time.Time
}

func (c *staticClock) Now() time.Time {
	return c.now
}
