package interview

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/repository"
)

var errStore = errors.New("store unavailable")

// memDB backs the fake repositories of this package. Selection changes made
// inside InInterviewTx are applied to a copy and committed only when the
// callback succeeds.
type memDB struct {
	mu         sync.Mutex
	cases      map[int64]*entity.Case
	questions  map[int64]*entity.Question
	interviews map[int64]*entity.Interview
	selections map[int64]map[int64]entity.SelectedQuestion
	nextIvID   int64
	countErr   error
}

func newMemDB() *memDB {
	return &memDB{
		cases:      make(map[int64]*entity.Case),
		questions:  make(map[int64]*entity.Question),
		interviews: make(map[int64]*entity.Interview),
		selections: make(map[int64]map[int64]entity.SelectedQuestion),
	}
}

func (db *memDB) addCase(id int64, name string) {
	db.cases[id] = &entity.Case{ID: id, Name: name}
}

func (db *memDB) addQuestion(id, caseID int64, considerationIDs ...string) {
	md := entity.QuestionMetadata{}
	for _, cid := range considerationIDs {
		md.Considerations = append(md.Considerations, entity.Consideration{ID: cid, Question: "consideration " + cid})
	}
	db.questions[id] = &entity.Question{
		ID:       id,
		CaseID:   caseID,
		Question: "question",
		Type:     entity.QuestionTypeProcess,
		Metadata: md,
	}
}

func (db *memDB) addInterview(id, caseID int64) {
	db.interviews[id] = &entity.Interview{
		ID:            id,
		InterviewCode: "E2601-0001",
		CaseID:        caseID,
		InterviewDate: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	if id > db.nextIvID {
		db.nextIvID = id
	}
}

// orderOf returns question ids of an interview by ascending order
func (db *memDB) orderOf(interviewID int64) []int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows := sortedSelections(db.selections[interviewID])
	ids := make([]int64, len(rows))
	for i, s := range rows {
		ids[i] = s.QuestionID
	}
	return ids
}

func sortedSelections(m map[int64]entity.SelectedQuestion) []entity.SelectedQuestion {
	out := make([]entity.SelectedQuestion, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

type fakeCaseRepo struct{ db *memDB }

func (r *fakeCaseRepo) Create(_ context.Context, c entity.Case) (*entity.Case, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeCaseRepo) Get(_ context.Context, id int64) (*entity.Case, error) {
	c, ok := r.db.cases[id]
	if !ok {
		return nil, entity.ErrCaseNotFound
	}
	return c, nil
}

func (r *fakeCaseRepo) GetByName(_ context.Context, name string) (*entity.Case, error) {
	return nil, entity.ErrCaseNotFound
}

func (r *fakeCaseRepo) FindByNameSubstring(_ context.Context, fragment string) (*entity.Case, error) {
	return nil, entity.ErrCaseNotFound
}

func (r *fakeCaseRepo) First(_ context.Context) (*entity.Case, error) {
	return nil, entity.ErrCaseNotFound
}

func (r *fakeCaseRepo) List(_ context.Context) ([]*entity.Case, error) {
	out := make([]*entity.Case, 0, len(r.db.cases))
	for _, c := range r.db.cases {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCaseRepo) Update(_ context.Context, c entity.Case) (*entity.Case, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeCaseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.db.cases)), nil
}

type fakeQuestionRepo struct{ db *memDB }

func (r *fakeQuestionRepo) ListByCase(_ context.Context, caseID int64) ([]*entity.Question, error) {
	var out []*entity.Question
	for _, q := range r.db.questions {
		if q.CaseID == caseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Get(_ context.Context, id int64) (*entity.Question, error) {
	q, ok := r.db.questions[id]
	if !ok {
		return nil, entity.ErrQuestionNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) SaveGeneratedBatch(context.Context, int64, []entity.Question, int) ([]*entity.Question, error) {
	return nil, errors.New("not implemented")
}

type fakeInterviewRepo struct {
	db          *memDB
	createCalls int
}

func (r *fakeInterviewRepo) Create(_ context.Context, iv entity.Interview) (*entity.Interview, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.createCalls++
	for _, existing := range r.db.interviews {
		if existing.InterviewCode == iv.InterviewCode {
			return nil, entity.ErrInterviewCodeTaken
		}
	}

	r.db.nextIvID++
	iv.ID = r.db.nextIvID
	iv.CreatedAt = time.Now()
	iv.UpdatedAt = iv.CreatedAt
	r.db.interviews[iv.ID] = &iv

	out := iv
	return &out, nil
}

func (r *fakeInterviewRepo) Get(_ context.Context, id int64) (*entity.Interview, error) {
	iv, ok := r.db.interviews[id]
	if !ok {
		return nil, entity.ErrInterviewNotFound
	}
	out := *iv
	return &out, nil
}

func (r *fakeInterviewRepo) List(_ context.Context) ([]*entity.Interview, error) {
	out := make([]*entity.Interview, 0, len(r.db.interviews))
	for _, iv := range r.db.interviews {
		cp := *iv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeInterviewRepo) Count(_ context.Context) (int64, error) {
	if r.db.countErr != nil {
		return 0, r.db.countErr
	}
	return int64(len(r.db.interviews)), nil
}

func (r *fakeInterviewRepo) ListSelections(_ context.Context, ids []int64) (map[int64][]entity.SelectedQuestionWithQuestion, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make(map[int64][]entity.SelectedQuestionWithQuestion, len(ids))
	for _, id := range ids {
		for _, s := range sortedSelections(r.db.selections[id]) {
			out[id] = append(out[id], entity.SelectedQuestionWithQuestion{
				Selection: s,
				Question:  *r.db.questions[s.QuestionID],
			})
		}
	}
	return out, nil
}

type fakeSelectionRepo struct {
	db *memDB
	// failAfter makes the callback's store return errStore on the n-th
	// mutating call, to check that partial work is rolled back
	failAfter int
}

func (r *fakeSelectionRepo) InInterviewTx(ctx context.Context, interviewID int64, fn func(ctx context.Context, store repository.SelectionStore) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	iv, ok := r.db.interviews[interviewID]
	if !ok {
		return entity.ErrInterviewNotFound
	}

	working := make(map[int64]entity.SelectedQuestion, len(r.db.selections[interviewID]))
	for k, v := range r.db.selections[interviewID] {
		working[k] = v
	}

	store := &fakeTxStore{interview: *iv, rows: working, failAfter: r.failAfter}
	if err := fn(ctx, store); err != nil {
		return err
	}

	r.db.selections[interviewID] = working
	return nil
}

type fakeTxStore struct {
	interview entity.Interview
	rows      map[int64]entity.SelectedQuestion
	writes    int
	failAfter int
}

func (s *fakeTxStore) write() error {
	s.writes++
	if s.failAfter > 0 && s.writes >= s.failAfter {
		return errStore
	}
	return nil
}

func (s *fakeTxStore) Interview() entity.Interview {
	return s.interview
}

func (s *fakeTxStore) Find(_ context.Context, questionID int64) (*entity.SelectedQuestion, error) {
	sel, ok := s.rows[questionID]
	if !ok {
		return nil, entity.ErrSelectionNotFound
	}
	return &sel, nil
}

func (s *fakeTxStore) Count(_ context.Context) (int, error) {
	return len(s.rows), nil
}

func (s *fakeTxStore) Insert(_ context.Context, sel entity.SelectedQuestion) (*entity.SelectedQuestion, error) {
	if err := s.write(); err != nil {
		return nil, err
	}
	sel.InterviewID = s.interview.ID
	if sel.Metadata.SelectedConsiderations == nil {
		sel.Metadata.SelectedConsiderations = []string{}
	}
	s.rows[sel.QuestionID] = sel
	return &sel, nil
}

func (s *fakeTxStore) Delete(_ context.Context, questionID int64) error {
	if _, ok := s.rows[questionID]; !ok {
		return entity.ErrSelectionNotFound
	}
	if err := s.write(); err != nil {
		return err
	}
	delete(s.rows, questionID)
	return nil
}

func (s *fakeTxStore) Repack(_ context.Context) error {
	if err := s.write(); err != nil {
		return err
	}
	for i, sel := range sortedSelections(s.rows) {
		sel.Order = i + 1
		s.rows[sel.QuestionID] = sel
	}
	return nil
}

func (s *fakeTxStore) UpdateMetadata(_ context.Context, questionID int64, md entity.SelectionMetadata) (*entity.SelectedQuestion, error) {
	sel, ok := s.rows[questionID]
	if !ok {
		return nil, entity.ErrSelectionNotFound
	}
	if err := s.write(); err != nil {
		return nil, err
	}
	sel.Metadata = md
	s.rows[questionID] = sel
	return &sel, nil
}
