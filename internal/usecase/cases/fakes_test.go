package cases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/cache"
)

var errStore = errors.New("store unavailable")

type fakeCaseRepo struct {
	mu     sync.Mutex
	nextID int64
	cases  map[int64]*entity.Case

	createCalls int
	listCalls   int
	getErr      error
}

func newFakeCaseRepo(cs ...entity.Case) *fakeCaseRepo {
	r := &fakeCaseRepo{cases: make(map[int64]*entity.Case)}
	for _, c := range cs {
		_, _ = r.Create(context.Background(), c)
	}
	r.createCalls = 0
	return r
}

func (r *fakeCaseRepo) Create(_ context.Context, c entity.Case) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	for _, existing := range r.cases {
		if existing.Name == c.Name {
			return nil, entity.ErrCaseNameTaken
		}
	}

	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.cases[c.ID] = &c

	out := c
	return &out, nil
}

func (r *fakeCaseRepo) Get(_ context.Context, id int64) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.cases[id]
	if !ok {
		return nil, entity.ErrCaseNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeCaseRepo) GetByName(_ context.Context, name string) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.cases {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, entity.ErrCaseNotFound
}

func (r *fakeCaseRepo) FindByNameSubstring(_ context.Context, fragment string) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.sorted() {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			out := *c
			return &out, nil
		}
	}
	return nil, entity.ErrCaseNotFound
}

func (r *fakeCaseRepo) First(_ context.Context) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.sorted()
	if len(all) == 0 {
		return nil, entity.ErrCaseNotFound
	}
	out := *all[0]
	return &out, nil
}

func (r *fakeCaseRepo) List(_ context.Context) ([]*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	all := r.sorted()
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].IsDefault != all[j].IsDefault {
			return all[i].IsDefault
		}
		return all[i].Name < all[j].Name
	})

	out := make([]*entity.Case, 0, len(all))
	for _, c := range all {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCaseRepo) Update(_ context.Context, c entity.Case) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cases[c.ID]; !ok {
		return nil, entity.ErrCaseNotFound
	}
	for _, existing := range r.cases {
		if existing.Name == c.Name && existing.ID != c.ID {
			return nil, entity.ErrCaseNameTaken
		}
	}
	c.UpdatedAt = time.Now()
	r.cases[c.ID] = &c

	out := c
	return &out, nil
}

func (r *fakeCaseRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.cases)), nil
}

// sorted returns cases by ascending id; callers hold mu
func (r *fakeCaseRepo) sorted() []*entity.Case {
	out := make([]*entity.Case, 0, len(r.cases))
	for _, c := range r.cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeQuestionRepo keeps questions newest first per case and applies the
// retention cap the same way the store does
type fakeQuestionRepo struct {
	nextID    int64
	questions map[int64][]*entity.Question

	listErr   error
	saveErr   error
	saveCalls     int
	lastCap       int
	lastBatchSize int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int64][]*entity.Question)}
}

func (r *fakeQuestionRepo) seed(caseID int64, n int) {
	for i := 0; i < n; i++ {
		r.nextID++
		q := &entity.Question{
			ID:       r.nextID,
			CaseID:   caseID,
			Question: "stored question",
			Type:     entity.QuestionTypeProcess,
		}
		r.questions[caseID] = append([]*entity.Question{q}, r.questions[caseID]...)
	}
}

func (r *fakeQuestionRepo) ListByCase(_ context.Context, caseID int64) ([]*entity.Question, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]*entity.Question(nil), r.questions[caseID]...), nil
}

func (r *fakeQuestionRepo) Get(_ context.Context, id int64) (*entity.Question, error) {
	for _, qs := range r.questions {
		for _, q := range qs {
			if q.ID == id {
				return q, nil
			}
		}
	}
	return nil, entity.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) SaveGeneratedBatch(_ context.Context, caseID int64, questions []entity.Question, retentionCap int) ([]*entity.Question, error) {
	r.saveCalls++
	r.lastCap = retentionCap
	r.lastBatchSize = len(questions)
	if r.saveErr != nil {
		return nil, r.saveErr
	}

	inserted := make([]*entity.Question, 0, len(questions))
	for _, q := range questions {
		r.nextID++
		q.ID = r.nextID
		q.CaseID = caseID
		cp := q
		inserted = append(inserted, &cp)
	}
	all := append(append([]*entity.Question(nil), inserted...), r.questions[caseID]...)

	// ids grow with insertion, so id DESC matches created_at DESC, id DESC
	ids := make([]int64, 0, len(all))
	for _, q := range all {
		ids = append(ids, q.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if len(ids) > retentionCap {
		ids = ids[:retentionCap]
	}
	kept := make(map[int64]bool, len(ids))
	for _, id := range ids {
		kept[id] = true
	}

	stored := make([]*entity.Question, 0, len(ids))
	for _, q := range all {
		if kept[q.ID] {
			stored = append(stored, q)
		}
	}
	r.questions[caseID] = stored

	saved := make([]*entity.Question, 0, len(inserted))
	for _, q := range inserted {
		if kept[q.ID] {
			saved = append(saved, q)
		}
	}
	return saved, nil
}

type fakeGenerator struct {
	configured bool
	set        *entity.GeneratedQuestionSet
	err        error
	calls      int
	lastReq    *entity.GenerateQuestionsRequest
}

func (g *fakeGenerator) Configured() bool {
	return g.configured
}

func (g *fakeGenerator) GenerateQuestions(_ context.Context, req *entity.GenerateQuestionsRequest) (*entity.GeneratedQuestionSet, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.set, nil
}

func generatedSet(n int) *entity.GeneratedQuestionSet {
	set := &entity.GeneratedQuestionSet{Model: "test-model"}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		set.Questions = append(set.Questions, entity.GeneratedQuestion{
			ID:       id,
			Question: "generated question " + id,
			Type:     string(entity.QuestionTypeProcess),
			Considerations: []entity.GeneratedConsideration{
				{ID: id + "-c1", Question: "first consideration"},
				{ID: id + "-c2", Question: "second consideration"},
			},
		})
	}
	return set
}

// stubCache is an in-memory cache.Cache that counts operations
type stubCache struct {
	store   map[string][]*entity.Case
	getErr  error
	deletes int
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string][]*entity.Case)}
}

func (s *stubCache) Get(_ context.Context, key string, dest any) error {
	if s.getErr != nil {
		return s.getErr
	}
	v, ok := s.store[key]
	if !ok {
		return cache.ErrMiss
	}
	*(dest.(*[]*entity.Case)) = v
	return nil
}

func (s *stubCache) Set(_ context.Context, key string, value any) error {
	s.store[key] = value.([]*entity.Case)
	return nil
}

func (s *stubCache) Delete(_ context.Context, keys ...string) error {
	s.deletes++
	for _, k := range keys {
		delete(s.store, k)
	}
	return nil
}
