package cases

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestListCasesUsesCacheUntilWrite(t *testing.T) {
	f := newOrchestratorFixture()
	ctx := context.Background()

	first, err := f.uc.ListCases(ctx)
	require.NoError(t, err)
	second, err := f.uc.ListCases(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.cases.listCalls)

	_, err = f.uc.CreateCase(ctx, &entity.CreateCaseRequest{Name: "Another"})
	require.NoError(t, err)

	third, err := f.uc.ListCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.cases.listCalls)
	assert.Len(t, third, 4)
}

func TestListCasesDefaultFirstThenAlphabetical(t *testing.T) {
	f := newOrchestratorFixture()
	ctx := context.Background()

	_, err := f.uc.CreateCase(ctx, &entity.CreateCaseRequest{Name: "Aardvark"})
	require.NoError(t, err)

	list, err := f.uc.ListCases(ctx)
	require.NoError(t, err)

	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Arquitectura Mobile", "Eficiencia TI", "Estrategia Cloud", "Aardvark"}, names)
}

func TestListCasesFallsBackToStoreOnCacheError(t *testing.T) {
	f := newOrchestratorFixture()
	f.cache.getErr = errors.New("redis down")

	list, err := f.uc.ListCases(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCreateCaseDuplicateName(t *testing.T) {
	f := newOrchestratorFixture()

	_, err := f.uc.CreateCase(context.Background(), &entity.CreateCaseRequest{Name: "Eficiencia TI"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrCaseNameTaken))
}

func TestUpdateCasePartial(t *testing.T) {
	f := newOrchestratorFixture()

	updated, err := f.uc.UpdateCase(context.Background(), 1, &entity.UpdateCaseRequest{
		Objective: strPtr("new objective"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Estrategia Cloud", updated.Name)
	assert.Equal(t, "new objective", updated.Objective)
	assert.NotEmpty(t, updated.Description)
	assert.Equal(t, 1, f.cache.deletes)
}

func TestUpdateCaseKeepsOwnName(t *testing.T) {
	f := newOrchestratorFixture()

	_, err := f.uc.UpdateCase(context.Background(), 1, &entity.UpdateCaseRequest{
		Name: strPtr("Estrategia Cloud"),
	})
	assert.NoError(t, err)
}

func TestUpdateCaseNameCollision(t *testing.T) {
	f := newOrchestratorFixture()

	_, err := f.uc.UpdateCase(context.Background(), 1, &entity.UpdateCaseRequest{
		Name: strPtr("Eficiencia TI"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrCaseNameTaken))
}

func TestUpdateCaseNotFound(t *testing.T) {
	f := newOrchestratorFixture()

	_, err := f.uc.UpdateCase(context.Background(), 42, &entity.UpdateCaseRequest{Name: strPtr("x")})
	assert.True(t, errors.Is(err, entity.ErrCaseNotFound))
}

func TestGetQuestions(t *testing.T) {
	f := newOrchestratorFixture()
	f.questions.seed(2, 3)

	c, questions, err := f.uc.GetQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Eficiencia TI", c.Name)
	assert.Len(t, questions, 3)

	_, _, err = f.uc.GetQuestions(context.Background(), 9)
	assert.True(t, errors.Is(err, entity.ErrCaseNotFound))
}

func TestEnsureDefaultCases(t *testing.T) {
	f := newOrchestratorFixtureWith(newFakeCaseRepo())
	ctx := context.Background()

	created, err := f.uc.EnsureDefaultCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(defaultCases), created)

	again, err := f.uc.EnsureDefaultCases(ctx)
	require.NoError(t, err)
	assert.Zero(t, again, "seeding is skipped once cases exist")

	list, err := f.uc.ListCases(ctx)
	require.NoError(t, err)
	for _, c := range list {
		assert.True(t, c.IsDefault, c.Name)
	}
}
