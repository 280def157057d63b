package cases

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRepo() *fakeCaseRepo {
	return newFakeCaseRepo(defaultCases...)
}

func TestResolverByID(t *testing.T) {
	repo := seededRepo()
	r := NewDefaultResolver(repo)

	res, trail, err := r.Resolve(context.Background(), "2", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Case.ID)
	assert.Equal(t, StrategyByID, res.Strategy)
	assert.False(t, res.Created)
	require.Len(t, trail, 1)
	assert.Equal(t, "resolve_by_id", trail[0].Step)
	assert.Equal(t, entity.TrailStatusOK, trail[0].Status)
}

func TestResolverByExactName(t *testing.T) {
	r := NewDefaultResolver(seededRepo())

	res, trail, err := r.Resolve(context.Background(), "  Arquitectura Mobile ", nil)
	require.NoError(t, err)

	assert.Equal(t, "Arquitectura Mobile", res.Case.Name)
	assert.Equal(t, StrategyByExactName, res.Strategy)
	assert.Equal(t, []string{"resolve_by_id", "resolve_by_exact_name"}, trail.Steps())
	assert.Equal(t, entity.TrailStatusSkipped, trail[0].Status)
}

func TestResolverBySubstring(t *testing.T) {
	r := NewDefaultResolver(seededRepo())

	res, _, err := r.Resolve(context.Background(), "cloud", nil)
	require.NoError(t, err)

	assert.Equal(t, "Estrategia Cloud", res.Case.Name)
	assert.Equal(t, StrategyBySubstring, res.Strategy)
}

func TestResolverByKnownDefaultSlug(t *testing.T) {
	r := NewDefaultResolver(seededRepo())

	res, trail, err := r.Resolve(context.Background(), "eficiencia-ti", nil)
	require.NoError(t, err)

	assert.Equal(t, "Eficiencia TI", res.Case.Name)
	assert.Equal(t, StrategyByKnownDefault, res.Strategy)

	last, _ := trail.Last()
	assert.Equal(t, "resolve_by_known_default", last.Step)
}

func TestResolverFallsBackToFirstExisting(t *testing.T) {
	r := NewDefaultResolver(seededRepo())

	res, trail, err := r.Resolve(context.Background(), "999", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Case.ID)
	assert.Equal(t, StrategyByFirst, res.Strategy)
	assert.Equal(t, entity.TrailStatusMiss, trail[0].Status, "id lookup should miss")
	assert.False(t, res.Created)
}

func TestResolverCreatesCaseWhenStoreIsEmpty(t *testing.T) {
	repo := newFakeCaseRepo()
	r := NewDefaultResolver(repo)

	res, trail, err := r.Resolve(context.Background(), "Data Platform", nil)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "Data Platform", res.Case.Name)
	assert.Equal(t, 1, repo.createCalls)

	last, _ := trail.Last()
	assert.Equal(t, "resolve_by_create", last.Step)
	assert.Equal(t, entity.TrailStatusOK, last.Status)
}

func TestResolverEmptyIdentifierOnEmptyStore(t *testing.T) {
	r := NewDefaultResolver(newFakeCaseRepo())

	_, trail, err := r.Resolve(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrCaseNotFound))
	assert.Len(t, trail, 6)
}

func TestResolverStopsOnStoreError(t *testing.T) {
	repo := seededRepo()
	repo.getErr = errStore
	r := NewDefaultResolver(repo)

	_, trail, err := r.Resolve(context.Background(), "1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStore))
	assert.False(t, errors.Is(err, entity.ErrCaseNotFound))

	require.Len(t, trail, 1)
	assert.Equal(t, entity.TrailStatusFailed, trail[0].Status)
}

func TestByCreateReadsBackOnNameRace(t *testing.T) {
	repo := newFakeCaseRepo(entity.Case{Name: "Taken"})
	s := ByCreate(repo)

	c, err := s.Lookup(context.Background(), "Taken")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "estrategia cloud", slug("Estrategia_Cloud"))
	assert.Equal(t, "eficiencia ti", slug("  eficiencia--TI "))
}
