package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggle(questionID int64, selected bool) *entity.ToggleSelectionRequest {
	return &entity.ToggleSelectionRequest{QuestionID: questionID, Selected: &selected}
}

func toggleConsideration(questionID int64, cid string, selected bool) *entity.ToggleSelectionRequest {
	req := toggle(questionID, selected)
	req.ConsiderationID = &cid
	return req
}

// ledgerFixture has interview 1 on case 1 with questions 10..13, each with
// considerations c1 and c2, and question 20 on case 2
func ledgerFixture() *interviewFixture {
	f := newInterviewFixture()
	for id := int64(10); id <= 13; id++ {
		f.db.addQuestion(id, 1, "c1", "c2")
	}
	f.db.addQuestion(20, 2, "c1")
	f.db.addInterview(1, 1)
	return f
}

func TestSelectQuestionsAppendsInOrder(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	for i, qid := range []int64{12, 10, 11} {
		res, err := f.uc.ToggleSelection(ctx, 1, toggle(qid, true))
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, i+1, res.Order)
		assert.Equal(t, []string{}, res.SelectedConsiderations)
	}

	assert.Equal(t, []int64{12, 10, 11}, f.db.orderOf(1))
}

func TestSelectQuestionIsIdempotent(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	_, err := f.uc.ToggleSelection(ctx, 1, toggle(10, true))
	require.NoError(t, err)
	_, err = f.uc.ToggleSelection(ctx, 1, toggle(11, true))
	require.NoError(t, err)

	res, err := f.uc.ToggleSelection(ctx, 1, toggle(10, true))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 1, res.Order)
	assert.Equal(t, []int64{10, 11}, f.db.orderOf(1))
}

func TestDeselectQuestionRepacksOrder(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	for _, qid := range []int64{10, 11, 12, 13} {
		_, err := f.uc.ToggleSelection(ctx, 1, toggle(qid, true))
		require.NoError(t, err)
	}

	res, err := f.uc.ToggleSelection(ctx, 1, toggle(11, false))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Zero(t, res.Order)

	assert.Equal(t, []int64{10, 12, 13}, f.db.orderOf(1))
	rows := sortedSelections(f.db.selections[1])
	for i, row := range rows {
		assert.Equal(t, i+1, row.Order)
	}

	next, err := f.uc.ToggleSelection(ctx, 1, toggle(11, true))
	require.NoError(t, err)
	assert.Equal(t, 4, next.Order, "reselected question goes to the end")
}

func TestDeselectUnselectedQuestionIsNoop(t *testing.T) {
	f := ledgerFixture()

	res, err := f.uc.ToggleSelection(context.Background(), 1, toggle(10, false))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, []string{}, res.SelectedConsiderations)
	assert.Empty(t, f.db.orderOf(1))
}

func TestSelectConsiderationCreatesParent(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	_, err := f.uc.ToggleSelection(ctx, 1, toggle(11, true))
	require.NoError(t, err)

	res, err := f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c2", true))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 2, res.Order)
	assert.Equal(t, []string{"c2"}, res.SelectedConsiderations)

	res, err = f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c1", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, res.SelectedConsiderations)

	res, err = f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c1", true))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"c2", "c1"}, res.SelectedConsiderations)
}

func TestDeselectConsideration(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	_, err := f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c1", true))
	require.NoError(t, err)
	_, err = f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c2", true))
	require.NoError(t, err)

	res, err := f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c1", false))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Order)
	assert.Equal(t, []string{"c2"}, res.SelectedConsiderations)

	res, err = f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c2", false))
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.SelectedConsiderations)
	assert.Equal(t, []int64{10}, f.db.orderOf(1), "parent stays selected")
}

func TestDeselectConsiderationWithoutParentIsNoop(t *testing.T) {
	f := ledgerFixture()

	res, err := f.uc.ToggleSelection(context.Background(), 1, toggleConsideration(10, "c1", false))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.NotNil(t, res.SelectedConsiderations)
	assert.Empty(t, res.SelectedConsiderations)
	assert.Empty(t, f.db.orderOf(1))
}

func TestToggleUnknownConsideration(t *testing.T) {
	f := ledgerFixture()

	_, err := f.uc.ToggleSelection(context.Background(), 1, toggleConsideration(10, "c9", true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrUnknownConsideration))
	assert.Empty(t, f.db.orderOf(1))
}

func TestToggleQuestionFromOtherCase(t *testing.T) {
	f := ledgerFixture()

	_, err := f.uc.ToggleSelection(context.Background(), 1, toggle(20, true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrQuestionCaseMismatch))
}

func TestToggleMissingEntities(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	_, err := f.uc.ToggleSelection(ctx, 1, toggle(99, true))
	assert.True(t, errors.Is(err, entity.ErrQuestionNotFound))

	_, err = f.uc.ToggleSelection(ctx, 5, toggle(10, true))
	assert.True(t, errors.Is(err, entity.ErrInterviewNotFound))
}

func TestToggleRollsBackOnStoreFailure(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()

	for _, qid := range []int64{10, 11, 12} {
		_, err := f.uc.ToggleSelection(ctx, 1, toggle(qid, true))
		require.NoError(t, err)
	}

	// delete succeeds, repack fails
	f.selections.failAfter = 2
	_, err := f.uc.ToggleSelection(ctx, 1, toggle(10, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStore))

	assert.Equal(t, []int64{10, 11, 12}, f.db.orderOf(1))
}
