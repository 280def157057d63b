package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ToggleSelection selects or deselects a question of the interview, or one
// of the question's considerations when req.ConsiderationID is set.
//
// Selected questions keep a dense 1..N order: a new selection is appended
// and a removal re-packs the rest. Selecting a consideration selects its
// parent first if needed; deselecting a consideration of an unselected
// question changes nothing.
func (uc *InterviewUsecase) ToggleSelection(
	ctx context.Context,
	interviewID int64,
	req *entity.ToggleSelectionRequest,
) (*entity.SelectionResult, error) {
	question, err := uc.questionRepo.Get(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	considerationID := ""
	if req.ConsiderationID != nil {
		considerationID = *req.ConsiderationID
	}
	if considerationID != "" && !question.Metadata.HasConsideration(considerationID) {
		return nil, fmt.Errorf("%w: %q on question %d", entity.ErrUnknownConsideration, considerationID, question.ID)
	}

	selected := *req.Selected

	var result *entity.SelectionResult
	err = uc.selectionRepo.InInterviewTx(ctx, interviewID, func(ctx context.Context, store repository.SelectionStore) error {
		if iv := store.Interview(); iv.CaseID != question.CaseID {
			return fmt.Errorf("%w: question %d is not part of case %d", entity.ErrQuestionCaseMismatch, question.ID, iv.CaseID)
		}

		res := &entity.SelectionResult{
			InterviewID:     interviewID,
			QuestionID:      question.ID,
			ConsiderationID: considerationID,
			Selected:        selected,
		}

		var err error
		switch {
		case considerationID == "" && selected:
			err = selectQuestion(ctx, store, res)
		case considerationID == "":
			err = deselectQuestion(ctx, store, res)
		case selected:
			err = selectConsideration(ctx, store, res)
		default:
			err = deselectConsideration(ctx, store, res)
		}
		if err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle selection: %w", err)
	}

	ctxzap.Info(ctx, "selection toggled",
		zap.Int64("interview_id", interviewID),
		zap.Int64("question_id", question.ID),
		zap.String("consideration_id", considerationID),
		zap.Bool("selected", selected),
		zap.Bool("changed", result.Changed),
		zap.Int("order", result.Order),
	)

	return result, nil
}

// appendSelection adds the question at the end of the interview order
func appendSelection(
	ctx context.Context,
	store repository.SelectionStore,
	questionID int64,
	md entity.SelectionMetadata,
) (*entity.SelectedQuestion, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}

	return store.Insert(ctx, entity.SelectedQuestion{
		QuestionID: questionID,
		Order:      n + 1,
		Metadata:   md,
	})
}

func selectQuestion(ctx context.Context, store repository.SelectionStore, res *entity.SelectionResult) error {
	existing, err := store.Find(ctx, res.QuestionID)
	switch {
	case err == nil:
		res.Order = existing.Order
		res.SelectedConsiderations = existing.Metadata.SelectedConsiderations
		return nil
	case !errors.Is(err, entity.ErrSelectionNotFound):
		return err
	}

	created, err := appendSelection(ctx, store, res.QuestionID, entity.SelectionMetadata{SelectedConsiderations: []string{}})
	if err != nil {
		return err
	}

	res.Changed = true
	res.Order = created.Order
	res.SelectedConsiderations = created.Metadata.SelectedConsiderations
	return nil
}

func deselectQuestion(ctx context.Context, store repository.SelectionStore, res *entity.SelectionResult) error {
	res.SelectedConsiderations = []string{}

	err := store.Delete(ctx, res.QuestionID)
	if errors.Is(err, entity.ErrSelectionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	res.Changed = true
	return store.Repack(ctx)
}

func selectConsideration(ctx context.Context, store repository.SelectionStore, res *entity.SelectionResult) error {
	id := res.ConsiderationID

	parent, err := store.Find(ctx, res.QuestionID)
	if errors.Is(err, entity.ErrSelectionNotFound) {
		created, err := appendSelection(ctx, store, res.QuestionID, entity.SelectionMetadata{SelectedConsiderations: []string{id}})
		if err != nil {
			return err
		}
		res.Changed = true
		res.Order = created.Order
		res.SelectedConsiderations = created.Metadata.SelectedConsiderations
		return nil
	}
	if err != nil {
		return err
	}

	res.Order = parent.Order
	if parent.Metadata.Contains(id) {
		res.SelectedConsiderations = parent.Metadata.SelectedConsiderations
		return nil
	}

	updated, err := store.UpdateMetadata(ctx, res.QuestionID, parent.Metadata.With(id))
	if err != nil {
		return err
	}
	res.Changed = true
	res.SelectedConsiderations = updated.Metadata.SelectedConsiderations
	return nil
}

func deselectConsideration(ctx context.Context, store repository.SelectionStore, res *entity.SelectionResult) error {
	id := res.ConsiderationID

	parent, err := store.Find(ctx, res.QuestionID)
	if errors.Is(err, entity.ErrSelectionNotFound) {
		res.SelectedConsiderations = []string{}
		return nil
	}
	if err != nil {
		return err
	}

	res.Order = parent.Order
	if !parent.Metadata.Contains(id) {
		res.SelectedConsiderations = parent.Metadata.SelectedConsiderations
		return nil
	}

	updated, err := store.UpdateMetadata(ctx, res.QuestionID, parent.Metadata.Without(id))
	if err != nil {
		return err
	}
	res.Changed = true
	res.SelectedConsiderations = updated.Metadata.SelectedConsiderations
	return nil
}
