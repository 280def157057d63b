package interviews

import "github.com/futig/interview-cases/internal/entity"

func toInterviewResponse(iv *entity.Interview) *entity.InterviewResponse {
	return &entity.InterviewResponse{
		ID:            iv.ID,
		InterviewCode: iv.InterviewCode,
		InterviewDate: iv.InterviewDate,
		CandidateName: iv.CandidateName,
		Notes:         iv.Notes,
		CaseID:        iv.CaseID,
		CreatedAt:     iv.CreatedAt,
		UpdatedAt:     iv.UpdatedAt,
		Questions:     []*entity.InterviewQuestionDTO{},
	}
}

// toInterviewDetail nests each selected question with its selection state,
// keeping the ledger order
func toInterviewDetail(d *entity.InterviewDetail) *entity.InterviewResponse {
	resp := toInterviewResponse(&d.Interview)
	resp.Case = d.Case

	questions := make([]*entity.InterviewQuestionDTO, 0, len(d.Questions))
	for _, sq := range d.Questions {
		q := sq.Question
		md := sq.Selection.Metadata
		if md.SelectedConsiderations == nil {
			md.SelectedConsiderations = []string{}
		}

		questions = append(questions, &entity.InterviewQuestionDTO{
			Question: &q,
			Selection: entity.SelectionDTO{
				Order:    sq.Selection.Order,
				Metadata: md,
			},
		})
	}
	resp.Questions = questions

	return resp
}

func toSelectionResponse(res *entity.SelectionResult) any {
	var order *int
	if res.Order > 0 {
		o := res.Order
		order = &o
	}

	if res.ConsiderationID == "" {
		return &entity.QuestionSelectionResponse{
			Message:     selectionMessage("question", res),
			InterviewID: res.InterviewID,
			QuestionID:  res.QuestionID,
			Selected:    res.Selected,
			Order:       order,
		}
	}

	selected := res.SelectedConsiderations
	if selected == nil {
		selected = []string{}
	}

	return &entity.ConsiderationSelectionResponse{
		Message:                selectionMessage("consideration", res),
		InterviewID:            res.InterviewID,
		QuestionID:             res.QuestionID,
		ConsiderationID:        res.ConsiderationID,
		Selected:               res.Selected,
		Order:                  order,
		SelectedConsiderations: selected,
	}
}

func selectionMessage(subject string, res *entity.SelectionResult) string {
	switch {
	case res.Selected && res.Changed:
		return subject + " selected"
	case res.Selected:
		return subject + " already selected"
	case res.Changed:
		return subject + " deselected"
	default:
		return subject + " was not selected"
	}
}
