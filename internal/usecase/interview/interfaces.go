package interview

import "context"

// InterviewCounter reports how many interviews have ever been created
type InterviewCounter interface {
	Count(ctx context.Context) (int64, error)
}
