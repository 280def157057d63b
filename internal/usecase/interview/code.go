package interview

import (
	"context"
	"fmt"
	"time"
)

// CodeGenerator produces human readable interview codes of the form
// E<YY><MM>-<seq>, where seq is the global interview count plus one,
// zero padded to four digits
type CodeGenerator struct {
	counter InterviewCounter
	now     func() time.Time
}

func NewCodeGenerator(counter InterviewCounter, now func() time.Time) *CodeGenerator {
	if now == nil {
		now = time.Now
	}
	return &CodeGenerator{
		counter: counter,
		now:     now,
	}
}

// Sequential returns the next counter based code
func (g *CodeGenerator) Sequential(ctx context.Context) (string, error) {
	count, err := g.counter.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count interviews: %w", err)
	}
	return fmt.Sprintf("E%s-%04d", g.now().Format("0601"), count+1), nil
}

// Timestamp returns a code built from the current time in milliseconds,
// used when the counter cannot be read or its code is already taken
func (g *CodeGenerator) Timestamp() string {
	t := g.now()
	return fmt.Sprintf("E%s-%d", t.Format("0601"), t.UnixMilli())
}

// Now returns the generator clock reading
func (g *CodeGenerator) Now() time.Time {
	return g.now()
}
