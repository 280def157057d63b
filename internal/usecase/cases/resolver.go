package cases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Strategy names, recorded in the trail as resolve_<name>
const (
	StrategyByID           = "by_id"
	StrategyByExactName    = "by_exact_name"
	StrategyBySubstring    = "by_substring"
	StrategyByKnownDefault = "by_known_default"
	StrategyByFirst        = "by_first_existing"
	StrategyByCreate       = "by_create"
)

// errNotApplicable means a strategy does not handle this kind of identifier
var errNotApplicable = errors.New("strategy not applicable")

// LookupFunc returns the case for identifier, entity.ErrCaseNotFound on a
// miss or errNotApplicable when the identifier is not of its kind
type LookupFunc func(ctx context.Context, identifier string) (*entity.Case, error)

type Strategy struct {
	Name   string
	Lookup LookupFunc
}

// Resolution is the outcome of a successful resolve
type Resolution struct {
	Case     *entity.Case
	Strategy string
	Created  bool
}

// Resolver maps a loosely typed case identifier to a case by trying its
// strategies in order. The first strategy that finds a case wins.
type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// NewDefaultResolver builds the full chain: id, exact name, substring,
// known default name, first existing case, and finally creating a case
func NewDefaultResolver(repo repository.CaseRepository) *Resolver {
	return NewResolver(
		ByID(repo),
		ByExactName(repo),
		BySubstring(repo),
		ByKnownDefault(repo, DefaultCaseNames()),
		ByFirstExisting(repo),
		ByCreate(repo),
	)
}

// Resolve runs the chain and appends one trail event per strategy tried.
// A store error aborts the chain.
func (r *Resolver) Resolve(ctx context.Context, identifier string, trail entity.Trail) (*Resolution, entity.Trail, error) {
	identifier = strings.TrimSpace(identifier)

	for _, s := range r.strategies {
		step := "resolve_" + s.Name

		c, err := s.Lookup(ctx, identifier)
		switch {
		case err == nil:
			trail = trail.Add(step, entity.TrailStatusOK, fmt.Sprintf("case %d %q", c.ID, c.Name))
			ctxzap.Debug(ctx, "case resolved",
				zap.String("strategy", s.Name),
				zap.Int64("case_id", c.ID),
			)
			return &Resolution{
				Case:     c,
				Strategy: s.Name,
				Created:  s.Name == StrategyByCreate,
			}, trail, nil
		case errors.Is(err, errNotApplicable):
			trail = trail.Add(step, entity.TrailStatusSkipped, "")
		case errors.Is(err, entity.ErrCaseNotFound):
			trail = trail.Add(step, entity.TrailStatusMiss, "")
		default:
			trail = trail.Add(step, entity.TrailStatusFailed, err.Error())
			return nil, trail, fmt.Errorf("resolve case %s: %w", s.Name, err)
		}
	}

	return nil, trail, fmt.Errorf("%w: %q", entity.ErrCaseNotFound, identifier)
}

func ByID(repo repository.CaseRepository) Strategy {
	return Strategy{
		Name: StrategyByID,
		Lookup: func(ctx context.Context, identifier string) (*entity.Case, error) {
			id, err := strconv.ParseInt(identifier, 10, 64)
			if err != nil || id <= 0 {
				return nil, errNotApplicable
			}
			return repo.Get(ctx, id)
		},
	}
}

func ByExactName(repo repository.CaseRepository) Strategy {
	return Strategy{
		Name: StrategyByExactName,
		Lookup: func(ctx context.Context, identifier string) (*entity.Case, error) {
			if identifier == "" {
				return nil, errNotApplicable
			}
			return repo.GetByName(ctx, identifier)
		},
	}
}

func BySubstring(repo repository.CaseRepository) Strategy {
	return Strategy{
		Name: StrategyBySubstring,
		Lookup: func(ctx context.Context, identifier string) (*entity.Case, error) {
			if identifier == "" {
				return nil, errNotApplicable
			}
			return repo.FindByNameSubstring(ctx, identifier)
		},
	}
}

// ByKnownDefault matches slug forms such as "estrategia-cloud" against the
// default case names
func ByKnownDefault(repo repository.CaseRepository, names []string) Strategy {
	known := make(map[string]string, len(names))
	for _, n := range names {
		known[slug(n)] = n
	}

	return Strategy{
		Name: StrategyByKnownDefault,
		Lookup: func(ctx context.Context, identifier string) (*entity.Case, error) {
			name, ok := known[slug(identifier)]
			if !ok {
				return nil, errNotApplicable
			}
			return repo.GetByName(ctx, name)
		},
	}
}

func ByFirstExisting(repo repository.CaseRepository) Strategy {
	return Strategy{
		Name: StrategyByFirst,
		Lookup: func(ctx context.Context, _ string) (*entity.Case, error) {
			return repo.First(ctx)
		},
	}
}

// ByCreate stores a new case named after the identifier. A concurrent create
// of the same name is resolved by reading the winner back.
func ByCreate(repo repository.CaseRepository) Strategy {
	return Strategy{
		Name: StrategyByCreate,
		Lookup: func(ctx context.Context, identifier string) (*entity.Case, error) {
			if identifier == "" {
				return nil, errNotApplicable
			}

			c, err := repo.Create(ctx, entity.Case{Name: identifier})
			if errors.Is(err, entity.ErrCaseNameTaken) {
				return repo.GetByName(ctx, identifier)
			}
			return c, err
		},
	}
}
