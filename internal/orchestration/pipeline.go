// Package orchestration sequences the recommender pipeline: identifier
// resolution, constraint expansion, rule inference to fixed point, query
// planning, the bounded GraphStore read, ranking or similarity scoring,
// diversity selection, and finally the constraint advisor and the dynamic
// critique miner, strictly in that order, once per request.
//
// The request is the unit of work; Orchestrator carries no per-request
// state between calls. A ctx deadline is propagated to every GraphStore
// call the pipeline makes; a deadline miss anywhere in the match-producing
// stages (resolve through diversify) aborts the request outright rather
// than returning a partial match set. The advisor and miner stages run
// after the match set is already final, so a failure there degrades to a
// warning instead of failing the request.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/talentgraph/recommender/internal/advisor"
	"github.com/talentgraph/recommender/internal/apierrors"
	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/critique"
	"github.com/talentgraph/recommender/internal/expander"
	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/planner"
	"github.com/talentgraph/recommender/internal/ranker"
	"github.com/talentgraph/recommender/internal/similarity"
	"github.com/talentgraph/recommender/internal/streaming"
	"github.com/talentgraph/recommender/internal/taxonomy"
	"github.com/talentgraph/recommender/internal/types"
)

// backoffBase is the jittered-retry floor a failed candidate read waits
// before its one retry attempt.
const backoffBase = 50 * time.Millisecond

var pipelineSteps = []string{
	"resolve", "expand", "infer", "plan", "read", "score", "diversify", "advise",
}

// Orchestrator runs the fixed recommender pipeline against one GraphStore.
type Orchestrator struct {
	store    graphstore.Store
	resolver *taxonomy.Resolver
	engine   *inference.Engine
	scorer   *similarity.Scorer
	cfg      *config.Config
}

// New builds an Orchestrator. resolver and scorer both read from store;
// engine holds the rule catalogue the inference stage evaluates to fixed
// point.
func New(store graphstore.Store, resolver *taxonomy.Resolver, engine *inference.Engine, scorer *similarity.Scorer, cfg *config.Config) *Orchestrator {
	return &Orchestrator{store: store, resolver: resolver, engine: engine, scorer: scorer, cfg: cfg}
}

// Recommend executes the pipeline for req and returns the final Response.
// It never returns a non-nil Response alongside a non-nil error.
func (o *Orchestrator) Recommend(ctx context.Context, req types.Request) (*types.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log.Printf("[orchestration] request %s: starting pipeline", requestID)
	steps := streaming.NewStepReporter(streaming.GetReporter(ctx), pipelineSteps)
	var warnings []string

	if err := ctx.Err(); err != nil {
		log.Printf("[orchestration] request %s: aborted before resolve: %v", requestID, err)
		return nil, err
	}

	_ = steps.StartStep("resolving skill and domain identifiers")
	snapshot, err := taxonomy.BuildSnapshot(ctx, o.resolver, req)
	if err != nil {
		return nil, o.graphErr(ctx, "resolving identifiers", err)
	}
	_ = steps.CompleteStep("resolved")

	_ = steps.StartStep("expanding constraints")
	expanded := expander.Expand(req, snapshot)
	_ = steps.CompleteStep("expanded")

	_ = steps.StartStep("running inference to fixed point")
	inferenceResult := o.engine.Run(req, expanded)
	if inferenceResult.IterationCount >= o.cfg.Inference.MaxIterations {
		warnings = append(warnings, apierrors.ErrRuleIterationCapExceeded+": inference degraded to the last stable fact map before reaching a fixed point")
	}
	warnings = append(warnings, inferenceResult.Warnings...)
	_ = steps.CompleteStep("inferred")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_ = steps.StartStep("compiling the query plan")
	plan := planner.Compile(expanded, inferenceResult)
	_ = steps.CompleteStep("compiled")

	var reference *types.Candidate
	if req.ReferenceEngineerID != "" {
		reference, err = o.store.Candidate(ctx, req.ReferenceEngineerID)
		if errors.Is(err, graphstore.ErrNotFound) {
			return nil, apierrors.New(apierrors.ErrReferenceNotFound, "reference_engineer_id did not resolve to a known engineer").AtPath("$.reference_engineer_id")
		}
		if err != nil {
			return nil, o.graphErr(ctx, "resolving reference engineer", err)
		}
	}

	_ = steps.StartStep("reading candidates")
	page, err := o.executeWithRetry(ctx, plan, req.Offset, req.Limit, req.ReferenceEngineerID)
	if err != nil {
		return nil, err
	}
	_ = steps.CompleteStep("read")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, candidatesBeforeDiversity, err := o.scoreAndDiversify(ctx, steps, req, expanded, inferenceResult, reference, page.Candidates)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_ = steps.StartStep("running the constraint advisor")
	relaxation, tightening, err := advisor.Advise(ctx, o.store, req, expanded, inferenceResult.DerivedConstraints, page.Candidates, page.TotalCount, o.cfg.Advisor)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: constraint advisor degraded: %v", apierrors.ErrAdvisorTimeout, err))
		relaxation, tightening = nil, nil
	}
	_ = steps.CompleteStep("advised")

	suggestedCritiques := critique.Mine(req, page.Candidates, o.cfg.Critique)

	log.Printf("[orchestration] request %s: completed in %s, %d matches", requestID, time.Since(start), len(matches))

	return &types.Response{
		Matches:            matches,
		TotalCount:         page.TotalCount,
		AppliedFilters:     plan.AppliedFilters,
		AppliedPreferences: expanded.AppliedPreferences,
		DerivedConstraints: inferenceResult.DerivedConstraints,
		Relaxation:         relaxation,
		Tightening:         tightening,
		SuggestedCritiques: suggestedCritiques,
		QueryMetadata: types.QueryMetadata{
			RequestID:                 requestID,
			ExecutionTimeMs:           time.Since(start).Milliseconds(),
			CandidatesBeforeDiversity: candidatesBeforeDiversity,
			Warnings:                  warnings,
		},
	}, nil
}

// scoreAndDiversify runs the utility ranker in keyword-search mode, or the
// similarity scorer plus greedy diversity selection when the request names
// a reference_engineer_id.
func (o *Orchestrator) scoreAndDiversify(ctx context.Context, steps *streaming.StepReporter, req types.Request, expanded types.ExpandedCriteria, inferenceResult inference.Result, reference *types.Candidate, candidates []*types.Candidate) ([]types.ScoredCandidate, *int, error) {
	if reference == nil {
		_ = steps.StartStep("ranking candidates")
		matches := ranker.Rank(req, expanded, inferenceResult, candidates, o.cfg.Ranker)
		_ = steps.CompleteStep("ranked")
		_ = steps.StartStep("diversification is a similarity-mode-only step")
		_ = steps.CompleteStep("skipped")
		return matches, nil, nil
	}

	_ = steps.StartStep("scoring similarity to the reference engineer")
	scored, err := o.scorer.ScoreAll(ctx, reference, candidates)
	if err != nil {
		return nil, nil, o.graphErr(ctx, "scoring similarity", err)
	}
	before := len(scored)
	_ = steps.CompleteStep("scored")

	_ = steps.StartStep("selecting a diverse page")
	picked, err := o.scorer.SelectDiverse(ctx, scored, req.Limit, req.Offset)
	if err != nil {
		return nil, nil, o.graphErr(ctx, "selecting diverse page", err)
	}
	_ = steps.CompleteStep("diversified")

	return similarity.PaginateDiverse(picked, req.Offset, req.Limit), &before, nil
}

// executeWithRetry runs the planner's bounded candidate read, retrying
// once with jittered backoff on a non-context failure before raising
// ErrGraphQueryFailed, per apierrors' documented contract. A context
// deadline or cancellation during either attempt aborts immediately
// without retrying, since a retry could only push the request further
// past its deadline.
func (o *Orchestrator) executeWithRetry(ctx context.Context, plan planner.Plan, offset, limit int, excludeID string) (planner.Page, error) {
	page, err := planner.Execute(ctx, o.store, plan, offset, limit, excludeID)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil {
		return planner.Page{}, ctx.Err()
	}

	select {
	case <-time.After(backoffBase + time.Duration(rand.Int63n(int64(backoffBase)))):
	case <-ctx.Done():
		return planner.Page{}, ctx.Err()
	}

	page, err = planner.Execute(ctx, o.store, plan, offset, limit, excludeID)
	if err != nil {
		if ctx.Err() != nil {
			return planner.Page{}, ctx.Err()
		}
		return planner.Page{}, apierrors.New(apierrors.ErrGraphQueryFailed, err.Error())
	}
	return page, nil
}

// graphErr classifies a GraphStore failure: a ctx deadline or cancellation
// propagates as-is so the caller can tell a deadline miss apart from a
// genuine store failure; anything else is wrapped as ErrGraphQueryFailed.
func (o *Orchestrator) graphErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%s: %w", op, apierrors.New(apierrors.ErrGraphQueryFailed, err.Error()))
}
