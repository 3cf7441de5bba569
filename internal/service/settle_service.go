// Package service runs settlements end to end.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/settlement"
)

// Request is the input of one settlement run.
type Request struct {
	// Participants in input order. Named identifiers must be unique.
	Participants []models.Participant

	// Headcount is the number of people sharing the expenses. It must be at
	// least the sum of participant weights; any extra people are added as an
	// anonymous group. Zero means exactly the participants given.
	Headcount int64
}

// Result is the output of one settlement run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Participants is the request's list plus the anonymous group added for
	// the headcount, if any.
	Participants []models.Participant

	// Naive is the unoptimized all-pairs debt set.
	Naive []models.Transfer

	// Transfers is what participants should actually pay.
	Transfers []models.Transfer

	// Graph holds Transfers, for export.
	Graph *settlement.Graph

	Summary    calculator.Summary
	Validation settlement.Validation

	// FellBack is true when the optimized transfers failed validation and
	// Transfers is the naive set instead.
	FellBack bool
}

// SettleService computes settlements.
type SettleService struct {
	strict   bool
	metrics  *metrics.Recorder
	logger   *slog.Logger
	optimize settlement.Optimizer
}

// Option configures a SettleService.
type Option func(*SettleService)

// WithStrict makes an invariant violation panic instead of falling back to
// the naive transfers. Use it in development and tests.
func WithStrict(strict bool) Option {
	return func(s *SettleService) { s.strict = strict }
}

// WithMetrics records every run in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *SettleService) { s.metrics = r }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *SettleService) { s.logger = l }
}

// WithOptimizer replaces the greedy optimizer. A nil optimizer is ignored.
func WithOptimizer(o settlement.Optimizer) Option {
	return func(s *SettleService) {
		if o != nil {
			s.optimize = o
		}
	}
}

// NewSettleService creates a SettleService.
func NewSettleService(opts ...Option) *SettleService {
	s := &SettleService{
		logger:   slog.Default(),
		optimize: (*settlement.Graph).Optimize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle runs one settlement: naive debts, graph optimization and validation.
//
// Invalid input returns a models.InputError. If the optimized transfers are
// not equivalent to the naive ones, a strict service panics with the
// *settlement.InvariantViolation; otherwise it logs a warning and returns
// the naive transfers with FellBack set.
func (s *SettleService) Settle(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)

	participants, err := withHeadcount(req.Participants, req.Headcount)
	if err != nil {
		log.WarnContext(ctx, "Settlement rejected", "error", err)
		s.metrics.ObserveRejected()
		return nil, err
	}

	naive := calculator.BuildNaiveDebts(participants)
	log.DebugContext(ctx, "Naive debts built",
		"participants", len(participants),
		"people", models.TotalWeight(participants),
		"transfers", len(naive),
	)

	graph, err := settlement.New(naive)
	if err != nil {
		return nil, fmt.Errorf("failed to build settlement graph: %w", err)
	}
	naiveEdges := graph.EdgeCount()
	s.optimize(graph)
	log.DebugContext(ctx, "Settlement graph optimized",
		"nodes", graph.NodeCount(),
		"edges_before", naiveEdges,
		"edges_after", graph.EdgeCount(),
	)

	result := &Result{
		RunID:        runID,
		Participants: participants,
		Naive:        naive,
		Transfers:    graph.Transfers(),
		Graph:        graph,
	}

	validation, err := graph.Validate(participants)
	if err != nil {
		if s.strict {
			log.ErrorContext(ctx, "Optimized settlement failed validation", "error", err)
			panic(err)
		}
		log.WarnContext(ctx, "Optimized settlement failed validation, falling back to naive transfers", "error", err)

		if err := s.fallback(result); err != nil {
			return nil, err
		}
		validation, err = result.Graph.Validate(participants)
		if err != nil {
			return nil, fmt.Errorf("naive transfers failed validation: %w", err)
		}
	}
	result.Validation = validation
	result.Summary = calculator.Summarize(participants, result.Transfers)

	outcome := metrics.OutcomeOptimized
	if result.FellBack {
		outcome = metrics.OutcomeFallback
	}
	s.metrics.ObserveRun(outcome, validation.TotalPeople, len(naive), len(result.Transfers), validation.MaxDrift)

	log.InfoContext(ctx, "Settlement computed",
		"outcome", outcome,
		"total_spent", result.Summary.TotalSpent.String(),
		"per_person", result.Summary.PerPerson.String(),
		"naive_transfers", len(naive),
		"transfers", len(result.Transfers),
		"transferred", models.SumTransfers(result.Transfers).String(),
		"max_drift", validation.MaxDrift.StringFixed(4),
	)

	return result, nil
}

func (s *SettleService) fallback(result *Result) error {
	graph, err := settlement.New(result.Naive)
	if err != nil {
		return fmt.Errorf("failed to rebuild naive graph: %w", err)
	}
	result.Graph = graph
	result.Transfers = result.Naive
	result.FellBack = true
	return nil
}

// withHeadcount validates participants against the headcount and appends an
// anonymous group for the people not listed.
func withHeadcount(participants []models.Participant, headcount int64) ([]models.Participant, error) {
	if err := models.ValidateParticipants(participants); err != nil {
		return nil, err
	}

	listed := models.TotalWeight(participants)
	if headcount == 0 {
		headcount = listed
	}
	if headcount < listed {
		return nil, models.NewInputError("headcount",
			fmt.Sprintf("the bill does not add up: %d people listed but headcount is %d", listed, headcount))
	}

	out := make([]models.Participant, len(participants), len(participants)+1)
	copy(out, participants)
	if extra := headcount - listed; extra > 0 {
		out = append(out, models.Anonymous(int(extra)))
		if err := models.ValidateParticipants(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
