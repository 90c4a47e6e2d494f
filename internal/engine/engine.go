// Package engine implements the drawdown Monte Carlo simulation kernel: the
// return generator, mortality model, guardrails/loan/RM arithmetic, the
// per-path annual iteration, and the grid/optimizer drivers built on top of
// them.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rpgo/drawdown-engine/internal/config"
	"github.com/rpgo/drawdown-engine/internal/domain"
)

// Engine is the entry point a caller uses to run a scenario. It holds no
// per-request state, so a single Engine can serve concurrent Simulate calls.
type Engine struct {
	Logger Logger
}

// New returns an Engine with a no-op logger. Use SetLogger to attach one.
func New() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger attaches l to the engine. A nil logger resets to the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Simulate runs the full grid sweep described by req.Scenario and returns
// every grid point's result. It never returns a Go error for a bad scenario;
// validation failures come back as a Failed response so a caller driving a
// batch of scenarios doesn't need special-case error handling per request.
func (e *Engine) Simulate(ctx context.Context, req domain.SimulationRequest, progress ProgressFunc) domain.SimulationResponse {
	runID := resolveRunID(req.RunID)

	if err := config.ValidateScenario(&req.Scenario); err != nil {
		e.Logger.Errorf("scenario validation failed for run %s: %v", runID, err)
		return domain.SimulationResponse{
			RunID:  &runID,
			Status: domain.StatusFailed,
			Error:  err.Error(),
		}
	}

	cfg := req.Scenario
	seed := resolveSeed(cfg.Seed)
	nYears := cfg.NYears()

	e.Logger.Infof("run %s: generating returns (n_sims=%d, n_years=%d, seed=%d)", runID, cfg.NSims, nYears, seed)
	returns := GenerateReturns(seed, cfg.NSims, nYears, cfg.ReturnMuReal, cfg.ReturnVolReal)

	results, err := RunGrid(ctx, &cfg, returns, e.Logger, progress)
	if err != nil {
		status := domain.StatusFailed
		if ctx.Err() != nil {
			status = domain.StatusCancelled
		}
		e.Logger.Warnf("run %s: ended early (%s) after %d grid points: %v", runID, status, len(results), err)
		return domain.SimulationResponse{
			RunID:           &runID,
			Status:          status,
			Results:         results,
			TotalGridPoints: len(results),
			Error:           err.Error(),
		}
	}

	e.Logger.Infof("run %s: completed %d grid points", runID, len(results))
	return domain.SimulationResponse{
		RunID:           &runID,
		Status:          domain.StatusCompleted,
		Results:         results,
		TotalGridPoints: len(results),
	}
}

// Health reports whether the engine is ready to accept work. It never fails
// today, but keeps the same shape a real readiness probe (e.g. a warmed
// mortality table cache) would use.
func (e *Engine) Health() error {
	if len(ssaMaleLifeTable2022) == 0 {
		return fmt.Errorf("mortality table not loaded")
	}
	return nil
}

func resolveRunID(requested *string) string {
	if requested != nil && *requested != "" {
		return *requested
	}
	return uuid.NewString()
}
