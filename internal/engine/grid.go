package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpgo/drawdown-engine/internal/domain"
)

// maxConcurrentGridPoints bounds how many grid points run at once, mirroring
// the reference simulator's fixed-size semaphore for bounding goroutine
// fan-out under a worker-pool pattern.
const maxConcurrentGridPoints = 10

// ProgressFunc is invoked after each grid point completes, reporting how many
// of the total have finished. A panicking callback is caught and logged, not
// allowed to take down the run.
type ProgressFunc func(done, total int)

// RunGrid enumerates the Cartesian product of start_portfolios x
// reserve_years_list x loan_amounts and evaluates each point (single spend
// level or an optimizer search, per cfg.Mode), per SPEC_FULL.md section 4.9.
// Results preserve the grid's natural enumeration order regardless of which
// goroutine finishes first. ctx is checked at each grid-point boundary; a
// cancellation stops dispatching new points but lets in-flight ones finish.
func RunGrid(ctx context.Context, cfg *domain.ScenarioConfig, returns *ReturnsMatrix, logger Logger, progress ProgressFunc) ([]domain.GridPointResult, error) {
	if logger == nil {
		logger = NopLogger{}
	}

	points := make([]domain.GridPoint, 0, len(cfg.StartPortfolios)*len(cfg.ReserveYearsList)*len(cfg.LoanAmounts))
	for _, sp := range cfg.StartPortfolios {
		for _, ry := range cfg.ReserveYearsList {
			for _, la := range cfg.LoanAmounts {
				points = append(points, domain.GridPoint{StartPortfolio: sp, ReserveYears: ry, LoanAmount: la})
			}
		}
	}

	results := make([]domain.GridPointResult, len(points))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentGridPoints)
	var done int
	var mu sync.Mutex
	var panicErr error

	for idx, point := range points {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, point domain.GridPoint) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			if ctx.Err() != nil {
				return
			}
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("grid point %d panicked: %v", idx, r)
					mu.Lock()
					if panicErr == nil {
						panicErr = fmt.Errorf("grid point %d: %v", idx, r)
					}
					mu.Unlock()
				}
			}()

			results[idx] = evalGridPoint(cfg, point, returns)

			mu.Lock()
			done++
			n := done
			mu.Unlock()

			if progress != nil {
				reportProgress(logger, progress, n, len(points))
			}
		}(idx, point)
	}

	wg.Wait()

	for i, point := range points {
		results[i].StartPortfolio = point.StartPortfolio
		results[i].ReserveYears = point.ReserveYears
		results[i].LoanAmount = point.LoanAmount
	}

	if panicErr != nil {
		return results, panicErr
	}
	return results, ctx.Err()
}

// evalGridPoint dispatches a single grid point to the fixed-spend or
// optimizer path depending on cfg.Mode.
func evalGridPoint(cfg *domain.ScenarioConfig, point domain.GridPoint, returns *ReturnsMatrix) domain.GridPointResult {
	if cfg.Mode == domain.ModeSingle {
		_, result := evalE(cfg, point, cfg.EFixed, returns)
		eFixed := int(cfg.EFixed)
		result.ERealPerYear = &eFixed
		result.OptimizerConverged = true
		return result
	}

	maxE, result, converged := findMaxE(cfg, point, cfg.TargetSuccessDeathWeighted, cfg.ELo, cfg.EHi, cfg.ESearchIters, returns)
	result.MaxERealPerYear = &maxE
	result.OptimizerConverged = converged
	return result
}

// reportProgress invokes the caller's progress callback, catching a panic so
// a broken callback can never abort an otherwise-successful run.
func reportProgress(logger Logger, progress ProgressFunc, done, total int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("progress callback panicked: %v", r)
		}
	}()
	progress(done, total)
}
