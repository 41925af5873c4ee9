package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/cache"
	"github.com/Dan9191/finance-service/internal/config"
	"github.com/Dan9191/finance-service/internal/dismissal"
	"github.com/Dan9191/finance-service/internal/forecast"
	"github.com/Dan9191/finance-service/internal/insights"
	"github.com/Dan9191/finance-service/internal/metrics"
	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/recurrence"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrComputationFailed is returned when the core month aggregation cannot be computed
	ErrComputationFailed = errors.New("insights computation failed")
	// ErrInvalidArgument is returned for malformed mute requests
	ErrInvalidArgument = errors.New("invalid argument")

	errBudgetExceeded = errors.New("compute budget exceeded")
)

const (
	DefaultMuteDays = 7
	MaxMuteDays     = 365
)

// Options selects the insights variant
type Options struct {
	IncludeFuture bool
	Fast          bool
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service handles business logic
type Service struct {
	source     Source
	cache      *cache.Service
	dismissals *dismissal.Filter
	forecast   *forecast.Engine
	rules      *insights.Engine
	config     *config.Config
	log        *logrus.Logger
	now        func() time.Time
}

// NewService initializes a new service
func NewService(source Source, c *cache.Service, d *dismissal.Filter, fe *forecast.Engine, ie *insights.Engine, cfg *config.Config, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		source:     source,
		cache:      c,
		dismissals: d,
		forecast:   fe,
		rules:      ie,
		config:     cfg,
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insights returns the KPI, insight and forecast payload of the current month.
// A cached payload is served while fresh. When a full computation overruns the
// compute budget the fast variant is tried, then the last cached payload.
func (s *Service) Insights(ctx context.Context, userID int64, opts Options) (*models.InsightsPayload, error) {
	now := s.now().UTC()
	key := cache.NewKey(userID, opts.IncludeFuture, opts.Fast, now)
	if p, ok := s.cache.Get(ctx, key); ok {
		return p, nil
	}

	p, err := s.compute(ctx, userID, opts, now)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errBudgetExceeded) {
		return nil, err
	}

	logger := s.log.WithFields(logrus.Fields{"user_id": userID, "fast": opts.Fast})
	if !opts.Fast {
		logger.Warnf("Full computation overran, retrying in fast mode: %v", err)
		metrics.IncFallback("fast")
		fast := opts
		fast.Fast = true
		if p, ferr := s.compute(ctx, userID, fast, now); ferr == nil {
			return p, nil
		}
	}
	if p, ok := s.cache.Stale(ctx, key); ok {
		logger.Warn("Serving stale insights")
		metrics.IncFallback("stale")
		return p, nil
	}
	metrics.IncFallback("failed")
	return nil, fmt.Errorf("%w: %w", ErrComputationFailed, err)
}

// compute runs one computation under the compute budget and caches the result
func (s *Service) compute(ctx context.Context, userID int64, opts Options, now time.Time) (*models.InsightsPayload, error) {
	mode := "full"
	if opts.Fast {
		mode = "fast"
	}
	start := time.Now()
	defer func() { metrics.ObserveCompute(mode, time.Since(start).Seconds()) }()

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	snap, err := s.fetch(ctx, userID, opts, now)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errBudgetExceeded, err)
		}
		return nil, err
	}

	today := recurrence.Date(now)
	kpis := monthKPIs(snap.totals, now)
	horizons := s.forecast.Project(ctx, forecast.Input{
		Today:           today,
		StartingBalance: snap.balance,
		Schedules:       snap.schedules,
		Exceptions:      snap.exceptions,
		Pending:         snap.pending,
		IncludePending:  opts.IncludeFuture,
		Debts:           s.debtLookup(userID),
	}, s.config.ForecastHorizons)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", errBudgetExceeded, ctx.Err())
	}

	if !opts.Fast {
		snap.detail.MonthlyRecurringExpense = monthlyRecurringExpense(snap.schedules, snap.exceptions, now)
	}

	thresholds := insights.DefaultThresholds()
	thresholds.BudgetWarnPct, thresholds.BudgetDangerPct = s.budgetThresholds(snap.prefs)

	list := s.rules.Evaluate(insights.Input{
		KPIs:       kpis,
		Forecast:   horizons,
		Detail:     snap.detail,
		Thresholds: thresholds,
	}, opts.Fast)

	cacheable := true
	filtered, validUntil, err := s.dismissals.Apply(ctx, userID, list, now)
	if err != nil {
		s.log.WithField("user_id", userID).Warnf("Dismissals unavailable, returning unfiltered insights: %v", err)
		cacheable = false
	}

	p := &models.InsightsPayload{
		KPIs:     kpis,
		Insights: filtered,
		Meta: models.InsightsMeta{
			Month:         now.Format("2006-01"),
			Thresholds:    models.Thresholds{Warn: thresholds.BudgetWarnPct, Danger: thresholds.BudgetDangerPct},
			Forecast:      horizons,
			IncludeFuture: opts.IncludeFuture,
			Fast:          opts.Fast,
		},
	}
	if cacheable {
		s.cache.SetUntil(ctx, cache.NewKey(userID, opts.IncludeFuture, opts.Fast, now), p, validUntil)
	}
	return p, nil
}

// withBudget bounds ctx by the compute timeout; a non-positive timeout means no bound
func (s *Service) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.ComputeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.ComputeTimeout)
}

type snapshot struct {
	totals     models.MonthTotals
	balance    float64
	schedules  []models.RecurringSchedule
	exceptions []models.ScheduleException
	pending    []models.Transaction
	prefs      *models.Preferences
	detail     insights.Detail
}

// fetch issues the independent reads concurrently. Only core reads can fail
// the fetch; optional ones are recorded as missing detail.
func (s *Service) fetch(ctx context.Context, userID int64, opts Options, now time.Time) (*snapshot, error) {
	snap := &snapshot{}
	today := recurrence.Date(now)
	month := recurrence.MonthWindow(now)
	logger := s.log.WithField("user_id", userID)

	var budgetsErr, feesErr, goalsErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.source.MonthTotals(gctx, userID, month.Start, today)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrComputationFailed, err)
		}
		snap.totals = totals
		return nil
	})
	g.Go(func() error {
		balance, err := s.source.TotalBalance(gctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrComputationFailed, err)
		}
		snap.balance = balance
		return nil
	})
	g.Go(func() error {
		schedules, err := s.source.ActiveSchedules(gctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrComputationFailed, err)
		}
		snap.schedules = schedules
		return nil
	})
	g.Go(func() error {
		exceptions, err := s.source.ScheduleExceptions(gctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrComputationFailed, err)
		}
		snap.exceptions = exceptions
		return nil
	})

	if opts.IncludeFuture {
		g.Go(func() error {
			until := today.AddDate(0, 0, s.maxHorizon())
			pending, err := s.source.PendingTransactions(gctx, userID, until)
			if err != nil {
				logger.Warnf("Pending transactions unavailable, forecast excludes them: %v", err)
				return nil
			}
			snap.pending = pending
			return nil
		})
	}
	g.Go(func() error {
		prefs, err := s.source.Preferences(gctx, userID)
		if err != nil {
			logger.Warnf("Preferences unavailable, using default thresholds: %v", err)
			return nil
		}
		snap.prefs = prefs
		return nil
	})
	g.Go(func() error {
		snap.detail.Budgets, budgetsErr = s.source.CategoryBudgets(gctx, userID, now.Year(), now.Month(), month.Start, today)
		return nil
	})
	g.Go(func() error {
		cutoff := today.AddDate(0, 0, -insights.DefaultThresholds().InactiveGoalDays)
		snap.detail.InactiveGoals, goalsErr = s.source.InactiveGoals(gctx, userID, cutoff)
		return nil
	})
	if !opts.Fast {
		g.Go(func() error {
			snap.detail.Fees, feesErr = s.source.MonthFees(gctx, userID, month.Start, today)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for kind, err := range map[insights.DetailKind]error{
		insights.DetailBudgets: budgetsErr,
		insights.DetailFees:    feesErr,
		insights.DetailGoals:   goalsErr,
	} {
		if err != nil {
			snap.detail.MarkMissing(kind, err)
		}
	}
	return snap, nil
}

func (s *Service) debtLookup(userID int64) forecast.DebtLookup {
	return func(ctx context.Context, from, to time.Time) ([]models.Debt, error) {
		return s.source.DebtsDueBetween(ctx, userID, from, to)
	}
}

func (s *Service) budgetThresholds(prefs *models.Preferences) (float64, float64) {
	if prefs != nil && prefs.WarnPct > 0 && prefs.WarnPct < prefs.DangerPct {
		return prefs.WarnPct, prefs.DangerPct
	}
	return s.config.BudgetWarnPct, s.config.BudgetDangerPct
}

func (s *Service) maxHorizon() int {
	longest := 0
	for _, h := range s.config.ForecastHorizons {
		if h > longest {
			longest = h
		}
	}
	return longest
}

// Forecast returns the configured horizons for the user
func (s *Service) Forecast(ctx context.Context, userID int64, includeFuture bool) ([]models.ForecastHorizon, error) {
	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	today := recurrence.Date(s.now())
	var (
		balance    float64
		schedules  []models.RecurringSchedule
		exceptions []models.ScheduleException
		pending    []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		balance, err = s.source.TotalBalance(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		schedules, err = s.source.ActiveSchedules(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		exceptions, err = s.source.ScheduleExceptions(gctx, userID)
		return err
	})
	if includeFuture {
		g.Go(func() error {
			var err error
			pending, err = s.source.PendingTransactions(gctx, userID, today.AddDate(0, 0, s.maxHorizon()))
			if err != nil {
				s.log.WithField("user_id", userID).Warnf("Pending transactions unavailable, forecast excludes them: %v", err)
				pending = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: failed to load forecast inputs: %w", ErrComputationFailed, err)
	}

	return s.forecast.Project(ctx, forecast.Input{
		Today:           today,
		StartingBalance: balance,
		Schedules:       schedules,
		Exceptions:      exceptions,
		Pending:         pending,
		IncludePending:  includeFuture,
		Debts:           s.debtLookup(userID),
	}, s.config.ForecastHorizons), nil
}

// Mute hides insightID for the given number of days (DefaultMuteDays when zero)
// and drops the user's cached payloads
func (s *Service) Mute(ctx context.Context, userID int64, insightID string, days int) (time.Time, error) {
	if days == 0 {
		days = DefaultMuteDays
	}
	if insightID == "" {
		return time.Time{}, fmt.Errorf("%w: insight id is required", ErrInvalidArgument)
	}
	if days < 1 || days > MaxMuteDays {
		return time.Time{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidArgument, MaxMuteDays)
	}

	until := s.now().UTC().Add(time.Duration(days) * 24 * time.Hour)
	if err := s.dismissals.Mute(ctx, userID, insightID, until); err != nil {
		return time.Time{}, err
	}
	s.invalidate(ctx, userID)
	return until, nil
}

// Unmute lifts a mute and drops the user's cached payloads
func (s *Service) Unmute(ctx context.Context, userID int64, insightID string) error {
	if insightID == "" {
		return fmt.Errorf("%w: insight id is required", ErrInvalidArgument)
	}
	if err := s.dismissals.Unmute(ctx, userID, insightID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// invalidate is best effort: a failure leaves payloads that expire with the TTL
func (s *Service) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.WithField("user_id", userID).Warnf("Cache invalidation failed: %v", err)
	}
}

// PruneResult counts the rows removed by Prune
type PruneResult struct {
	CacheEntries int64
	Dismissals   int64
}

// Prune removes expired cache entries and expired dismissals
func (s *Service) Prune(ctx context.Context) (PruneResult, error) {
	var res PruneResult
	var errs []error

	n, err := s.cache.Prune(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to prune cache: %w", err))
	}
	res.CacheEntries = n

	n, err = s.dismissals.Prune(ctx, s.now().UTC())
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to prune dismissals: %w", err))
	}
	res.Dismissals = n

	return res, errors.Join(errs...)
}
