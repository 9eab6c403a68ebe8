// Package service provides business logic between API handlers and the
// search engine, resolvers and stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/domain"
	"github.com/persistorai/borderroute/internal/metrics"
	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/resolver"
	"github.com/persistorai/borderroute/internal/search"
)

// Directory is the country catalog interface consumed by RouteService.
// Defined at the consumer so the catalog package depends on no service types.
type Directory interface {
	Load(ctx context.Context) error
	Loaded() bool
	CodeByName(name string) (models.NodeID, error)
	Lookup(code models.NodeID) (models.Country, bool)
	Names(route models.Route) []string
	Sorted() []models.Country
}

// Compile-time check: *RouteService must satisfy domain.RouteService.
var _ domain.RouteService = (*RouteService)(nil)

// RouteOptions tunes searches run by RouteService.
type RouteOptions struct {
	DefaultMode string
	Timeout     time.Duration
	MaxRounds   int
	Concurrency int
}

// RouteService resolves user input to countries and runs route searches
// against the resolver selected by the request mode.
type RouteService struct {
	catalog   Directory
	resolvers map[string]resolver.Resolver
	opts      RouteOptions
	log       *logrus.Logger
}

// NewRouteService creates a RouteService. resolvers maps a lookup mode to the
// resolver serving it; every resolver is instrumented with lookup metrics.
func NewRouteService(
	catalog Directory,
	resolvers map[string]resolver.Resolver,
	opts RouteOptions,
	log *logrus.Logger,
) *RouteService {
	if opts.DefaultMode == "" {
		opts.DefaultMode = models.ModeAPI
	}

	instrumented := make(map[string]resolver.Resolver, len(resolvers))
	for mode, r := range resolvers {
		if r != nil {
			instrumented[mode] = instrument(mode, r)
		}
	}

	return &RouteService{catalog: catalog, resolvers: instrumented, opts: opts, log: log}
}

// FindRoutes returns every shortest land route between the requested countries.
// A failed lookup is not an error: the report has OK false and the query count
// issued so far. Errors are returned only for invalid requests or an
// unavailable catalog.
func (s *RouteService) FindRoutes(ctx context.Context, req models.RouteRequest) (*models.RouteReport, error) {
	return s.run(ctx, req, nil)
}

// StreamRoutes runs the same search as FindRoutes, calling emit after every
// completed round.
func (s *RouteService) StreamRoutes(
	ctx context.Context,
	req models.RouteRequest,
	emit func(models.RoundEvent),
) (*models.RouteReport, error) {
	return s.run(ctx, req, emit)
}

// Countries returns the catalog ordered by area, largest first.
func (s *RouteService) Countries(ctx context.Context) ([]models.Country, error) {
	if err := s.catalog.Load(ctx); err != nil {
		return nil, err
	}

	return s.catalog.Sorted(), nil
}

// Ready reports whether the catalog has been loaded.
func (s *RouteService) Ready() bool {
	return s.catalog.Loaded()
}

// Modes returns the lookup modes this service can serve.
func (s *RouteService) Modes() []string {
	out := make([]string, 0, len(s.resolvers))
	for _, mode := range []string{models.ModeAPI, models.ModeTable, models.ModeStore} {
		if _, ok := s.resolvers[mode]; ok {
			out = append(out, mode)
		}
	}

	return out
}

func (s *RouteService) run(
	ctx context.Context,
	req models.RouteRequest,
	emit func(models.RoundEvent),
) (*models.RouteReport, error) {
	from, to, r, err := s.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"from": from.Code,
		"to":   to.Code,
		"mode": req.Mode,
	})
	log.Debug("route.search")

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	engine := search.New(
		search.WithMaxRounds(s.opts.MaxRounds),
		search.WithConcurrency(s.opts.Concurrency),
		search.WithObserver(func(round search.Round) {
			log.WithFields(logrus.Fields{
				"round":    round.Index,
				"side":     round.Side.String(),
				"expanded": len(round.Expanded),
				"frontier": round.FrontierSize,
				"queries":  round.QueryCount,
			}).Debug("route.round")

			if emit != nil {
				emit(roundEvent(round))
			}
		}),
	)

	start := time.Now()
	res := engine.Search(ctx, from.Code, to.Code, r)
	res.Sort()
	elapsed := time.Since(start)

	metrics.SearchesTotal.WithLabelValues(res.State.String()).Inc()
	metrics.SearchRounds.Observe(float64(res.Rounds))
	metrics.SearchQueries.Observe(float64(res.QueryCount))

	report := s.report(from, to, req.Mode, res)
	report.DurationMS = elapsed.Milliseconds()

	fields := logrus.Fields{
		"state":   res.State.String(),
		"routes":  len(res.Routes),
		"queries": res.QueryCount,
		"rounds":  res.Rounds,
		"elapsed": elapsed.String(),
	}
	if res.Err != nil {
		log.WithFields(fields).WithError(res.Err).Warn("route search failed")
	} else {
		log.WithFields(fields).Info("route search finished")
	}

	return report, nil
}

// prepare validates the request, resolves both endpoints and picks the resolver.
func (s *RouteService) prepare(
	ctx context.Context,
	req *models.RouteRequest,
) (from, to models.Country, r resolver.Resolver, err error) {
	if err = req.Validate(); err != nil {
		if errors.Is(err, models.ErrSameEndpoints) || errors.Is(err, models.ErrUnsupportedMode) {
			return from, to, nil, err
		}

		return from, to, nil, fmt.Errorf("%w: %w", models.ErrInvalidEndpoints, err)
	}

	if req.Mode == "" {
		req.Mode = s.opts.DefaultMode
	}

	r, ok := s.resolvers[req.Mode]
	if !ok {
		return from, to, nil, fmt.Errorf("%w: %q is not enabled", models.ErrUnsupportedMode, req.Mode)
	}

	if err = s.catalog.Load(ctx); err != nil {
		return from, to, nil, err
	}

	if from, err = s.country(req.From); err != nil {
		return from, to, nil, err
	}

	if to, err = s.country(req.To); err != nil {
		return from, to, nil, err
	}

	if from.Code == to.Code {
		return from, to, nil, models.ErrSameEndpoints
	}

	return from, to, r, nil
}

func (s *RouteService) country(input string) (models.Country, error) {
	code, err := s.catalog.CodeByName(input)
	if err != nil {
		return models.Country{}, fmt.Errorf("%w: %w", models.ErrInvalidEndpoints, err)
	}

	country, _ := s.catalog.Lookup(code)

	return country, nil
}

func (s *RouteService) report(from, to models.Country, mode string, res *search.Result) *models.RouteReport {
	report := &models.RouteReport{
		From:       from,
		To:         to,
		Mode:       mode,
		OK:         res.OK,
		State:      res.State.String(),
		QueryCount: res.QueryCount,
		Routes:     make([]models.RouteView, 0, len(res.Routes)),
	}

	for _, route := range res.Routes {
		names := s.catalog.Names(route)
		report.Routes = append(report.Routes, models.RouteView{
			Codes: route.Codes(),
			Names: names,
			Hops:  route.Hops(),
			Text:  strings.Join(names, models.RouteSeparator),
		})
	}

	switch {
	case !res.OK:
		report.Message = models.MessageLookupFailed
		if res.Err != nil {
			report.Error = res.Err.Error()
		}
	case len(res.Routes) == 0:
		report.Message = models.MessageNoRoutes
	}

	return report
}

func roundEvent(round search.Round) models.RoundEvent {
	expanded := make([]string, len(round.Expanded))
	for i, id := range round.Expanded {
		expanded[i] = string(id)
	}

	return models.RoundEvent{
		Type:         "round",
		Index:        round.Index,
		Side:         round.Side.String(),
		Expanded:     expanded,
		FrontierSize: round.FrontierSize,
		QueryCount:   round.QueryCount,
	}
}
