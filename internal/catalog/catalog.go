// Package catalog holds country metadata (names and areas) used to resolve
// user input to country codes and to render routes with display names.
package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/persistorai/borderroute/internal/models"
)

// CountryFetcher fetches the full country list.
type CountryFetcher interface {
	Countries(ctx context.Context) ([]models.Country, error)
}

// loadTimeout bounds the shared catalog fetch.
const loadTimeout = time.Minute

// Catalog is an in-memory index of countries, loaded once on first use.
type Catalog struct {
	fetcher CountryFetcher
	group   singleflight.Group

	mu     sync.RWMutex
	byCode map[models.NodeID]models.Country
	byName map[string]models.NodeID
	sorted []models.Country
}

// New creates a Catalog backed by fetcher.
func New(fetcher CountryFetcher) *Catalog {
	return &Catalog{fetcher: fetcher}
}

// Load fetches and indexes the country list if it has not been loaded yet.
// Concurrent callers share one fetch; a failed fetch is retried on the next call.
func (c *Catalog) Load(ctx context.Context) error {
	if c.Loaded() {
		return nil
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := c.group.DoChan("load", func() (any, error) {
		if c.Loaded() {
			return nil, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		countries, err := c.fetcher.Countries(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("loading country catalog: %w", err)
		}

		c.index(countries)

		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("loading country catalog: %w", ctx.Err())
	}
}

// Loaded reports whether the catalog has been populated.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.byCode != nil
}

// Len returns the number of countries in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byCode)
}

func (c *Catalog) index(countries []models.Country) {
	byCode := make(map[models.NodeID]models.Country, len(countries))
	byName := make(map[string]models.NodeID, len(countries))

	for _, country := range countries {
		byCode[country.Code] = country
		if country.Name != "" {
			byName[strings.ToLower(country.Name)] = country.Code
		}
	}

	sorted := make([]models.Country, 0, len(byCode))
	for _, country := range byCode {
		sorted = append(sorted, country)
	}

	slices.SortFunc(sorted, func(a, b models.Country) int {
		if n := cmp.Compare(b.Area, a.Area); n != 0 {
			return n
		}

		return cmp.Compare(a.Code, b.Code)
	})

	c.mu.Lock()
	c.byCode = byCode
	c.byName = byName
	c.sorted = sorted
	c.mu.Unlock()
}

// Lookup returns the country with the given code.
func (c *Catalog) Lookup(code models.NodeID) (models.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	country, ok := c.byCode[code]

	return country, ok
}

// CodeByName resolves a common name (case-insensitive) or an alpha-3 code.
func (c *Catalog) CodeByName(name string) (models.NodeID, error) {
	name = strings.TrimSpace(name)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if code, ok := c.byName[strings.ToLower(name)]; ok {
		return code, nil
	}

	if len(name) == 3 {
		if _, ok := c.byCode[models.NormalizeCode(name)]; ok {
			return models.NormalizeCode(name), nil
		}
	}

	return "", fmt.Errorf("%w: %q", models.ErrCountryNotFound, name)
}

// Name returns the display name of code, or the code itself when unknown.
func (c *Catalog) Name(code models.NodeID) string {
	if country, ok := c.Lookup(code); ok && country.Name != "" {
		return country.Name
	}

	return string(code)
}

// Names maps a route to display names.
func (c *Catalog) Names(route models.Route) []string {
	out := make([]string, len(route))
	for i, id := range route {
		out[i] = c.Name(id)
	}

	return out
}

// Sorted returns all countries ordered by area, largest first.
func (c *Catalog) Sorted() []models.Country {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.sorted)
}
