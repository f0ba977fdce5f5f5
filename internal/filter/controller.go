// Package filter holds the cascading year -> company selection state and
// sequences the fetches that derive option lists and detail records from it.
package filter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

const defaultAnalyticsTimeout = 5 * time.Second

// Options configures a Controller
type Options struct {
	// Now defaults to time.Now. It dates analytics events and the fallback year window.
	Now func() time.Time
	// OnChange receives a copy of the state after every change. It may be
	// called from any goroutine and must not block.
	OnChange func(State)
	// AnalyticsTimeout bounds each best-effort analytics write.
	AnalyticsTimeout time.Duration
	Logger           *zerolog.Logger
}

// fetch tracks the latest request issued for one derived entity
type fetch struct {
	gen     uint64
	pending bool
	cancel  context.CancelFunc
}

// supersede cancels the in-flight request, if any, and makes its result stale
func (f *fetch) supersede() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
	f.pending = false
}

// Controller owns the selection state. Operations return immediately; the
// fetches they trigger run in their own goroutines and only the most recent
// request per entity may write its result back.
type Controller struct {
	src              DataSource
	now              func() time.Time
	onChange         func(State)
	analyticsTimeout time.Duration
	logger           zerolog.Logger

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	state     State
	years     fetch
	companies fetch
	details   fetch
}

// NewController creates a controller reading from src
func NewController(src DataSource, opts Options) *Controller {
	c := &Controller{
		src:              src,
		now:              opts.Now,
		onChange:         opts.OnChange,
		analyticsTimeout: opts.AnalyticsTimeout,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.analyticsTimeout <= 0 {
		c.analyticsTimeout = defaultAnalyticsTimeout
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	} else {
		c.logger = logger.Component("filter")
	}
	c.ctx, c.stop = context.WithCancel(context.Background())
	return c
}

// LoadYears replaces the year list with the merged years of every source.
// On failure the list falls back to the current year and the four before it.
func (c *Controller) LoadYears() {
	c.update(func() {
		c.loadYearsLocked()
	})
}

// SelectYear sets the year and clears everything that depended on the
// previous one before the company list for the new year is fetched.
// A nil year also clears the company list.
func (c *Controller) SelectYear(year *int) {
	c.update(func() {
		c.details.supersede()
		c.companies.supersede()
		c.state.Company = nil
		c.state.Companies = nil
		c.state.clearDetails()
		c.state.clearError()

		if year == nil {
			c.state.Year = nil
			return
		}
		y := *year
		c.state.Year = &y
		c.loadCompaniesLocked(y)
	})
}

// SelectCompany sets the company by display name. With a year selected the
// detail record is fetched; otherwise the details are cleared. A name that is
// not in the current company list is reported as NoDataFound.
func (c *Controller) SelectCompany(name *string) {
	c.update(func() {
		c.details.supersede()
		c.state.clearDetails()
		c.state.clearError()

		if name == nil || c.state.Year == nil {
			c.state.Company = nil
			return
		}

		company, ok := models.FindCompany(c.state.Companies, *name)
		if !ok {
			c.state.Company = nil
			c.state.fail(NoDataFound, MsgNoData)
			return
		}
		c.state.Company = &company
		c.loadDetailsLocked(*c.state.Year, company)
	})
}

// Refresh reloads the year list and, with a year selected, that year's
// company list. The selection and the loaded details are kept.
func (c *Controller) Refresh() {
	c.update(func() {
		c.loadYearsLocked()
		if c.state.Year != nil {
			c.loadCompaniesLocked(*c.state.Year)
		}
	})
}

// ResetSelections clears the year, the company, the company list, the details
// and the error without fetching anything. The year list is kept.
func (c *Controller) ResetSelections() {
	c.update(func() {
		c.companies.supersede()
		c.details.supersede()
		c.state.Year = nil
		c.state.Company = nil
		c.state.Companies = nil
		c.state.clearDetails()
		c.state.clearError()
	})
}

// OpenDocument returns the link of the loaded interview document and records
// the interaction in the background. The event write never delays or fails
// the returned link.
func (c *Controller) OpenDocument(action models.AnalyticsAction) (string, bool) {
	c.mu.Lock()
	doc := c.state.InterviewDoc
	if doc == nil {
		c.mu.Unlock()
		return "", false
	}
	link, id := doc.QuestionsLink, doc.ID
	track := !c.closed
	if track {
		c.wg.Add(1)
	}
	c.mu.Unlock()

	if track {
		go c.recordEvent(action, id, c.now())
	}
	return link, true
}

// PreviewURL returns the embeddable link of the loaded interview document
func (c *Controller) PreviewURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InterviewDoc == nil {
		return ""
	}
	return helpers.EmbedURL(c.state.InterviewDoc.QuestionsLink)
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Wait blocks until every fetch and analytics write started so far has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight work and waits for it to return. Operations after
// Close change local state but start no fetches.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stop()
	c.mu.Unlock()
	c.wg.Wait()
}

// update runs fn under the lock, then publishes the resulting state
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	c.state.Loading = c.loadingLocked()
	snap := c.state.clone()
	c.mu.Unlock()
	c.emit(snap)
}

func (c *Controller) emit(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *Controller) loadingLocked() bool {
	return c.years.pending || c.companies.pending || c.details.pending
}

// startLocked issues a new request for one entity. work runs without the lock
// and returns the mutation to apply; the mutation is dropped if another
// request for the same entity was issued in the meantime.
func (c *Controller) startLocked(f *fetch, work func(ctx context.Context) func(*State)) {
	if c.closed {
		return
	}
	f.supersede()
	ctx, cancel := context.WithCancel(c.ctx)
	f.cancel = cancel
	f.pending = true
	gen := f.gen

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		apply := work(ctx)

		c.mu.Lock()
		if c.closed || f.gen != gen {
			c.mu.Unlock()
			return
		}
		f.pending = false
		f.cancel = nil
		apply(&c.state)
		c.state.Loading = c.loadingLocked()
		snap := c.state.clone()
		c.mu.Unlock()
		c.emit(snap)
	}()
}

func (c *Controller) loadYearsLocked() {
	c.startLocked(&c.years, func(ctx context.Context) func(*State) {
		rows, err := c.src.ListYears(ctx)
		if err != nil {
			fallback := helpers.RecentYears(c.now(), FallbackYearWindow)
			return func(s *State) {
				c.logger.Error().Err(err).Msg("Failed to load years")
				s.Years = fallback
				s.fail(DataUnavailable, MsgYearsUnavailable)
			}
		}

		years := models.MergeYearRows(rows)
		return func(s *State) {
			s.Years = years
			if s.Message == MsgYearsUnavailable {
				s.clearError()
			}
		}
	})
}

func (c *Controller) loadCompaniesLocked(year int) {
	c.startLocked(&c.companies, func(ctx context.Context) func(*State) {
		companies, err := c.fetchCompanies(ctx, year)
		if err != nil {
			return func(s *State) {
				c.logger.Error().Err(err).Int("year", year).Msg("Failed to load companies")
				s.Companies = []models.CompanyName{}
				s.fail(DataUnavailable, MsgCompaniesUnavailable)
			}
		}
		return func(s *State) {
			s.Companies = companies
			if s.Message == MsgCompaniesUnavailable {
				s.clearError()
			}
		}
	})
}

func (c *Controller) fetchCompanies(ctx context.Context, year int) ([]models.CompanyName, error) {
	ids, err := c.src.ListCompanyIDsForYear(ctx, year)
	if err != nil {
		return nil, err
	}
	ids = helpers.UniqueAscending(ids)
	if len(ids) == 0 {
		return []models.CompanyName{}, nil
	}

	names, err := c.src.ResolveCompanyNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	return models.MergeCompanyNames(names), nil
}

func (c *Controller) loadDetailsLocked(year int, company models.CompanyName) {
	c.startLocked(&c.details, func(ctx context.Context) func(*State) {
		details, err := c.src.GetCompanyDetails(ctx, year, company.ID)
		return func(s *State) {
			s.clearDetails()
			if err != nil {
				c.logger.Error().Err(err).Int("year", year).Str("company", company.Name).Msg("Failed to load company details")
				s.fail(TransportError, MsgDetailsFailed)
				return
			}
			if details.IsEmpty() {
				s.fail(NoDataFound, MsgNoData)
				return
			}
			s.Students = details.Students
			s.Photos = details.Photos
			s.InterviewDoc = details.Document
			s.clearError()
		}
	})
}

func (c *Controller) recordEvent(action models.AnalyticsAction, documentID int64, at time.Time) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(c.ctx, c.analyticsTimeout)
	defer cancel()

	if err := c.src.RecordAnalyticsEvent(ctx, action, documentID, at); err != nil {
		c.logger.Warn().Err(err).
			Str("action", string(action)).
			Int64("documentID", documentID).
			Msg("Failed to record analytics event")
	}
}
