package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/funeral-directory/internal/directory"
	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/geo"
	"github.com/octobees/funeral-directory/internal/logger"
	"github.com/octobees/funeral-directory/internal/metrics"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/textnorm"
)

// Snapshot is the in-memory copy of the directory every query runs against.
type Snapshot struct {
	Companies []entity.Company `json:"companies"`
	Counties  []entity.County  `json:"counties"`
	LoadedAt  time.Time        `json:"loaded_at"`
}

// SnapshotCache stores a serialized snapshot shared between instances.
type SnapshotCache interface {
	Load(ctx context.Context, dest any) (bool, error)
	Store(ctx context.Context, snapshot any) error
	Invalidate(ctx context.Context) error
}

// DirectoryOption customises a DirectoryService.
type DirectoryOption func(*DirectoryService)

// WithSnapshotCache shares loaded snapshots through cache.
func WithSnapshotCache(cache SnapshotCache) DirectoryOption {
	return func(s *DirectoryService) { s.cache = cache }
}

// WithDirectoryLogger sets the logger used for load failures.
func WithDirectoryLogger(log *logger.Logger) DirectoryOption {
	return func(s *DirectoryService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDirectoryMetrics records snapshot loads and size.
func WithDirectoryMetrics(m *metrics.Metrics) DirectoryOption {
	return func(s *DirectoryService) { s.metrics = m }
}

// WithPhoneRegion sets the region used to format phone numbers for display.
func WithPhoneRegion(region string) DirectoryOption {
	return func(s *DirectoryService) {
		if region != "" {
			s.region = region
		}
	}
}

// DirectoryService answers listing, detail, place and map queries from a
// snapshot of the active companies.
type DirectoryService struct {
	companies repository.CompaniesRepository
	counties  repository.CountiesRepository
	cache     SnapshotCache
	log       *logger.Logger
	metrics   *metrics.Metrics
	region    string
	now       func() time.Time

	mu     sync.RWMutex
	snap   Snapshot
	bySlug map[string]int
	loaded bool
}

// NewDirectoryService creates a new instance of DirectoryService with an empty snapshot.
func NewDirectoryService(companies repository.CompaniesRepository, counties repository.CountiesRepository, opts ...DirectoryOption) *DirectoryService {
	s := &DirectoryService{
		companies: companies,
		counties:  counties,
		log:       logger.Nop(),
		region:    defaultPhoneRegion,
		now:       time.Now,
		bySlug:    map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load installs a snapshot from the cache when one is available, otherwise
// from the database. On failure the previous snapshot stays in place.
func (s *DirectoryService) Load(ctx context.Context) error {
	if s.cache != nil {
		var cached Snapshot
		hit, err := s.cache.Load(ctx, &cached)
		switch {
		case err != nil:
			s.log.Warn(ctx, "directory cache read failed", err)
			s.metrics.IncDirectoryLoad("cache", "error")
		case hit:
			s.install(cached)
			s.metrics.IncDirectoryLoad("cache", "hit")
			return nil
		default:
			s.metrics.IncDirectoryLoad("cache", "miss")
		}
	}
	return s.loadFromDatabase(ctx)
}

// Reload drops the shared cache and rebuilds the snapshot from the database.
func (s *DirectoryService) Reload(ctx context.Context) (Snapshot, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn(ctx, "directory cache invalidate failed", err)
		}
	}
	if err := s.loadFromDatabase(ctx); err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// StartRefresh reloads the snapshot every interval until ctx is cancelled.
// A non-positive interval disables refreshing.
func (s *DirectoryService) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Reload(ctx); err != nil {
					s.log.Error(ctx, "directory refresh failed", err)
				}
			}
		}
	}()
}

func (s *DirectoryService) loadFromDatabase(ctx context.Context) error {
	companies, err := s.companies.ListDirectory(ctx)
	if err != nil {
		s.metrics.IncDirectoryLoad("database", "error")
		return fmt.Errorf("load companies: %w", err)
	}
	counties, err := s.counties.List(ctx)
	if err != nil {
		s.metrics.IncDirectoryLoad("database", "error")
		return fmt.Errorf("load counties: %w", err)
	}

	snap := Snapshot{Companies: companies, Counties: counties, LoadedAt: s.now().UTC()}
	s.install(snap)
	s.metrics.IncDirectoryLoad("database", "ok")

	if s.cache != nil {
		if err := s.cache.Store(ctx, snap); err != nil {
			s.log.Warn(ctx, "directory cache write failed", err)
		}
	}
	s.log.InfoFields(ctx, "directory loaded", map[string]any{
		"companies": len(companies),
		"counties":  len(counties),
	})
	return nil
}

func (s *DirectoryService) install(snap Snapshot) {
	if snap.Companies == nil {
		snap.Companies = []entity.Company{}
	}
	if snap.Counties == nil {
		snap.Counties = []entity.County{}
	}
	index := make(map[string]int, len(snap.Companies))
	for i, c := range snap.Companies {
		index[c.Slug] = i
	}

	s.mu.Lock()
	s.snap = snap
	s.bySlug = index
	s.loaded = true
	s.mu.Unlock()

	s.metrics.SetCompanies(len(snap.Companies))
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *DirectoryService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Loaded reports whether any snapshot has been installed.
func (s *DirectoryService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *DirectoryService) lookup(slug string) (*entity.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, false
	}
	return &s.snap.Companies[i], true
}

// Search filters the directory and returns the visible page. Shuffling, when
// requested, happens before the display limit is applied. The limit only
// applies in browse mode: no criteria and no viewport bounds.
func (s *DirectoryService) Search(query dto.CompanyQuery) dto.CompanyPage {
	criteria := query.Criteria.Trimmed()
	filtered := s.filter(criteria, query.Bounds)
	var seed uint64
	if query.Shuffle {
		seed = shuffleSeed(query.ShuffleSeed)
		filtered = directory.Shuffle(filtered, rand.New(rand.NewPCG(seed, seed)))
	}
	// Viewport bounds narrow the list like any other filter.
	var page directory.Page
	if query.Bounds != nil {
		page = directory.ShowAll(filtered, query.Limit)
	} else {
		page = directory.Paginate(filtered, criteria, query.Limit)
	}

	summaries := make([]dto.CompanySummary, 0, len(page.Items))
	for i := range page.Items {
		summaries = append(summaries, s.summarize(&page.Items[i], i))
	}
	return dto.CompanyPage{
		Companies:    summaries,
		Total:        page.Total,
		Shown:        len(summaries),
		HasMore:      page.HasMore,
		DisplayLimit: page.DisplayLimit,
		Criteria:     criteria,
		ShuffleSeed:  seed,
	}
}

const maxShuffleSeed = 1<<53 - 1

// shuffleSeed keeps a client-supplied seed or draws a fresh one. Seeds stay
// below 2^53 so they survive a round trip through JavaScript numbers.
func shuffleSeed(requested uint64) uint64 {
	if requested != 0 {
		return requested
	}
	return rand.Uint64N(maxShuffleSeed) + 1
}

func (s *DirectoryService) filter(criteria directory.Criteria, bounds *geo.Bounds) []entity.Company {
	snap := s.Snapshot()
	filtered := directory.Filter(snap.Companies, criteria)
	if bounds != nil {
		filtered = geo.FilterInBounds(filtered, *bounds)
	}
	return filtered
}

// Company returns the detail view of the company with slug.
func (s *DirectoryService) Company(slug string) (dto.CompanyDetail, error) {
	company, ok := s.lookup(slug)
	if !ok {
		return dto.CompanyDetail{}, repository.ErrCompanyNotFound
	}

	detail := dto.CompanyDetail{
		Company:       *company,
		ServiceLabels: serviceLabels(company.Services),
	}
	if phone, ok := company.PrimaryPhone(); ok {
		detail.PrimaryPhone = s.phoneView(phone.Value)
	}
	if email, ok := company.PrimaryEmail(); ok {
		value := email.Value
		detail.PrimaryEmail = &value
	}
	if hq, ok := company.Headquarters(); ok {
		detail.Headquarters = &hq
	}
	if company.ReviewSummary != nil {
		for _, tag := range company.ReviewSummary.TopSentimentTags {
			if label, ok := entity.SentimentLabel(tag); ok {
				detail.SentimentLabels = append(detail.SentimentLabels, label)
			}
		}
	}
	if res, ok := geo.Resolve(company); ok {
		detail.Position = &res
	}
	return detail, nil
}

// FindCompanyID resolves a slug to an identifier, first from the snapshot and
// then from the database for companies loaded after it.
func (s *DirectoryService) FindCompanyID(ctx context.Context, slug string) (uuid.UUID, error) {
	if company, ok := s.lookup(slug); ok {
		return company.ID, nil
	}
	return s.companies.FindIDBySlug(ctx, slug)
}

// Counties returns the counties whose name contains query, ignoring case and diacritics.
func (s *DirectoryService) Counties(query string) []entity.County {
	return directory.MatchCounties(s.Snapshot().Counties, query)
}

// Cities lists the cities with companies in county that match query. county
// is matched against the county list ignoring case and diacritics; the
// canonical name is returned.
func (s *DirectoryService) Cities(county, query string) dto.CitiesResponse {
	snap := s.Snapshot()
	canonical := county
	key := textnorm.Normalize(county)
	for _, c := range snap.Counties {
		if textnorm.Normalize(c.Name) == key {
			canonical = c.Name
			break
		}
	}

	cities := directory.MatchCities(directory.AvailableCities(snap.Companies, canonical), query)
	resp := dto.CitiesResponse{County: canonical, Cities: make([]dto.CityResponse, 0, len(cities))}
	for _, city := range cities {
		resp.Cities = append(resp.Cities, dto.CityResponse{Name: city})
	}
	return resp
}

// MapState is the viewport state a stateless map client echoes back.
type MapState struct {
	SelectedSlug    string
	BoundsEvents    int
	AutoFitDisabled bool
	FittedCount     *int
}

// Map places the filtered companies on the map and decides whether the
// client should reframe. Reported bounds count as a bounds change but do not
// restrict the markers.
func (s *DirectoryService) Map(query dto.CompanyQuery, state MapState) dto.MapResponse {
	criteria := query.Criteria.Trimmed()
	filtered := s.filter(criteria, nil)

	var (
		selected   *entity.Company
		selectedID uuid.UUID
	)
	if state.SelectedSlug != "" {
		if company, ok := s.lookup(state.SelectedSlug); ok {
			selected = company
			selectedID = company.ID
		}
	}

	markers := geo.Markers(filtered, selectedID)
	viewport := geo.RestoreViewport(state.BoundsEvents, state.AutoFitDisabled)
	if state.FittedCount != nil {
		viewport.MarkFitted(*state.FittedCount)
	}
	if query.Bounds != nil {
		viewport.ReportBounds(*query.Bounds)
	}

	resp := dto.MapResponse{
		Markers:     markers,
		InitialView: geo.InitialView(selected, markers),
	}
	if view, ok := viewport.AutoFit(markers); ok {
		resp.View = &view
	}
	if count, fitted := viewport.FittedCount(); fitted {
		resp.FittedCount = &count
	}
	resp.AutoFitEnabled = viewport.AutoFitEnabled()
	resp.UserInteracted = viewport.UserInteracted()
	resp.BoundsEvents = viewport.BoundsEvents()
	return resp
}

func (s *DirectoryService) summarize(company *entity.Company, index int) dto.CompanySummary {
	summary := dto.CompanySummary{
		ID:          company.ID,
		Name:        company.Name,
		Slug:        company.Slug,
		Motto:       company.Motto,
		IsVerified:  company.IsVerified,
		IsNonStop:   company.IsNonStop,
		Services:    serviceLabels(company.Services),
		Rating:      company.Metadata.Rating,
		ReviewCount: company.Metadata.ReviewCount,
	}
	if hq, ok := company.Headquarters(); ok {
		summary.City = hq.CityName()
		summary.County = hq.CountyName()
		if hq.Address != "" {
			address := hq.Address
			summary.Address = &address
		}
	}
	if phone, ok := company.PrimaryPhone(); ok {
		summary.PrimaryPhone = s.phoneView(phone.Value)
	}
	if company.ReviewSummary != nil && company.ReviewSummary.AverageRating != nil {
		summary.Rating = company.ReviewSummary.AverageRating
		total := company.ReviewSummary.TotalReviews
		summary.ReviewCount = &total
	}
	if res, ok := geo.ResolveWithOffset(company, index); ok {
		summary.Position = &res
	}
	return summary
}

func (s *DirectoryService) phoneView(value string) *dto.PhoneView {
	display, dial := FormatPhone(value, s.region)
	return &dto.PhoneView{Value: value, Display: display, DialURI: dial}
}

func serviceLabels(services []entity.Service) []dto.ServiceLabel {
	labels := make([]dto.ServiceLabel, 0, len(services))
	for _, svc := range services {
		label := svc.ServiceTag.Label()
		labels = append(labels, dto.ServiceLabel{Tag: svc.ServiceTag, RO: label.RO, EN: label.EN})
	}
	return labels
}
