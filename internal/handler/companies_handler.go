package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/directory"
	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/geo"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/service"
)

var boundsParams = []string{"north", "south", "east", "west"}

// CompaniesHandler exposes the public directory endpoints.
type CompaniesHandler struct {
	directory *service.DirectoryService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(directoryService *service.DirectoryService) *CompaniesHandler {
	return &CompaniesHandler{directory: directoryService}
}

// List handles GET /companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	query, err := parseCompanyQuery(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	page := h.directory.Search(query)
	if len(h.directory.Snapshot().Companies) == 0 {
		return Success(c, http.StatusOK, "no companies available", page)
	}
	return Success(c, http.StatusOK, "companies retrieved", page)
}

// Get handles GET /companies/:slug requests.
func (h *CompaniesHandler) Get(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return Error(c, http.StatusBadRequest, "slug is required")
	}

	detail, err := h.directory.Company(slug)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load company")
	}
	return Success(c, http.StatusOK, "company retrieved", detail)
}

// Counties handles GET /counties requests.
func (h *CompaniesHandler) Counties(c echo.Context) error {
	counties := h.directory.Counties(strings.TrimSpace(c.QueryParam("q")))
	return Success(c, http.StatusOK, "counties retrieved", counties)
}

// Cities handles GET /cities requests. The county is required.
func (h *CompaniesHandler) Cities(c echo.Context) error {
	county := strings.TrimSpace(c.QueryParam("county"))
	if county == "" {
		return Error(c, http.StatusBadRequest, "county is required")
	}
	cities := h.directory.Cities(county, strings.TrimSpace(c.QueryParam("q")))
	return Success(c, http.StatusOK, "cities retrieved", cities)
}

// Map handles GET /map requests.
func (h *CompaniesHandler) Map(c echo.Context) error {
	query, err := parseCompanyQuery(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	var state service.MapState
	autoFit, fitted := true, -1
	if err := echo.QueryParamsBinder(c).
		String("selected", &state.SelectedSlug).
		Int("bounds_events", &state.BoundsEvents).
		Bool("auto_fit", &autoFit).
		Int("fitted_count", &fitted).
		BindError(); err != nil {
		return Error(c, http.StatusBadRequest, "invalid map parameters")
	}
	if state.BoundsEvents < 0 {
		return Error(c, http.StatusBadRequest, "bounds_events must not be negative")
	}
	state.SelectedSlug = strings.TrimSpace(state.SelectedSlug)
	state.AutoFitDisabled = !autoFit
	if fitted >= 0 {
		state.FittedCount = &fitted
	}

	return Success(c, http.StatusOK, "map retrieved", h.directory.Map(query, state))
}

// parseCompanyQuery reads the filter, display limit and viewport parameters
// shared by the listing and map endpoints.
func parseCompanyQuery(c echo.Context) (dto.CompanyQuery, error) {
	var (
		search, county, countyQuery, city, cityQuery string
		verified, nonStop, shuffle                   bool
		limit                                        int
		seed                                         uint64
	)
	if err := echo.QueryParamsBinder(c).
		String("search", &search).
		String("county", &county).
		String("county_q", &countyQuery).
		String("city", &city).
		String("city_q", &cityQuery).
		Bool("is_verified", &verified).
		Bool("is_non_stop", &nonStop).
		Bool("shuffle", &shuffle).
		Int("limit", &limit).
		Uint64("shuffle_seed", &seed).
		BindError(); err != nil {
		return dto.CompanyQuery{}, errors.New("invalid query parameters")
	}
	if limit < 0 {
		return dto.CompanyQuery{}, errors.New("limit must not be negative")
	}

	sel := directory.Selection{}
	switch {
	case strings.TrimSpace(county) != "":
		sel = sel.SelectCounty(county)
	case strings.TrimSpace(countyQuery) != "":
		sel = sel.TypeCounty(countyQuery)
	}
	switch {
	case strings.TrimSpace(city) != "":
		sel = sel.SelectCity(city)
	case strings.TrimSpace(cityQuery) != "":
		sel = sel.TypeCity(cityQuery)
	}
	criteria := sel.Criteria
	criteria.NameQuery = search
	criteria.VerifiedOnly = verified
	criteria.NonStopOnly = nonStop

	bounds, err := parseBounds(c)
	if err != nil {
		return dto.CompanyQuery{}, err
	}
	return dto.CompanyQuery{
		Criteria:    criteria.Trimmed(),
		Limit:       limit,
		Shuffle:     shuffle,
		ShuffleSeed: seed,
		Bounds:      bounds,
	}, nil
}

// parseBounds reads the viewport. Either all four edges are given or none.
func parseBounds(c echo.Context) (*geo.Bounds, error) {
	params := c.QueryParams()
	present := 0
	for _, name := range boundsParams {
		if params.Has(name) {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present != len(boundsParams) {
		return nil, errors.New("bounds require north, south, east and west")
	}

	var b geo.Bounds
	if err := echo.QueryParamsBinder(c).
		Float64("north", &b.North).
		Float64("south", &b.South).
		Float64("east", &b.East).
		Float64("west", &b.West).
		BindError(); err != nil {
		return nil, errors.New("invalid bounds")
	}
	if b.South > b.North || b.West > b.East {
		return nil, errors.New("invalid bounds")
	}
	return &b, nil
}
