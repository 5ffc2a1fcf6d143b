package directory

import "github.com/octobees/funeral-directory/internal/entity"

const (
	// InitialDisplayLimit is the number of companies shown in browse mode before "show more".
	InitialDisplayLimit = 6
	// DisplayLimitStep is how many more companies each "show more" reveals.
	DisplayLimitStep = 6
)

// Page is the visible window over a filtered result set.
type Page struct {
	Items        []entity.Company `json:"items"`
	Total        int              `json:"total"`
	HasMore      bool             `json:"has_more"`
	DisplayLimit int              `json:"display_limit"`
}

// Pager tracks the growing display limit of browse mode. Any change of
// criteria resets the limit.
type Pager struct {
	limit    int
	criteria Criteria
}

// NewPager returns a pager at the initial limit.
func NewPager() *Pager {
	return &Pager{limit: InitialDisplayLimit}
}

// DisplayLimit returns the current limit.
func (p *Pager) DisplayLimit() int {
	return p.limit
}

// Update records the current criteria and resets the limit when they changed.
func (p *Pager) Update(criteria Criteria) {
	if criteria != p.criteria {
		p.limit = InitialDisplayLimit
	}
	p.criteria = criteria
}

// ShowMore grows the limit by one step.
func (p *Pager) ShowMore() {
	p.limit += DisplayLimitStep
}

// Window returns the visible part of filtered for the recorded criteria.
func (p *Pager) Window(filtered []entity.Company) Page {
	return Paginate(filtered, p.criteria, p.limit)
}

// Paginate applies the display limit only in browse mode: when any criterion
// is active the whole filtered set is returned. A non-positive limit means the
// initial limit.
func Paginate(filtered []entity.Company, criteria Criteria, limit int) Page {
	if limit <= 0 {
		limit = InitialDisplayLimit
	}
	total := len(filtered)
	if filtered == nil {
		filtered = []entity.Company{}
	}
	if criteria.Active() {
		return ShowAll(filtered, limit)
	}
	visible := filtered
	if total > limit {
		visible = filtered[:limit]
	}
	return Page{
		Items:        visible,
		Total:        total,
		HasMore:      total > limit,
		DisplayLimit: limit,
	}
}

// ShowAll returns the whole filtered set, as for an active filter. limit is
// only echoed back; a non-positive limit reports the initial limit.
func ShowAll(filtered []entity.Company, limit int) Page {
	if limit <= 0 {
		limit = InitialDisplayLimit
	}
	if filtered == nil {
		filtered = []entity.Company{}
	}
	return Page{Items: filtered, Total: len(filtered), DisplayLimit: limit}
}
