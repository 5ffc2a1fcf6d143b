package directory

import (
	"math/rand/v2"

	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/textnorm"
)

// Filter returns the companies satisfying every active criterion, in arrival order.
func Filter(companies []entity.Company, criteria Criteria) []entity.Company {
	matched := make([]entity.Company, 0, len(companies))
	for i := range companies {
		if Matches(&companies[i], criteria) {
			matched = append(matched, companies[i])
		}
	}
	return matched
}

// Matches reports whether a single company satisfies the criteria.
func Matches(company *entity.Company, criteria Criteria) bool {
	if !textnorm.Contains(company.Name, criteria.NameQuery) {
		return false
	}
	if criteria.VerifiedOnly && !company.IsVerified {
		return false
	}
	if criteria.NonStopOnly && !company.IsNonStop {
		return false
	}
	if !matchesPlace(company.Locations, criteria.County, criteria.CountyQuery, entity.Location.CountyName) {
		return false
	}
	return matchesPlace(company.Locations, criteria.City, criteria.CityQuery, entity.Location.CityName)
}

func matchesPlace(locations []entity.Location, exact, query string, field func(entity.Location) string) bool {
	switch {
	case exact != "":
		for _, loc := range locations {
			if field(loc) == exact {
				return true
			}
		}
		return false
	case query != "":
		for _, loc := range locations {
			if textnorm.Contains(field(loc), query) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Shuffle returns a randomly permuted copy of companies. The order is not
// reproducible; rng may be nil to use the global source.
func Shuffle(companies []entity.Company, rng *rand.Rand) []entity.Company {
	shuffled := make([]entity.Company, len(companies))
	copy(shuffled, companies)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng == nil {
		rand.Shuffle(len(shuffled), swap)
	} else {
		rng.Shuffle(len(shuffled), swap)
	}
	return shuffled
}
