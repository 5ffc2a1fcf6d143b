package directory

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/octobees/funeral-directory/internal/entity"
	"github.com/octobees/funeral-directory/internal/textnorm"
)

// AvailableCities lists the distinct cities of all company locations, limited
// to county when it is set, in Romanian alphabetical order.
func AvailableCities(companies []entity.Company, county string) []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, company := range companies {
		for _, loc := range company.Locations {
			if county != "" && loc.CountyName() != county {
				continue
			}
			city := loc.CityName()
			if city == "" {
				continue
			}
			if _, dup := seen[city]; dup {
				continue
			}
			seen[city] = struct{}{}
			cities = append(cities, city)
		}
	}
	collate.New(language.Romanian).SortStrings(cities)
	return cities
}

// MatchCities keeps the cities whose normalized name contains query.
func MatchCities(cities []string, query string) []string {
	matched := make([]string, 0, len(cities))
	for _, city := range cities {
		if textnorm.Contains(city, query) {
			matched = append(matched, city)
		}
	}
	return matched
}

// MatchCounties keeps the counties whose normalized name contains query.
func MatchCounties(counties []entity.County, query string) []entity.County {
	matched := make([]entity.County, 0, len(counties))
	for _, county := range counties {
		if textnorm.Contains(county.Name, query) {
			matched = append(matched, county)
		}
	}
	return matched
}
