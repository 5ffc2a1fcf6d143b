package directory

// Selection applies the hierarchical county/city selection rules to criteria.
// City choices are scoped to the active county, so changing the county always
// drops the city.
type Selection struct {
	Criteria Criteria
}

// SelectCounty picks a county from the reference list.
func (s Selection) SelectCounty(county string) Selection {
	s.Criteria.County = county
	s.Criteria.CountyQuery = county
	s.Criteria.City = ""
	s.Criteria.CityQuery = ""
	return s
}

// ClearCounty removes the county selection together with the city.
func (s Selection) ClearCounty() Selection {
	s.Criteria.County = ""
	s.Criteria.CountyQuery = ""
	s.Criteria.City = ""
	s.Criteria.CityQuery = ""
	return s
}

// TypeCounty updates the free-text county query without selecting a county.
func (s Selection) TypeCounty(query string) Selection {
	s.Criteria.County = ""
	s.Criteria.CountyQuery = query
	return s
}

// SelectCity picks a city within the active county.
func (s Selection) SelectCity(city string) Selection {
	s.Criteria.City = city
	s.Criteria.CityQuery = city
	return s
}

// ClearCity removes the city selection.
func (s Selection) ClearCity() Selection {
	s.Criteria.City = ""
	s.Criteria.CityQuery = ""
	return s
}

// TypeCity updates the free-text city query without selecting a city.
func (s Selection) TypeCity(query string) Selection {
	s.Criteria.City = ""
	s.Criteria.CityQuery = query
	return s
}
