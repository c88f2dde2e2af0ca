package services

import (
	"strings"

	"github.com/voxatlas/weather-location-backend/internal/models"
)

// firstNonEmpty returns the first value that is not empty. The
// normalizer expresses all of its field precedence through this one
// helper so each chain stays auditable.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// recordFromReverse maps a reverse geocoding response onto the
// canonical record. queried is the coordinate the caller asked about
// and backstops a response that omits its own.
func recordFromReverse(resp *models.ReverseResponse, queried models.Coordinate) *models.LocationRecord {
	addr := resp.Address

	record := &models.LocationRecord{
		Address: resp.DisplayName,
		City: models.City{
			Name: firstNonEmpty(addr.City, addr.Village, addr.Town, addr.Hamlet, addr.County),
			Code: addr.Postcode,
			State: models.State{
				Name: firstNonEmpty(addr.State, addr.County),
				Code: firstNonEmpty(addr.StateCode, addr.ISO3166Lvl4, addr.ISO3166Lvl6),
				Country: models.Country{
					Name: addr.Country,
					Code: strings.ToUpper(addr.CountryCode),
				},
			},
		},
	}

	if coord, ok := models.ParseCoordinate(resp.Lat, resp.Lon); ok {
		record.Coordinate = &coord
	} else {
		input := queried
		record.Coordinate = &input
	}

	return record
}

// recordFromDetails maps a search result plus its place details onto
// the canonical record. The resolved name lands on exactly the
// administrative level named by the place type; the other levels come
// from address tags alone.
func recordFromDetails(search *models.SearchResult, details *models.DetailsResponse) *models.LocationRecord {
	tags := details.AddressTags

	placeType := firstNonEmpty(
		details.ExtraTags.Get("linked_place"),
		details.Category,
		search.Type,
		search.Class,
	)
	name := firstNonEmpty(
		details.LocalName,
		details.Names.Get("name"),
		details.Names.Get("official_name"),
		search.DisplayName,
	)
	countryCode := strings.ToUpper(firstNonEmpty(
		tags.Get("country"),
		details.CountryCode,
		details.ExtraTags.Get("ISO3166-1:alpha2"),
	))

	record := &models.LocationRecord{
		Address: search.DisplayName,
		City: models.City{
			// calculated_postcode is a heuristic and may be wrong for
			// large areas; it is a last resort only
			Code: firstNonEmpty(tags.Get("postcode"), details.CalculatedPostcode),
			State: models.State{
				Name: tags.Get("state"),
				Code: tags.Get("state_code"),
				Country: models.Country{
					Code: countryCode,
				},
			},
		},
	}

	switch placeType {
	case "city":
		record.City.Name = name
	case "state":
		record.City.State.Name = name
	case "country":
		record.City.State.Country.Name = name
	}

	if coord, ok := models.ParseCoordinate(search.Lat, search.Lon); ok {
		record.Coordinate = &coord
	}

	return record
}
