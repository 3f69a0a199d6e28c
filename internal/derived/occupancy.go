package derived

import "github.com/lalith-99/propmaster/internal/models"

// ApartmentFilter narrows the apartments in scope. Zero values match all.
type ApartmentFilter struct {
	Building string `form:"building" json:"building,omitempty"`
	Rooms    int    `form:"rooms" json:"rooms,omitempty"`
}

func (f ApartmentFilter) match(a models.Apartment) bool {
	return (f.Building == "" || a.Building == f.Building) &&
		(f.Rooms == 0 || a.Rooms == f.Rooms)
}

// FilterApartments returns the apartments f matches, in input order.
func FilterApartments(apartments []models.Apartment, f ApartmentFilter) []models.Apartment {
	out := make([]models.Apartment, 0, len(apartments))
	for _, a := range apartments {
		if f.match(a) {
			out = append(out, a)
		}
	}
	return out
}

// OccupancyRate is the whole-number percentage of occupied apartments,
// rounded half up. An empty set is 0%.
func OccupancyRate(apartments []models.Apartment) int {
	total := len(apartments)
	if total == 0 {
		return 0
	}
	occupied := 0
	for _, a := range apartments {
		if a.Status == models.ApartmentOccupied {
			occupied++
		}
	}
	// floor(100*occupied/total + 1/2) in integers
	return (200*occupied + total) / (2 * total)
}
