package derived

import "github.com/lalith-99/propmaster/internal/models"

// Live drops archived records. It is the default listing for every kind.
func Live[T models.Archivable](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !it.IsArchived() {
			out = append(out, it)
		}
	}
	return out
}

// Archived keeps only archived records.
func Archived[T models.Archivable](items []T) []T {
	out := make([]T, 0)
	for _, it := range items {
		if it.IsArchived() {
			out = append(out, it)
		}
	}
	return out
}

// AssignableTenants are the tenants offered when assigning an apartment.
// Archived tenants are never offered.
func AssignableTenants(tenants []models.Tenant) []models.Tenant {
	return Live(tenants)
}

// AvailableApartments are the vacant apartments a new contract can use.
func AvailableApartments(apartments []models.Apartment) []models.Apartment {
	out := make([]models.Apartment, 0)
	for _, a := range apartments {
		if a.Status == models.ApartmentVacant {
			out = append(out, a)
		}
	}
	return out
}
