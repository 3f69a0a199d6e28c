package lifecycle

import "github.com/lalith-99/propmaster/internal/models"

// links is the tenant <-> apartment relationship read as one table.
//
// The data model stores the link twice (Apartment.TenantID and
// Tenant.ApartmentID) and nothing forces the halves to agree. Cascades
// consult this index instead of scanning one side and trusting it.
type links struct {
	// occupant: apartment id -> tenant id, from Apartment.TenantID.
	occupant map[string]string
	// occupies: tenant id -> apartment ids whose TenantID names it.
	occupies map[string][]string
}

func buildLinks(apartments []models.Apartment) links {
	l := links{
		occupant: make(map[string]string),
		occupies: make(map[string][]string),
	}
	for _, a := range apartments {
		if a.TenantID == "" {
			continue
		}
		l.occupant[a.ID] = a.TenantID
		l.occupies[a.TenantID] = append(l.occupies[a.TenantID], a.ID)
	}
	return l
}

// linkedBack reports whether a tenant's claim on apartmentID is confirmed
// by the apartment side.
func (l links) linkedBack(tenantID, apartmentID string) bool {
	return apartmentID != "" && l.occupant[apartmentID] == tenantID
}

// vacate clears TenantID and sets status vacant on every apartment in ids.
func vacate(apartments []models.Apartment, ids []string) []models.Apartment {
	if len(ids) == 0 {
		return apartments
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]models.Apartment, len(apartments))
	for i, a := range apartments {
		if set[a.ID] {
			a.Status = models.ApartmentVacant
			a.TenantID = ""
		}
		out[i] = a
	}
	return out
}

// unassign clears ApartmentID on every tenant that points at apartmentID
// and on occupant, the tenant the apartment itself names, wherever that
// tenant points now.
func unassign(tenants []models.Tenant, apartmentID, occupant string) []models.Tenant {
	if apartmentID == "" {
		return tenants
	}
	hit := false
	out := make([]models.Tenant, len(tenants))
	for i, t := range tenants {
		if t.ApartmentID != "" && (t.ApartmentID == apartmentID || (occupant != "" && t.ID == occupant)) {
			t.ApartmentID = ""
			hit = true
		}
		out[i] = t
	}
	if !hit {
		return tenants
	}
	return out
}
