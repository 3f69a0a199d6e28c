package lifecycle

import (
	"slices"

	"github.com/lalith-99/propmaster/internal/models"
)

// State is one immutable snapshot of every collection plus the two logs.
//
// Nothing in this package writes into a State it was given. Operations
// build new slices for the collections they touch and share the rest,
// so callers must follow the same rule: replace a slice, never edit an
// element in place.
type State struct {
	Tenants      []models.Tenant             `json:"tenants"`
	Apartments   []models.Apartment          `json:"apartments"`
	Contracts    []models.Contract           `json:"contracts"`
	Transactions []models.Transaction        `json:"transactions"`
	Maintenance  []models.MaintenanceRequest `json:"maintenance"`
	Reports      []models.Report             `json:"reports"`
	DeletedLog   []models.DeletedRecord      `json:"deleted_log"`
	AuditLog     []models.AuditLogEntry      `json:"audit_log"`
}

// Clone deep-copies s. Use it before handing a State to code that does
// not follow the replace-don't-edit rule.
func (s State) Clone() State {
	out := State{
		Tenants:      slices.Clone(s.Tenants),
		Apartments:   slices.Clone(s.Apartments),
		Transactions: slices.Clone(s.Transactions),
		Reports:      slices.Clone(s.Reports),
		AuditLog:     slices.Clone(s.AuditLog),
	}
	if s.Contracts != nil {
		out.Contracts = make([]models.Contract, len(s.Contracts))
		for i, c := range s.Contracts {
			out.Contracts[i] = c.Clone()
		}
	}
	if s.Maintenance != nil {
		out.Maintenance = make([]models.MaintenanceRequest, len(s.Maintenance))
		for i, m := range s.Maintenance {
			out.Maintenance[i] = m.Clone()
		}
	}
	if s.DeletedLog != nil {
		out.DeletedLog = make([]models.DeletedRecord, len(s.DeletedLog))
		for i, r := range s.DeletedLog {
			r.OriginalData = slices.Clone(r.OriginalData)
			out.DeletedLog[i] = r
		}
	}
	return out
}

// FindTenant etc. return the index of the record with id, or -1.
func FindTenant(s State, id string) int {
	return slices.IndexFunc(s.Tenants, func(t models.Tenant) bool { return t.ID == id })
}

func FindApartment(s State, id string) int {
	return slices.IndexFunc(s.Apartments, func(a models.Apartment) bool { return a.ID == id })
}

func FindContract(s State, id string) int {
	return slices.IndexFunc(s.Contracts, func(c models.Contract) bool { return c.ID == id })
}

func FindTransaction(s State, id string) int {
	return slices.IndexFunc(s.Transactions, func(t models.Transaction) bool { return t.ID == id })
}

func FindMaintenance(s State, id string) int {
	return slices.IndexFunc(s.Maintenance, func(m models.MaintenanceRequest) bool { return m.ID == id })
}

func FindReport(s State, id string) int {
	return slices.IndexFunc(s.Reports, func(r models.Report) bool { return r.ID == id })
}

// Exists reports whether a live record of kind with id is present.
func Exists(s State, kind models.EntityType, id string) bool {
	switch kind {
	case models.KindTenant:
		return FindTenant(s, id) >= 0
	case models.KindApartment:
		return FindApartment(s, id) >= 0
	case models.KindContract:
		return FindContract(s, id) >= 0
	case models.KindTransaction:
		return FindTransaction(s, id) >= 0
	case models.KindMaintenance:
		return FindMaintenance(s, id) >= 0
	case models.KindReport:
		return FindReport(s, id) >= 0
	}
	return false
}

// without returns a new slice minus the items drop matches. When nothing
// matches, the original slice is returned untouched.
func without[T any](items []T, drop func(T) bool) []T {
	if !slices.ContainsFunc(items, drop) {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// replaced returns a copy of items with items[i] set to v.
func replaced[T any](items []T, i int, v T) []T {
	out := slices.Clone(items)
	out[i] = v
	return out
}

// appended never writes into the spare capacity of items, so two States
// derived from the same parent cannot clobber each other's tail.
func appended[T any](items []T, v ...T) []T {
	out := make([]T, 0, len(items)+len(v))
	out = append(out, items...)
	return append(out, v...)
}
