package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

// collection describes where records of one kind live inside a State so
// add/update/get/list can be written once.
type collection[T any] struct {
	kind  models.EntityType
	items func(*lifecycle.State) *[]T
	id    func(*T) *string
	label func(T) string
	clone func(T) T
}

func identity[T any](v T) T { return v }

var (
	tenants = collection[models.Tenant]{
		kind:  models.KindTenant,
		items: func(s *lifecycle.State) *[]models.Tenant { return &s.Tenants },
		id:    func(t *models.Tenant) *string { return &t.ID },
		label: func(t models.Tenant) string { return t.Name },
		clone: identity[models.Tenant],
	}
	apartments = collection[models.Apartment]{
		kind:  models.KindApartment,
		items: func(s *lifecycle.State) *[]models.Apartment { return &s.Apartments },
		id:    func(a *models.Apartment) *string { return &a.ID },
		label: func(a models.Apartment) string { return a.Number },
		clone: identity[models.Apartment],
	}
	contracts = collection[models.Contract]{
		kind:  models.KindContract,
		items: func(s *lifecycle.State) *[]models.Contract { return &s.Contracts },
		id:    func(c *models.Contract) *string { return &c.ID },
		label: func(c models.Contract) string { return "Contract " + c.ID },
		clone: models.Contract.Clone,
	}
	transactions = collection[models.Transaction]{
		kind:  models.KindTransaction,
		items: func(s *lifecycle.State) *[]models.Transaction { return &s.Transactions },
		id:    func(t *models.Transaction) *string { return &t.ID },
		label: func(t models.Transaction) string { return fmt.Sprintf("%s %v", t.Type, t.Amount) },
		clone: identity[models.Transaction],
	}
	maintenance = collection[models.MaintenanceRequest]{
		kind:  models.KindMaintenance,
		items: func(s *lifecycle.State) *[]models.MaintenanceRequest { return &s.Maintenance },
		id:    func(m *models.MaintenanceRequest) *string { return &m.ID },
		label: func(m models.MaintenanceRequest) string { return m.IssueType },
		clone: models.MaintenanceRequest.Clone,
	}
	reports = collection[models.Report]{
		kind:  models.KindReport,
		items: func(s *lifecycle.State) *[]models.Report { return &s.Reports },
		id:    func(r *models.Report) *string { return &r.ID },
		label: func(r models.Report) string { return r.Name },
		clone: identity[models.Report],
	}
)

func (c collection[T]) find(s *lifecycle.State, id string) int {
	return slices.IndexFunc(*c.items(s), func(v T) bool { return *c.id(&v) == id })
}

func list[T any](s *Store, c collection[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := *c.items(&s.state)
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = c.clone(v)
	}
	return out
}

func get[T any](s *Store, c collection[T], id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := c.find(&s.state, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone((*c.items(&s.state))[i]), true
}

// insert returns base plus v under a fresh id, with its audit entry.
func insert[T any](e *lifecycle.Engine, base lifecycle.State, c collection[T], v T, actor string) (lifecycle.State, T, models.AuditLogEntry) {
	v = c.clone(v)
	*c.id(&v) = e.NewID()

	next := base
	items := c.items(&next)
	*items = append(slices.Clip(*items), v)

	entry := e.Audit(actor, "Add "+string(c.kind), fmt.Sprintf("Added %s.", c.label(v)))
	next.AuditLog = append(slices.Clip(next.AuditLog), entry)
	return next, c.clone(v), entry
}

// replace returns base with the record sharing v's id swapped for v.
// ok is false when there is no such record.
func replace[T any](e *lifecycle.Engine, base lifecycle.State, c collection[T], v T, actor, action, details string) (next lifecycle.State, entry models.AuditLogEntry, ok bool) {
	i := c.find(&base, *c.id(&v))
	if i < 0 {
		return base, models.AuditLogEntry{}, false
	}
	next = base
	items := c.items(&next)
	*items = slices.Clone(*items)
	(*items)[i] = c.clone(v)

	entry = e.Audit(actor, action, details)
	next.AuditLog = append(slices.Clip(next.AuditLog), entry)
	return next, entry, true
}

func add[T any](ctx context.Context, s *Store, c collection[T], v T, actor string, check func(lifecycle.State, T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.strict && check != nil {
		if err := check(s.state, v); err != nil {
			var zero T
			return zero, err
		}
	}
	next, out, entry := insert(s.engine, s.state, c, v, actor)
	s.commit(ctx, next, entry)
	return out, nil
}

// update is full replacement keyed by id. A missing id returns false and
// changes nothing.
func update[T any](ctx context.Context, s *Store, c collection[T], v T, actor string, check func(lifecycle.State, T) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.find(&s.state, *c.id(&v)) < 0 {
		return false, nil
	}
	if s.strict && check != nil {
		if err := check(s.state, v); err != nil {
			return false, err
		}
	}
	next, entry, _ := replace(s.engine, s.state, c, v, actor, "Update "+string(c.kind), fmt.Sprintf("Updated %s.", c.label(v)))
	s.commit(ctx, next, entry)
	return true, nil
}

func (s *Store) Tenants() []models.Tenant { return list(s, tenants) }
func (s *Store) Tenant(id string) (models.Tenant, bool) {
	return get(s, tenants, id)
}
func (s *Store) AddTenant(ctx context.Context, t models.Tenant, actor string) (models.Tenant, error) {
	if t.Status == "" {
		t.Status = models.TenantActive
	}
	return add(ctx, s, tenants, t, actor, nil)
}
func (s *Store) UpdateTenant(ctx context.Context, t models.Tenant, actor string) (bool, error) {
	return update(ctx, s, tenants, t, actor, nil)
}

func (s *Store) Apartments() []models.Apartment { return list(s, apartments) }
func (s *Store) Apartment(id string) (models.Apartment, bool) {
	return get(s, apartments, id)
}
func (s *Store) AddApartment(ctx context.Context, a models.Apartment, actor string) (models.Apartment, error) {
	if a.Status == "" {
		a.Status = models.ApartmentVacant
	}
	return add(ctx, s, apartments, a, actor, nil)
}
func (s *Store) UpdateApartment(ctx context.Context, a models.Apartment, actor string) (bool, error) {
	return update(ctx, s, apartments, a, actor, nil)
}

func (s *Store) Contracts() []models.Contract { return list(s, contracts) }
func (s *Store) Contract(id string) (models.Contract, bool) {
	return get(s, contracts, id)
}
func (s *Store) AddContract(ctx context.Context, c models.Contract, actor string) (models.Contract, error) {
	if c.Status == "" {
		c.Status = models.ContractActive
	}
	return add(ctx, s, contracts, c, actor, checkContract)
}
func (s *Store) UpdateContract(ctx context.Context, c models.Contract, actor string) (bool, error) {
	return update(ctx, s, contracts, c, actor, checkContract)
}

func (s *Store) Transactions() []models.Transaction { return list(s, transactions) }
func (s *Store) Transaction(id string) (models.Transaction, bool) {
	return get(s, transactions, id)
}
func (s *Store) AddTransaction(ctx context.Context, t models.Transaction, actor string) (models.Transaction, error) {
	return add(ctx, s, transactions, t, actor, nil)
}
func (s *Store) UpdateTransaction(ctx context.Context, t models.Transaction, actor string) (bool, error) {
	return update(ctx, s, transactions, t, actor, nil)
}

func (s *Store) Maintenance() []models.MaintenanceRequest { return list(s, maintenance) }
func (s *Store) MaintenanceRequest(id string) (models.MaintenanceRequest, bool) {
	return get(s, maintenance, id)
}
func (s *Store) AddMaintenance(ctx context.Context, m models.MaintenanceRequest, actor string) (models.MaintenanceRequest, error) {
	if m.Status == "" {
		m.Status = models.MaintenancePending
	}
	return add(ctx, s, maintenance, m, actor, checkMaintenance)
}
func (s *Store) UpdateMaintenance(ctx context.Context, m models.MaintenanceRequest, actor string) (bool, error) {
	return update(ctx, s, maintenance, m, actor, checkMaintenance)
}

func (s *Store) Reports() []models.Report { return list(s, reports) }
func (s *Store) Report(id string) (models.Report, bool) {
	return get(s, reports, id)
}
func (s *Store) AddReport(ctx context.Context, r models.Report, actor string) (models.Report, error) {
	return add(ctx, s, reports, r, actor, nil)
}
