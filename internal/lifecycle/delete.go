package lifecycle

import (
	"fmt"

	"github.com/lalith-99/propmaster/internal/models"
)

// Delete removes the record of kind with id, fires the cascades for that
// kind, and logs one DeletedRecord plus one AuditLogEntry.
//
// Cascades:
//
//	Tenant     contracts (tenant_id), transactions (related_id) and
//	           maintenance (tenant_id) go; apartments naming the tenant
//	           become vacant with no tenant.
//	Apartment  contracts and maintenance (apartment_id) go; the tenant
//	           the apartment names and any tenant pointing at it lose
//	           their apartment_id. The tenants themselves stay.
//	others     nothing but the record itself.
//
// Only the target gets a DeletedRecord. Cascaded rows are gone for good.
func (e *Engine) Delete(s State, kind models.EntityType, id, actor string) (Result, error) {
	switch kind {
	case models.KindTenant:
		return e.deleteTenant(s, id, actor)
	case models.KindApartment:
		return e.deleteApartment(s, id, actor)
	case models.KindContract:
		return e.deleteContract(s, id, actor)
	case models.KindTransaction:
		return e.deleteTransaction(s, id, actor)
	case models.KindMaintenance:
		return e.deleteMaintenance(s, id, actor)
	case models.KindReport:
		return e.deleteReport(s, id, actor)
	}
	return Result{}, fmt.Errorf("delete %q: %w", kind, ErrUnsupported)
}

func (e *Engine) deleteTenant(s State, id, actor string) (Result, error) {
	i := FindTenant(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	t := s.Tenants[i]
	rec, err := e.snapshot(models.KindTenant, t.ID, tenantName(t), t, actor)
	if err != nil {
		return Result{}, err
	}

	l := buildLinks(s.Apartments)

	next := s
	next.Tenants = without(s.Tenants, func(x models.Tenant) bool { return x.ID == id })
	next.Contracts = without(s.Contracts, func(c models.Contract) bool { return c.TenantID == id })
	next.Transactions = without(s.Transactions, func(tx models.Transaction) bool { return tx.RelatedID == id })
	next.Maintenance = without(s.Maintenance, func(m models.MaintenanceRequest) bool { return m.TenantID == id })
	next.Apartments = vacate(s.Apartments, l.occupies[id])

	entry := e.Audit(actor, "Delete Tenant",
		fmt.Sprintf("Deleted tenant %s with its contracts, transactions and maintenance requests. Moved to Deleted Log.", t.Name))
	return finish(next, &rec, entry), nil
}

func (e *Engine) deleteApartment(s State, id, actor string) (Result, error) {
	i := FindApartment(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	a := s.Apartments[i]
	rec, err := e.snapshot(models.KindApartment, a.ID, apartmentName(a), a, actor)
	if err != nil {
		return Result{}, err
	}

	next := s
	next.Apartments = without(s.Apartments, func(x models.Apartment) bool { return x.ID == id })
	next.Contracts = without(s.Contracts, func(c models.Contract) bool { return c.ApartmentID == id })
	next.Maintenance = without(s.Maintenance, func(m models.MaintenanceRequest) bool { return m.ApartmentID == id })
	next.Tenants = unassign(s.Tenants, id, a.TenantID)

	entry := e.Audit(actor, "Delete Apartment",
		fmt.Sprintf("Deleted apartment %s with its contracts and maintenance requests. Moved to Deleted Log.", a.Number))
	return finish(next, &rec, entry), nil
}

func (e *Engine) deleteContract(s State, id, actor string) (Result, error) {
	i := FindContract(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	c := s.Contracts[i]
	rec, err := e.snapshot(models.KindContract, c.ID, contractName(c), c, actor)
	if err != nil {
		return Result{}, err
	}
	next := s
	next.Contracts = without(s.Contracts, func(x models.Contract) bool { return x.ID == id })
	entry := e.Audit(actor, "Delete Contract", fmt.Sprintf("Deleted contract %s. Moved to Deleted Log.", id))
	return finish(next, &rec, entry), nil
}

func (e *Engine) deleteTransaction(s State, id, actor string) (Result, error) {
	i := FindTransaction(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	tx := s.Transactions[i]
	rec, err := e.snapshot(models.KindTransaction, tx.ID, transactionName(tx), tx, actor)
	if err != nil {
		return Result{}, err
	}
	next := s
	next.Transactions = without(s.Transactions, func(x models.Transaction) bool { return x.ID == id })
	entry := e.Audit(actor, "Delete Transaction", fmt.Sprintf("Deleted transaction %s. Moved to Deleted Log.", id))
	return finish(next, &rec, entry), nil
}

func (e *Engine) deleteMaintenance(s State, id, actor string) (Result, error) {
	i := FindMaintenance(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	m := s.Maintenance[i]
	rec, err := e.snapshot(models.KindMaintenance, m.ID, maintenanceName(m), m, actor)
	if err != nil {
		return Result{}, err
	}
	next := s
	next.Maintenance = without(s.Maintenance, func(x models.MaintenanceRequest) bool { return x.ID == id })
	entry := e.Audit(actor, "Delete Maintenance", fmt.Sprintf("Deleted request %s. Moved to Deleted Log.", id))
	return finish(next, &rec, entry), nil
}

func (e *Engine) deleteReport(s State, id, actor string) (Result, error) {
	i := FindReport(s, id)
	if i < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	r := s.Reports[i]
	rec, err := e.snapshot(models.KindReport, r.ID, reportName(r), r, actor)
	if err != nil {
		return Result{}, err
	}
	next := s
	next.Reports = without(s.Reports, func(x models.Report) bool { return x.ID == id })
	entry := e.Audit(actor, "Delete Report", fmt.Sprintf("Deleted report %s. Moved to Deleted Log.", r.Name))
	return finish(next, &rec, entry), nil
}
