package lifecycle

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lalith-99/propmaster/internal/models"
)

// Restored records do not get their old status back. The real-world state
// behind a deleted or archived record is unknown, so each kind lands in a
// state that needs a human to confirm it again:
//
//	Tenant       active
//	Apartment    vacant, tenant link dropped
//	Contract     active
//	Transaction  pending
//	Maintenance  pending
//	Report       unchanged (restore from archive clears Archived)

// RestoreFromDelete re-inserts the record from its DeletedRecord
// snapshot, applies the status reset above and removes the log entry.
// The live collections are never consulted for field values.
func (e *Engine) RestoreFromDelete(s State, kind models.EntityType, id, actor string) (Result, error) {
	if !slices.Contains(models.Kinds, kind) {
		return Result{}, fmt.Errorf("restore %q: %w", kind, ErrUnsupported)
	}

	j := -1
	for k := len(s.DeletedLog) - 1; k >= 0; k-- {
		r := s.DeletedLog[k]
		if r.Type == kind && r.ID == id && r.Action == models.ActionDeleted {
			j = k
			break
		}
	}
	if j < 0 {
		return unchanged(s, ReasonNotFound), nil
	}
	if Exists(s, kind, id) {
		return unchanged(s, ReasonAlreadyLive), nil
	}
	rec := s.DeletedLog[j]

	next := s
	decode := func(v any) error {
		if err := json.Unmarshal(rec.OriginalData, v); err != nil {
			return fmt.Errorf("decode %s snapshot %s: %w", kind, id, err)
		}
		return nil
	}

	switch kind {
	case models.KindTenant:
		var t models.Tenant
		if err := decode(&t); err != nil {
			return Result{}, err
		}
		t.Status = models.TenantActive
		if !buildLinks(s.Apartments).linkedBack(t.ID, t.ApartmentID) {
			t.ApartmentID = ""
		}
		next.Tenants = appended(s.Tenants, t)

	case models.KindApartment:
		var a models.Apartment
		if err := decode(&a); err != nil {
			return Result{}, err
		}
		a.Status = models.ApartmentVacant
		a.TenantID = ""
		next.Apartments = appended(s.Apartments, a)
		next.Tenants = unassign(s.Tenants, a.ID, "")

	case models.KindContract:
		var c models.Contract
		if err := decode(&c); err != nil {
			return Result{}, err
		}
		c.Status = models.ContractActive
		next.Contracts = appended(s.Contracts, c)

	case models.KindTransaction:
		var tx models.Transaction
		if err := decode(&tx); err != nil {
			return Result{}, err
		}
		tx.Status = models.TxPending
		next.Transactions = appended(s.Transactions, tx)

	case models.KindMaintenance:
		var m models.MaintenanceRequest
		if err := decode(&m); err != nil {
			return Result{}, err
		}
		m.Status = models.MaintenancePending
		next.Maintenance = appended(s.Maintenance, m)

	case models.KindReport:
		var r models.Report
		if err := decode(&r); err != nil {
			return Result{}, err
		}
		next.Reports = appended(s.Reports, r)
	}

	next.DeletedLog = slices.Delete(slices.Clone(s.DeletedLog), j, j+1)
	entry := e.Audit(actor, "Restore", fmt.Sprintf("Restored %s: %s from Deleted Log.", kind, rec.Name))
	next.AuditLog = appended(next.AuditLog, entry)
	return Result{State: next, Changed: true, Deleted: &rec, Audit: &entry}, nil
}

// RestoreFromArchive applies the same reset table to a live archived
// record in place. A record that is not archived is left alone.
func (e *Engine) RestoreFromArchive(s State, kind models.EntityType, id, actor string) (Result, error) {
	next := s
	var name string

	switch kind {
	case models.KindTenant:
		i := FindTenant(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		t := s.Tenants[i]
		if t.Status != models.TenantArchived {
			return unchanged(s, ReasonNotArchived), nil
		}
		t.Status = models.TenantActive
		next.Tenants = replaced(s.Tenants, i, t)
		name = tenantName(t)

	case models.KindApartment:
		i := FindApartment(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		a := s.Apartments[i]
		if a.Status != models.ApartmentArchived {
			return unchanged(s, ReasonNotArchived), nil
		}
		a.Status = models.ApartmentVacant
		a.TenantID = ""
		next.Apartments = replaced(s.Apartments, i, a)
		next.Tenants = unassign(s.Tenants, a.ID, "")
		name = apartmentName(a)

	case models.KindContract:
		i := FindContract(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		c := s.Contracts[i].Clone()
		if c.Status != models.ContractArchived {
			return unchanged(s, ReasonNotArchived), nil
		}
		c.Status = models.ContractActive
		next.Contracts = replaced(s.Contracts, i, c)
		name = contractName(c)

	case models.KindTransaction:
		i := FindTransaction(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		tx := s.Transactions[i]
		if tx.Status != models.TxArchived {
			return unchanged(s, ReasonNotArchived), nil
		}
		tx.Status = models.TxPending
		next.Transactions = replaced(s.Transactions, i, tx)
		name = transactionName(tx)

	case models.KindMaintenance:
		i := FindMaintenance(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		m := s.Maintenance[i].Clone()
		if m.Status != models.MaintenanceArchived {
			return unchanged(s, ReasonNotArchived), nil
		}
		m.Status = models.MaintenancePending
		next.Maintenance = replaced(s.Maintenance, i, m)
		name = m.IssueType

	case models.KindReport:
		i := FindReport(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		r := s.Reports[i]
		if !r.Archived {
			return unchanged(s, ReasonNotArchived), nil
		}
		r.Archived = false
		next.Reports = replaced(s.Reports, i, r)
		name = reportName(r)

	default:
		return Result{}, fmt.Errorf("restore archived %q: %w", kind, ErrUnsupported)
	}

	entry := e.Audit(actor, "Restore Archive", fmt.Sprintf("Restored %s: %s from Archive.", kind, name))
	return finish(next, nil, entry), nil
}
