package lifecycle

import (
	"fmt"
	"time"

	"github.com/lalith-99/propmaster/internal/models"
)

// Archive flags the record as archived and leaves every other collection
// alone. Reports use their Archived bool; every other kind sets its
// status to "archived". Archiving an archived record is a no-op.
func (e *Engine) Archive(s State, kind models.EntityType, id, actor string) (Result, error) {
	next := s
	switch kind {
	case models.KindTenant:
		i := FindTenant(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		t := s.Tenants[i]
		if t.Status == models.TenantArchived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		t.Status = models.TenantArchived
		next.Tenants = replaced(s.Tenants, i, t)

	case models.KindApartment:
		i := FindApartment(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		a := s.Apartments[i]
		if a.Status == models.ApartmentArchived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		a.Status = models.ApartmentArchived
		next.Apartments = replaced(s.Apartments, i, a)

	case models.KindContract:
		i := FindContract(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		c := s.Contracts[i].Clone()
		if c.Status == models.ContractArchived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		c.Status = models.ContractArchived
		next.Contracts = replaced(s.Contracts, i, c)

	case models.KindTransaction:
		i := FindTransaction(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		tx := s.Transactions[i]
		if tx.Status == models.TxArchived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		tx.Status = models.TxArchived
		next.Transactions = replaced(s.Transactions, i, tx)

	case models.KindMaintenance:
		i := FindMaintenance(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		m := s.Maintenance[i].Clone()
		if m.Status == models.MaintenanceArchived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		m.Status = models.MaintenanceArchived
		next.Maintenance = replaced(s.Maintenance, i, m)

	case models.KindReport:
		i := FindReport(s, id)
		if i < 0 {
			return unchanged(s, ReasonNotFound), nil
		}
		r := s.Reports[i]
		if r.Archived {
			return unchanged(s, ReasonAlreadyArchived), nil
		}
		r.Archived = true
		next.Reports = replaced(s.Reports, i, r)

	default:
		return Result{}, fmt.Errorf("archive %q: %w", kind, ErrUnsupported)
	}

	entry := e.Audit(actor, "Archive "+string(kind), fmt.Sprintf("Archived %s.", id))
	return finish(next, nil, entry), nil
}

// ArchivedRecords lists every archived record as a DeletedRecord with
// action Archived, the shape the archive view renders. The snapshot is
// the live record as it is now; Date is the listing time and User is
// "Admin", since archiving keeps no per-record stamp.
func ArchivedRecords(s State, now time.Time) []models.DeletedRecord {
	out := make([]models.DeletedRecord, 0)
	now = now.UTC()
	add := func(kind models.EntityType, id, name string, v any) {
		raw, err := marshalSnapshot(v)
		if err != nil {
			return
		}
		out = append(out, models.DeletedRecord{
			ID:           id,
			Type:         kind,
			Name:         name,
			Action:       models.ActionArchived,
			OriginalData: raw,
			Date:         now,
			User:         "Admin",
		})
	}
	for _, t := range s.Tenants {
		if t.Status == models.TenantArchived {
			add(models.KindTenant, t.ID, tenantName(t), t)
		}
	}
	for _, a := range s.Apartments {
		if a.Status == models.ApartmentArchived {
			add(models.KindApartment, a.ID, apartmentName(a), a)
		}
	}
	for _, c := range s.Contracts {
		if c.Status == models.ContractArchived {
			add(models.KindContract, c.ID, contractName(c), c)
		}
	}
	for _, tx := range s.Transactions {
		if tx.Status == models.TxArchived {
			add(models.KindTransaction, tx.ID, transactionName(tx), tx)
		}
	}
	for _, m := range s.Maintenance {
		if m.Status == models.MaintenanceArchived {
			add(models.KindMaintenance, m.ID, m.IssueType, m)
		}
	}
	for _, r := range s.Reports {
		if r.Archived {
			add(models.KindReport, r.ID, reportName(r), r)
		}
	}
	return out
}
