package lifecycle

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/lalith-99/propmaster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	n := 0
	return &Engine{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func fixture() State {
	days := 30
	return State{
		Tenants: []models.Tenant{
			{ID: "t1", Name: "Ahmed Ali", Status: models.TenantActive, ApartmentID: "a1", LeaseStart: "2026-01-01", LeaseEnd: "2027-01-01"},
			{ID: "t2", Name: "Sara Mohamed", Status: models.TenantActive, ApartmentID: "a2", Balance: 5000},
			{ID: "t3", Name: "John Doe", Status: models.TenantInactive},
		},
		Apartments: []models.Apartment{
			{ID: "a1", Number: "101", Building: "Building A", Rooms: 3, RentAmount: 15000, Status: models.ApartmentOccupied, TenantID: "t1"},
			{ID: "a2", Number: "102", Building: "Building A", Rooms: 2, RentAmount: 12000, Status: models.ApartmentOccupied, TenantID: "t2"},
			{ID: "a3", Number: "201", Building: "Building B", Rooms: 3, RentAmount: 18000, Status: models.ApartmentVacant},
		},
		Contracts: []models.Contract{
			{ID: "c1", TenantID: "t1", ApartmentID: "a1", StartDate: "2026-01-01", EndDate: "2027-01-01", Status: models.ContractActive, ReminderDays: &days},
			{ID: "c2", TenantID: "t2", ApartmentID: "a2", StartDate: "2026-06-01", EndDate: "2027-06-01", Status: models.ContractActive},
		},
		Transactions: []models.Transaction{
			{ID: "tx1", Type: models.TxInvoice, Date: "2026-10-01", Amount: 15000, Description: "Rent Oct", Status: models.TxPaid, RelatedID: "t1"},
			{ID: "tx2", Type: models.TxPayment, Date: "2026-10-05", Amount: 15000, Description: "Rent Payment Oct", Status: models.TxCompleted, RelatedID: "t1", PaymentMethod: models.PaymentBank},
			{ID: "tx3", Type: models.TxInvoice, Date: "2026-10-01", Amount: 12000, Description: "Rent Oct", Status: models.TxOverdue, RelatedID: "t2"},
			{ID: "tx4", Type: models.TxExpense, Date: "2026-10-10", Amount: 500, Description: "Plumbing Repair", Status: models.TxPaid, Category: "repairs"},
		},
		Maintenance: []models.MaintenanceRequest{
			{ID: "m1", TenantID: "t1", ApartmentID: "a1", IssueType: "Plumbing", Description: "Leaking faucet in kitchen", Status: models.MaintenanceInProgress,
				Attachments: []models.Attachment{{ID: "att1", Name: "leak.jpg", URL: "#", Type: models.AttachmentImage}}},
			{ID: "m2", TenantID: "t2", ApartmentID: "a2", IssueType: "Electrical", Description: "AC not cooling", Status: models.MaintenancePending},
		},
		Reports: []models.Report{
			{ID: "r1", Name: "Financial Report - Q1", Date: "2026-04-01", Size: "2.4 MB"},
		},
	}
}

func TestDeleteTenant_Scenario(t *testing.T) {
	s := fixture()
	res, err := testEngine().Delete(s, models.KindTenant, "t1", "Manager")
	require.NoError(t, err)
	require.True(t, res.Changed)

	next := res.State
	assert.Equal(t, -1, FindTenant(next, "t1"))

	i := FindApartment(next, "a1")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, models.ApartmentVacant, next.Apartments[i].Status)
	assert.Empty(t, next.Apartments[i].TenantID)

	assert.Equal(t, -1, FindContract(next, "c1"))
	assert.Equal(t, -1, FindTransaction(next, "tx1"))

	require.Len(t, next.DeletedLog, 1)
	assert.Equal(t, models.KindTenant, next.DeletedLog[0].Type)
	assert.Equal(t, "t1", next.DeletedLog[0].ID)
	assert.Equal(t, models.ActionDeleted, next.DeletedLog[0].Action)
	assert.Equal(t, "Manager", next.DeletedLog[0].User)
	require.Len(t, next.AuditLog, 1)
	assert.Equal(t, "Delete Tenant", next.AuditLog[0].Action)
	assert.Equal(t, res.Audit.ID, next.AuditLog[0].ID)
}

func TestDeleteTenant_LeavesNoReferences(t *testing.T) {
	res, err := testEngine().Delete(fixture(), models.KindTenant, "t1", "")
	require.NoError(t, err)

	for _, c := range res.State.Contracts {
		assert.NotEqual(t, "t1", c.TenantID)
	}
	for _, tx := range res.State.Transactions {
		assert.NotEqual(t, "t1", tx.RelatedID)
	}
	for _, m := range res.State.Maintenance {
		assert.NotEqual(t, "t1", m.TenantID)
	}
	for _, a := range res.State.Apartments {
		assert.NotEqual(t, "t1", a.TenantID)
	}

	// the other tenant's rows are untouched
	assert.GreaterOrEqual(t, FindContract(res.State, "c2"), 0)
	assert.GreaterOrEqual(t, FindTransaction(res.State, "tx3"), 0)
	assert.GreaterOrEqual(t, FindTransaction(res.State, "tx4"), 0)
	assert.GreaterOrEqual(t, FindMaintenance(res.State, "m2"), 0)
	assert.Equal(t, "System", res.Audit.User)
}

func TestDeleteApartment_Cascade(t *testing.T) {
	res, err := testEngine().Delete(fixture(), models.KindApartment, "a2", "Manager")
	require.NoError(t, err)
	require.True(t, res.Changed)

	next := res.State
	assert.Equal(t, -1, FindApartment(next, "a2"))
	for _, c := range next.Contracts {
		assert.NotEqual(t, "a2", c.ApartmentID)
	}
	for _, m := range next.Maintenance {
		assert.NotEqual(t, "a2", m.ApartmentID)
	}

	i := FindTenant(next, "t2")
	require.GreaterOrEqual(t, i, 0, "tenant must survive apartment deletion")
	assert.Empty(t, next.Tenants[i].ApartmentID)
	assert.Equal(t, models.TenantActive, next.Tenants[i].Status)

	// transactions are financial history and stay
	assert.Equal(t, fixture().Transactions, next.Transactions)
	assert.Equal(t, "a1", next.Tenants[FindTenant(next, "t1")].ApartmentID)
}

func TestDeleteApartment_ClearsNamedTenantWhenLinksDisagree(t *testing.T) {
	s := fixture()
	// a2 still names t2, but t2 points at a3; t3 points at a2 unasked
	s.Tenants[1].ApartmentID = "a3"
	s.Tenants[2].ApartmentID = "a2"

	res, err := testEngine().Delete(s, models.KindApartment, "a2", "")
	require.NoError(t, err)
	require.True(t, res.Changed)

	next := res.State
	assert.Empty(t, next.Tenants[FindTenant(next, "t2")].ApartmentID)
	assert.Empty(t, next.Tenants[FindTenant(next, "t3")].ApartmentID)
	assert.Equal(t, "a1", next.Tenants[FindTenant(next, "t1")].ApartmentID)
	// the apartment t2 pointed at is not touched
	assert.Equal(t, s.Apartments[2], next.Apartments[FindApartment(next, "a3")])
}

func TestDelete_NoCascadeForLeafKinds(t *testing.T) {
	tests := []struct {
		kind  models.EntityType
		id    string
		check func(t *testing.T, before, after State)
	}{
		{models.KindContract, "c1", func(t *testing.T, before, after State) {
			assert.Len(t, after.Contracts, len(before.Contracts)-1)
			after.Contracts = before.Contracts
		}},
		{models.KindTransaction, "tx3", func(t *testing.T, before, after State) {
			assert.Len(t, after.Transactions, len(before.Transactions)-1)
			after.Transactions = before.Transactions
		}},
		{models.KindMaintenance, "m1", func(t *testing.T, before, after State) {
			assert.Len(t, after.Maintenance, len(before.Maintenance)-1)
			after.Maintenance = before.Maintenance
		}},
		{models.KindReport, "r1", func(t *testing.T, before, after State) {
			assert.Empty(t, after.Reports)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			before := fixture()
			res, err := testEngine().Delete(before, tt.kind, tt.id, "")
			require.NoError(t, err)
			require.True(t, res.Changed)
			tt.check(t, before, res.State)

			after := res.State
			assert.Equal(t, before.Tenants, after.Tenants)
			assert.Equal(t, before.Apartments, after.Apartments)
			if tt.kind != models.KindContract {
				assert.Equal(t, before.Contracts, after.Contracts)
			}
			if tt.kind != models.KindTransaction {
				assert.Equal(t, before.Transactions, after.Transactions)
			}
			if tt.kind != models.KindMaintenance {
				assert.Equal(t, before.Maintenance, after.Maintenance)
			}
			if tt.kind != models.KindReport {
				assert.Equal(t, before.Reports, after.Reports)
			}
			assert.Len(t, after.DeletedLog, 1)
			assert.Len(t, after.AuditLog, 1)
		})
	}
}

func TestOperations_MissingIDIsNoop(t *testing.T) {
	e := testEngine()
	ops := map[Op]func(State, models.EntityType, string, string) (Result, error){
		OpDelete:          e.Delete,
		OpArchive:         e.Archive,
		OpRestoreDeleted:  e.RestoreFromDelete,
		OpRestoreArchived: e.RestoreFromArchive,
	}

	for op, fn := range ops {
		for _, kind := range models.Kinds {
			t.Run(fmt.Sprintf("%s/%s", op, kind), func(t *testing.T) {
				s := fixture()
				res, err := fn(s, kind, "does-not-exist", "Manager")
				require.NoError(t, err)
				assert.False(t, res.Changed)
				assert.Equal(t, ReasonNotFound, res.Reason)
				assert.Nil(t, res.Audit)
				assert.Equal(t, fixture(), res.State)

				b1, _ := json.Marshal(fixture())
				b2, _ := json.Marshal(res.State)
				assert.JSONEq(t, string(b1), string(b2))
			})
		}
	}
}

func TestOperations_DoNotMutateInput(t *testing.T) {
	e := testEngine()
	s := fixture()
	want := s.Clone()

	_, err := e.Delete(s, models.KindTenant, "t1", "")
	require.NoError(t, err)
	_, err = e.Delete(s, models.KindApartment, "a2", "")
	require.NoError(t, err)
	_, err = e.Archive(s, models.KindMaintenance, "m1", "")
	require.NoError(t, err)

	assert.Equal(t, want, s)
}

func TestArchive_TransactionScenario(t *testing.T) {
	before := fixture()
	res, err := testEngine().Archive(before, models.KindTransaction, "tx3", "Manager")
	require.NoError(t, err)
	require.True(t, res.Changed)

	i := FindTransaction(res.State, "tx3")
	got := res.State.Transactions[i]
	want := before.Transactions[i]
	want.Status = models.TxArchived
	assert.Equal(t, want, got)

	assert.Equal(t, before.Tenants, res.State.Tenants)
	assert.Equal(t, before.Apartments, res.State.Apartments)
	assert.Equal(t, before.Contracts, res.State.Contracts)
	assert.Equal(t, before.Maintenance, res.State.Maintenance)
	assert.Equal(t, before.Reports, res.State.Reports)
	assert.Empty(t, res.State.DeletedLog)
	require.Len(t, res.State.AuditLog, 1)
	assert.Equal(t, "Archive Transaction", res.State.AuditLog[0].Action)
}

func TestArchive_NoCascade(t *testing.T) {
	before := fixture()
	res, err := testEngine().Archive(before, models.KindTenant, "t1", "")
	require.NoError(t, err)

	i := FindTenant(res.State, "t1")
	assert.Equal(t, models.TenantArchived, res.State.Tenants[i].Status)
	assert.Equal(t, "a1", res.State.Tenants[i].ApartmentID)
	assert.Equal(t, before.Apartments, res.State.Apartments)
	assert.Equal(t, before.Contracts, res.State.Contracts)
	assert.Equal(t, before.Transactions, res.State.Transactions)
}

func TestArchive_ReportUsesFlag(t *testing.T) {
	res, err := testEngine().Archive(fixture(), models.KindReport, "r1", "")
	require.NoError(t, err)
	assert.True(t, res.State.Reports[0].Archived)

	again, err := testEngine().Archive(res.State, models.KindReport, "r1", "")
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, ReasonAlreadyArchived, again.Reason)
}

func TestRestoreFromDelete_TransactionScenario(t *testing.T) {
	e := testEngine()
	s := fixture()
	original := s.Transactions[FindTransaction(s, "tx3")]
	require.Equal(t, models.TxOverdue, original.Status)

	del, err := e.Delete(s, models.KindTransaction, "tx3", "")
	require.NoError(t, err)

	res, err := e.RestoreFromDelete(del.State, models.KindTransaction, "tx3", "Manager")
	require.NoError(t, err)
	require.True(t, res.Changed)

	i := FindTransaction(res.State, "tx3")
	require.GreaterOrEqual(t, i, 0)
	want := original
	want.Status = models.TxPending
	assert.Equal(t, want, res.State.Transactions[i])
	assert.Empty(t, res.State.DeletedLog)
	require.Len(t, res.State.AuditLog, 2)
	assert.Equal(t, "Restore", res.State.AuditLog[1].Action)
}

func TestRestore_StatusResetTable(t *testing.T) {
	tests := []struct {
		kind   models.EntityType
		id     string
		status func(State) string
		want   string
	}{
		{models.KindTenant, "t3", func(s State) string { return string(s.Tenants[FindTenant(s, "t3")].Status) }, string(models.TenantActive)},
		{models.KindApartment, "a1", func(s State) string { return string(s.Apartments[FindApartment(s, "a1")].Status) }, string(models.ApartmentVacant)},
		{models.KindContract, "c2", func(s State) string { return string(s.Contracts[FindContract(s, "c2")].Status) }, string(models.ContractActive)},
		{models.KindTransaction, "tx1", func(s State) string { return string(s.Transactions[FindTransaction(s, "tx1")].Status) }, string(models.TxPending)},
		{models.KindMaintenance, "m1", func(s State) string { return string(s.Maintenance[FindMaintenance(s, "m1")].Status) }, string(models.MaintenancePending)},
	}

	for _, tt := range tests {
		t.Run("deleted/"+string(tt.kind), func(t *testing.T) {
			e := testEngine()
			del, err := e.Delete(fixture(), tt.kind, tt.id, "")
			require.NoError(t, err)
			res, err := e.RestoreFromDelete(del.State, tt.kind, tt.id, "")
			require.NoError(t, err)
			require.True(t, res.Changed)
			assert.Equal(t, tt.want, tt.status(res.State))
		})

		t.Run("archived/"+string(tt.kind), func(t *testing.T) {
			e := testEngine()
			arc, err := e.Archive(fixture(), tt.kind, tt.id, "")
			require.NoError(t, err)
			res, err := e.RestoreFromArchive(arc.State, tt.kind, tt.id, "")
			require.NoError(t, err)
			require.True(t, res.Changed)
			assert.Equal(t, tt.want, tt.status(res.State))
		})
	}
}

func TestRestore_Report(t *testing.T) {
	e := testEngine()
	del, err := e.Delete(fixture(), models.KindReport, "r1", "")
	require.NoError(t, err)
	res, err := e.RestoreFromDelete(del.State, models.KindReport, "r1", "")
	require.NoError(t, err)
	assert.Equal(t, fixture().Reports, res.State.Reports)

	arc, err := e.Archive(fixture(), models.KindReport, "r1", "")
	require.NoError(t, err)
	res, err = e.RestoreFromArchive(arc.State, models.KindReport, "r1", "")
	require.NoError(t, err)
	assert.False(t, res.State.Reports[0].Archived)
}

func TestRestoreFromDelete_ApartmentDropsTenantLink(t *testing.T) {
	e := testEngine()
	del, err := e.Delete(fixture(), models.KindApartment, "a1", "")
	require.NoError(t, err)

	res, err := e.RestoreFromDelete(del.State, models.KindApartment, "a1", "")
	require.NoError(t, err)
	a := res.State.Apartments[FindApartment(res.State, "a1")]
	assert.Equal(t, models.ApartmentVacant, a.Status)
	assert.Empty(t, a.TenantID)
	assert.Empty(t, res.State.Tenants[FindTenant(res.State, "t1")].ApartmentID)
	assert.Equal(t, 15000.0, a.RentAmount)
}

func TestRestoreFromDelete_TenantLinkNotConfirmedIsDropped(t *testing.T) {
	e := testEngine()
	del, err := e.Delete(fixture(), models.KindTenant, "t1", "")
	require.NoError(t, err)

	res, err := e.RestoreFromDelete(del.State, models.KindTenant, "t1", "")
	require.NoError(t, err)
	tn := res.State.Tenants[FindTenant(res.State, "t1")]
	assert.Equal(t, models.TenantActive, tn.Status)
	assert.Empty(t, tn.ApartmentID, "a1 was vacated by the delete")
	assert.Equal(t, "2027-01-01", tn.LeaseEnd)

	// cascaded rows are not brought back
	assert.Equal(t, -1, FindContract(res.State, "c1"))
}

func TestRestoreFromDelete_UsesSnapshotNotLiveData(t *testing.T) {
	e := testEngine()
	del, err := e.Delete(fixture(), models.KindMaintenance, "m1", "")
	require.NoError(t, err)

	// the snapshot bytes are independent of the fixture's attachment slice
	var snap models.MaintenanceRequest
	require.NoError(t, json.Unmarshal(del.Deleted.OriginalData, &snap))
	assert.Equal(t, "leak.jpg", snap.Attachments[0].Name)

	res, err := e.RestoreFromDelete(del.State, models.KindMaintenance, "m1", "")
	require.NoError(t, err)
	m := res.State.Maintenance[FindMaintenance(res.State, "m1")]
	assert.Equal(t, "Leaking faucet in kitchen", m.Description)
	assert.Len(t, m.Attachments, 1)
}

func TestRestoreFromDelete_AlreadyLive(t *testing.T) {
	e := testEngine()
	del, err := e.Delete(fixture(), models.KindContract, "c1", "")
	require.NoError(t, err)

	s := del.State
	s.Contracts = appended(s.Contracts, models.Contract{ID: "c1", TenantID: "t1", ApartmentID: "a1"})

	res, err := e.RestoreFromDelete(s, models.KindContract, "c1", "")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, ReasonAlreadyLive, res.Reason)
	assert.Len(t, res.State.DeletedLog, 1)
}

func TestRestoreFromArchive_NotArchived(t *testing.T) {
	res, err := testEngine().RestoreFromArchive(fixture(), models.KindTransaction, "tx3", "")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, ReasonNotArchived, res.Reason)
}

func TestRestoreFromArchive_ApartmentClearsLinks(t *testing.T) {
	e := testEngine()
	arc, err := e.Archive(fixture(), models.KindApartment, "a2", "")
	require.NoError(t, err)
	res, err := e.RestoreFromArchive(arc.State, models.KindApartment, "a2", "")
	require.NoError(t, err)

	a := res.State.Apartments[FindApartment(res.State, "a2")]
	assert.Equal(t, models.ApartmentVacant, a.Status)
	assert.Empty(t, a.TenantID)
	assert.Empty(t, res.State.Tenants[FindTenant(res.State, "t2")].ApartmentID)
}

func TestApply(t *testing.T) {
	e := testEngine()
	res, err := e.Apply(fixture(), Intent{Op: OpArchive, Kind: models.KindContract, ID: "c1", Actor: "Manager"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Manager", res.Audit.User)

	_, err = e.Apply(fixture(), Intent{Op: "purge", Kind: models.KindContract, ID: "c1"})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Apply(fixture(), Intent{Op: OpDelete, Kind: "Vendor", ID: "v1"})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Apply(fixture(), Intent{Op: OpRestoreDeleted, Kind: "Setting", ID: "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestArchivedRecords(t *testing.T) {
	e := testEngine()
	s := fixture()
	res, err := e.Archive(s, models.KindTenant, "t3", "")
	require.NoError(t, err)
	res, err = e.Archive(res.State, models.KindReport, "r1", "")
	require.NoError(t, err)

	got := ArchivedRecords(res.State, fixedNow)
	require.Len(t, got, 2)
	assert.Equal(t, models.KindTenant, got[0].Type)
	assert.Equal(t, "John Doe", got[0].Name)
	assert.Equal(t, models.ActionArchived, got[0].Action)
	assert.Equal(t, fixedNow, got[0].Date)
	assert.Equal(t, "Admin", got[0].User)
	assert.Equal(t, models.KindReport, got[1].Type)
	assert.False(t, got[1].Date.IsZero())

	assert.Empty(t, ArchivedRecords(fixture(), fixedNow))
}

func TestStateClone_Independent(t *testing.T) {
	s := fixture()
	c := s.Clone()
	*c.Contracts[0].ReminderDays = 7
	c.Maintenance[0].Attachments[0].Name = "changed"

	assert.Equal(t, 30, *s.Contracts[0].ReminderDays)
	assert.Equal(t, "leak.jpg", s.Maintenance[0].Attachments[0].Name)
}
