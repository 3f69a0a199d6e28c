package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct {
	mu    sync.Mutex
	saves []lifecycle.State
	err   error
}

func (p *recordingPersister) SaveState(_ context.Context, s lifecycle.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, s)
	return p.err
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

type stubLoader struct {
	state *lifecycle.State
	err   error
}

func (l stubLoader) LoadState(context.Context) (*lifecycle.State, error) { return l.state, l.err }

func newTestStore(t *testing.T, strict bool) (*Store, *recordingPersister) {
	t.Helper()
	n := 0
	engine := &lifecycle.Engine{
		Now: func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		},
	}
	p := &recordingPersister{}
	return New(DemoState(), Options{Engine: engine, Persister: p, StrictReferences: strict}), p
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()

	s, err := LoadOrDefault(ctx, nil, true)
	require.NoError(t, err)
	assert.Len(t, s.Tenants, 3)

	s, err = LoadOrDefault(ctx, stubLoader{}, false)
	require.NoError(t, err)
	assert.Empty(t, s.Tenants)

	saved := lifecycle.State{Tenants: []models.Tenant{{ID: "x", Name: "Saved"}}}
	s, err = LoadOrDefault(ctx, stubLoader{state: &saved}, true)
	require.NoError(t, err)
	assert.Equal(t, saved, s)

	_, err = LoadOrDefault(ctx, stubLoader{err: errors.New("db down")}, true)
	assert.ErrorContains(t, err, "db down")
}

func TestDemoState_LinksAgree(t *testing.T) {
	s := DemoState()
	for _, a := range s.Apartments {
		if a.TenantID == "" {
			continue
		}
		i := lifecycle.FindTenant(s, a.TenantID)
		require.GreaterOrEqual(t, i, 0)
		assert.Equal(t, a.ID, s.Tenants[i].ApartmentID)
	}
}

func TestAddAndUpdate(t *testing.T) {
	ctx := context.Background()
	st, p := newTestStore(t, false)

	tn, err := st.AddTenant(ctx, models.Tenant{ID: "ignored", Name: "Mona"}, "Manager")
	require.NoError(t, err)
	assert.Equal(t, "gen-1", tn.ID)
	assert.Equal(t, models.TenantActive, tn.Status)

	got, ok := st.Tenant("gen-1")
	require.True(t, ok)
	assert.Equal(t, "Mona", got.Name)

	tn.Phone = "0100"
	ok, err = st.UpdateTenant(ctx, tn, "Manager")
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = st.Tenant("gen-1")
	assert.Equal(t, "0100", got.Phone)

	ok, err = st.UpdateTenant(ctx, models.Tenant{ID: "missing", Name: "x"}, "Manager")
	require.NoError(t, err)
	assert.False(t, ok)

	log := st.AuditLog()
	require.Len(t, log, 2)
	assert.Equal(t, "Update Tenant", log[0].Action)
	assert.Equal(t, "Add Tenant", log[1].Action)
	assert.Equal(t, "Manager", log[0].User)
	assert.Equal(t, 2, p.count())
}

func TestListReturnsCopies(t *testing.T) {
	st, _ := newTestStore(t, false)
	ms := st.Maintenance()
	ms[0].Attachments[0].Name = "changed"
	ms[0].Status = models.MaintenanceCompleted

	again := st.Maintenance()
	assert.Equal(t, "leak_photo.jpg", again[0].Attachments[0].Name)
	assert.Equal(t, models.MaintenanceInProgress, again[0].Status)
}

func TestStrictReferences(t *testing.T) {
	ctx := context.Background()

	lax, _ := newTestStore(t, false)
	_, err := lax.AddContract(ctx, models.Contract{TenantID: "ghost", ApartmentID: "a3"}, "")
	assert.NoError(t, err)

	strict, _ := newTestStore(t, true)
	_, err = strict.AddContract(ctx, models.Contract{TenantID: "ghost", ApartmentID: "a3"}, "")
	assert.ErrorIs(t, err, ErrDanglingReference)
	_, err = strict.AddContract(ctx, models.Contract{TenantID: "t3", ApartmentID: "nowhere"}, "")
	assert.ErrorIs(t, err, ErrDanglingReference)

	c, err := strict.AddContract(ctx, models.Contract{TenantID: "t3", ApartmentID: "a3"}, "")
	require.NoError(t, err)

	c.ApartmentID = "nowhere"
	ok, err := strict.UpdateContract(ctx, c, "")
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.False(t, ok)

	_, err = strict.AddMaintenance(ctx, models.MaintenanceRequest{TenantID: "ghost", IssueType: "Leak"}, "")
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestLifecycleCommitsAndPersists(t *testing.T) {
	ctx := context.Background()
	st, p := newTestStore(t, false)

	var heard []models.AuditLogEntry
	st.Subscribe(func(e models.AuditLogEntry) { heard = append(heard, e) })

	res, err := st.Delete(ctx, models.KindTenant, "t1", "Manager")
	require.NoError(t, err)
	require.True(t, res.Changed)

	_, ok := st.Tenant("t1")
	assert.False(t, ok)
	a, _ := st.Apartment("a1")
	assert.Equal(t, models.ApartmentVacant, a.Status)
	require.Len(t, st.DeletedLog(), 1)
	assert.Equal(t, 1, p.count())
	require.Len(t, heard, 1)
	assert.Equal(t, "Delete Tenant", heard[0].Action)

	res, err = st.Delete(ctx, models.KindTenant, "t1", "Manager")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 1, p.count(), "no-op must not persist")

	res, err = st.RestoreFromDelete(ctx, models.KindTenant, "t1", "Manager")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	tn, ok := st.Tenant("t1")
	require.True(t, ok)
	assert.Equal(t, models.TenantActive, tn.Status)
	assert.Empty(t, st.DeletedLog())

	_, err = st.Apply(ctx, lifecycle.Intent{Op: "explode", Kind: models.KindTenant, ID: "t1"})
	assert.ErrorIs(t, err, lifecycle.ErrUnsupported)
}

func TestArchiveAndRestoreArchive(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	_, err := st.Archive(ctx, models.KindTransaction, "tx3", "")
	require.NoError(t, err)
	recs := st.ArchivedRecords()
	require.Len(t, recs, 1)
	assert.Equal(t, "tx3", recs[0].ID)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), recs[0].Date)
	assert.Equal(t, "Admin", recs[0].User)

	_, err = st.RestoreFromArchive(ctx, models.KindTransaction, "tx3", "")
	require.NoError(t, err)
	tx, _ := st.Transaction("tx3")
	assert.Equal(t, models.TxPending, tx.Status)
	assert.Empty(t, st.ArchivedRecords())
}

func TestPersistFailureKeepsCommit(t *testing.T) {
	ctx := context.Background()
	st, p := newTestStore(t, false)
	p.err = errors.New("disk full")

	_, err := st.AddReport(ctx, models.Report{Name: "Q3"}, "")
	require.NoError(t, err)
	assert.Len(t, st.Reports(), 1)
}

func TestRecordAudit(t *testing.T) {
	st, p := newTestStore(t, false)
	e := st.RecordAudit(context.Background(), "", "Login", "User Admin logged in.")
	assert.Equal(t, "System", e.User)
	assert.Equal(t, e, st.AuditLog()[0])
	assert.Equal(t, 1, p.count())
}

func TestRenewContract(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	c, inv, ok, err := st.RenewContract(ctx, "c1", Renewal{EndDate: "2027-01-01", RentAmount: 16000, GenerateInvoice: true}, "Manager")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2027-01-01", c.EndDate)
	assert.Equal(t, 16000.0, c.RentAmount)
	assert.Equal(t, models.ContractActive, c.Status)

	require.NotNil(t, inv)
	assert.Equal(t, models.TxInvoice, inv.Type)
	assert.Equal(t, models.TxUnpaid, inv.Status)
	assert.Equal(t, "t1", inv.RelatedID)
	assert.Equal(t, 16000.0, inv.Amount)
	assert.Equal(t, "2026-10-19", inv.Date)
	assert.Equal(t, "Contract Renewal - 101 - Building A", inv.Description)
	_, found := st.Transaction(inv.ID)
	assert.True(t, found)

	_, inv, ok, err = st.RenewContract(ctx, "c2", Renewal{EndDate: "2027-06-01", RentAmount: 12000}, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, inv)

	_, _, ok, err = st.RenewContract(ctx, "nope", Renewal{EndDate: "2027-06-01"}, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, _, err = st.RenewContract(ctx, "c1", Renewal{EndDate: "next year"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaymentSubmissionAndReview(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	// t2 owes tx3 (overdue)
	tx, ok, err := st.SubmitPayment(ctx, "t2", PaymentSubmission{ReceiptURL: "https://files/receipt.pdf", Method: models.PaymentCard}, "Sara Mohamed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tx3", tx.ID)
	assert.Equal(t, models.TxPending, tx.Status)
	assert.Equal(t, models.PaymentCard, tx.PaymentMethod)

	// t1 cannot touch t2's invoice
	_, ok, err = st.SubmitPayment(ctx, "t1", PaymentSubmission{InvoiceID: "tx3", ReceiptURL: "x"}, "")
	require.NoError(t, err)
	assert.False(t, ok)

	// tx1 is already paid
	_, ok, err = st.SubmitPayment(ctx, "t1", PaymentSubmission{InvoiceID: "tx1", ReceiptURL: "x"}, "")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidState)

	reviewed, ok, err := st.ReviewPayment(ctx, "tx3", false, "Manager")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.TxRejected, reviewed.Status)

	// a rejected invoice can be resubmitted
	_, ok, err = st.SubmitPayment(ctx, "t2", PaymentSubmission{InvoiceID: "tx3", ReceiptURL: "y"}, "")
	require.NoError(t, err)
	require.True(t, ok)

	reviewed, _, err = st.ReviewPayment(ctx, "tx3", true, "Manager")
	require.NoError(t, err)
	assert.Equal(t, models.TxPaid, reviewed.Status)

	_, _, err = st.ReviewPayment(ctx, "tx3", true, "Manager")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, ok, err = st.ReviewPayment(ctx, "missing", true, "Manager")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "Payment Approved", st.AuditLog()[0].Action)
}

func TestAddMaintenanceFromPortal(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	m, err := st.AddMaintenanceFromPortal(ctx, "t1", models.MaintenanceRequest{
		TenantID:       "t2",
		IssueType:      "Plumbing",
		Description:    "Shower drain blocked",
		Status:         models.MaintenanceCompleted,
		AssignedVendor: "Someone",
		Attachments:    []models.Attachment{{Name: "drain.jpg", Type: models.AttachmentImage}},
	}, "Ahmed Ali")
	require.NoError(t, err)

	assert.Equal(t, "t1", m.TenantID)
	assert.Equal(t, "a1", m.ApartmentID)
	assert.Equal(t, models.MaintenancePending, m.Status)
	assert.Equal(t, "2026-10-19", m.DateReported)
	assert.Empty(t, m.AssignedVendor)
	assert.NotEmpty(t, m.Attachments[0].ID)

	_, err = st.AddMaintenanceFromPortal(ctx, "ghost", models.MaintenanceRequest{IssueType: "x"}, "")
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestAddMaintenanceFromPortal_PinsTenantApartment(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	m, err := st.AddMaintenanceFromPortal(ctx, "t1", models.MaintenanceRequest{
		ApartmentID: "a2",
		IssueType:   "Electrical",
	}, "Ahmed Ali")
	require.NoError(t, err)
	assert.Equal(t, "a1", m.ApartmentID)

	for _, r := range st.Maintenance() {
		if r.TenantID == "t1" {
			assert.NotEqual(t, "a2", r.ApartmentID)
		}
	}
}

func TestConcurrentOperationsAreSerialised(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.AddReport(ctx, models.Report{Name: "r"}, "")
			_ = st.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, st.Reports(), 50)
	assert.Len(t, st.AuditLog(), 50)
}
