package store

import (
	"context"
	"fmt"

	"github.com/lalith-99/propmaster/internal/derived"
	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

type Renewal struct {
	EndDate         string  `json:"end_date" binding:"required"`
	RentAmount      float64 `json:"rent_amount" binding:"gte=0"`
	GenerateInvoice bool    `json:"generate_invoice"`
}

// RenewContract extends a contract to r.EndDate at r.RentAmount and makes
// it active again. With GenerateInvoice it also raises an unpaid invoice
// for the new rent against the contract's tenant. ok is false when the
// contract does not exist.
func (s *Store) RenewContract(ctx context.Context, id string, r Renewal, actor string) (c models.Contract, invoice *models.Transaction, ok bool, err error) {
	if _, valid := derived.ParseDate(r.EndDate); !valid {
		return models.Contract{}, nil, false, fmt.Errorf("%w: end date %q", ErrInvalidInput, r.EndDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := lifecycle.FindContract(s.state, id)
	if i < 0 {
		return models.Contract{}, nil, false, nil
	}
	c = s.state.Contracts[i].Clone()
	if c.IsArchived() {
		return models.Contract{}, nil, true, fmt.Errorf("%w: contract %s is archived", ErrInvalidState, id)
	}
	c.EndDate = r.EndDate
	c.RentAmount = r.RentAmount
	c.Status = models.ContractActive

	next, renewed, _ := replace(s.engine, s.state, contracts, c, actor, "Renew Contract",
		fmt.Sprintf("Renewed contract %s until %s.", id, r.EndDate))
	entries := []models.AuditLogEntry{renewed}

	if r.GenerateInvoice {
		apt := "N/A"
		if j := lifecycle.FindApartment(next, c.ApartmentID); j >= 0 {
			apt = fmt.Sprintf("%s - %s", next.Apartments[j].Number, next.Apartments[j].Building)
		}
		tx := models.Transaction{
			Type:        models.TxInvoice,
			Date:        derived.FormatDate(s.engine.Now()),
			Amount:      r.RentAmount,
			Description: "Contract Renewal - " + apt,
			Status:      models.TxUnpaid,
			RelatedID:   c.TenantID,
		}
		var added models.AuditLogEntry
		next, tx, added = insert(s.engine, next, transactions, tx, actor)
		invoice = &tx
		entries = append(entries, added)
	}

	s.commit(ctx, next, entries...)
	return c.Clone(), invoice, true, nil
}

type PaymentSubmission struct {
	InvoiceID  string               `json:"invoice_id"`
	Method     models.PaymentMethod `json:"payment_method"`
	ReceiptURL string               `json:"receipt_url" binding:"required"`
}

// SubmitPayment is the tenant side of paying an invoice: the invoice moves
// to pending until a manager reviews it. With no InvoiceID the tenant's
// first open invoice is used. ok is false when the tenant has no such
// invoice; invoices of other tenants are invisible here.
func (s *Store) SubmitPayment(ctx context.Context, tenantID string, p PaymentSubmission, actor string) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for k, tx := range s.state.Transactions {
		if tx.Type != models.TxInvoice || tx.RelatedID != tenantID {
			continue
		}
		if (p.InvoiceID == "" && derived.Outstanding(tx)) || (p.InvoiceID != "" && tx.ID == p.InvoiceID) {
			i = k
			break
		}
	}
	if i < 0 {
		return models.Transaction{}, false, nil
	}

	tx := s.state.Transactions[i]
	switch tx.Status {
	case models.TxUnpaid, models.TxOverdue, models.TxRejected:
	default:
		return models.Transaction{}, true, fmt.Errorf("%w: invoice %s is %s", ErrInvalidState, tx.ID, tx.Status)
	}
	tx.Status = models.TxPending
	tx.ReceiptURL = p.ReceiptURL
	if p.Method != "" {
		tx.PaymentMethod = p.Method
	}

	next, entry, _ := replace(s.engine, s.state, transactions, tx, actor, "Submit Payment",
		fmt.Sprintf("Payment receipt submitted for %s.", tx.ID))
	s.commit(ctx, next, entry)
	return tx, true, nil
}

// ReviewPayment settles a pending transaction: approve marks it paid,
// otherwise rejected. ok is false when the transaction does not exist.
func (s *Store) ReviewPayment(ctx context.Context, id string, approve bool, actor string) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := lifecycle.FindTransaction(s.state, id)
	if i < 0 {
		return models.Transaction{}, false, nil
	}
	tx := s.state.Transactions[i]
	if tx.Status != models.TxPending {
		return models.Transaction{}, true, fmt.Errorf("%w: transaction %s is %s", ErrInvalidState, id, tx.Status)
	}

	verdict := "Payment Rejected"
	tx.Status = models.TxRejected
	if approve {
		verdict = "Payment Approved"
		tx.Status = models.TxPaid
	}
	next, entry, _ := replace(s.engine, s.state, transactions, tx, actor, verdict,
		fmt.Sprintf("%s for %s.", verdict, id))
	s.commit(ctx, next, entry)
	return tx, true, nil
}

// AddMaintenanceFromPortal files a request on behalf of tenantID. The
// request always starts pending and is dated today. A tenant with an
// apartment can only file against that apartment; the caller's
// apartment_id is used only when the tenant has none.
func (s *Store) AddMaintenanceFromPortal(ctx context.Context, tenantID string, m models.MaintenanceRequest, actor string) (models.MaintenanceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := lifecycle.FindTenant(s.state, tenantID)
	if i < 0 {
		return models.MaintenanceRequest{}, fmt.Errorf("%w: tenant %q", ErrDanglingReference, tenantID)
	}
	m = m.Clone()
	m.TenantID = tenantID
	if own := s.state.Tenants[i].ApartmentID; own != "" {
		m.ApartmentID = own
	}
	m.Status = models.MaintenancePending
	m.DateReported = derived.FormatDate(s.engine.Now())
	m.AssignedVendor = ""
	m.EstimatedCost = 0
	for k := range m.Attachments {
		if m.Attachments[k].ID == "" {
			m.Attachments[k].ID = s.engine.NewID()
		}
	}
	if s.strict {
		if err := checkMaintenance(s.state, m); err != nil {
			return models.MaintenanceRequest{}, err
		}
	}

	next, out, entry := insert(s.engine, s.state, maintenance, m, actor)
	s.commit(ctx, next, entry)
	return out, nil
}
