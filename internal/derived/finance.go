package derived

import "github.com/lalith-99/propmaster/internal/models"

// FinanceSummary holds the ledger totals shown on the finance and
// dashboard views.
type FinanceSummary struct {
	InvoiceCount     int     `json:"invoice_count"`
	TotalInvoiced    float64 `json:"total_invoiced"`
	TotalReceived    float64 `json:"total_received"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalExpenses    float64 `json:"total_expenses"`
	OverdueCount     int     `json:"overdue_count"`
}

// Outstanding reports whether tx is an invoice still owed.
func Outstanding(tx models.Transaction) bool {
	return tx.Type == models.TxInvoice &&
		(tx.Status == models.TxUnpaid || tx.Status == models.TxOverdue)
}

// Finance totals the ledger by type. Archiving hides a row from listings
// but it still counts here; an archived invoice is never outstanding.
func Finance(txs []models.Transaction) FinanceSummary {
	var f FinanceSummary
	for _, tx := range txs {
		switch tx.Type {
		case models.TxInvoice:
			f.InvoiceCount++
			f.TotalInvoiced += tx.Amount
			if Outstanding(tx) {
				f.TotalOutstanding += tx.Amount
			}
			if tx.Status == models.TxOverdue {
				f.OverdueCount++
			}
		case models.TxPayment:
			f.TotalReceived += tx.Amount
		case models.TxExpense:
			f.TotalExpenses += tx.Amount
		}
	}
	return f
}

// UnpaidInvoices lists the invoices a payment can be linked to.
func UnpaidInvoices(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if Outstanding(tx) {
			out = append(out, tx)
		}
	}
	return out
}
