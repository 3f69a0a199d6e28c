package derived

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lalith-99/propmaster/internal/models"
)

// Category is the bucket an invoice is charged under in tenant history.
type Category string

const (
	CategoryRent      Category = "rent"
	CategoryUtilities Category = "utilities"
	CategoryFees      Category = "fees"
	CategoryNone      Category = ""
)

// Keywords are matched as substrings of the lowercased description and
// category. Buckets are tried in order and the first hit wins.
var categoryKeywords = []struct {
	cat      Category
	keywords []string
}{
	{CategoryRent, []string{"rent", "إيجار"}},
	{CategoryUtilities, []string{"utilit", "water", "electr", "gas", "internet", "مرافق"}},
	{CategoryFees, []string{"fee", "tax", "penalty", "fine", "deposit", "غرامة", "رسوم"}},
}

// Categorize buckets an invoice by keyword. Unmatched text is CategoryNone.
func Categorize(tx models.Transaction) Category {
	text := strings.ToLower(tx.Description + " " + tx.Category)
	for _, b := range categoryKeywords {
		for _, k := range b.keywords {
			if strings.Contains(text, k) {
				return b.cat
			}
		}
	}
	return CategoryNone
}

type CategoryTotals struct {
	Rent      float64 `json:"rent"`
	Utilities float64 `json:"utilities"`
	Fees      float64 `json:"fees"`
}

// History is one tenant's ledger and maintenance record.
type History struct {
	TenantID     string                      `json:"tenant_id"`
	Invoiced     float64                     `json:"invoiced"`
	Paid         float64                     `json:"paid"`
	Outstanding  float64                     `json:"outstanding"`
	Categories   CategoryTotals              `json:"categories"`
	Transactions []models.Transaction        `json:"transactions"`
	Maintenance  []models.MaintenanceRequest `json:"maintenance"`
}

// TenantHistory collects the transactions related to tenantID and the
// maintenance it reported, newest first. Archived rows count toward the
// totals like any other.
func TenantHistory(tenantID string, txs []models.Transaction, requests []models.MaintenanceRequest) History {
	h := History{
		TenantID:     tenantID,
		Transactions: make([]models.Transaction, 0),
		Maintenance:  make([]models.MaintenanceRequest, 0),
	}

	for _, tx := range txs {
		if tx.RelatedID != tenantID {
			continue
		}
		h.Transactions = append(h.Transactions, tx)
		switch tx.Type {
		case models.TxInvoice:
			h.Invoiced += tx.Amount
			if Outstanding(tx) {
				h.Outstanding += tx.Amount
			}
			switch Categorize(tx) {
			case CategoryRent:
				h.Categories.Rent += tx.Amount
			case CategoryUtilities:
				h.Categories.Utilities += tx.Amount
			case CategoryFees:
				h.Categories.Fees += tx.Amount
			}
		case models.TxPayment:
			h.Paid += tx.Amount
		}
	}
	for _, m := range requests {
		if m.TenantID == tenantID {
			h.Maintenance = append(h.Maintenance, m.Clone())
		}
	}

	// ISO dates sort lexically.
	slices.SortStableFunc(h.Transactions, func(a, b models.Transaction) int {
		return cmp.Compare(b.Date, a.Date)
	})
	slices.SortStableFunc(h.Maintenance, func(a, b models.MaintenanceRequest) int {
		return cmp.Compare(b.DateReported, a.DateReported)
	})
	return h
}
