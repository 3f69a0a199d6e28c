package derived

import (
	"cmp"
	"slices"

	"github.com/lalith-99/propmaster/internal/models"
)

// ReportFilter scopes a report. Zero values mean "All".
type ReportFilter struct {
	ApartmentFilter
	TenantStatus models.TenantStatus `form:"tenant_status" json:"tenant_status,omitempty"`
	From         string              `form:"from" json:"from,omitempty"`
	To           string              `form:"to" json:"to,omitempty"`
}

func (f ReportFilter) broad() bool {
	return f.Building == "" && f.Rooms == 0 && f.TenantStatus == ""
}

// MonthTotals is one row of the revenue/expense breakdown.
type MonthTotals struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
}

type ReportSummary struct {
	Filter        ReportFilter  `json:"filter"`
	Income        float64       `json:"income"`
	Expenses      float64       `json:"expenses"`
	NetProfit     float64       `json:"net_profit"`
	OccupancyRate int           `json:"occupancy_rate"`
	Apartments    int           `json:"apartments"`
	Tenants       int           `json:"tenants"`
	Transactions  int           `json:"transactions"`
	Monthly       []MonthTotals `json:"monthly"`
}

// Summarize builds the report for f.
//
// Apartments are filtered by building and rooms. Tenants must match the
// status filter and either have no apartment or live in a filtered one.
// A transaction counts when it relates to a filtered tenant or has no
// relation at all; when every scope filter is "All" any relation counts.
// The date range applies to every transaction, archived ones included.
func Summarize(apartments []models.Apartment, tenants []models.Tenant, txs []models.Transaction, f ReportFilter) ReportSummary {
	apts := FilterApartments(apartments, f.ApartmentFilter)
	inScope := make(map[string]bool, len(apts))
	for _, a := range apts {
		inScope[a.ID] = true
	}

	tenantIDs := make(map[string]bool)
	for _, t := range tenants {
		if f.TenantStatus != "" && t.Status != f.TenantStatus {
			continue
		}
		if t.ApartmentID != "" && !inScope[t.ApartmentID] {
			continue
		}
		tenantIDs[t.ID] = true
	}

	s := ReportSummary{
		Filter:     f,
		Apartments: len(apts),
		Tenants:    len(tenantIDs),
		Monthly:    make([]MonthTotals, 0),
	}
	months := make(map[string]*MonthTotals)

	for _, tx := range txs {
		if tx.RelatedID != "" && !tenantIDs[tx.RelatedID] && !f.broad() {
			continue
		}
		if (f.From != "" && tx.Date < f.From) || (f.To != "" && tx.Date > f.To) {
			continue
		}
		s.Transactions++

		var m *MonthTotals
		if len(tx.Date) >= 7 {
			key := tx.Date[:7]
			if m = months[key]; m == nil {
				m = &MonthTotals{Month: key}
				months[key] = m
			}
		}
		switch tx.Type {
		case models.TxPayment:
			s.Income += tx.Amount
			if m != nil {
				m.Revenue += tx.Amount
			}
		case models.TxExpense:
			s.Expenses += tx.Amount
			if m != nil {
				m.Expense += tx.Amount
			}
		}
	}

	s.NetProfit = s.Income - s.Expenses
	s.OccupancyRate = OccupancyRate(apts)
	for _, m := range months {
		s.Monthly = append(s.Monthly, *m)
	}
	slices.SortFunc(s.Monthly, func(a, b MonthTotals) int { return cmp.Compare(a.Month, b.Month) })
	return s
}
