package derived

import (
	"fmt"
	"time"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

// DashboardStats are the headline counts of the manager dashboard.
// Archived records are not counted.
type DashboardStats struct {
	Tenants            int            `json:"tenants"`
	ActiveTenants      int            `json:"active_tenants"`
	Apartments         int            `json:"apartments"`
	Occupied           int            `json:"occupied"`
	Vacant             int            `json:"vacant"`
	OccupancyRate      int            `json:"occupancy_rate"`
	ActiveContracts    int            `json:"active_contracts"`
	ExpiringContracts  int            `json:"expiring_contracts"`
	PendingMaintenance int            `json:"pending_maintenance"`
	PendingPayments    int            `json:"pending_payments"`
	Finance            FinanceSummary `json:"finance"`
}

func Dashboard(s lifecycle.State, now time.Time) DashboardStats {
	apts := Live(s.Apartments)
	d := DashboardStats{
		Apartments:    len(apts),
		OccupancyRate: OccupancyRate(apts),
		Finance:       Finance(s.Transactions),
	}
	for _, t := range Live(s.Tenants) {
		d.Tenants++
		if t.Status == models.TenantActive {
			d.ActiveTenants++
		}
	}
	for _, a := range apts {
		switch a.Status {
		case models.ApartmentOccupied:
			d.Occupied++
		case models.ApartmentVacant:
			d.Vacant++
		}
	}
	for _, c := range s.Contracts {
		if c.Status == models.ContractActive {
			d.ActiveContracts++
		}
		if ContractExpiringSoon(c, now) {
			d.ExpiringContracts++
		}
	}
	for _, m := range s.Maintenance {
		if m.Status == models.MaintenancePending {
			d.PendingMaintenance++
		}
	}
	for _, tx := range s.Transactions {
		if tx.Status == models.TxPending {
			d.PendingPayments++
		}
	}
	return d
}

type NotificationType string

const (
	NotifyPendingReview  NotificationType = "pending_review"
	NotifyNewMaintenance NotificationType = "new_maintenance"
	NotifyOverdue        NotificationType = "overdue"
	NotifyExpiring       NotificationType = "expiring"
)

type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	Time    string           `json:"time"`
}

// DefaultNotificationLimit matches the size of the dashboard bell menu.
const DefaultNotificationLimit = 8

// Notifications lists what needs the manager's attention, grouped in this
// order: payments awaiting review, new maintenance requests, overdue
// invoices, contracts expiring soon. At most limit entries are returned;
// limit <= 0 means no limit.
func Notifications(s lifecycle.State, now time.Time, lang models.Language, limit int) []Notification {
	tenantName := func(id, fallback string) string {
		if i := lifecycle.FindTenant(s, id); i >= 0 {
			return s.Tenants[i].Name
		}
		return fallback
	}
	ar := lang == models.LanguageArabic

	out := make([]Notification, 0)
	for _, tx := range s.Transactions {
		if tx.Status != models.TxPending {
			continue
		}
		msg := fmt.Sprintf("Tenant %s submitted a payment receipt. Please review.", tenantName(tx.RelatedID, "Unknown"))
		if ar {
			msg = fmt.Sprintf("قام المستأجر %s بإرسال إيصال دفع. يرجى المراجعة.", tenantName(tx.RelatedID, "غير معروف"))
		}
		out = append(out, Notification{ID: tx.ID, Type: NotifyPendingReview, Message: msg, Time: tx.Date})
	}
	for _, m := range s.Maintenance {
		if m.Status != models.MaintenancePending {
			continue
		}
		msg := fmt.Sprintf("New maintenance request from %s - %s", tenantName(m.TenantID, "Tenant"), m.IssueType)
		if ar {
			msg = fmt.Sprintf("طلب صيانة جديد من %s - %s", tenantName(m.TenantID, "مستأجر"), m.IssueType)
		}
		out = append(out, Notification{ID: m.ID, Type: NotifyNewMaintenance, Message: msg, Time: m.DateReported})
	}
	for _, tx := range s.Transactions {
		if tx.Type != models.TxInvoice || tx.Status != models.TxOverdue {
			continue
		}
		msg := fmt.Sprintf("Rent overdue for tenant %s", tenantName(tx.RelatedID, "Unknown"))
		if ar {
			msg = fmt.Sprintf("إيجار مستحق للمستأجر %s", tenantName(tx.RelatedID, "غير معروف"))
		}
		out = append(out, Notification{ID: tx.ID, Type: NotifyOverdue, Message: msg, Time: tx.Date})
	}
	today := FormatDate(now)
	for _, c := range ExpiringContracts(s.Contracts, now) {
		number := "N/A"
		if i := lifecycle.FindApartment(s, c.ApartmentID); i >= 0 {
			number = s.Apartments[i].Number
		}
		msg := fmt.Sprintf("Contract for Apt %s expires on %s", number, c.EndDate)
		if ar {
			msg = fmt.Sprintf("عقد الشقة %s ينتهي في %s", number, c.EndDate)
		}
		out = append(out, Notification{ID: c.ID, Type: NotifyExpiring, Message: msg, Time: today})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
