package lifecycle

import (
	"fmt"
	"strconv"

	"github.com/lalith-99/propmaster/internal/models"
)

// Display labels used in the deleted/archived log.

func tenantName(t models.Tenant) string { return t.Name }

func apartmentName(a models.Apartment) string {
	return fmt.Sprintf("%s - %s", a.Number, a.Building)
}

func contractName(c models.Contract) string {
	return fmt.Sprintf("Contract %s (Tenant: %s)", c.ID, c.TenantID)
}

func transactionName(t models.Transaction) string {
	return fmt.Sprintf("%s - %s", t.Type, strconv.FormatFloat(t.Amount, 'f', -1, 64))
}

func maintenanceName(m models.MaintenanceRequest) string {
	desc := []rune(m.Description)
	if len(desc) > 20 {
		return fmt.Sprintf("%s - %s...", m.IssueType, string(desc[:20]))
	}
	return fmt.Sprintf("%s - %s", m.IssueType, m.Description)
}

func reportName(r models.Report) string { return r.Name }
