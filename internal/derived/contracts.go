package derived

import (
	"math"
	"time"

	"github.com/lalith-99/propmaster/internal/models"
)

// ExpiringWindowDays is how far ahead a contract end counts as "soon".
const ExpiringWindowDays = 30

// DaysUntilEnd is the number of days from now to the contract's end date,
// rounded up. A contract ending later today is 0 days away; one that
// ended yesterday is negative. ok is false when EndDate does not parse.
func DaysUntilEnd(c models.Contract, now time.Time) (days int, ok bool) {
	end, ok := ParseDate(c.EndDate)
	if !ok {
		return 0, false
	}
	d := math.Ceil(end.Sub(now.UTC()).Hours() / 24)
	return int(d), true
}

// ContractExpiringSoon reports whether an active contract ends within the
// next ExpiringWindowDays days, today included.
func ContractExpiringSoon(c models.Contract, now time.Time) bool {
	if c.Status != models.ContractActive {
		return false
	}
	days, ok := DaysUntilEnd(c, now)
	return ok && days >= 0 && days <= ExpiringWindowDays
}

// ContractOverdue reports whether an active contract's end date is before
// today. Time of day is ignored.
func ContractOverdue(c models.Contract, now time.Time) bool {
	if c.Status != models.ContractActive {
		return false
	}
	end, ok := ParseDate(c.EndDate)
	return ok && end.Before(Today(now))
}

// ExpiringContracts returns the contracts for which ContractExpiringSoon
// holds, in input order.
func ExpiringContracts(contracts []models.Contract, now time.Time) []models.Contract {
	out := make([]models.Contract, 0)
	for _, c := range contracts {
		if ContractExpiringSoon(c, now) {
			out = append(out, c)
		}
	}
	return out
}

// ContractState is the label a contract list shows: its status, except
// that an active contract past its end date reads "overdue".
func ContractState(c models.Contract, now time.Time) string {
	if ContractOverdue(c, now) {
		return "overdue"
	}
	return string(c.Status)
}
