package store

import (
	"fmt"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

// Reference checks run only when the store is strict. Empty ids are left
// to request binding; only a non-empty id that matches nothing fails.

func checkRef(s lifecycle.State, owner string, kind models.EntityType, id string) error {
	if id == "" || lifecycle.Exists(s, kind, id) {
		return nil
	}
	return fmt.Errorf("%w: %s references %s %q", ErrDanglingReference, owner, kind, id)
}

func checkContract(s lifecycle.State, c models.Contract) error {
	if err := checkRef(s, "contract", models.KindTenant, c.TenantID); err != nil {
		return err
	}
	return checkRef(s, "contract", models.KindApartment, c.ApartmentID)
}

func checkMaintenance(s lifecycle.State, m models.MaintenanceRequest) error {
	if err := checkRef(s, "maintenance request", models.KindTenant, m.TenantID); err != nil {
		return err
	}
	return checkRef(s, "maintenance request", models.KindApartment, m.ApartmentID)
}
