package models

// Archivable is implemented by every entity kind. Reports answer from
// their Archived flag, everything else from its status.
type Archivable interface {
	IsArchived() bool
}

func (t Tenant) IsArchived() bool             { return t.Status == TenantArchived }
func (a Apartment) IsArchived() bool          { return a.Status == ApartmentArchived }
func (c Contract) IsArchived() bool           { return c.Status == ContractArchived }
func (t Transaction) IsArchived() bool        { return t.Status == TxArchived }
func (m MaintenanceRequest) IsArchived() bool { return m.Status == MaintenanceArchived }
func (r Report) IsArchived() bool             { return r.Archived }
