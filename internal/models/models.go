package models

// Tenant is a person renting (or who has rented) an apartment.
//
// Why is ApartmentID a plain string and not a pointer?
//   - "" already means "no apartment". A pointer would force nil checks
//     everywhere for no extra information.
//   - omitempty drops it from JSON, so clients see the field as absent,
//     the same way they see it on a freshly created tenant.
//
// ApartmentID is a back-reference, not ownership. Apartment.TenantID is
// the other half of the link; the lifecycle engine keeps both in sync.
type Tenant struct {
	ID          string       `json:"id"`
	Name        string       `json:"name" binding:"required"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	NationalID  string       `json:"national_id"`
	Status      TenantStatus `json:"status"`
	ApartmentID string       `json:"apartment_id,omitempty"`
	Balance     float64      `json:"balance"`
	LeaseStart  string       `json:"lease_start"`
	LeaseEnd    string       `json:"lease_end"`
}

// Apartment is a rentable unit inside a building.
type Apartment struct {
	ID         string          `json:"id"`
	Number     string          `json:"number" binding:"required"`
	Building   string          `json:"building"`
	Floor      int             `json:"floor"`
	Size       float64         `json:"size"`
	Rooms      int             `json:"rooms"`
	RentAmount float64         `json:"rent_amount"`
	Status     ApartmentStatus `json:"status"`
	TenantID   string          `json:"tenant_id,omitempty"`
}

// Contract links one tenant to one apartment for a period.
//
// Both TenantID and ApartmentID are required on input, but nothing
// guarantees they still point at live records: deleting a contract's
// tenant removes the contract, deleting a tenant's contract does not
// touch the tenant.
type Contract struct {
	ID                string           `json:"id"`
	TenantID          string           `json:"tenant_id" binding:"required"`
	ApartmentID       string           `json:"apartment_id" binding:"required"`
	StartDate         string           `json:"start_date"`
	EndDate           string           `json:"end_date"`
	RentAmount        float64          `json:"rent_amount"`
	DepositAmount     float64          `json:"deposit_amount"`
	PaymentFrequency  PaymentFrequency `json:"payment_frequency"`
	Status            ContractStatus   `json:"status"`
	Terms             string           `json:"terms,omitempty"`
	TerminationReason string           `json:"termination_reason,omitempty"`
	ReminderDays      *int             `json:"reminder_days,omitempty"`
	ReminderChannel   ReminderChannel  `json:"reminder_channel,omitempty"`
}

// Clone returns a copy that shares no memory with c.
func (c Contract) Clone() Contract {
	if c.ReminderDays != nil {
		d := *c.ReminderDays
		c.ReminderDays = &d
	}
	return c
}

// Transaction is any money movement: invoices, payments, expenses and
// owner transfers all live in the same ledger.
//
// RelatedID usually holds a tenant id. Expenses may leave it empty or
// point at an apartment or vendor.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type" binding:"required"`
	Date          string            `json:"date"`
	Amount        float64           `json:"amount"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	RelatedID     string            `json:"related_id,omitempty"`
	Category      string            `json:"category,omitempty"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	ReceiptURL    string            `json:"receipt_url,omitempty"`
}

type Attachment struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	URL  string         `json:"url"`
	Type AttachmentType `json:"type"`
}

type MaintenanceRequest struct {
	ID             string            `json:"id"`
	TenantID       string            `json:"tenant_id"`
	ApartmentID    string            `json:"apartment_id"`
	IssueType      string            `json:"issue_type" binding:"required"`
	Description    string            `json:"description"`
	DateReported   string            `json:"date_reported"`
	Status         MaintenanceStatus `json:"status"`
	EstimatedCost  float64           `json:"estimated_cost"`
	AssignedVendor string            `json:"assigned_vendor,omitempty"`
	DueDate        string            `json:"due_date,omitempty"`
	Attachments    []Attachment      `json:"attachments,omitempty"`
}

// Clone returns a copy that shares no memory with m.
func (m MaintenanceRequest) Clone() MaintenanceRequest {
	if m.Attachments != nil {
		m.Attachments = append([]Attachment(nil), m.Attachments...)
	}
	return m
}

// Report is a saved, generated report.
//
// Why a bool and not a status like every other entity?
//   - Reports have no workflow (nothing is "pending" or "paid"), they
//     are either on the shelf or archived.
//   - Restore and archive dispatch on the entity kind, so the two
//     conventions never get mixed up. Don't unify them without also
//     changing what a restored report looks like.
type Report struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date"`
	Size     string `json:"size"`
	Archived bool   `json:"archived"`
}
