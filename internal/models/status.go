package models

type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantArchived TenantStatus = "archived"
)

type ApartmentStatus string

const (
	ApartmentOccupied ApartmentStatus = "occupied"
	ApartmentVacant   ApartmentStatus = "vacant"
	ApartmentReserved ApartmentStatus = "reserved"
	ApartmentArchived ApartmentStatus = "archived"
)

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
	ContractArchived   ContractStatus = "archived"
)

type PaymentFrequency string

const (
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyYearly    PaymentFrequency = "yearly"
)

type ReminderChannel string

const (
	ReminderEmail  ReminderChannel = "email"
	ReminderSystem ReminderChannel = "system"
)

type TransactionType string

const (
	TxInvoice  TransactionType = "invoice"
	TxPayment  TransactionType = "payment"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	TxPaid      TransactionStatus = "paid"
	TxUnpaid    TransactionStatus = "unpaid"
	TxOverdue   TransactionStatus = "overdue"
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxRejected  TransactionStatus = "rejected"
	TxArchived  TransactionStatus = "archived"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentBank PaymentMethod = "bank"
	PaymentCard PaymentMethod = "card"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceArchived   MaintenanceStatus = "archived"
)

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
)
