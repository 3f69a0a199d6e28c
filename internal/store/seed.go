package store

import (
	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

// DemoState is the sample workspace a fresh install starts from.
func DemoState() lifecycle.State {
	return lifecycle.State{
		Tenants: []models.Tenant{
			{ID: "t1", Name: "Ahmed Ali", Phone: "01012345678", Email: "ahmed@example.com", NationalID: "29001011234567", Status: models.TenantActive, ApartmentID: "a1", LeaseStart: "2023-01-01", LeaseEnd: "2024-01-01"},
			{ID: "t2", Name: "Sara Mohamed", Phone: "01123456789", Email: "sara@example.com", NationalID: "29202021234567", Status: models.TenantActive, ApartmentID: "a2", Balance: 5000, LeaseStart: "2023-06-01", LeaseEnd: "2024-06-01"},
			{ID: "t3", Name: "John Doe", Phone: "01234567890", Email: "john@example.com", NationalID: "PASS12345", Status: models.TenantInactive, LeaseStart: "2022-01-01", LeaseEnd: "2023-01-01"},
		},
		Apartments: []models.Apartment{
			{ID: "a1", Number: "101", Building: "Building A", Floor: 1, Size: 120, Rooms: 3, RentAmount: 15000, Status: models.ApartmentOccupied, TenantID: "t1"},
			{ID: "a2", Number: "102", Building: "Building A", Floor: 1, Size: 100, Rooms: 2, RentAmount: 12000, Status: models.ApartmentOccupied, TenantID: "t2"},
			{ID: "a3", Number: "201", Building: "Building B", Floor: 2, Size: 150, Rooms: 3, RentAmount: 18000, Status: models.ApartmentVacant},
			{ID: "a4", Number: "202", Building: "Building B", Floor: 2, Size: 90, Rooms: 2, RentAmount: 10000, Status: models.ApartmentReserved},
		},
		Contracts: []models.Contract{
			{ID: "c1", TenantID: "t1", ApartmentID: "a1", StartDate: "2023-01-01", EndDate: "2024-01-01", RentAmount: 15000, DepositAmount: 30000, PaymentFrequency: models.FrequencyMonthly, Status: models.ContractActive,
				Terms: "Standard residential lease agreement. No pets allowed. Security deposit is refundable."},
			{ID: "c2", TenantID: "t2", ApartmentID: "a2", StartDate: "2023-06-01", EndDate: "2024-06-01", RentAmount: 12000, DepositAmount: 24000, PaymentFrequency: models.FrequencyMonthly, Status: models.ContractActive,
				Terms: "Corporate lease. Utilities included up to 500 EGP/month."},
		},
		Transactions: []models.Transaction{
			{ID: "tx1", Type: models.TxInvoice, Date: "2023-10-01", Amount: 15000, Description: "Rent Oct 2023", Status: models.TxPaid, RelatedID: "t1"},
			{ID: "tx2", Type: models.TxPayment, Date: "2023-10-05", Amount: 15000, Description: "Rent Payment Oct", Status: models.TxCompleted, RelatedID: "t1", PaymentMethod: models.PaymentBank},
			{ID: "tx3", Type: models.TxInvoice, Date: "2023-10-01", Amount: 12000, Description: "Rent Oct 2023", Status: models.TxOverdue, RelatedID: "t2"},
			{ID: "tx4", Type: models.TxExpense, Date: "2023-10-10", Amount: 500, Description: "Plumbing Repair Apt 101", Status: models.TxPaid, Category: "repairs"},
			{ID: "tx5", Type: models.TxTransfer, Date: "2023-09-30", Amount: 50000, Description: "Owner Withdrawal", Status: models.TxCompleted},
		},
		Maintenance: []models.MaintenanceRequest{
			{ID: "m1", TenantID: "t1", ApartmentID: "a1", IssueType: "Plumbing", Description: "Leaking faucet in kitchen", DateReported: "2023-10-12", Status: models.MaintenanceInProgress,
				EstimatedCost: 300, AssignedVendor: "QuickFix Plumbing", DueDate: "2023-10-20",
				Attachments: []models.Attachment{{ID: "att1", Name: "leak_photo.jpg", URL: "#", Type: models.AttachmentImage}}},
			{ID: "m2", TenantID: "t2", ApartmentID: "a2", IssueType: "Electrical", Description: "AC not cooling", DateReported: "2023-10-15", Status: models.MaintenancePending,
				EstimatedCost: 1500, DueDate: "2023-10-25"},
		},
		Reports: []models.Report{},
	}
}
