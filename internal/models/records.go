package models

import (
	"encoding/json"
	"time"
)

// EntityType tags which collection a record lives in. The values are the
// labels shown in the deleted/archived log, not collection names.
type EntityType string

const (
	KindTenant      EntityType = "Tenant"
	KindApartment   EntityType = "Apartment"
	KindContract    EntityType = "Contract"
	KindTransaction EntityType = "Transaction"
	KindMaintenance EntityType = "Maintenance"
	KindReport      EntityType = "Report"
)

// Kinds lists every entity type the lifecycle engine understands.
var Kinds = []EntityType{
	KindTenant,
	KindApartment,
	KindContract,
	KindTransaction,
	KindMaintenance,
	KindReport,
}

var kindsByPath = map[string]EntityType{
	"tenants":      KindTenant,
	"apartments":   KindApartment,
	"contracts":    KindContract,
	"transactions": KindTransaction,
	"maintenance":  KindMaintenance,
	"reports":      KindReport,
}

// ParseKind accepts either the tag ("Tenant") or the URL collection name
// ("tenants").
func ParseKind(s string) (EntityType, bool) {
	if k, ok := kindsByPath[s]; ok {
		return k, true
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type RecordAction string

const (
	ActionDeleted  RecordAction = "Deleted"
	ActionArchived RecordAction = "Archived"
)

// DeletedRecord is one entry of the deleted/archived log.
//
// Why json.RawMessage for OriginalData?
//   - The snapshot must never change after it is logged. Raw bytes are
//     copied once and nobody holds a pointer into a live struct.
//   - Restore decodes the bytes into the concrete type for Type, so the
//     record is rebuilt from the snapshot, not from whatever the live
//     collections look like now.
type DeletedRecord struct {
	ID           string          `json:"id"`
	Type         EntityType      `json:"type"`
	Name         string          `json:"name"`
	Action       RecordAction    `json:"action"`
	OriginalData json.RawMessage `json:"original_data"`
	Date         time.Time       `json:"date"`
	User         string          `json:"user"`
}

// AuditLogEntry is append-only: nothing in the normal flow edits or
// removes one.
type AuditLogEntry struct {
	ID      string    `json:"id"`
	User    string    `json:"user"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
	Date    time.Time `json:"date"`
}
