package models

// WorkStatus is the workflow state of a work order. Manual status updates
// are unrestricted: any status may be set to any other through UpdateWorkOrder.
type WorkStatus string

const (
	WorkStatusDraft      WorkStatus = "DRAFT"
	WorkStatusReceived   WorkStatus = "RECEIVED"
	WorkStatusInProgress WorkStatus = "IN_PROGRESS"
	WorkStatusQuoted     WorkStatus = "QUOTED"
	WorkStatusAccepted   WorkStatus = "ACCEPTED"
	WorkStatusRejected   WorkStatus = "REJECTED"
	WorkStatusWorking    WorkStatus = "WORKING"
	WorkStatusReady      WorkStatus = "READY"
	WorkStatusDelivered  WorkStatus = "DELIVERED"
	// Legacy value kept for records imported from the old system; the
	// finalized state itself lives on the is_finalized flag.
	WorkStatusFinalized WorkStatus = "FINALIZED"
)

func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusDraft, WorkStatusReceived, WorkStatusInProgress, WorkStatusQuoted,
		WorkStatusAccepted, WorkStatusRejected, WorkStatusWorking, WorkStatusReady,
		WorkStatusDelivered, WorkStatusFinalized:
		return true
	}
	return false
}

type NoteType string

const (
	NoteTypeInfo     NoteType = "INFO"
	NoteTypeWarning  NoteType = "WARNING"
	NoteTypeCritical NoteType = "CRITICAL"
)

func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeInfo, NoteTypeWarning, NoteTypeCritical:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentTypeIpos     DocumentType = "IPOS"
	DocumentTypeFactChit DocumentType = "FACT_CHIT"
	DocumentTypeFact     DocumentType = "FACT"
	DocumentTypeBonF     DocumentType = "BON_F"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeIpos, DocumentTypeFactChit, DocumentTypeFact, DocumentTypeBonF:
		return true
	}
	return false
}

// MovementType is the kind of an inventory movement. ADJUSTMENT carries a
// signed quantity as given; OUT quantities are stored negated.
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// IsValidSimple reports whether the type is allowed for part stock
// movements, which only know IN and OUT.
func (t MovementType) IsValidSimple() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// StockStatus is a read-time classification of an item's current stock
// against its thresholds; it is never stored.
type StockStatus string

const (
	StockStatusOk        StockStatus = "ok"
	StockStatusLow       StockStatus = "low"
	StockStatusCritical  StockStatus = "critical"
	StockStatusOverstock StockStatus = "overstock"
)

// StockStatusFor evaluates in priority order: critical, low, overstock, ok.
func StockStatusFor(currentStock, minStock, maxStock int) StockStatus {
	switch {
	case currentStock <= 0:
		return StockStatusCritical
	case currentStock <= minStock:
		return StockStatusLow
	case currentStock >= maxStock:
		return StockStatusOverstock
	default:
		return StockStatusOk
	}
}
