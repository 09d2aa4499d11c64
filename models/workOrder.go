package models

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

var tracer = otel.Tracer("turbo_backend/models")

// Baseline prices for a freshly opened work order (LEI).
var (
	defaultCleaningPrice       = decimal.NewFromInt(170)
	defaultReconditioningPrice = decimal.NewFromInt(170)
	defaultTurboPrice          = decimal.NewFromInt(240)
)

// WorkOrderPart is a part selected on a work order, embedded as JSON.
type WorkOrderPart struct {
	PartId   string          `json:"part_id"`
	PartCode string          `json:"part_code"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
	Selected bool            `json:"selected"`
}

type WorkOrderPartList []WorkOrderPart

func (l WorkOrderPartList) Value() (driver.Value, error) {
	if l == nil {
		l = WorkOrderPartList{}
	}
	return jsonColumnValue(l)
}

func (l *WorkOrderPartList) Scan(value interface{}) error {
	return jsonColumnScan(l, value)
}

// WorkOrderProcess is a repair process selected on a work order, embedded as JSON.
type WorkOrderProcess struct {
	ProcessId     string          `json:"process_id"`
	ProcessName   string          `json:"process_name"`
	Category      string          `json:"category"`
	EstimatedTime int             `json:"estimated_time"`
	Price         decimal.Decimal `json:"price"`
	Selected      bool            `json:"selected"`
	Notes         string          `json:"notes"`
}

type WorkOrderProcessList []WorkOrderProcess

func (l WorkOrderProcessList) Value() (driver.Value, error) {
	if l == nil {
		l = WorkOrderProcessList{}
	}
	return jsonColumnValue(l)
}

func (l *WorkOrderProcessList) Scan(value interface{}) error {
	return jsonColumnScan(l, value)
}

type DocumentTypeList []DocumentType

func (l DocumentTypeList) Value() (driver.Value, error) {
	if l == nil {
		l = DocumentTypeList{}
	}
	return jsonColumnValue(l)
}

func (l *DocumentTypeList) Scan(value interface{}) error {
	return jsonColumnScan(l, value)
}

type WorkOrder struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	WorkNumber   string  `gorm:"size:10;uniqueIndex;not null" json:"work_number"`
	WorkSequence int     `gorm:"uniqueIndex;not null" json:"work_sequence"`
	ClientId     string  `gorm:"size:36;index;not null" json:"client_id"`
	VehicleId    *string `gorm:"size:36" json:"vehicle_id"`
	TurboCode    string  `gorm:"size:100;index" json:"turbo_code"`

	// Car details stored directly on the work order.
	CarMake      string `gorm:"size:100" json:"car_make"`
	CarModel     string `gorm:"size:100" json:"car_model"`
	CarYear      *int   `json:"car_year"`
	EngineCode   string `gorm:"size:50" json:"engine_code"`
	GeneralNotes string `gorm:"type:text" json:"general_notes"`

	ReceivedDate time.Time `json:"received_date"`

	Parts     WorkOrderPartList    `gorm:"type:json" json:"parts"`
	Processes WorkOrderProcessList `gorm:"type:json" json:"processes"`

	StatusPassed  bool `json:"status_passed"`
	StatusRefused bool `json:"status_refused"`

	CleaningPrice       decimal.Decimal `gorm:"type:decimal(20,6)" json:"cleaning_price"`
	ReconditioningPrice decimal.Decimal `gorm:"type:decimal(20,6)" json:"reconditioning_price"`
	TurboPrice          decimal.Decimal `gorm:"type:decimal(20,6)" json:"turbo_price"`

	Status        WorkStatus `gorm:"size:20;index" json:"status"`
	IsFinalized   bool       `json:"is_finalized"`
	QuoteSent     bool       `json:"quote_sent"`
	QuoteAccepted bool       `json:"quote_accepted"`

	EstimatedCompletion *time.Time `json:"estimated_completion"`

	DocumentsGenerated DocumentTypeList `gorm:"type:json" json:"documents_generated"`
	ClientNotified     bool             `json:"client_notified"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	FinalizedAt *time.Time `json:"finalized_at"`
}

// TotalAmount is derived, never stored.
func (w *WorkOrder) TotalAmount() decimal.Decimal {
	return w.CleaningPrice.Add(w.ReconditioningPrice).Add(w.TurboPrice)
}

// CarInfo renders "{make} {model}" with " (year)" appended when known.
func CarInfo(carMake, carModel string, carYear *int) string {
	info := carMake + " " + carModel
	if carYear != nil {
		info = fmt.Sprintf("%s (%d)", info, *carYear)
	}
	return strings.TrimSpace(info)
}

// FormatWorkNumber renders a sequence as the zero-padded work number.
func FormatWorkNumber(sequence int) string {
	return fmt.Sprintf("%05d", sequence)
}

type NewWorkOrder struct {
	ClientId     string  `json:"client_id" binding:"required,notblank"`
	VehicleId    *string `json:"vehicle_id"`
	TurboCode    string  `json:"turbo_code" binding:"required,notblank"`
	CarMake      string  `json:"car_make"`
	CarModel     string  `json:"car_model"`
	CarYear      *int    `json:"car_year"`
	EngineCode   string  `json:"engine_code"`
	GeneralNotes string  `json:"general_notes"`
}

// UpdateWorkOrderInput is a partial update: only non-nil fields are applied.
// work_number and work_sequence are deliberately absent; numbering is owned
// by the system and never settable through updates.
type UpdateWorkOrderInput struct {
	TurboCode           *string               `json:"turbo_code"`
	CarMake             *string               `json:"car_make"`
	CarModel            *string               `json:"car_model"`
	CarYear             *int                  `json:"car_year"`
	EngineCode          *string               `json:"engine_code"`
	GeneralNotes        *string               `json:"general_notes"`
	Parts               *WorkOrderPartList    `json:"parts"`
	Processes           *WorkOrderProcessList `json:"processes"`
	StatusPassed        *bool                 `json:"status_passed"`
	StatusRefused       *bool                 `json:"status_refused"`
	CleaningPrice       *decimal.Decimal      `json:"cleaning_price"`
	ReconditioningPrice *decimal.Decimal      `json:"reconditioning_price"`
	TurboPrice          *decimal.Decimal      `json:"turbo_price"`
	Status              *WorkStatus           `json:"status"`
	QuoteSent           *bool                 `json:"quote_sent"`
	QuoteAccepted       *bool                 `json:"quote_accepted"`
	EstimatedCompletion *time.Time            `json:"estimated_completion"`
	DocumentsGenerated  *DocumentTypeList     `json:"documents_generated"`
	ClientNotified      *bool                 `json:"client_notified"`
}

// WorkOrderWithDetails is the list projection joined with the client.
type WorkOrderWithDetails struct {
	ID                  string          `json:"id"`
	WorkNumber          string          `json:"work_number"`
	ClientName          string          `json:"client_name"`
	ClientPhone         string          `json:"client_phone"`
	CarInfo             string          `json:"car_info"`
	TurboCode           string          `json:"turbo_code"`
	ReceivedDate        time.Time       `json:"received_date"`
	Status              WorkStatus      `json:"status"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	EstimatedCompletion *time.Time      `json:"estimated_completion"`
	HasTurboWarning     bool            `json:"has_turbo_warning"`
	HasCarWarning       bool            `json:"has_car_warning"`
	CreatedAt           time.Time       `json:"created_at"`
}

const workOrderNumberLockName = "turbo:work_order_numbering"

// acquireWorkOrderNumberLock serializes sequence assignment and renumbering
// across instances using a MySQL advisory lock.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB transaction that will assign numbers.
func acquireWorkOrderNumberLock(tx *gorm.DB) error {
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", workOrderNumberLockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("could not acquire work order numbering lock")
	}
	return nil
}

func releaseWorkOrderNumberLock(tx *gorm.DB) {
	var ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", workOrderNumberLockName).Scan(&ok).Error
}

// CreateWorkOrder assigns the next sequence number (1 + current max) and the
// matching zero-padded work number. Assignment happens inside a transaction
// holding the numbering advisory lock, so two concurrent creates can never
// hand out the same pair.
func CreateWorkOrder(ctx context.Context, input *NewWorkOrder) (*WorkOrder, error) {

	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("client not found")
		}
		return nil, err
	}
	if input.VehicleId != nil {
		if err := utils.ValidateResourceId[Vehicle](ctx, *input.VehicleId); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				return nil, utils.NotFoundError("vehicle not found")
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	workOrder := WorkOrder{
		ID:                  NewId(),
		ClientId:            input.ClientId,
		VehicleId:           input.VehicleId,
		TurboCode:           input.TurboCode,
		CarMake:             input.CarMake,
		CarModel:            input.CarModel,
		CarYear:             input.CarYear,
		EngineCode:          input.EngineCode,
		GeneralNotes:        input.GeneralNotes,
		ReceivedDate:        now.Truncate(24 * time.Hour),
		Parts:               WorkOrderPartList{},
		Processes:           WorkOrderProcessList{},
		CleaningPrice:       defaultCleaningPrice,
		ReconditioningPrice: defaultReconditioningPrice,
		TurboPrice:          defaultTurboPrice,
		Status:              WorkStatusDraft,
		DocumentsGenerated:  DocumentTypeList{},
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireWorkOrderNumberLock(tx); err != nil {
			return err
		}
		defer releaseWorkOrderNumberLock(tx)

		var maxSequence int
		if err := tx.Model(&WorkOrder{}).
			Select("COALESCE(MAX(work_sequence), 0)").Scan(&maxSequence).Error; err != nil {
			return err
		}
		workOrder.WorkSequence = maxSequence + 1
		workOrder.WorkNumber = FormatWorkNumber(workOrder.WorkSequence)

		return tx.Create(&workOrder).Error
	})
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

func GetWorkOrder(ctx context.Context, id string) (*WorkOrder, error) {
	result, err := utils.FetchModel[WorkOrder](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("work order not found")
	}
	return result, nil
}

// workOrderListRow is the raw scan target for ListWorkOrders.
type workOrderListRow struct {
	ID                  string
	WorkNumber          string
	ClientName          string
	ClientPhone         string
	TurboCode           string
	CarMake             string
	CarModel            string
	CarYear             *int
	ReceivedDate        time.Time
	Status              WorkStatus
	CleaningPrice       decimal.Decimal
	ReconditioningPrice decimal.Decimal
	TurboPrice          decimal.Decimal
	EstimatedCompletion *time.Time
	HasTurboWarning     bool
	HasCarWarning       bool
	CreatedAt           time.Time
}

// ListWorkOrders returns the summary projection, newest first. Filters are
// AND-ed; search is a case-insensitive substring match across work number,
// turbo code, client name, car make and car model.
func ListWorkOrders(ctx context.Context, status *WorkStatus, clientId *string, search *string) ([]*WorkOrderWithDetails, error) {

	sql := `
	SELECT
		wo.id,
		wo.work_number,
		c.name AS client_name,
		c.phone AS client_phone,
		wo.turbo_code,
		wo.car_make,
		wo.car_model,
		wo.car_year,
		wo.received_date,
		wo.status,
		wo.cleaning_price,
		wo.reconditioning_price,
		wo.turbo_price,
		wo.estimated_completion,
		EXISTS (
			SELECT 1 FROM turbo_notes tn
			WHERE tn.turbo_code = wo.turbo_code AND tn.active
		) AS has_turbo_warning,
		EXISTS (
			SELECT 1 FROM car_notes cn
			WHERE cn.car_make = wo.car_make AND cn.car_model = wo.car_model AND cn.active
		) AS has_car_warning,
		wo.created_at
	FROM work_orders wo
	JOIN clients c ON c.id = wo.client_id
`
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 7)
	if status != nil && *status != "" {
		conditions = append(conditions, "wo.status = ?")
		args = append(args, *status)
	}
	if clientId != nil && *clientId != "" {
		conditions = append(conditions, "wo.client_id = ?")
		args = append(args, *clientId)
	}
	if search != nil && strings.TrimSpace(*search) != "" {
		pattern := "%" + strings.TrimSpace(*search) + "%"
		conditions = append(conditions,
			"(wo.work_number LIKE ? OR wo.turbo_code LIKE ? OR c.name LIKE ? OR wo.car_make LIKE ? OR wo.car_model LIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY wo.created_at DESC"

	db := config.GetDB()
	var rows []workOrderListRow
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]*WorkOrderWithDetails, 0, len(rows))
	for _, row := range rows {
		results = append(results, &WorkOrderWithDetails{
			ID:                  row.ID,
			WorkNumber:          row.WorkNumber,
			ClientName:          row.ClientName,
			ClientPhone:         row.ClientPhone,
			CarInfo:             CarInfo(row.CarMake, row.CarModel, row.CarYear),
			TurboCode:           row.TurboCode,
			ReceivedDate:        row.ReceivedDate,
			Status:              row.Status,
			TotalAmount:         row.CleaningPrice.Add(row.ReconditioningPrice).Add(row.TurboPrice),
			EstimatedCompletion: row.EstimatedCompletion,
			HasTurboWarning:     row.HasTurboWarning,
			HasCarWarning:       row.HasCarWarning,
			CreatedAt:           row.CreatedAt,
		})
	}
	return results, nil
}

// UpdateWorkOrder applies only the supplied fields. Numbering fields are not
// part of the input type at all, so a caller cannot touch them here.
func UpdateWorkOrder(ctx context.Context, id string, input *UpdateWorkOrderInput) (*WorkOrder, error) {

	workOrder, err := GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, errors.New("invalid work status")
	}

	updates := map[string]interface{}{}
	if input.TurboCode != nil {
		updates["TurboCode"] = *input.TurboCode
	}
	if input.CarMake != nil {
		updates["CarMake"] = *input.CarMake
	}
	if input.CarModel != nil {
		updates["CarModel"] = *input.CarModel
	}
	if input.CarYear != nil {
		updates["CarYear"] = *input.CarYear
	}
	if input.EngineCode != nil {
		updates["EngineCode"] = *input.EngineCode
	}
	if input.GeneralNotes != nil {
		updates["GeneralNotes"] = *input.GeneralNotes
	}
	if input.Parts != nil {
		updates["Parts"] = *input.Parts
	}
	if input.Processes != nil {
		updates["Processes"] = *input.Processes
	}
	if input.StatusPassed != nil {
		updates["StatusPassed"] = *input.StatusPassed
	}
	if input.StatusRefused != nil {
		updates["StatusRefused"] = *input.StatusRefused
	}
	if input.CleaningPrice != nil {
		updates["CleaningPrice"] = *input.CleaningPrice
	}
	if input.ReconditioningPrice != nil {
		updates["ReconditioningPrice"] = *input.ReconditioningPrice
	}
	if input.TurboPrice != nil {
		updates["TurboPrice"] = *input.TurboPrice
	}
	if input.Status != nil {
		updates["Status"] = *input.Status
	}
	if input.QuoteSent != nil {
		updates["QuoteSent"] = *input.QuoteSent
	}
	if input.QuoteAccepted != nil {
		updates["QuoteAccepted"] = *input.QuoteAccepted
	}
	if input.EstimatedCompletion != nil {
		updates["EstimatedCompletion"] = *input.EstimatedCompletion
	}
	if input.DocumentsGenerated != nil {
		for _, documentType := range *input.DocumentsGenerated {
			if !documentType.IsValid() {
				return nil, errors.New("invalid document type")
			}
		}
		updates["DocumentsGenerated"] = *input.DocumentsGenerated
	}
	if input.ClientNotified != nil {
		updates["ClientNotified"] = *input.ClientNotified
	}

	if len(updates) == 0 {
		return workOrder, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(workOrder).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetWorkOrder(ctx, id)
}

// DeleteWorkOrder removes a non-finalized order, then renumbers every
// survivor so sequences stay dense. Both steps share one transaction and
// the numbering advisory lock; a redis lock is taken best-effort on top to
// keep concurrent instances from interleaving renumbering passes.
func DeleteWorkOrder(ctx context.Context, id string) error {

	workOrder, err := GetWorkOrder(ctx, id)
	if err != nil {
		return err
	}
	if workOrder.IsFinalized {
		return errors.New("finalized work order cannot be deleted")
	}

	// Best-effort optimization only: correctness comes from the MySQL
	// advisory lock on the transaction below.
	if locker := config.GetRedisLock(); locker != nil {
		if lock, lockErr := locker.Obtain(ctx, "turbo:work_order_renumber", 30*time.Second, nil); lockErr == nil {
			defer lock.Release(context.WithoutCancel(ctx))
		}
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireWorkOrderNumberLock(tx); err != nil {
			return err
		}
		defer releaseWorkOrderNumberLock(tx)

		if err := tx.Where("id = ?", workOrder.ID).Delete(&WorkOrder{}).Error; err != nil {
			return err
		}
		return renumberWorkOrders(ctx, tx)
	})
}

// renumberWorkOrders reassigns dense 1-based sequences over all work orders
// ordered by creation time. It runs in two phases: every row is first
// shifted past the highest occupied sequence, then the final 1..N values
// are assigned. Stored sequences may disagree with creation order (legacy
// imports, manual fixes), so a single ordered pass cannot guarantee each
// target is vacant; the shift keeps the unique indexes satisfied at every
// intermediate step.
func renumberWorkOrders(ctx context.Context, tx *gorm.DB) error {
	ctx, span := tracer.Start(ctx, "work_orders.renumber")
	defer span.End()

	var ids []string
	if err := tx.WithContext(ctx).Model(&WorkOrder{}).
		Order("created_at ASC").Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	var maxSequence int
	if err := tx.WithContext(ctx).Model(&WorkOrder{}).
		Select("COALESCE(MAX(work_sequence), 0)").Scan(&maxSequence).Error; err != nil {
		return err
	}

	type numberedRow struct {
		ID           string
		WorkSequence int
	}
	var rows []numberedRow
	if err := tx.WithContext(ctx).Model(&WorkOrder{}).
		Select("id", "work_sequence").Find(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		shifted := row.WorkSequence + maxSequence
		err := tx.WithContext(ctx).Model(&WorkOrder{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"WorkSequence": shifted,
				"WorkNumber":   FormatWorkNumber(shifted),
			}).Error
		if err != nil {
			return err
		}
	}

	for index, workOrderId := range ids {
		sequence := index + 1
		err := tx.WithContext(ctx).Model(&WorkOrder{}).
			Where("id = ?", workOrderId).
			Updates(map[string]interface{}{
				"WorkSequence": sequence,
				"WorkNumber":   FormatWorkNumber(sequence),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// RenumberAllWorkOrders runs the renumbering pass on its own transaction;
// used by the offline repair tool.
func RenumberAllWorkOrders(ctx context.Context) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireWorkOrderNumberLock(tx); err != nil {
			return err
		}
		defer releaseWorkOrderNumberLock(tx)
		return renumberWorkOrders(ctx, tx)
	})
}

// FinalizeWorkOrder locks an order against deletion. The status is forced
// back to RECEIVED regardless of where the workflow stood.
func FinalizeWorkOrder(ctx context.Context, id string) (*WorkOrder, error) {

	workOrder, err := GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if workOrder.IsFinalized {
		return nil, errors.New("work order is already finalized")
	}

	now := time.Now().UTC()
	db := config.GetDB()
	err = db.WithContext(ctx).Model(workOrder).Updates(map[string]interface{}{
		"IsFinalized": true,
		"FinalizedAt": now,
		"Status":      WorkStatusReceived,
	}).Error
	if err != nil {
		return nil, err
	}
	return GetWorkOrder(ctx, id)
}

// UnfinalizeWorkOrder is the administrative escape hatch: no finalized-state
// precondition, resets the order to DRAFT.
func UnfinalizeWorkOrder(ctx context.Context, id string) (*WorkOrder, error) {

	workOrder, err := GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(workOrder).Updates(map[string]interface{}{
		"IsFinalized": false,
		"FinalizedAt": nil,
		"Status":      WorkStatusDraft,
	}).Error
	if err != nil {
		return nil, err
	}
	return GetWorkOrder(ctx, id)
}
