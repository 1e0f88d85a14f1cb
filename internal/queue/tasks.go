package queue

import (
	"encoding/json"

	"github.com/meiye-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAppointmentReminder 预约到店提醒任务
	TaskAppointmentReminder = constants.TaskAppointmentReminder
	// TaskAppointmentNoShow 爽约扫描任务
	TaskAppointmentNoShow = constants.TaskAppointmentNoShow
	// TaskLowStockAlert 低库存预警任务
	TaskLowStockAlert = constants.TaskLowStockAlert
)

// AppointmentReminderPayload 预约提醒任务载荷
type AppointmentReminderPayload struct {
	AppointmentID uint `json:"appointment_id"`
}

// AppointmentNoShowPayload 爽约扫描任务载荷
type AppointmentNoShowPayload struct {
	TriggeredAtUnix int64 `json:"triggered_at_unix"`
}

// LowStockAlertPayload 低库存预警任务载荷
type LowStockAlertPayload struct {
	ProductID uint `json:"product_id"`
}

// NewAppointmentReminderTask 创建预约提醒任务
func NewAppointmentReminderTask(payload AppointmentReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentReminder, body), nil
}

// NewAppointmentNoShowTask 创建爽约扫描任务
func NewAppointmentNoShowTask(payload AppointmentNoShowPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentNoShow, body), nil
}

// NewLowStockAlertTask 创建低库存预警任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}
