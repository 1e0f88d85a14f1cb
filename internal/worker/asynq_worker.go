package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/provider"
	"github.com/meiye-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAppointmentReminder, c.handleAppointmentReminder)
	mux.HandleFunc(queue.TaskAppointmentNoShow, c.handleAppointmentNoShowSweep)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
}

// handleAppointmentReminder 到店提醒。门店目前通过前台外呼提醒，
// 任务侧输出结构化日志供回访台账使用。
func (c *Consumer) handleAppointmentReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AppointmentReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_appointment_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.AppointmentID == 0 {
		return nil
	}
	appointment, err := c.AppointmentRepo.GetByID(payload.AppointmentID)
	if err != nil {
		logger.Warnw("worker_appointment_reminder_fetch_failed",
			"appointment_id", payload.AppointmentID,
			"error", err,
		)
		return err
	}
	if appointment == nil || appointment.Status != constants.AppointmentStatusConfirmed {
		logger.Debugw("worker_appointment_reminder_skip",
			"appointment_id", payload.AppointmentID,
		)
		return nil
	}
	memberPhone := ""
	if appointment.Member != nil {
		memberPhone = appointment.Member.Phone
	}
	logger.Infow("appointment_reminder_due",
		"appointment_id", appointment.ID,
		"member_id", appointment.MemberID,
		"member_phone", memberPhone,
		"date", appointment.AppointmentDate.Format("2006-01-02"),
		"start_time", appointment.StartTime,
	)
	return nil
}

// handleAppointmentNoShowSweep 将宽限期后仍未到店的预约标记为爽约
func (c *Consumer) handleAppointmentNoShowSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AppointmentNoShowPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_no_show_sweep_unmarshal_failed", "error", err)
		return err
	}
	now := time.Now()
	if payload.TriggeredAtUnix > 0 {
		now = time.Unix(payload.TriggeredAtUnix, 0)
	}
	swept, err := c.AppointmentService.SweepNoShows(now, c.Config.Appointment.NoShowGraceMinutes)
	if err != nil {
		logger.Warnw("worker_no_show_sweep_failed", "error", err)
		return err
	}
	if swept > 0 {
		logger.Infow("worker_no_show_sweep_done", "swept", swept)
	}
	return nil
}

// handleLowStockAlert 低库存预警，当前通过结构化日志告警
func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		return nil
	}
	product, err := c.ProductRepo.GetByID(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_failed",
			"product_id", payload.ProductID,
			"error", err,
		)
		return err
	}
	if product == nil || product.Stock > product.MinStock {
		return nil
	}
	logger.Warnw("product_low_stock",
		"product_id", product.ID,
		"product_name", product.Name,
		"stock", product.Stock,
		"min_stock", product.MinStock,
	)
	return nil
}
