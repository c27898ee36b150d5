package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func (h *Handler) publishMailMessage(msg domain.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
}

// notifyDayOffDecision 通知员工请假审批结果
// 通知属于尽力而为，发送失败只记录日志，绝不回滚已生效的审批
func (h *Handler) notifyDayOffDecision(req *domain.DayOffRequest) {
	staff, err := h.repository.GetUserByID(req.StaffID)
	if err != nil {
		slog.Warn("无法获取请假申请对应的员工信息，跳过通知", "formattedID", req.FormattedID, "error", err)
		return
	}

	data := domain.DayOffDecisionMailData{
		FullName:    staff.FullName,
		RequestID:   req.FormattedID,
		RequestDate: req.RequestDate.Format("2006-01-02"),
		Decision:    string(req.Status),
	}
	if req.RejectionReason != nil {
		data.Reason = *req.RejectionReason
	}
	if req.AdminNotes != nil {
		data.AdminNotes = *req.AdminNotes
	}

	if err := h.publishMailMessage(domain.MailMessage{
		Type: "day_off_decision",
		To:   staff.Email,
		Data: data,
	}); err != nil {
		slog.Warn("请假审批结果通知发送失败", "formattedID", req.FormattedID, "error", err)
	}
}
