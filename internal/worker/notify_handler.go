package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"portfolio/internal/database"
	"portfolio/internal/errcode"
	"portfolio/internal/mailer"
	"portfolio/internal/tasks"
)

// NotifyTaskHandler 消费留言通知任务并发送邮件。
type NotifyTaskHandler struct {
	db     *gorm.DB
	mailer *mailer.Mailer
	logger *slog.Logger
}

// NewNotifyTaskHandler 构造 NotifyTaskHandler。
func NewNotifyTaskHandler(db *gorm.DB, m *mailer.Mailer, logger *slog.Logger) *NotifyTaskHandler {
	return &NotifyTaskHandler{db: db, mailer: m, logger: logger}
}

// ProcessTask 加载留言并发送通知邮件。
// 留言已被删除或邮件未配置属于可接受情况，不触发重试；
// SMTP 发送失败返回错误，交给 Asynq 按重试策略处理。
func (h *NotifyTaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload tasks.ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal notify payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := h.logger.With(
		slog.Uint64("message_id", uint64(payload.MessageID)),
		slog.String("correlation_id", payload.CorrelationID),
	)

	var msg database.ContactMessage
	if err := h.db.WithContext(ctx).First(&msg, payload.MessageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("contact message vanished before notification",
				slog.Int("error_code", errcode.ResourceMissing))
			return nil
		}
		logger.Error("load contact message failed",
			slog.Int("error_code", errcode.SystemError), slog.Any("error", err))
		return fmt.Errorf("load contact message %d: %w", payload.MessageID, err)
	}

	if !h.mailer.IsConfigured() {
		// 开发环境没有 SMTP：把留言内容打到日志里即可。
		logger.Info("mailer disabled, logging message instead",
			slog.Int("error_code", errcode.MailerDisabled),
			slog.String("from", fmt.Sprintf("%s <%s>", msg.Name, msg.Email)),
			slog.String("subject", msg.Subject),
		)
		return nil
	}

	err := h.mailer.SendContactNotification(mailer.ContactNotification{
		MessageID:   msg.ID,
		SenderName:  msg.Name,
		SenderEmail: msg.Email,
		Subject:     msg.Subject,
		Message:     msg.Message,
	})
	if err != nil {
		logger.Error("send contact notification failed",
			slog.Int("error_code", errcode.SystemError), slog.Any("error", err))
		return fmt.Errorf("send notification for message %d: %w", msg.ID, err)
	}

	logger.Info("contact notification sent", slog.Int("error_code", errcode.OK))
	return nil
}
