package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"portfolio/internal/api/middleware"
	"portfolio/internal/database"
	"portfolio/internal/portfolio"
	"portfolio/internal/tasks"
)

// ContactHandler 负责公开联系表单的提交。
type ContactHandler struct {
	store       *portfolio.Store
	asynqClient *asynq.Client
	rateCounter redisRateCounter
	maxPerHour  int
}

// NewContactHandler 构造 ContactHandler。
func NewContactHandler(store *portfolio.Store, asynqClient *asynq.Client, rateCounter redisRateCounter, maxPerHour int) *ContactHandler {
	return &ContactHandler{
		store:       store,
		asynqClient: asynqClient,
		rateCounter: rateCounter,
		maxPerHour:  maxPerHour,
	}
}

// Submit 校验并持久化一条留言，然后把通知邮件任务入队。
// 校验失败时不落库；邮件入队失败不回滚留言，只记录日志。
func (h *ContactHandler) Submit(c *gin.Context) {
	logger := middleware.LoggerFromContext(c)

	var input portfolio.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	input.Trim()
	if fe := input.Validate(); fe != nil {
		logger.Warn("contact form validation failed", "errors", fe.Error())
		ValidationFailed(c, fe)
		return
	}

	ctx := c.Request.Context()

	if h.rateCounter != nil && h.maxPerHour > 0 {
		key := fmt.Sprintf("contact:rate:%s", c.ClientIP())
		count, err := incrWithTTL(ctx, h.rateCounter, key, time.Hour)
		if err != nil {
			// Redis 故障时跳过限流，表单仍可用。
			logger.Warn("contact rate counter unavailable", "error", err)
		} else if count > int64(h.maxPerHour) {
			TooManyRequests(c, "too many messages, please try again later")
			return
		}
	}

	msg := database.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := h.store.CreateMessage(ctx, &msg); err != nil {
		logger.Error("create contact message failed", "error", err)
		Internal(c, "failed to send the message, please try again")
		return
	}

	logger.Info("contact message created", "message_id", msg.ID, "email", msg.Email)

	if h.asynqClient != nil {
		task, err := tasks.NewContactNotifyTask(msg.ID, middleware.GetCorrelationID(c))
		if err != nil {
			logger.Error("build notify task failed", "message_id", msg.ID, "error", err)
		} else if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5)); err != nil {
			// 留言已保存；通知失败只影响邮件，不影响提交结果。
			logger.Error("enqueue notify task failed", "message_id", msg.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully, I will get back to you soon.",
	})
}
