package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/mailer"
	"portfolio/internal/tasks"
)

func newTestHandler(t *testing.T) (*NotifyTaskHandler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.ContactMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// SMTP 未配置：处理器应走日志降级路径
	h := NewNotifyTaskHandler(db, mailer.New(config.SMTPConfig{}), logger)
	return h, db
}

func TestProcessTask_MailerDisabled(t *testing.T) {
	h, db := newTestHandler(t)

	msg := database.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	task, err := tasks.NewContactNotifyTask(msg.ID, "corr-1")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("unconfigured mailer should not fail the task: %v", err)
	}
}

func TestProcessTask_MessageVanished(t *testing.T) {
	h, _ := newTestHandler(t)

	task, err := tasks.NewContactNotifyTask(999, "corr-2")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	// 留言已被删除：任务成功结束，不触发重试
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("vanished message should not fail the task: %v", err)
	}
}

func TestProcessTask_BadPayloadSkipsRetry(t *testing.T) {
	h, _ := newTestHandler(t)

	task := asynq.NewTask(tasks.TypeContactNotify, []byte("{not json"))
	err := h.ProcessTask(context.Background(), task)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload must skip retry, got %v", err)
	}
}
