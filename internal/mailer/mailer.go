package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"portfolio/internal/config"
)

// Mailer 通过 SMTP 发送留言通知邮件。
// 未配置 SMTP 时 IsConfigured 返回 false，调用方自行降级。
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// ContactNotification 是通知邮件模板的数据。
type ContactNotification struct {
	MessageID   uint
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

// New 根据配置构造 Mailer。
func New(cfg config.SMTPConfig) *Mailer {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
		toEmail:   cfg.ToEmail,
	}
}

// IsConfigured 判断 SMTP 是否可用。
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && m.toEmail != ""
}

var notificationTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New portfolio message</title></head>
<body>
  <h2>New message from the portfolio contact form</h2>
  <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <blockquote style="border-left:4px solid #3B82F6;padding-left:12px;">{{.Message}}</blockquote>
  <p style="color:#888;font-size:12px;">Message ID: {{.MessageID}}. Reply directly to {{.SenderEmail}}.</p>
</body>
</html>`))

// sanitizeHeader 去掉头部值里的 CR/LF。
// 外部输入一律先过这里，换行就是新起一个邮件头。
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func (m *Mailer) buildMessage(data ContactNotification) ([]byte, error) {
	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render notification template: %w", err)
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.toEmail))
	msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", sanitizeHeader(data.SenderEmail)))
	msg.WriteString(fmt.Sprintf("Subject: New portfolio message: %s\r\n", sanitizeHeader(data.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// SendContactNotification 渲染模板并发送通知邮件。
func (m *Mailer) SendContactNotification(data ContactNotification) error {
	if !m.IsConfigured() {
		return fmt.Errorf("mailer is not configured")
	}

	msg, err := m.buildMessage(data)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var a smtp.Auth
	if m.username != "" {
		a = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, a, m.fromEmail, []string{m.toEmail}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
