// Package mailer реализует отправку почтовых уведомлений о новых
// обращениях через контактную форму: письмо владельцу портфолио
// с Reply-To на адрес отправителя и автоответ самому отправителю.
package mailer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/florienmf/portfolio-backend/internal/config"
	"github.com/florienmf/portfolio-backend/internal/lib/sl"
	"github.com/florienmf/portfolio-backend/internal/lib/smtp"
	"github.com/florienmf/portfolio-backend/internal/models"
)

// Service отправляет письма через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
	notifyTo  string // Адрес владельца для уведомлений
	ownerName string
}

// NewService создает новый экземпляр Service. Если адрес уведомлений
// не задан, письма владельцу уходят на SMTP-аккаунт.
func NewService(cfg *config.Config, log *slog.Logger, transport smtp.TransportInterface) *Service {
	notifyTo := cfg.NotificationEmail
	if notifyTo == "" {
		notifyTo = cfg.SMTPUser
	}
	return &Service{
		transport: transport,
		log:       log,
		notifyTo:  notifyTo,
		ownerName: cfg.OwnerName,
	}
}

// SendContactNotification отправляет уведомление владельцу и автоответ
// отправителю обращения. Ошибка любой из двух отправок возвращается
// вызывающему; повторных попыток нет.
func (s *Service) SendContactNotification(contact *models.Contact) error {
	const op = "mailer.SendContactNotification"

	notification := fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>From:</strong> %s (%s)</p>
<p><strong>Subject:</strong> %s</p>
<div style="margin-top: 20px;">
  <p><strong>Message:</strong></p>
  <p>%s</p>
</div>
<p style="margin-top: 20px; color: #666;">
  This is an automated notification from your portfolio contact form.
</p>`, contact.Name, contact.Email, contact.Subject, contact.Message)

	err := s.sendEmail(
		s.notifyTo,
		"New Contact Form Message: "+contact.Subject,
		notification,
		contact.Email,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	autoReply := fmt.Sprintf(`<h2>Thank you for your message</h2>
<p>Hello %s,</p>
<p>I have received your message and will be in touch as soon as possible.</p>
<p>Best regards,<br>%s</p>`, contact.Name, s.ownerName)

	if err = s.sendEmail(contact.Email, "Thank you for contacting me!", autoReply, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) sendEmail(to, subject, htmlBody, replyTo string) error {
	from := s.transport.GetSMTPUser()
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"Date: " + time.Now().Format(time.RFC1123Z),
		fmt.Sprintf("Message-ID: <%s@%s>", uuid.NewString(), domainOf(from)),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	if replyTo != "" {
		headers = append(headers, "Reply-To: "+replyTo)
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.String("to", to))
	return nil
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i+1 < len(addr) {
		return addr[i+1:]
	}
	return "localhost"
}
