package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
	"github.com/okulpusula/pusula-backend/internal/platform/mailer"
)

// NotifierService pushes high-severity conflict escalations to the guidance
// team. A nil mail client turns it into a log-only notifier so local and test
// environments never need SendGrid credentials.
type NotifierService interface {
	NotifyConflictEscalation(ctx context.Context, student *types.Student, conflicts []types.Conflict) error
}

type notifierService struct {
	log        *logger.Logger
	mail       mailer.Client
	recipients []mailer.Address
}

func NewNotifierService(log *logger.Logger, mail mailer.Client) NotifierService {
	var recipients []mailer.Address
	for _, addr := range strings.Split(os.Getenv("ESCALATION_RECIPIENTS"), ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, mailer.Address{Email: addr})
		}
	}
	return &notifierService{
		log:        log.With("service", "NotifierService"),
		mail:       mail,
		recipients: recipients,
	}
}

func (s *notifierService) NotifyConflictEscalation(ctx context.Context, student *types.Student, conflicts []types.Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}

	name := "bilinmeyen öğrenci"
	if student != nil {
		name = strings.TrimSpace(student.FirstName + " " + student.LastName)
	}

	s.log.Warn("High severity conflicts escalated",
		"student_id", studentIDString(student),
		"conflicts", len(conflicts),
	)

	if s.mail == nil || len(s.recipients) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s için %d yüksek önem dereceli veri çelişkisi tespit edildi.\n\n", name, len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(&body, "- %s: mevcut %v, yeni %v\n", c.Field, c.CurrentValue, c.NewValue)
	}
	body.WriteString("\nÇelişkiler otomatik uygulanmadı; öneri kuyruğundan incelenmeyi bekliyor.\n")

	msg := mailer.Message{
		To:      s.recipients,
		Subject: fmt.Sprintf("Veri çelişkisi incelemesi gerekli: %s", name),
		Text:    body.String(),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("escalation mail failed: %w", err)
	}
	return nil
}

func studentIDString(student *types.Student) string {
	if student == nil {
		return ""
	}
	return student.ID.String()
}
