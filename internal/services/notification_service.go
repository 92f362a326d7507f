package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

const cancellationEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif;">
  <h2>%s</h2>
  <p>The shift <strong>%s</strong> at <strong>%s</strong> scheduled for %s has been cancelled by the company.</p>
  %s
</body>
</html>`

const decisionEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif;">
  <h2>%s</h2>
  <p>Your application for <strong>%s</strong> at <strong>%s</strong> (%s) was %s.</p>
</body>
</html>`

// notifyApplicationDecision records the confirm/reject notification and
// pushes the email best-effort.
func (s *JobService) notifyApplicationDecision(ctx context.Context, app *models.JobApplication, job *models.Job, nType models.NotificationType) {
	company, err := s.companyRepo.GetByID(ctx, job.CompanyID)
	if err != nil || company == nil {
		utils.Logger.WithError(err).Warn("failed to load company for decision notification")
		return
	}

	n := &models.Notification{
		ID:              uuid.New(),
		RecipientUserID: app.WorkerID,
		Type:            nType,
		ApplicationDecision: &models.ApplicationDecisionPayload{
			JobID:       job.ID,
			JobTitle:    job.Title,
			CompanyName: company.Name,
			StartsAt:    job.StartsAt,
		},
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Warn("failed to persist decision notification")
	}

	go s.sendDecisionEmail(app, job, company, nType)
}

func (s *JobService) sendDecisionEmail(app *models.JobApplication, job *models.Job, company *models.Company, nType models.NotificationType) {
	worker, err := s.workerRepo.GetByID(context.Background(), app.WorkerID)
	if err != nil || worker == nil {
		utils.Logger.WithError(err).Warn("failed to load worker for decision email")
		return
	}

	verdict := "confirmed"
	subject := "Your shift is confirmed"
	if nType == models.NotificationApplicationRejected {
		verdict = "not selected this time"
		subject = "Application update"
	}

	html := fmt.Sprintf(decisionEmailHTML,
		subject, job.Title, company.Name,
		job.StartsAt.Format("Mon, 02 Jan 2006 15:04"), verdict)

	s.sendEmail(worker.Email, subject, html)
}

func (s *JobService) sendCancellationMessages(app *models.JobApplication, job *models.Job, company *models.Company) {
	worker, err := s.workerRepo.GetByID(context.Background(), app.WorkerID)
	if err != nil || worker == nil {
		utils.Logger.WithError(err).Warn("failed to load worker for cancellation email")
		return
	}

	compLine := ""
	subject := "Shift cancelled"
	if app.CompensationEur > 0 {
		subject = "Shift cancelled, compensation owed"
		compLine = fmt.Sprintf("<p>Because this was a late cancellation you will receive <strong>%.2f EUR</strong> in compensation.</p>", app.CompensationEur)
	}

	html := fmt.Sprintf(cancellationEmailHTML,
		subject, job.Title, company.Name,
		job.StartsAt.Format("Mon, 02 Jan 2006 15:04"), compLine)

	s.sendEmail(worker.Email, subject, html)

	if app.CompensationEur > 0 {
		body := fmt.Sprintf("Your shift %q on %s was cancelled late by %s. Compensation of %.2f EUR is on its way.",
			job.Title, job.StartsAt.Format("Jan 2 15:04"), company.Name, app.CompensationEur)
		s.sendSMS(worker, body)
	}
}

func (s *JobService) sendEmail(toEmail, subject, htmlBody string) {
	if s.sendgridClient == nil {
		return
	}

	from := mail.NewEmail("ShiftPool", s.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	if s.cfg.LDFlag_SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	resp, err := s.sendgridClient.Send(message)
	if err != nil {
		utils.Logger.WithError(err).Warn("sendgrid send failed")
		return
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Warnf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
}

func (s *JobService) sendSMS(worker *models.Worker, body string) {
	if s.twilioClient == nil || worker.Phone == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(worker.Phone)
	params.SetFrom(s.cfg.LDFlag_TwilioFromPhone)
	params.SetBody(body)

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warn("twilio send failed")
	}
}
