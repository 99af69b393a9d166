package services

import (
	"DentalCenter/reports"
	"DentalCenter/repositories"
	"DentalCenter/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderResult summarises one reminder run.
type ReminderResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReminderService emails patients about Scheduled appointments that fall
// within the reminder window.
type ReminderService struct {
	patients  *repositories.PatientRepository
	incidents *repositories.IncidentRepository
	mailer    utils.Mailer
	clock     Clock
	window    time.Duration
	logger    *zap.Logger
}

func NewReminderService(
	patients *repositories.PatientRepository,
	incidents *repositories.IncidentRepository,
	mailer utils.Mailer,
	clock Clock,
	window time.Duration,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		patients:  patients,
		incidents: incidents,
		mailer:    mailer,
		clock:     clock,
		window:    window,
		logger:    logger,
	}
}

// SendUpcoming mails every reachable patient with an appointment between now
// and now plus the window. Inactive or unknown patients are skipped.
func (s *ReminderService) SendUpcoming(ctx context.Context) (ReminderResult, error) {
	now := s.clock.WallNow()
	until := now.Add(s.window)

	incidents := s.incidents.List()
	upcoming := reports.UpcomingAppointments(incidents, now, len(incidents))

	var result ReminderResult
	for _, inc := range upcoming {
		if inc.AppointmentDate.After(until) {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		patient, ok := s.patients.GetByID(inc.PatientID)
		if !ok || !patient.IsActive || patient.Email == "" {
			result.Skipped++
			continue
		}

		mail, err := utils.ReminderMail(patient.Email, utils.ReminderDetails{
			PatientName: patient.Name,
			Title:       inc.Title,
			When:        inc.AppointmentDate.Format("Mon, 02 Jan 2006 15:04"),
		})
		if err == nil {
			err = s.mailer.Send(ctx, mail)
		}
		if err != nil {
			result.Failed++
			s.logger.Error("failed to send reminder", zap.String("incidentId", inc.ID), zap.Error(err))
			continue
		}
		result.Sent++
	}

	s.logger.Info("reminders processed",
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}
