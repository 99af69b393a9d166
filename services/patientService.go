package services

import (
	"DentalCenter/models"
	"DentalCenter/repositories"
	"DentalCenter/utils"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type PatientService struct {
	patients  *repositories.PatientRepository
	incidents *repositories.IncidentRepository
	logger    *zap.Logger
}

func NewPatientService(patients *repositories.PatientRepository, incidents *repositories.IncidentRepository, logger *zap.Logger) *PatientService {
	return &PatientService{patients: patients, incidents: incidents, logger: logger}
}

func (s *PatientService) GetAll() []models.Patient {
	return s.patients.List()
}

func (s *PatientService) GetByID(id string) (models.Patient, error) {
	patient, ok := s.patients.GetByID(id)
	if !ok {
		return models.Patient{}, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	return patient, nil
}

// Create validates the form, hashes the password and stores a new patient.
// Patients are active unless the form says otherwise.
func (s *PatientService) Create(ctx context.Context, form models.PatientForm) (models.Patient, error) {
	if err := utils.ValidatePatientForm(form, true); err != nil {
		return models.Patient{}, err
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return models.Patient{}, err
	}
	patient := models.Patient{PasswordHash: hash, IsActive: true}
	applyPatientForm(&patient, form)

	if err := s.patients.Create(ctx, &patient); err != nil {
		return models.Patient{}, err
	}
	s.logger.Info("patient created", zap.String("patientId", patient.ID))
	return patient, nil
}

// Update replaces the patient's fields. An empty password keeps the current one.
func (s *PatientService) Update(ctx context.Context, id string, form models.PatientForm) (models.Patient, error) {
	if _, err := s.GetByID(id); err != nil {
		return models.Patient{}, err
	}
	if err := utils.ValidatePatientForm(form, false); err != nil {
		return models.Patient{}, err
	}

	var hash string
	if form.Password != "" {
		var err error
		if hash, err = utils.HashPassword(form.Password); err != nil {
			return models.Patient{}, err
		}
	}

	patient, err := s.patients.Update(ctx, id, func(p *models.Patient) {
		if hash != "" {
			p.PasswordHash = hash
		}
		applyPatientForm(p, form)
	})
	if err != nil {
		return models.Patient{}, err
	}
	s.logger.Info("patient updated", zap.String("patientId", id))
	return patient, nil
}

// Delete removes only the patient record. Its incidents stay and report the
// patient as unknown.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("patient deleted", zap.String("patientId", id))
	return nil
}

// DeletePatientAndRelated removes the patient together with all of their
// incidents and returns how many incidents went with it.
func (s *PatientService) DeletePatientAndRelated(ctx context.Context, id string) (int, error) {
	if err := s.patients.Delete(ctx, id); err != nil {
		return 0, err
	}
	removed := s.incidents.DeleteByPatient(ctx, id)
	s.logger.Info("patient and incidents deleted", zap.String("patientId", id), zap.Int("incidents", removed))
	return removed, nil
}

func applyPatientForm(patient *models.Patient, form models.PatientForm) {
	patient.Name = strings.TrimSpace(form.Name)
	patient.DateOfBirth = strings.TrimSpace(form.DateOfBirth)
	patient.Contact = strings.TrimSpace(form.Contact)
	patient.HealthInfo = form.HealthInfo
	patient.Email = strings.TrimSpace(form.Email)
	if form.IsActive != nil {
		patient.IsActive = *form.IsActive
	}
}
