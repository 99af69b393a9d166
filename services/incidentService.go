package services

import (
	"DentalCenter/models"
	"DentalCenter/reports"
	"DentalCenter/repositories"
	"DentalCenter/utils"
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

var errUnknownPatient = errors.New("patient does not exist")

// IncidentView is an incident with its patient's display name resolved.
type IncidentView struct {
	models.Incident
	PatientName string `json:"patientName"`
}

// IncidentFilter narrows an incident listing; empty fields match everything.
type IncidentFilter struct {
	PatientID string
	Status    models.IncidentStatus
}

func (f IncidentFilter) matches(inc models.Incident) bool {
	return (f.PatientID == "" || inc.PatientID == f.PatientID) &&
		(f.Status == "" || inc.Status == f.Status)
}

type IncidentService struct {
	incidents *repositories.IncidentRepository
	patients  *repositories.PatientRepository
	logger    *zap.Logger
}

func NewIncidentService(incidents *repositories.IncidentRepository, patients *repositories.PatientRepository, logger *zap.Logger) *IncidentService {
	return &IncidentService{incidents: incidents, patients: patients, logger: logger}
}

func (s *IncidentService) GetAll(filter IncidentFilter) []IncidentView {
	var matched []models.Incident
	for _, inc := range s.incidents.List() {
		if filter.matches(inc) {
			matched = append(matched, inc)
		}
	}
	return withPatientNames(s.patients.List(), matched)
}

func (s *IncidentService) GetByID(id string) (IncidentView, error) {
	inc, ok := s.incidents.GetByID(id)
	if !ok {
		return IncidentView{}, fmt.Errorf("incident %s: %w", id, ErrNotFound)
	}
	return IncidentView{Incident: inc, PatientName: reports.PatientName(s.patients.List(), inc.PatientID)}, nil
}

func (s *IncidentService) Create(ctx context.Context, form models.IncidentForm) (models.Incident, error) {
	inc, err := s.fromForm(form)
	if err != nil {
		return models.Incident{}, err
	}
	if err := s.incidents.Create(ctx, &inc); err != nil {
		return models.Incident{}, err
	}
	s.logger.Info("incident created", zap.String("incidentId", inc.ID), zap.String("patientId", inc.PatientID))
	return inc, nil
}

// Update replaces every field of the incident except its ID.
func (s *IncidentService) Update(ctx context.Context, id string, form models.IncidentForm) (models.Incident, error) {
	if _, ok := s.incidents.GetByID(id); !ok {
		return models.Incident{}, fmt.Errorf("incident %s: %w", id, ErrNotFound)
	}
	inc, err := s.fromForm(form)
	if err != nil {
		return models.Incident{}, err
	}
	inc.ID = id
	if err := s.incidents.Update(ctx, inc); err != nil {
		return models.Incident{}, err
	}
	s.logger.Info("incident updated", zap.String("incidentId", id), zap.String("status", string(inc.Status)))
	return inc, nil
}

func (s *IncidentService) Delete(ctx context.Context, id string) error {
	if err := s.incidents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("incident deleted", zap.String("incidentId", id))
	return nil
}

// fromForm validates the form and drops completion details from incidents
// that are not Completed.
func (s *IncidentService) fromForm(form models.IncidentForm) (models.Incident, error) {
	if err := utils.ValidateIncidentForm(form); err != nil {
		return models.Incident{}, err
	}
	inc := form.Incident()
	if _, ok := s.patients.GetByID(inc.PatientID); !ok {
		return models.Incident{}, validation.Errors{"patientId": errUnknownPatient}
	}
	inc.ClearCompletion()
	return inc, nil
}

func withPatientNames(patients []models.Patient, incidents []models.Incident) []IncidentView {
	names := reports.PatientNames(patients)
	views := make([]IncidentView, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, IncidentView{Incident: inc, PatientName: reports.NameOf(names, inc.PatientID)})
	}
	return views
}
