package services

import (
	"DentalCenter/models"
	"DentalCenter/reports"
	"DentalCenter/repositories"
	"fmt"
)

const recentAppointments = 5

// AdminDashboard is the administrator's landing page.
type AdminDashboard struct {
	TotalPatients        int                    `json:"totalPatients"`
	UpcomingAppointments []IncidentView         `json:"upcomingAppointments"`
	CompletedTreatments  int                    `json:"completedTreatments"`
	PendingTreatments    int                    `json:"pendingTreatments"`
	TotalRevenue         float64                `json:"totalRevenue"`
	TopPatients          []reports.PatientCount `json:"topPatients"`
	RevenueTrend         []reports.MonthRevenue `json:"revenueTrend"`
	RecentAppointments   []IncidentView         `json:"recentAppointments"`
}

// PatientDashboard is a patient's landing page.
type PatientDashboard struct {
	UpcomingAppointments []IncidentView `json:"upcomingAppointments"`
	CompletedTreatments  int            `json:"completedTreatments"`
	PendingTreatments    int            `json:"pendingTreatments"`
	TotalAppointments    int            `json:"totalAppointments"`
	TotalSpent           float64        `json:"totalSpent"`
}

// PatientSelfView is the patient's own record and history.
type PatientSelfView struct {
	Profile             models.PatientProfile `json:"profile"`
	Incidents           []IncidentView        `json:"incidents"`
	TotalAppointments   int                   `json:"totalAppointments"`
	CompletedTreatments int                   `json:"completedTreatments"`
	TotalSpent          float64               `json:"totalSpent"`
	AccountStatus       string                `json:"accountStatus"`
}

type DashboardService struct {
	patients  *repositories.PatientRepository
	incidents *repositories.IncidentRepository
	clock     Clock
}

func NewDashboardService(patients *repositories.PatientRepository, incidents *repositories.IncidentRepository, clock Clock) *DashboardService {
	return &DashboardService{patients: patients, incidents: incidents, clock: clock}
}

// Admin aggregates the whole clinic. Upcoming counts from the start of today.
func (s *DashboardService) Admin() AdminDashboard {
	patients := s.patients.List()
	incidents := s.incidents.List()

	upcoming := withPatientNames(patients, reports.UpcomingAppointments(incidents, s.clock.Today(), reports.DefaultUpcomingLimit))
	recent := upcoming
	if len(recent) > recentAppointments {
		recent = recent[:recentAppointments]
	}

	return AdminDashboard{
		TotalPatients:        len(patients),
		UpcomingAppointments: upcoming,
		CompletedTreatments:  reports.CompletedCount(incidents),
		PendingTreatments:    reports.ScheduledCount(incidents),
		TotalRevenue:         reports.TotalRevenue(incidents),
		TopPatients:          reports.TopPatientsByAppointmentCount(patients, incidents, reports.DefaultTopPatients),
		RevenueTrend:         reports.MonthlyRevenueTrend(incidents, s.clock.Today(), reports.DefaultTrendMonths),
		RecentAppointments:   recent,
	}
}

func (s *DashboardService) Patient(patientID string) PatientDashboard {
	patients := s.patients.List()
	own := s.incidents.ListByPatient(patientID)

	return PatientDashboard{
		UpcomingAppointments: withPatientNames(patients, reports.UpcomingAppointments(own, s.clock.Today(), reports.DefaultUpcomingLimit)),
		CompletedTreatments:  reports.CompletedCount(own),
		PendingTreatments:    reports.ScheduledCount(own),
		TotalAppointments:    len(own),
		TotalSpent:           reports.TotalRevenue(own),
	}
}

func (s *DashboardService) SelfView(patientID string) (PatientSelfView, error) {
	patient, ok := s.patients.GetByID(patientID)
	if !ok {
		return PatientSelfView{}, fmt.Errorf("patient %s: %w", patientID, ErrNotFound)
	}
	own := s.incidents.ListByPatient(patientID)

	status := "Inactive"
	if patient.IsActive {
		status = "Active"
	}
	return PatientSelfView{
		Profile:             patient.Profile(),
		Incidents:           withPatientNames([]models.Patient{patient}, own),
		TotalAppointments:   len(own),
		CompletedTreatments: reports.CompletedCount(own),
		TotalSpent:          reports.TotalRevenue(own),
		AccountStatus:       status,
	}, nil
}
