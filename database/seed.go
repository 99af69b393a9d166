package database

import (
	"DentalCenter/models"
	"DentalCenter/utils"
	"time"
)

// SeedPatients returns the patient collection a fresh installation starts with.
func SeedPatients() ([]models.Patient, error) {
	hash, err := utils.HashPassword("patient123")
	if err != nil {
		return nil, err
	}
	return []models.Patient{
		{
			ID:           "p1",
			Name:         "John Doe",
			DateOfBirth:  "1990-05-10",
			Contact:      "1234567890",
			HealthInfo:   "No allergies",
			Email:        "john@entnt.in",
			PasswordHash: hash,
			IsActive:     true,
		},
	}, nil
}

// SeedIncidents returns the incident collection a fresh installation starts with.
func SeedIncidents() []models.Incident {
	next := models.NewDateTime(time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC))
	return []models.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Toothache",
			Description:     "Upper molar pain",
			Comments:        "Sensitive to cold",
			AppointmentDate: models.NewDateTime(time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)),
			Cost:            models.NewAmount(80),
			Status:          models.StatusCompleted,
			Treatment:       "Root canal treatment",
			NextDate:        &next,
			Files: []models.IncidentFile{
				{Name: "invoice.pdf", URL: "data:application/pdf;base64,mock-base64-data"},
				{Name: "xray.png", URL: "data:image/png;base64,mock-base64-data"},
			},
		},
	}
}
