// Package reports derives dashboard statistics from patient and incident
// snapshots. Every function is pure: inputs are never modified, malformed
// costs count as zero and unknown patients resolve to UnknownPatient.
package reports

import (
	"DentalCenter/models"
	"sort"
	"time"
)

const (
	// UnknownPatient labels incidents whose patient no longer exists.
	UnknownPatient = "Unknown Patient"

	DefaultTrendMonths   = 6
	DefaultUpcomingLimit = 10
	DefaultTopPatients   = 5
)

// PatientCount is one row of the top-patients ranking.
type PatientCount struct {
	PatientID        string `json:"patientId"`
	Name             string `json:"name"`
	AppointmentCount int    `json:"appointmentCount"`
}

// MonthRevenue is one bucket of the revenue trend.
type MonthRevenue struct {
	Month   time.Time `json:"month"`
	Label   string    `json:"label"`
	Revenue float64   `json:"revenue"`
}

// UpcomingAppointments returns Scheduled incidents strictly after asOf in
// ascending appointment order. Equal timestamps keep their source order.
func UpcomingAppointments(incidents []models.Incident, asOf time.Time, limit int) []models.Incident {
	if limit <= 0 {
		return []models.Incident{}
	}
	asOf = models.WallClock(asOf)

	upcoming := make([]models.Incident, 0)
	for _, inc := range incidents {
		if inc.Status == models.StatusScheduled && inc.AppointmentDate.After(asOf) {
			upcoming = append(upcoming, inc)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].AppointmentDate.Before(upcoming[j].AppointmentDate.Time)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

func countStatus(incidents []models.Incident, status models.IncidentStatus) int {
	n := 0
	for _, inc := range incidents {
		if inc.Status == status {
			n++
		}
	}
	return n
}

func CompletedCount(incidents []models.Incident) int {
	return countStatus(incidents, models.StatusCompleted)
}

func ScheduledCount(incidents []models.Incident) int {
	return countStatus(incidents, models.StatusScheduled)
}

func CancelledCount(incidents []models.Incident) int {
	return countStatus(incidents, models.StatusCancelled)
}

// completedCost is the revenue an incident contributes.
func completedCost(inc models.Incident) float64 {
	completion, ok := inc.Completion()
	if !ok {
		return 0
	}
	return completion.Cost.Float()
}

// TotalRevenue sums the cost of Completed incidents.
func TotalRevenue(incidents []models.Incident) float64 {
	total := 0.0
	for _, inc := range incidents {
		total += completedCost(inc)
	}
	return total
}

// MonthRange returns the first instant of t's calendar month and of the next one.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyRevenueTrend buckets Completed revenue into monthCount calendar
// months ending with referenceDate's month, oldest first.
func MonthlyRevenueTrend(incidents []models.Incident, referenceDate time.Time, monthCount int) []MonthRevenue {
	if monthCount <= 0 {
		monthCount = DefaultTrendMonths
	}
	reference, _ := MonthRange(models.WallClock(referenceDate))
	first := reference.AddDate(0, -(monthCount - 1), 0)

	buckets := make([]MonthRevenue, monthCount)
	for i := range buckets {
		month := first.AddDate(0, i, 0)
		buckets[i] = MonthRevenue{Month: month, Label: month.Format("Jan 2006")}
	}

	for _, inc := range incidents {
		cost := completedCost(inc)
		if cost == 0 {
			continue
		}
		at := inc.AppointmentDate.Time
		idx := (at.Year()-first.Year())*12 + int(at.Month()) - int(first.Month())
		if idx < 0 || idx >= monthCount {
			continue
		}
		buckets[idx].Revenue += cost
	}
	return buckets
}

// TopPatientsByAppointmentCount ranks patients by how many incidents
// reference them, any status. Ties keep patient order.
func TopPatientsByAppointmentCount(patients []models.Patient, incidents []models.Incident, limit int) []PatientCount {
	if limit <= 0 {
		return []PatientCount{}
	}
	counts := make(map[string]int, len(patients))
	for _, inc := range incidents {
		counts[inc.PatientID]++
	}

	ranking := make([]PatientCount, 0, len(patients))
	for _, p := range patients {
		ranking = append(ranking, PatientCount{PatientID: p.ID, Name: p.Name, AppointmentCount: counts[p.ID]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].AppointmentCount > ranking[j].AppointmentCount
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// PatientName resolves a patient's display name.
func PatientName(patients []models.Patient, id string) string {
	for _, p := range patients {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownPatient
}

// PatientNames indexes display names by patient id.
func PatientNames(patients []models.Patient) map[string]string {
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		if _, seen := names[p.ID]; !seen {
			names[p.ID] = p.Name
		}
	}
	return names
}

// NameOf looks a patient id up in an index built by PatientNames.
func NameOf(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return UnknownPatient
}

// ForPatient filters incidents down to one patient's, keeping order.
func ForPatient(incidents []models.Incident, patientID string) []models.Incident {
	own := make([]models.Incident, 0)
	for _, inc := range incidents {
		if inc.PatientID == patientID {
			own = append(own, inc)
		}
	}
	return own
}
