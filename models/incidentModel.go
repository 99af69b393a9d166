package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// IncidentStatus is the lifecycle state of an appointment.
type IncidentStatus string

const (
	StatusScheduled IncidentStatus = "Scheduled"
	StatusCompleted IncidentStatus = "Completed"
	StatusCancelled IncidentStatus = "Cancelled"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IncidentFile is an attachment; URL holds the content reference (usually a data URL).
type IncidentFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Incident model (an appointment or treatment record)
type Incident struct {
	ID              string         `json:"id"`
	PatientID       string         `json:"patientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Comments        string         `json:"comments"`
	AppointmentDate DateTime       `json:"appointmentDate"`
	Cost            *Amount        `json:"cost,omitempty"`
	Status          IncidentStatus `json:"status"`
	Treatment       string         `json:"treatment,omitempty"`
	NextDate        *DateTime      `json:"nextDate,omitempty"`
	Files           []IncidentFile `json:"files"`
}

// Completion holds the fields that only mean something once an incident is Completed.
type Completion struct {
	Cost      *Amount
	Treatment string
	NextDate  *DateTime
}

// Completion returns the completion details when the incident is Completed.
func (i Incident) Completion() (Completion, bool) {
	if i.Status != StatusCompleted {
		return Completion{}, false
	}
	return Completion{Cost: i.Cost, Treatment: i.Treatment, NextDate: i.NextDate}, true
}

// ClearCompletion drops completion details from incidents that are not Completed.
func (i *Incident) ClearCompletion() {
	if i.Status == StatusCompleted {
		return
	}
	i.Cost = nil
	i.Treatment = ""
	i.NextDate = nil
}

// Clone returns a deep copy so snapshots never share mutable state with a store.
func (i Incident) Clone() Incident {
	c := i
	if i.Cost != nil {
		v := *i.Cost
		c.Cost = &v
	}
	if i.NextDate != nil {
		v := *i.NextDate
		c.NextDate = &v
	}
	c.Files = append([]IncidentFile{}, i.Files...)
	return c
}

// IncidentForm carries the administrator's incident form.
type IncidentForm struct {
	PatientID       string         `json:"patientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Comments        string         `json:"comments"`
	AppointmentDate DateTime       `json:"appointmentDate"`
	Cost            *Amount        `json:"cost"`
	Status          IncidentStatus `json:"status"`
	Treatment       string         `json:"treatment"`
	NextDate        *DateTime      `json:"nextDate"`
	Files           []IncidentFile `json:"files"`
}

// Incident builds an incident from the form; the caller assigns the ID.
func (f IncidentForm) Incident() Incident {
	status := f.Status
	if status == "" {
		status = StatusScheduled
	}
	inc := Incident{
		PatientID:       strings.TrimSpace(f.PatientID),
		Title:           strings.TrimSpace(f.Title),
		Description:     f.Description,
		Comments:        f.Comments,
		AppointmentDate: f.AppointmentDate,
		Cost:            f.Cost,
		Status:          status,
		Treatment:       f.Treatment,
		NextDate:        f.NextDate,
		Files:           f.Files,
	}
	if inc.Files == nil {
		inc.Files = []IncidentFile{}
	}
	return inc.Clone()
}

// Amount is a monetary value. It decodes from JSON numbers or numeric strings;
// anything unparseable decodes as zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// Float returns the value, with NaN, infinities and negatives treated as zero.
func (a *Amount) Float() float64 {
	if a == nil {
		return 0
	}
	v := float64(*a)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// NewAmount is a convenience for building optional costs.
func NewAmount(v float64) *Amount {
	a := Amount(v)
	return &a
}

// DateTimeLayout is the wall-clock format timestamps are written in.
const DateTimeLayout = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// DateTime is a clinic wall-clock timestamp. It is held in UTC with the wall
// clock fields preserved, so calendar comparisons never depend on a zone.
type DateTime struct {
	time.Time
}

// WallClock re-labels t's wall clock fields as UTC.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: WallClock(t)}
}

// ParseDateTime accepts the layouts the clinic forms produce.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(DateTimeLayout))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
