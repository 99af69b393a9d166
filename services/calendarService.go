package services

import (
	"DentalCenter/calendar"
	"DentalCenter/reports"
	"DentalCenter/repositories"
)

// MaxCellPreviews is how many incidents a grid cell lists before "+N more".
const MaxCellPreviews = 2

type CalendarCell struct {
	Date     string         `json:"date"`
	Day      int            `json:"day"`
	InMonth  bool           `json:"inMonth"`
	IsToday  bool           `json:"isToday"`
	Selected bool           `json:"selected"`
	Count    int            `json:"count"`
	Previews []IncidentView `json:"previews"`
	More     int            `json:"more"`
}

type SelectedDay struct {
	Date      string         `json:"date"`
	Label     string         `json:"label"`
	Incidents []IncidentView `json:"incidents"`
}

// CalendarPage is everything the calendar screen renders for one month.
type CalendarPage struct {
	Month    string           `json:"month"`
	Label    string           `json:"label"`
	Prev     string           `json:"prev"`
	Next     string           `json:"next"`
	Weeks    [][]CalendarCell `json:"weeks"`
	Selected *SelectedDay     `json:"selected,omitempty"`
}

type CalendarService struct {
	patients  *repositories.PatientRepository
	incidents *repositories.IncidentRepository
	clock     Clock
}

func NewCalendarService(patients *repositories.PatientRepository, incidents *repositories.IncidentRepository, clock Clock) *CalendarService {
	return &CalendarService{patients: patients, incidents: incidents, clock: clock}
}

// Page builds the month grid for the month and day query values.
func (s *CalendarService) Page(monthParam, dayParam string) (CalendarPage, error) {
	today := s.clock.Today()
	view, err := calendar.ParseView(monthParam, dayParam, today)
	if err != nil {
		return CalendarPage{}, err
	}

	patients := s.patients.List()
	incidents := s.incidents.List()
	names := reports.PatientNames(patients)
	cells := calendar.BuildGrid(view.Month, incidents)

	page := CalendarPage{
		Month: view.Month.Format(calendar.MonthLayout),
		Label: view.Month.Format("January 2006"),
		Prev:  calendar.PrevMonth(view.Month).Format(calendar.MonthLayout),
		Next:  calendar.NextMonth(view.Month).Format(calendar.MonthLayout),
	}

	for i, cell := range cells {
		if i%7 == 0 {
			page.Weeks = append(page.Weeks, make([]CalendarCell, 0, 7))
		}
		previews := cell.Incidents
		if len(previews) > MaxCellPreviews {
			previews = previews[:MaxCellPreviews]
		}
		out := CalendarCell{
			Date:     cell.Date.Format(calendar.DayLayout),
			Day:      cell.Date.Day(),
			InMonth:  cell.InMonth,
			IsToday:  calendar.SameDay(cell.Date, today),
			Selected: view.Selected != nil && calendar.SameDay(cell.Date, *view.Selected),
			Count:    len(cell.Incidents),
			Previews: make([]IncidentView, 0, len(previews)),
			More:     len(cell.Incidents) - len(previews),
		}
		for _, inc := range previews {
			out.Previews = append(out.Previews, IncidentView{Incident: inc, PatientName: reports.NameOf(names, inc.PatientID)})
		}
		week := len(page.Weeks) - 1
		page.Weeks[week] = append(page.Weeks[week], out)
	}

	if view.Selected != nil {
		page.Selected = &SelectedDay{
			Date:      view.Selected.Format(calendar.DayLayout),
			Label:     view.Selected.Format("Monday, January 2, 2006"),
			Incidents: withPatientNames(patients, calendar.IncidentsOn(*view.Selected, incidents)),
		}
	}
	return page, nil
}
