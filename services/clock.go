package services

import (
	"DentalCenter/calendar"
	"DentalCenter/models"
	"time"
)

// Clock reports the clinic's current wall-clock time.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

// WallNow is the current time as a wall-clock value in the clinic's zone.
func (c Clock) WallNow() time.Time {
	now := c.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return models.WallClock(now)
}

func (c Clock) Today() time.Time {
	return calendar.StartOfDay(c.WallNow())
}
