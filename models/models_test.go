package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_JSON(t *testing.T) {
	for input, want := range map[string]string{
		`"2025-07-01T10:00:00"`:       "2025-07-01T10:00:00",
		`"2025-07-01T10:00"`:          "2025-07-01T10:00:00",
		`"2025-07-01"`:                "2025-07-01T00:00:00",
		`"2025-07-01T10:00:00+02:00"`: "2025-07-01T10:00:00",
	} {
		var d DateTime
		require.NoError(t, json.Unmarshal([]byte(input), &d), input)
		assert.Equal(t, want, d.Format(DateTimeLayout), input)
		assert.Equal(t, time.UTC, d.Location(), input)
	}

	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`12`), &d))
}

func TestAmount_TolerantDecoding(t *testing.T) {
	var inc struct {
		A *Amount `json:"a"`
		B *Amount `json:"b"`
		C *Amount `json:"c"`
		D *Amount `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":80,"b":"12.5","c":"abc","d":null}`), &inc))

	assert.Equal(t, 80.0, inc.A.Float())
	assert.Equal(t, 12.5, inc.B.Float())
	assert.Equal(t, 0.0, inc.C.Float())
	assert.Nil(t, inc.D)
	assert.Equal(t, 0.0, inc.D.Float())
}

func TestAmount_FloatTreatsInvalidAsZero(t *testing.T) {
	assert.Equal(t, 0.0, NewAmount(-10).Float())
	assert.Equal(t, 0.0, NewAmount(math.NaN()).Float())
	assert.Equal(t, 0.0, NewAmount(math.Inf(1)).Float())
	assert.Equal(t, 99.99, NewAmount(99.99).Float())
}

func TestIncident_Completion(t *testing.T) {
	next := NewDateTime(time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC))
	inc := Incident{Status: StatusCompleted, Cost: NewAmount(80), Treatment: "Root canal", NextDate: &next}

	details, ok := inc.Completion()
	require.True(t, ok)
	assert.Equal(t, "Root canal", details.Treatment)

	inc.Status = StatusScheduled
	_, ok = inc.Completion()
	assert.False(t, ok)

	inc.ClearCompletion()
	assert.Nil(t, inc.Cost)
	assert.Empty(t, inc.Treatment)
	assert.Nil(t, inc.NextDate)
}

func TestIncident_CloneIsDeep(t *testing.T) {
	inc := Incident{Cost: NewAmount(10), Files: []IncidentFile{{Name: "a.png"}}}
	c := inc.Clone()
	*c.Cost = 20
	c.Files[0].Name = "b.png"

	assert.Equal(t, 10.0, inc.Cost.Float())
	assert.Equal(t, "a.png", inc.Files[0].Name)
}

func TestIncidentForm_Defaults(t *testing.T) {
	inc := IncidentForm{PatientID: " p1 ", Title: " Cleaning "}.Incident()

	assert.Equal(t, "p1", inc.PatientID)
	assert.Equal(t, "Cleaning", inc.Title)
	assert.Equal(t, StatusScheduled, inc.Status)
	assert.NotNil(t, inc.Files)
}

func TestIncidentStatus_Valid(t *testing.T) {
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, IncidentStatus("Postponed").Valid())
}

func TestPatient_ProfileHidesPassword(t *testing.T) {
	p := Patient{ID: "p1", Name: "John", PasswordHash: "$2a$10$secret"}
	out, err := json.Marshal(Profiles([]Patient{p}))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.Contains(t, string(out), `"name":"John"`)
}

func TestUser_Valid(t *testing.T) {
	assert.True(t, User{ID: "1", Role: RoleAdmin, Email: "admin@entnt.in"}.Valid())
	assert.False(t, User{ID: "1", Role: "Dentist", Email: "x@y.z"}.Valid())
	assert.False(t, User{Role: RolePatient, Email: "x@y.z"}.Valid())
}
