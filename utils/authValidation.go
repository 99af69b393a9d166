package utils

import (
	"DentalCenter/models"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const MinPasswordLength = 6

// Validation errors
var (
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrPasswordsDoNotMatch  = errors.New("passwords do not match")
	ErrInvalidIncidentState = errors.New("status must be Scheduled, Completed or Cancelled")
)

// ValidateCredentials validates a login request.
func ValidateCredentials(creds models.Credentials) error {
	return validation.ValidateStruct(&creds,
		validation.Field(&creds.Email, validation.Required),
		validation.Field(&creds.Password, validation.Required),
	)
}

// ValidatePatientForm validates the administrator's patient form. A new
// patient needs a password; on update an empty password is allowed.
func ValidatePatientForm(form models.PatientForm, requirePassword bool) error {
	passwordRules := []validation.Rule{validation.By(validatePassword)}
	if requirePassword {
		passwordRules = append([]validation.Rule{validation.Required}, passwordRules...)
	}

	return validation.ValidateStruct(&form,
		validation.Field(&form.Name, validation.Required),
		validation.Field(&form.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&form.Contact, validation.Required),
		validation.Field(&form.Email, validation.Required, is.Email),
		validation.Field(&form.Password, passwordRules...),
		validation.Field(&form.ConfirmPassword, validation.By(matches(form.Password))),
	)
}

// ValidateIncidentForm validates the administrator's incident form.
func ValidateIncidentForm(form models.IncidentForm) error {
	return validation.ValidateStruct(&form,
		validation.Field(&form.PatientID, validation.Required),
		validation.Field(&form.Title, validation.Required),
		validation.Field(&form.AppointmentDate, validation.By(requiredDate)),
		validation.Field(&form.Status, validation.By(validStatus)),
		validation.Field(&form.Cost, validation.By(nonNegativeCost)),
	)
}

// ValidatePasswordChange validates a patient's own password change.
func ValidatePasswordChange(change models.PasswordChange) error {
	return validation.ValidateStruct(&change,
		validation.Field(&change.CurrentPassword, validation.Required),
		validation.Field(&change.NewPassword, validation.Required, validation.By(validatePassword)),
		validation.Field(&change.ConfirmPassword, validation.By(matches(change.NewPassword))),
	)
}

// validatePassword checks the password length; empty values are left to Required.
func validatePassword(value interface{}) error {
	password, _ := value.(string)
	if password != "" && len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func matches(password string) validation.RuleFunc {
	return func(value interface{}) error {
		confirm, _ := value.(string)
		if confirm != password {
			return ErrPasswordsDoNotMatch
		}
		return nil
	}
}

func requiredDate(value interface{}) error {
	d, _ := value.(models.DateTime)
	if d.IsZero() {
		return errors.New("cannot be blank")
	}
	return nil
}

func validStatus(value interface{}) error {
	status, _ := value.(models.IncidentStatus)
	if status != "" && !status.Valid() {
		return ErrInvalidIncidentState
	}
	return nil
}

func nonNegativeCost(value interface{}) error {
	cost, _ := value.(*models.Amount)
	if cost != nil && float64(*cost) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
