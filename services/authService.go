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

type AuthService struct {
	admins   []models.AdminAccount
	patients *repositories.PatientRepository
	sessions *repositories.SessionRepository
	tokens   *utils.TokenMaker
	logger   *zap.Logger
}

func NewAuthService(
	admins []models.AdminAccount,
	patients *repositories.PatientRepository,
	sessions *repositories.SessionRepository,
	tokens *utils.TokenMaker,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{admins: admins, patients: patients, sessions: sessions, tokens: tokens, logger: logger}
}

// NewAdminAccount hashes a configured administrator password.
func NewAdminAccount(id, email, password string) (models.AdminAccount, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.AdminAccount{}, err
	}
	return models.AdminAccount{ID: id, Email: strings.TrimSpace(email), PasswordHash: hash}, nil
}

// Login checks the administrator accounts first, then active patients. On
// success it returns the user with a fresh access token and records the session.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	if err := utils.ValidateCredentials(creds); err != nil {
		return models.User{}, "", err
	}

	user, err := s.authenticate(creds)
	if err != nil {
		s.logger.Info("login failed", zap.String("email", creds.Email), zap.Error(err))
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	s.sessions.Save(ctx, user)
	s.logger.Info("user logged in", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	return user, token, nil
}

func (s *AuthService) authenticate(creds models.Credentials) (models.User, error) {
	email := strings.TrimSpace(creds.Email)
	for _, admin := range s.admins {
		if strings.EqualFold(admin.Email, email) {
			if err := utils.CheckPassword(admin.PasswordHash, creds.Password); err != nil {
				return models.User{}, err
			}
			return models.User{ID: admin.ID, Role: models.RoleAdmin, Email: admin.Email}, nil
		}
	}

	patient, ok := s.patients.GetByEmail(email)
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", email, ErrNotFound)
	}
	if !patient.IsActive {
		return models.User{}, ErrInactiveAccount
	}
	if err := utils.CheckPassword(patient.PasswordHash, creds.Password); err != nil {
		return models.User{}, err
	}
	return models.User{ID: patient.ID, Role: models.RolePatient, Email: patient.Email, PatientID: patient.ID}, nil
}

// Logout drops the stored session if it still belongs to user.
func (s *AuthService) Logout(ctx context.Context, user models.User) {
	s.sessions.ClearFor(ctx, user.ID)
	s.logger.Info("user logged out", zap.String("userId", user.ID))
}

// Authorize resolves a token to its user. Patient tokens stop working once
// the patient is removed or deactivated.
func (s *AuthService) Authorize(token string, roles ...models.Role) (models.User, error) {
	claims, err := s.tokens.ValidateToken(token, roles...)
	if err != nil {
		return models.User{}, err
	}
	user := claims.User()
	if user.Role == models.RolePatient {
		patient, ok := s.patients.GetByID(user.PatientID)
		if !ok {
			return models.User{}, fmt.Errorf("patient %s: %w", user.PatientID, ErrNotFound)
		}
		if !patient.IsActive {
			return models.User{}, ErrInactiveAccount
		}
	}
	return user, nil
}

// StoredSession returns the most recently persisted session, if any.
func (s *AuthService) StoredSession(ctx context.Context) (*models.User, error) {
	return s.sessions.Get(ctx)
}

// ChangePassword lets a patient replace their own password.
func (s *AuthService) ChangePassword(ctx context.Context, patientID string, change models.PasswordChange) error {
	if err := utils.ValidatePasswordChange(change); err != nil {
		return err
	}
	patient, ok := s.patients.GetByID(patientID)
	if !ok {
		return fmt.Errorf("patient %s: %w", patientID, ErrNotFound)
	}
	if err := utils.CheckPassword(patient.PasswordHash, change.CurrentPassword); err != nil {
		return ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(change.NewPassword)
	if err != nil {
		return err
	}
	if _, err := s.patients.Update(ctx, patientID, func(p *models.Patient) { p.PasswordHash = hash }); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("patientId", patientID))
	return nil
}
