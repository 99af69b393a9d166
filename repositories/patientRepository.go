package repositories

import (
	"DentalCenter/models"
	"DentalCenter/storage"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PatientRepository holds the patient collection in memory and mirrors it to
// storage after every mutation.
type PatientRepository struct {
	store    storage.Storage
	logger   *zap.Logger
	seed     []models.Patient
	mu       sync.RWMutex
	patients []models.Patient
}

func NewPatientRepository(store storage.Storage, logger *zap.Logger, seed []models.Patient) *PatientRepository {
	return &PatientRepository{
		store:  store,
		logger: logger,
		seed:   seed,
	}
}

// Load replaces the in-memory collection with the stored one, or the seed.
func (r *PatientRepository) Load(ctx context.Context) {
	patients := loadCollection(ctx, r.store, r.logger, PatientsStorageKey, r.seed)

	r.mu.Lock()
	r.patients = patients
	r.mu.Unlock()
	r.logger.Info("patients loaded", zap.Int("count", len(patients)))
}

// List returns a snapshot of all patients in insertion order.
func (r *PatientRepository) List() []models.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Patient{}, r.patients...)
}

func (r *PatientRepository) GetByID(id string) (models.Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.patients[i], true
	}
	return models.Patient{}, false
}

// GetByEmail matches emails case-insensitively.
func (r *PatientRepository) GetByEmail(email string) (models.Patient, bool) {
	email = strings.TrimSpace(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return models.Patient{}, false
}

func (r *PatientRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}

// Create assigns a new ID and appends the patient. The email must not be in
// use by any other patient.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailInUse(patient.Email, "") {
		return fmt.Errorf("%s: %w", strings.TrimSpace(patient.Email), ErrEmailTaken)
	}
	patient.ID = "p-" + uuid.New().String()
	r.patients = append(r.patients, *patient)
	persistCollection(ctx, r.store, r.logger, PatientsStorageKey, r.patients)
	return nil
}

// Update runs apply on the current record under the write lock and stores the
// result. The ID cannot change and the email must stay unique.
func (r *PatientRepository) Update(ctx context.Context, id string, apply func(*models.Patient)) (models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Patient{}, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	patient := r.patients[i]
	apply(&patient)
	patient.ID = id
	if r.emailInUse(patient.Email, id) {
		return models.Patient{}, fmt.Errorf("%s: %w", strings.TrimSpace(patient.Email), ErrEmailTaken)
	}

	r.patients[i] = patient
	persistCollection(ctx, r.store, r.logger, PatientsStorageKey, r.patients)
	return patient, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	r.patients = append(r.patients[:i:i], r.patients[i+1:]...)
	persistCollection(ctx, r.store, r.logger, PatientsStorageKey, r.patients)
	return nil
}

// emailInUse expects r.mu to be held.
func (r *PatientRepository) emailInUse(email, excludeID string) bool {
	email = strings.TrimSpace(email)
	for _, p := range r.patients {
		if p.ID != excludeID && strings.EqualFold(p.Email, email) {
			return true
		}
	}
	return false
}

// indexOf expects r.mu to be held.
func (r *PatientRepository) indexOf(id string) int {
	for i, p := range r.patients {
		if p.ID == id {
			return i
		}
	}
	return -1
}
