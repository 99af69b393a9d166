package repositories

import (
	"DentalCenter/models"
	"DentalCenter/storage"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IncidentRepository holds the incident collection in memory and mirrors it
// to storage after every mutation.
type IncidentRepository struct {
	store     storage.Storage
	logger    *zap.Logger
	seed      []models.Incident
	mu        sync.RWMutex
	incidents []models.Incident
}

func NewIncidentRepository(store storage.Storage, logger *zap.Logger, seed []models.Incident) *IncidentRepository {
	return &IncidentRepository{
		store:  store,
		logger: logger,
		seed:   seed,
	}
}

func (r *IncidentRepository) Load(ctx context.Context) {
	incidents := loadCollection(ctx, r.store, r.logger, IncidentsStorageKey, r.seed)
	for i := range incidents {
		if incidents[i].Files == nil {
			incidents[i].Files = []models.IncidentFile{}
		}
	}

	r.mu.Lock()
	r.incidents = incidents
	r.mu.Unlock()
	r.logger.Info("incidents loaded", zap.Int("count", len(incidents)))
}

// List returns a deep snapshot of all incidents in insertion order.
func (r *IncidentRepository) List() []models.Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneIncidents(r.incidents, func(models.Incident) bool { return true })
}

func (r *IncidentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.incidents)
}

func (r *IncidentRepository) ListByPatient(patientID string) []models.Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneIncidents(r.incidents, func(inc models.Incident) bool { return inc.PatientID == patientID })
}

func (r *IncidentRepository) GetByID(id string) (models.Incident, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.incidents[i].Clone(), true
	}
	return models.Incident{}, false
}

func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	incident.ID = "i-" + uuid.New().String()
	r.incidents = append(r.incidents, incident.Clone())
	persistCollection(ctx, r.store, r.logger, IncidentsStorageKey, r.incidents)
	return nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(incident.ID)
	if i < 0 {
		return fmt.Errorf("incident %s: %w", incident.ID, ErrNotFound)
	}
	r.incidents[i] = incident.Clone()
	persistCollection(ctx, r.store, r.logger, IncidentsStorageKey, r.incidents)
	return nil
}

func (r *IncidentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("incident %s: %w", id, ErrNotFound)
	}
	r.incidents = append(r.incidents[:i:i], r.incidents[i+1:]...)
	persistCollection(ctx, r.store, r.logger, IncidentsStorageKey, r.incidents)
	return nil
}

// DeleteByPatient removes every incident of a patient and reports how many went.
func (r *IncidentRepository) DeleteByPatient(ctx context.Context, patientID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]models.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		if inc.PatientID != patientID {
			kept = append(kept, inc)
		}
	}
	removed := len(r.incidents) - len(kept)
	if removed == 0 {
		return 0
	}
	r.incidents = kept
	persistCollection(ctx, r.store, r.logger, IncidentsStorageKey, r.incidents)
	return removed
}

// indexOf expects r.mu to be held.
func (r *IncidentRepository) indexOf(id string) int {
	for i, inc := range r.incidents {
		if inc.ID == id {
			return i
		}
	}
	return -1
}

func cloneIncidents(incidents []models.Incident, keep func(models.Incident) bool) []models.Incident {
	out := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if keep(inc) {
			out = append(out, inc.Clone())
		}
	}
	return out
}
