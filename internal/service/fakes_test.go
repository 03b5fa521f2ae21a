package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/internal/repository"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// memoryStore is an in-memory stand-in for the three tables.
type memoryStore struct {
	cohorts  map[int64]*models.Cohort
	students map[int64]*models.StudentRecord
	admins   map[int64]*models.AdminAccount
	nextID   int64
	failNext error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		cohorts:  map[int64]*models.Cohort{},
		students: map[int64]*models.StudentRecord{},
		admins:   map[int64]*models.AdminAccount{},
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memoryStore) addCohort(year int, active bool) *models.Cohort {
	c := &models.Cohort{ID: m.id(), Year: year, Active: active}
	m.cohorts[c.ID] = c
	return c
}

func (m *memoryStore) addStudent(cohortID int64, first, last string, created time.Time) *models.StudentRecord {
	rec := &models.StudentRecord{ID: m.id(), CohortID: cohortID, FirstName: first, LastName: last, Email: first + "@example.com", ConsentGiven: true, ConsentTimestamp: &created, CreatedAt: created}
	m.students[rec.ID] = rec
	return rec
}

// cohort repository

func (m *memoryStore) ListActive(context.Context) ([]models.Cohort, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	out := []models.Cohort{}
	for _, c := range m.cohorts {
		if c.Active {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *memoryStore) ListWithCounts(context.Context) ([]models.CohortSummary, error) {
	out := []models.CohortSummary{}
	for _, c := range m.cohorts {
		count := 0
		for _, s := range m.students {
			if s.CohortID == c.ID {
				count++
			}
		}
		out = append(out, models.CohortSummary{Cohort: *c, StudentCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id int64) (*models.Cohort, error) {
	c, ok := m.cohorts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *memoryStore) Create(_ context.Context, year int) (*models.Cohort, error) {
	for _, c := range m.cohorts {
		if c.Year == year {
			return nil, repository.ErrDuplicate
		}
	}
	c := m.addCohort(year, true)
	cp := *c
	return &cp, nil
}

func (m *memoryStore) ToggleActive(_ context.Context, id int64) (*models.Cohort, error) {
	c, ok := m.cohorts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Active = !c.Active
	cp := *c
	return &cp, nil
}

func (m *memoryStore) DeleteCascade(_ context.Context, id int64) (*models.CohortDeletion, error) {
	c, ok := m.cohorts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	count := 0
	for sid, s := range m.students {
		if s.CohortID == id {
			delete(m.students, sid)
			count++
		}
	}
	delete(m.cohorts, id)
	return &models.CohortDeletion{CohortID: id, Year: c.Year, DeletedStudents: count}, nil
}

// studentStore adapts memoryStore to the student repository method set, which
// shares method names with the cohort repository.
type studentStore struct{ *memoryStore }

func (s studentStore) Create(_ context.Context, rec *models.StudentRecord) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	if _, ok := s.cohorts[rec.CohortID]; !ok {
		return repository.ErrForeignKey
	}
	now := time.Now()
	rec.ID = s.id()
	rec.CreatedAt = now
	rec.ConsentTimestamp = &now
	cp := *rec
	s.students[rec.ID] = &cp
	return nil
}

func (s studentStore) List(_ context.Context, filter models.StudentFilter) ([]models.StudentDetail, error) {
	out := []models.StudentDetail{}
	for _, rec := range s.students {
		if filter.CohortID != nil && rec.CohortID != *filter.CohortID {
			continue
		}
		c, ok := s.cohorts[rec.CohortID]
		if !ok {
			continue
		}
		out = append(out, models.StudentDetail{StudentRecord: *rec, CohortYear: c.Year})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s studentStore) Stats(context.Context) (*models.StudentStats, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	cohorts := map[int64]struct{}{}
	for _, rec := range s.students {
		cohorts[rec.CohortID] = struct{}{}
	}
	return &models.StudentStats{TotalStudents: len(s.students), CohortsWithStudents: len(cohorts)}, nil
}

func (s studentStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.students[id]; !ok {
		return false, nil
	}
	delete(s.students, id)
	return true, nil
}

func (s studentStore) ExportRows(_ context.Context, filter models.StudentFilter) ([]models.StudentExportRow, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	out := []models.StudentExportRow{}
	for _, rec := range s.students {
		if filter.CohortID != nil && rec.CohortID != *filter.CohortID {
			continue
		}
		c, ok := s.cohorts[rec.CohortID]
		if !ok {
			continue
		}
		consentAt := rec.CreatedAt
		if rec.ConsentTimestamp != nil {
			consentAt = *rec.ConsentTimestamp
		}
		out = append(out, models.StudentExportRow{
			CohortID: rec.CohortID, CohortYear: c.Year, FirstName: rec.FirstName, LastName: rec.LastName,
			Email: rec.Email, ConsentGiven: rec.ConsentGiven, ConsentTimestamp: consentAt, CreatedAt: rec.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.CohortID == nil && out[i].CohortYear != out[j].CohortYear {
			return out[i].CohortYear > out[j].CohortYear
		}
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

// adminStore adapts memoryStore to the admin repository method set.
type adminStore struct{ *memoryStore }

func (a adminStore) addAdmin(username, hash string) *models.AdminAccount {
	admin := &models.AdminAccount{ID: a.id(), Username: username, PasswordHash: hash}
	a.admins[admin.ID] = admin
	return admin
}

func (a adminStore) FindByUsername(_ context.Context, username string) (*models.AdminAccount, error) {
	if err := a.takeFailure(); err != nil {
		return nil, err
	}
	for _, admin := range a.admins {
		if admin.Username == username {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (a adminStore) FindByID(_ context.Context, id int64) (*models.AdminAccount, error) {
	admin, ok := a.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *admin
	return &cp, nil
}

func (a adminStore) List(context.Context) ([]models.AdminAccount, error) {
	out := []models.AdminAccount{}
	for _, admin := range a.admins {
		out = append(out, *admin)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (a adminStore) Create(_ context.Context, admin *models.AdminAccount) error {
	for _, existing := range a.admins {
		if existing.Username == admin.Username {
			return repository.ErrDuplicate
		}
	}
	admin.ID = a.id()
	cp := *admin
	a.admins[admin.ID] = &cp
	return nil
}

func (a adminStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	if err := a.takeFailure(); err != nil {
		return err
	}
	admin, ok := a.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	admin.PasswordHash = hash
	return nil
}

func (a adminStore) DeleteWithGuard(_ context.Context, id int64, guard func(total int) error) error {
	if guard != nil {
		if err := guard(len(a.admins)); err != nil {
			return err
		}
	}
	if _, ok := a.admins[id]; !ok {
		return sql.ErrNoRows
	}
	delete(a.admins, id)
	return nil
}

type memorySessions struct {
	revoked map[string]time.Duration
}

func (m *memorySessions) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[id] = ttl
	return nil
}

func (m *memorySessions) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.revoked[id]
	return ok, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
