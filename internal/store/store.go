// Package store holds per-run wizard state keyed by a random run ID, so
// concurrent users never share intermediate tables. The reconciliation core
// stays a pure pipeline; this is the only stateful piece.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"reconweb/internal/manifest"
)

// ErrNotFound indicates an unknown or expired run ID.
var ErrNotFound = errors.New("run not found")

// Job carries one reconciliation run through the wizard steps. Fields fill
// in step by step; each step only reads what earlier steps wrote.
type Job struct {
	ID        string
	CreatedAt time.Time

	// Step 1: uploaded rosters.
	POB    manifest.Table
	Portal manifest.Table

	// Step 2: column selection and the cleaned tables derived from it.
	POBNED        string
	POBName       string
	PortalNED     string
	PortalName    string
	POBClean      manifest.Table
	PortalClean   manifest.Table
	POBDropped    int
	PortalDropped int

	// Step 3: duplicate gate.
	POBDups            manifest.Duplicates
	PortalDups         manifest.Duplicates
	DuplicatesAccepted bool

	// Step 4: report metadata.
	Inputs manifest.UserInputs

	// Step 5: outputs.
	Reports   manifest.Reports
	Result    manifest.Result
	Generated bool
}

// HasDuplicates reports whether either roster tripped the duplicate gate.
func (j *Job) HasDuplicates() bool {
	return j.POBDups.Any || j.PortalDups.Any
}

// Store is a TTL-bounded in-memory job registry.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

// New creates a store whose jobs expire ttl after creation.
func New(ttl time.Duration) *Store {
	return &Store{jobs: make(map[string]*Job), ttl: ttl}
}

// Create registers a new job under a fresh run ID.
func (s *Store) Create() *Job {
	job := &Job{ID: newID(), CreatedAt: time.Now()}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get looks up a job by run ID.
func (s *Store) Get(id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return job, nil
}

// Delete removes a job, typically after its download completes or the user
// restarts the wizard.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}

// Sweep drops jobs older than the TTL and reports how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, job := range s.jobs {
		if now.Sub(job.CreatedAt) > s.ttl {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live jobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b[:])
}
