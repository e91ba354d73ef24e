package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	s := New(time.Hour)

	job := s.Create()
	require.NotEmpty(t, job.ID)
	assert.Len(t, job.ID, 32)

	got, err := s.Get(job.ID)
	require.NoError(t, err)
	assert.Same(t, job, got)
}

func TestGetUnknownID(t *testing.T) {
	s := New(time.Hour)

	_, err := s.Get("deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDsAreUnique(t *testing.T) {
	s := New(time.Hour)

	a := s.Create()
	b := s.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestDelete(t *testing.T) {
	s := New(time.Hour)

	job := s.Create()
	s.Delete(job.ID)

	_, err := s.Get(job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepExpiresOldJobs(t *testing.T) {
	s := New(time.Minute)

	old := s.Create()
	old.CreatedAt = time.Now().Add(-2 * time.Minute)
	fresh := s.Create()

	removed := s.Sweep(time.Now())
	assert.Equal(t, 1, removed)

	_, err := s.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}
