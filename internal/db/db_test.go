package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Op: "put decision", Cause: cause}

	assert.Contains(t, err.Error(), "put decision")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestActuatorStore_BundleIsFullyWired(t *testing.T) {
	store := NewActuatorStore(&DB{})
	bundle := store.Actuators()

	assert.NotNil(t, bundle.Email)
	assert.NotNil(t, bundle.ATS)
	assert.NotNil(t, bundle.Calendar)
	assert.NotNil(t, bundle.Candidate)
}
