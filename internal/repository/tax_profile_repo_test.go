package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	ierr "taxengine/internal/errors"
)

func TestVersionConflictCarriesDetails(t *testing.T) {
	id := uuid.MustParse("5b1c7a52-8f0e-4a57-9d43-0c3e8e7f2a10")

	err := versionConflict(id, 3)

	assert.True(t, ierr.Is(err, ierr.ErrVersionConflict))
	assert.Equal(t, "The tax profile was modified concurrently, please retry", ierr.Hint(err))
	assert.Equal(t,
		[]string{"map[expected_version:3 profile_id:5b1c7a52-8f0e-4a57-9d43-0c3e8e7f2a10]"},
		ierr.Details(err))
}
