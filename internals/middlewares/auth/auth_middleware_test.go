package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestActiveCheck(t *testing.T) {
	assert.NoError(t, activeCheck(true, true))

	// zero rows means the user is gone, not deactivated
	assert.ErrorIs(t, activeCheck(false, false), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, activeCheck(false, true), gorm.ErrRecordNotFound)

	err := activeCheck(true, false)
	assert.ErrorIs(t, err, errUserInactive)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
