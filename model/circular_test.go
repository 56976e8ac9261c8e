// api/model/circular_test.go
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func circularFixture(expiry time.Time) *Circular {
	return &Circular{
		Title:          "Winter readiness",
		ExpiryDate:     expiry,
		TargetOfficers: []User{{ID: 10}, {ID: 11}},
	}
}

func TestCanOfficerAccess(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	t.Run("targeted officer", func(t *testing.T) {
		c := circularFixture(future)
		assert.True(t, c.CanOfficerAccess(10))
	})

	t.Run("untargeted officer", func(t *testing.T) {
		c := circularFixture(future)
		assert.False(t, c.CanOfficerAccess(99))
	})

	t.Run("deleted circular", func(t *testing.T) {
		c := circularFixture(future)
		c.IsDeleted = true
		assert.False(t, c.CanOfficerAccess(10))
	})

	t.Run("expired circular", func(t *testing.T) {
		c := circularFixture(time.Now().Add(-time.Hour))
		assert.False(t, c.CanOfficerAccess(10))
	})
}

func TestClassificationValidation(t *testing.T) {
	assert.True(t, ClassificationTopSecret.Valid())
	assert.False(t, CircularClassification("PUBLIC").Valid())
}
