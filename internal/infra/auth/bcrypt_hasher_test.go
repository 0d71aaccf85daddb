package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "CorrectHorse1!"
	hash, err := hasher.Hash(password, bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword1!", hash))
}

func TestBcryptHasher_CostIsEmbedded(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret", 6)
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestBcryptHasher_CheckMissingInputs(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret", bcrypt.MinCost)
	assert.NoError(t, err)

	// Missing inputs are a mismatch, never a panic or an error.
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("secret", ""))
	assert.False(t, hasher.Check("", ""))
	assert.False(t, hasher.Check("secret", "not-a-bcrypt-hash"))
}
