package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreelancerTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	freelancerID := uuid.New()
	companyID := uuid.New()

	token, err := IssueFreelancerToken(freelancerID, companyID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseFreelancerToken(token)
	require.NoError(t, err)
	assert.Equal(t, freelancerID.String(), claims.FreelancerID)
	assert.Equal(t, companyID.String(), claims.CompanyID)
}

func TestParseFreelancerTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueFreelancerToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseFreelancerToken(token)
	require.Error(t, err)
}

func TestParseFreelancerTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseFreelancerToken("not-a-token")
	require.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.NotEmpty(t, hash)
}
