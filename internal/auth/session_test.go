package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meterportal/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSessionManager_IssueAndParse(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m, err := NewSessionManager(testSecret, "meterportal", time.Hour, fixedClock(now))
	require.NoError(t, err)

	s, err := m.Issue(model.User{Email: "Jane@Example.com", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
	assert.Equal(t, 2, strings.Count(s.Token, "."))

	user, err := m.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, model.User{Email: "jane@example.com", Name: "Jane"}, user)
}

func TestSessionManager_Expired(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer, err := NewSessionManager(testSecret, "meterportal", time.Hour, fixedClock(now))
	require.NoError(t, err)
	s, err := issuer.Issue(model.User{Email: "jane@example.com"})
	require.NoError(t, err)

	later, err := NewSessionManager(testSecret, "meterportal", time.Hour, fixedClock(now.Add(2*time.Hour)))
	require.NoError(t, err)

	_, err = later.Parse(s.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionManager_WrongSecretOrIssuer(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m, err := NewSessionManager(testSecret, "meterportal", time.Hour, fixedClock(now))
	require.NoError(t, err)
	s, err := m.Issue(model.User{Email: "jane@example.com"})
	require.NoError(t, err)

	other, err := NewSessionManager(strings.Repeat("x", 32), "meterportal", time.Hour, fixedClock(now))
	require.NoError(t, err)
	_, err = other.Parse(s.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	foreign, err := NewSessionManager(testSecret, "someone-else", time.Hour, fixedClock(now))
	require.NoError(t, err)
	_, err = foreign.Parse(s.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestNewSessionManager_Validation(t *testing.T) {
	_, err := NewSessionManager("short", "meterportal", time.Hour, nil)
	assert.Error(t, err)

	_, err = NewSessionManager(testSecret, "meterportal", 0, nil)
	assert.Error(t, err)
}
