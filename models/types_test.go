package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	// Full timestamps are accepted but truncated to the day
	d, err = ParseDate("2026-03-15T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d.Time))

	raw, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw), "zero dates serialize as null")
}

func TestBuildFullName(t *testing.T) {
	assert.Equal(t, "Jean Dupont", BuildFullName("Jean", "Dupont"))
	assert.Equal(t, "Dupont", BuildFullName("", "Dupont"))
	assert.Equal(t, "Jean", BuildFullName("Jean", ""))
	assert.Equal(t, "", BuildFullName("", ""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleMecanicien))
	assert.True(t, ValidRole(RoleReceptionniste))
	assert.False(t, ValidRole("stagiaire"))
	assert.False(t, ValidRole(""))
}
