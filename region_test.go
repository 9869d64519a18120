package idanalyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		region string
		want   string
	}{
		{"US", EndpointUS},
		{"us", EndpointUS},
		{"EU", EndpointEU},
		{"eU", EndpointEU},
		{"https://staging.example.com/", "https://staging.example.com/"},
		{"http://localhost:8080", "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := ResolveEndpoint(tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEndpointEmpty(t *testing.T) {
	_, err := ResolveEndpoint("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestResolveEndpointSuffix(t *testing.T) {
	got, err := resolveEndpoint("us", "aml")
	require.NoError(t, err)
	assert.Equal(t, "https://api.idanalyzer.com/aml", got)

	got, err = resolveEndpoint("EU", "aml")
	require.NoError(t, err)
	assert.Equal(t, "https://api-eu.idanalyzer.com/aml", got)

	got, err = resolveEndpoint("https://aml.internal/search", "aml")
	require.NoError(t, err)
	assert.Equal(t, "https://aml.internal/search", got)
}

func TestJoinEndpoint(t *testing.T) {
	assert.Equal(t, "https://h/", joinEndpoint("https://h/", ""))
	assert.Equal(t, "https://h/vault/get", joinEndpoint("https://h/", "vault/get"))
	assert.Equal(t, "https://h/vault/get", joinEndpoint("https://h", "vault/get"))
}
