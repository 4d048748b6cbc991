package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glouglou/cashup-backend/internal/adapter/sheets"
	"github.com/glouglou/cashup-backend/internal/config"
)

func TestNewSubmitter(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		submitter := newSubmitter(&config.Config{})

		assert.Nil(t, submitter, "must be a nil interface so the service reports submission disabled")
	})

	t.Run("Enabled", func(t *testing.T) {
		submitter := newSubmitter(&config.Config{
			SheetsEndpoint: "https://script.example.com/exec",
			SheetsTimeout:  3 * time.Second,
		})

		require.NotNil(t, submitter)
		client, ok := submitter.(*sheets.Client)
		require.True(t, ok)
		assert.Equal(t, "https://script.example.com/exec", client.Endpoint)
		assert.Equal(t, 3*time.Second, client.HTTP.Timeout)
	})
}
