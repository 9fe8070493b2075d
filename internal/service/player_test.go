package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerNameService(t *testing.T) {
	t.Run("Blank initial name falls back to the default", func(t *testing.T) {
		svc := NewPlayerNameService("  ")

		assert.Equal(t, DefaultPlayerName, svc.Current())
	})

	t.Run("SetName replaces the current name", func(t *testing.T) {
		svc := NewPlayerNameService("Ada")

		svc.SetName("Grace")

		assert.Equal(t, "Grace", svc.Current())
	})

	t.Run("Setting a blank name restores the default", func(t *testing.T) {
		svc := NewPlayerNameService("Ada")

		svc.SetName("")

		assert.Equal(t, DefaultPlayerName, svc.Current())
	})
}
