package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGooseLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := gooseLogger{log: zap.New(core)}

	l.Printf("OK   %s (%s)\n", "00001_create_token_transfers.sql", "12ms")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "OK   00001_create_token_transfers.sql (12ms)", entries[0].Message)
	}
}
