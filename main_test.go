package main

import (
	"errors"
	"io"
	"testing"

	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/stretchr/testify/assert"
)

func TestRunMapsErrorsToExitCodes(t *testing.T) {
	restore := colors.SetOutput(io.Discard, io.Discard)
	defer restore()

	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return errors.New("boom") }))
}
