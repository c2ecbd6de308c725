package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCheckConfig(t *testing.T) {
	assert.NoError(t, run([]string{"-config", "../../config/config.yaml", "-check"}))
	assert.NoError(t, run([]string{"-version"}))
}

func TestRunMissingConfig(t *testing.T) {
	err := run([]string{"-config", "does-not-exist.yaml", "-check"})
	assert.ErrorContains(t, err, "load config")
}
