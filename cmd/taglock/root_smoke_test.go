package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInteractiveTerminal(t *testing.T) {
	assert.False(t, isInteractiveTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// A regular file is not a character device.
	assert.False(t, isInteractiveTerminal(f))
}
