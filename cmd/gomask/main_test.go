package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomask/internal/cli"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, cli.ExitSuccess},
		{"unknown flag", []string{"--bogus"}, cli.ExitInvalidUsage},
		{"mask without pattern", []string{"mask"}, cli.ExitInvalidUsage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, run(context.Background(), tc.args))
		})
	}
}
