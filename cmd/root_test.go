package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsErrorCarriesUsage(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"events"}, "Usage: tablet-ingest events [period-dir]"},
		{[]string{"inventory"}, "Usage: tablet-ingest inventory"},
		{[]string{"catalog", "a", "b"}, "Usage: tablet-ingest catalog [source]"},
		{[]string{"merge", "only.csv"}, "Usage: tablet-ingest merge"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			RootCmd.SetOut(&out)
			RootCmd.SetErr(&out)
			RootCmd.SetArgs(tt.args)
			t.Cleanup(func() { RootCmd.SetArgs(nil) })

			err := RootCmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var usage *usageError
			require.True(t, errors.As(err, &usage))
			assert.Contains(t, usage.cmd.UsageString(), "Usage:")
		})
	}
}
