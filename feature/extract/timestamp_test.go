package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"Numeric offset", "Tue Jan 22 01:43:25 GMT+03:00 2019", 1548110605},
		{"Zone abbreviation", "Wed Jan 09 09:55:25 PST 2019", 1547056525},
		{"UTC abbreviation", "Wed Jan 09 17:55:25 UTC 2019", 1547056525},
		{"Surrounding space", " Tue Jan 22 01:43:25 GMT+03:00 2019 ", 1548110605},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp_Rejected(t *testing.T) {
	for _, input := range []string{
		"",
		"Sun Jan 09 21:51:30 AST 2000",
		"2019-01-22T01:43:25Z",
		"Tue Jan 22 01:43:25 2019",
	} {
		_, err := ParseTimestamp(input)
		assert.Error(t, err, input)
	}
}
