package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int64", int64(1544509669), 1544509669, true},
		{"int", 42, 42, true},
		{"uint8", uint8(7), 7, true},
		{"float", 1544509669.75, 1544509669, true},
		{"string", " 1544509738 ", 1544509738, true},
		{"float string", "12.9", 12, true},
		{"bytes", []byte("3191"), 3191, true},
		{"garbage", "abc", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToNullableInt64(t *testing.T) {
	assert.Nil(t, ToNullableInt64(nil))
	assert.Nil(t, ToNullableInt64("x"))

	got := ToNullableInt64(int64(5))
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(5), *got)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "3191", ToString(int64(3191)))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "1.5", ToString(1.5))
}
