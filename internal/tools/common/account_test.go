package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "explicit account",
			args: map[string]interface{}{"account": "work"},
			want: "work",
		},
		{
			name: "empty account falls back",
			args: map[string]interface{}{"account": ""},
			want: "default",
		},
		{
			name: "missing account falls back",
			args: map[string]interface{}{},
			want: "default",
		},
		{
			name: "non-string account falls back",
			args: map[string]interface{}{"account": 42},
			want: "default",
		},
		{
			name: "nil args",
			args: nil,
			want: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetAccountFromArgs(tt.args))
		})
	}
}
