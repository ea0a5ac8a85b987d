package handler

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseViewer(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"alice", `{"id":"alice","plan":"free"}`},
		{`{"id":"u1","plan":"enterprise"}`, `{"id":"u1","plan":"enterprise"}`},
		{`{ "id": "u1", "plan": "pro" }`, `{"id":"u1","plan":"pro"}`},
		{`{"id":5}`, `{"id":5}`},
		{`{"id":"x"}`, `{"id":"x"}`},
		{`{"id":"u1"`, `{"id":"{\"id\":\"u1\"","plan":"free"}`},
		{` {"id":"u1"}`, `{"id":" {\"id\":\"u1\"}","plan":"free"}`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, string(parseViewer(tt.raw)))
		})
	}
}
