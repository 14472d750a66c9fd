package server_test

import (
	"testing"

	"data-reconciler/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want string
	}{
		{"Port only", server.Config{Port: "8080"}, ":8080"},
		{"Host and port", server.Config{Host: "127.0.0.1", Port: "9000"}, "127.0.0.1:9000"},
		{"Leading colon", server.Config{Port: ":7000"}, ":7000"},
		{"Empty port", server.Config{}, ":8080"},
		{"IPv6", server.Config{Host: "::1", Port: "80"}, "[::1]:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Address())
		})
	}
}
