package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomIDKey(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantKey string
		wantArg string
	}{
		{
			name:    "no argument",
			id:      "ticket_join",
			wantKey: "ticket_join",
			wantArg: "",
		},
		{
			name:    "with argument",
			id:      "ticket_intake:Grim Express",
			wantKey: "ticket_intake",
			wantArg: "Grim Express",
		},
		{
			name:    "numeric argument",
			id:      "resetlb_confirm:1709294400",
			wantKey: "resetlb_confirm",
			wantArg: "1709294400",
		},
		{
			name:    "empty argument",
			id:      "setup_command:",
			wantKey: "setup_command",
			wantArg: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.wantKey, customIDKey(test.id))
			require.Equal(t, test.wantArg, customIDArg(test.id))
		})
	}
}
