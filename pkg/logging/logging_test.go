package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommonLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "Defaults",
			config:  NewConfig(`tests`),
			wantErr: false,
		},
		{
			name:    "NilConfig",
			config:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := CommonLogger(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestCommonLogger_IncludesAppName(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := CommonLogger(NewConfig(`tests`).WithWriter(buf).WithLevel(slog.LevelInfo))
	require.NoError(t, err)

	l.Info("hello")
	require.Contains(t, buf.String(), `"app":"tests"`)
}
