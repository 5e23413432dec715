package custom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatetime_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    time.Time
		wantErr bool
	}{
		{
			name: "SqliteTimestamp",
			src:  "2024-03-01 12:30:45",
			want: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "RFC3339",
			src:  "2024-03-01T12:30:45Z",
			want: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "TimeValue",
			src:  time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
			want: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "Null",
			src:  nil,
			want: time.Time{},
		},
		{
			name:    "Garbage",
			src:     "not-a-time",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(Datetime)
			err := d.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(time.Time(*d)))
		})
	}
}

func TestDatetime_Value(t *testing.T) {
	d := Datetime(time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC))
	v, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "2024-03-01 12:30:45", v)

	zero := Datetime(time.Time{})
	v, err = zero.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}
