package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "00:00", want: "0 0 0 * * *"},
		{in: "07:30", want: "0 30 7 * * *"},
		{in: " 23:59 ", want: "0 59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRollover_NextRun(t *testing.T) {
	r := NewRollover(time.UTC)
	id, err := r.ScheduleDaily("00:00", func() {})
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	next := r.Next(id)
	require.False(t, next.IsZero())
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestRollover_RejectsBadTime(t *testing.T) {
	_, err := NewRollover(nil).ScheduleDaily("7pm", func() {})
	assert.Error(t, err)
}
