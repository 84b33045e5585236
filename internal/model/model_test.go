package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusInProgress, true},
		{StatusInProgress, StatusDone, true},
		{StatusNew, StatusDone, false},
		{StatusDone, StatusNew, false},
		{StatusInProgress, StatusNew, false},
		{StatusDone, StatusDone, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("ARCHIVED").Valid())
}

func TestDocType(t *testing.T) {
	for _, dt := range DocTypes {
		assert.True(t, dt.Valid(), dt)
		assert.NotEqual(t, string(dt), dt.Label(), "missing label for %s", dt)
	}
	assert.Len(t, DocTypes, 13)
	assert.False(t, DocType("SELFIE").Valid())
	assert.Equal(t, "SELFIE", DocType("SELFIE").Label())
}

func TestRequest_Finalized(t *testing.T) {
	r := &Request{}
	assert.False(t, r.Finalized())

	now := time.Now()
	r.FinalizedAt = &now
	assert.True(t, r.Finalized())
}
