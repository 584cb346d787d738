package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want GradeValue
	}{
		{`{"grade_value":"A-"}`, "A-"},
		{`{"grade_value":87}`, "87"},
		{`{"grade_value":92.5}`, "92.5"},
		{`{"grade_value":null}`, ""},
	}
	for _, tt := range tests {
		var req GradeRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.want, req.GradeValue, tt.body)
	}
}

func TestGradeValue_RejectsOtherTypes(t *testing.T) {
	for _, body := range []string{`{"grade_value":true}`, `{"grade_value":{"a":1}}`, `{"grade_value":[1]}`} {
		var req GradeRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		assert.True(t, s.IsValid(), s)
	}
	for _, s := range []BookingStatus{"", "done", "CONFIRMED"} {
		assert.False(t, s.IsValid(), s)
	}
}
