package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIsDate(t *testing.T) {
	valid := []string{"2026-06-01", "2024-02-29", "1999-12-31"}
	invalid := []string{"", "2026-6-1", "01-06-2026", "2026-02-30", "2023-02-29", "2026-06-01T10:00:00Z", "tomorrow"}

	for _, s := range valid {
		assert.True(t, IsDate(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsDate(s), s)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"16:00", "16:00:00", true},
		{"09:30:15", "09:30:15", true},
		{"00:00", "00:00:00", true},
		{"24:00", "", false},
		{"9:30", "", false},
		{"16:60", "", false},
		{"16:00:00.5", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeClock(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

type bindTarget struct {
	Email      string `json:"email" binding:"required"`
	LessonDate string `json:"lessonDate" binding:"omitempty,lessondate"`
	StartTime  string `json:"start_time" binding:"omitempty,clock"`
}

func bindBody(body string) map[string]string {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst bindTarget
	return Bind(c, &dst)
}

func TestBind_TranslatesFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	assert.Nil(t, bindBody(`{"email":"a@x.com","lessonDate":"2026-06-01","start_time":"09:00"}`))

	fields := bindBody(`{"lessonDate":"01-06-2026","start_time":"9am"}`)
	assert.Equal(t, "email is a required field", fields["email"])
	assert.Equal(t, "lessonDate must be a date in YYYY-MM-DD format", fields["lessonDate"])
	assert.Equal(t, "start_time must be a time in HH:MM or HH:MM:SS format", fields["start_time"])
}

func TestBind_MalformedJSON(t *testing.T) {
	fields := bindBody(`{"email":`)
	assert.Contains(t, fields, "detail")
}

func TestTranslateErrors_NonValidation(t *testing.T) {
	fields := TranslateErrors(errors.New("boom"))
	assert.Equal(t, map[string]string{"detail": "boom"}, fields)
}
