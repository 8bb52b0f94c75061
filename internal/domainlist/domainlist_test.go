package domainlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker_Contains(t *testing.T) {
	checker := NewChecker([]string{" Personaldienst.DE ", "@jobboerse.com", "", ".stepstone.de"}, zap.NewNop())
	assert.Equal(t, 3, checker.Len())

	tests := []struct {
		email string
		want  bool
	}{
		{"bewerbung@personaldienst.de", true},
		{"Bewerbung@PERSONALDIENST.de", true},
		{"jobs@mail.jobboerse.com", true},
		{"info@stepstone.de", true},
		{"info@notpersonaldienst.de", false},
		{"info@firma.de", false},
		{"kaputt", false},
		{"kaputt@", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checker.Contains(tt.email), tt.email)
	}
}

func TestChecker_Empty(t *testing.T) {
	var nilChecker *Checker
	assert.False(t, nilChecker.Contains("a@b.de"))
	assert.False(t, NewChecker(nil, nil).Contains("a@b.de"))
}
