package validation_test

import (
	"strings"
	"testing"

	apperrors "github.com/lorekeep/lorekeep-server/internal/errors"
	"github.com/lorekeep/lorekeep-server/internal/validation"
	"github.com/stretchr/testify/assert"
)

type testRequest struct {
	Title      string `json:"title" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	RepoURL    string `json:"repo_url" validate:"omitempty,url"`
	Summary    string `json:"summary" validate:"omitempty,max=20"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := testRequest{
		Title:      "Binary Search",
		Difficulty: "Easy",
		RepoURL:    "https://example.com/repo",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       testRequest
		wantField string
	}{
		{
			name:      "missing required field",
			req:       testRequest{Difficulty: "Easy"},
			wantField: "title",
		},
		{
			name:      "difficulty outside enum",
			req:       testRequest{Title: "x", Difficulty: "Impossible"},
			wantField: "difficulty",
		},
		{
			name:      "malformed repo url",
			req:       testRequest{Title: "x", RepoURL: "not a url"},
			wantField: "repo_url",
		},
		{
			name:      "summary too long",
			req:       testRequest{Title: "x", Summary: strings.Repeat("a", 21)},
			wantField: "summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var appErr *apperrors.Error
			if assert.True(t, apperrors.As(err, &appErr)) {
				assert.Equal(t, apperrors.CodeValidation, appErr.Code)
				details, ok := appErr.Details.(map[string]string)
				if assert.True(t, ok) {
					assert.Contains(t, details, tt.wantField)
				}
			}
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{})
	assert.Error(t, err)

	var appErr *apperrors.Error
	if assert.True(t, apperrors.As(err, &appErr)) {
		details := appErr.Details.(map[string]string)
		// Should use JSON tag name "title", not struct field name "Title"
		assert.Contains(t, details, "title")
		assert.NotContains(t, details, "Title")
	}
}
