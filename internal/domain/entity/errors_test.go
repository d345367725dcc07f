package entity

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SourceError
		expected string
	}{
		{
			name:     "reason only",
			err:      &SourceError{Source: "https:///feed", Reason: "URL must have a valid host"},
			expected: `invalid feed source "https:///feed": URL must have a valid host`,
		},
		{
			name:     "with cause",
			err:      &SourceError{Source: "x", Reason: "malformed URL", Err: errors.New("bad escape")},
			expected: `invalid feed source "x": malformed URL: bad escape`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSourceError_Unwrap(t *testing.T) {
	cause := &url.Error{Op: "parse", URL: "x", Err: errors.New("bad escape")}
	err := &SourceError{Source: "x", Reason: "malformed URL", Err: cause}

	assert.ErrorIs(t, err, ErrInvalidSource)

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)

	var srcErr *SourceError
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "malformed URL", srcErr.Reason)
}
