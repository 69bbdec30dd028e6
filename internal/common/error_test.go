package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrorAlreadyExists, ErrorValidation, ErrorUnauthorized, ErrorForbidden,
		ErrorUpstream, ErrorConfiguration, ErrorInternal, ErrInvalidToken, ErrTokenExpired, ErrInvalidCredentials,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrorUnauthorized, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrorUnauthorized)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}
