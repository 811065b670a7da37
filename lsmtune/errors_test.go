package lsmtune

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy_WrappedErrorsClassifyWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("%w: bad input", ErrInvalidConfig)
	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))
	assert.False(t, errors.Is(wrapped, ErrDomain))
}

func TestSystemProfile_Validate_ErrorWrapsErrDomain(t *testing.T) {
	err := SystemProfile{}.Validate()
	assert.True(t, errors.Is(err, ErrDomain))
}
