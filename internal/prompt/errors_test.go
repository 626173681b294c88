package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zero-day-ai/graphqa/internal/types"
)

func TestTemplateErrors(t *testing.T) {
	cause := errors.New("unexpected }}")

	err := NewInvalidTemplateError(cause)
	assert.Equal(t, ErrCodeInvalidTemplate, types.CodeOf(err))
	assert.ErrorIs(t, err, cause)

	err = NewMissingSlotError(SlotQuestion)
	assert.Equal(t, ErrCodeMissingSlot, types.CodeOf(err))
	assert.Contains(t, err.Error(), "{{.question}}")

	err = NewTemplateRenderError(cause)
	assert.Equal(t, ErrCodeTemplateRender, types.CodeOf(err))
	assert.ErrorIs(t, err, cause)
}
