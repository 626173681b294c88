package prompt

import (
	"fmt"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Template error codes
const (
	ErrCodeInvalidTemplate types.ErrorCode = "INVALID_TEMPLATE_SYNTAX"
	ErrCodeMissingSlot     types.ErrorCode = "TEMPLATE_MISSING_SLOT"
	ErrCodeTemplateRender  types.ErrorCode = "TEMPLATE_RENDER_FAILED"
	ErrCodeTemplateLoad    types.ErrorCode = "TEMPLATE_LOAD_FAILED"
)

// NewInvalidTemplateError wraps a parse failure.
func NewInvalidTemplateError(cause error) error {
	return types.WrapError(ErrCodeInvalidTemplate, "invalid template syntax", cause)
}

// NewMissingSlotError is returned when a template does not use a required slot.
func NewMissingSlotError(slot string) error {
	return types.NewError(ErrCodeMissingSlot, fmt.Sprintf("template does not reference {{.%s}}", slot))
}

// NewTemplateRenderError wraps an execution failure.
func NewTemplateRenderError(cause error) error {
	return types.WrapError(ErrCodeTemplateRender, "failed to render template", cause)
}
