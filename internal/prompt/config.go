package prompt

import (
	"os"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// PromptConfig selects the answer template. Both fields empty means the
// built-in template.
type PromptConfig struct {
	Template     string `mapstructure:"template" yaml:"template,omitempty" json:"template,omitempty"`
	TemplateFile string `mapstructure:"template_file" yaml:"template_file,omitempty" json:"template_file,omitempty"`
}

// Validate checks that at most one source is set.
func (c PromptConfig) Validate() error {
	if c.Template != "" && c.TemplateFile != "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"prompt.template and prompt.template_file are mutually exclusive")
	}
	return nil
}

// Load builds the Template described by c.
func (c PromptConfig) Load() (*Template, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch {
	case c.TemplateFile != "":
		data, err := os.ReadFile(c.TemplateFile)
		if err != nil {
			return nil, types.WrapError(ErrCodeTemplateLoad, "cannot read "+c.TemplateFile, err)
		}
		return New(string(data))
	case c.Template != "":
		return New(c.Template)
	default:
		return Default(), nil
	}
}
