package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/graphqa/internal/types"
)

func TestDefaultTemplate_Render(t *testing.T) {
	out, err := Default().Render("Paris CAPITAL_OF France.", "What is Paris the capital of?")
	require.NoError(t, err)

	assert.Contains(t, out, "Paris CAPITAL_OF France.")
	assert.Contains(t, out, "Question: What is Paris the capital of?")
	assert.Contains(t, out, DeclineSentence)
	assert.NotContains(t, out, "{{")
}

func TestDefaultTemplate_EmptyContext(t *testing.T) {
	for _, ctx := range []string{"", "  \n"} {
		out, err := Default().Render(ctx, "Tell me about Berlin")
		require.NoError(t, err)
		assert.Contains(t, out, EmptyContextPlaceholder)
		assert.Contains(t, out, DeclineSentence)
		assert.Contains(t, out, "Tell me about Berlin")
	}
}

func TestRender_NoHTMLEscaping(t *testing.T) {
	out, err := Default().Render("A <R> B.", `Is "A" & B related?`)
	require.NoError(t, err)
	assert.Contains(t, out, "A <R> B.")
	assert.Contains(t, out, `Is "A" & B related?`)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		text string
		code types.ErrorCode
	}{
		{"valid", "Facts: {{.context}}\nQ: {{.question}}", ""},
		{"syntax error", "{{.context", ErrCodeInvalidTemplate},
		{"unknown slot", "{{.context}} {{.question}} {{.persona}}", ErrCodeInvalidTemplate},
		{"missing context", "Q: {{.question}}", ErrCodeMissingSlot},
		{"missing question", "Facts: {{.context}}", ErrCodeMissingSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := New(tt.text)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, types.CodeOf(err))
				return
			}
			require.NoError(t, err)
			out, err := tmpl.Render("ctx", "q")
			require.NoError(t, err)
			assert.Equal(t, "Facts: ctx\nQ: q", out)
		})
	}
}

func TestContextBlock(t *testing.T) {
	assert.Equal(t, EmptyContextPlaceholder, ContextBlock(nil))
	assert.Equal(t, "A R B.\nB S C.", ContextBlock([]string{"A R B.", "B S C."}))
}

func TestPromptConfig_Load(t *testing.T) {
	tmpl, err := PromptConfig{}.Load()
	require.NoError(t, err)
	assert.Same(t, Default(), tmpl)

	tmpl, err = PromptConfig{Template: "{{.question}} <- {{.context}}"}.Load()
	require.NoError(t, err)
	out, err := tmpl.Render("c", "q")
	require.NoError(t, err)
	assert.Equal(t, "q <- c", out)

	path := filepath.Join(t.TempDir(), "answer.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("C={{.context}} Q={{.question}}"), 0o600))
	tmpl, err = PromptConfig{TemplateFile: path}.Load()
	require.NoError(t, err)
	out, err = tmpl.Render("c", "q")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "C=c"))

	_, err = PromptConfig{TemplateFile: filepath.Join(t.TempDir(), "missing")}.Load()
	assert.Equal(t, ErrCodeTemplateLoad, types.CodeOf(err))

	_, err = PromptConfig{Template: "x", TemplateFile: path}.Load()
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
}
