package prompt

import (
	"bytes"
	"strings"
	"text/template"
)

// Slot names bound by Render.
const (
	SlotContext  = "context"
	SlotQuestion = "question"
)

// DeclineSentence is what the model is told to answer when the facts do not
// cover the question.
const DeclineSentence = "Sorry, I don't have that information."

// EmptyContextPlaceholder stands in for the fact block when retrieval found
// nothing, so the template still renders a well-formed prompt.
const EmptyContextPlaceholder = "(no facts found in the knowledge graph)"

// DefaultTemplate is the built-in answer prompt.
const DefaultTemplate = `You are an expert assistant answering questions from a knowledge graph.
Here is the context extracted from the knowledge graph:
{{.context}}

Question: {{.question}}

Answer precisely, relying only on these facts. If the answer is not in the context, reply "` + DeclineSentence + `"
`

// Template is a parsed answer prompt with exactly two slots, context and
// question. It is safe for concurrent use.
type Template struct {
	tmpl *template.Template
}

var defaultTemplate = mustParse(DefaultTemplate)

// Default returns the built-in template.
func Default() *Template {
	return defaultTemplate
}

// New parses text and checks that it references both slots and no others.
func New(text string) (*Template, error) {
	tmpl, err := template.New("answer").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, NewInvalidTemplateError(err)
	}
	t := &Template{tmpl: tmpl}

	const (
		contextProbe  = "\x00context\x00"
		questionProbe = "\x00question\x00"
	)
	out, err := t.execute(contextProbe, questionProbe)
	if err != nil {
		return nil, NewInvalidTemplateError(err)
	}
	if !strings.Contains(out, contextProbe) {
		return nil, NewMissingSlotError(SlotContext)
	}
	if !strings.Contains(out, questionProbe) {
		return nil, NewMissingSlotError(SlotQuestion)
	}
	return t, nil
}

func mustParse(text string) *Template {
	t, err := New(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Render binds the slots and returns the prompt. An empty context is replaced
// by EmptyContextPlaceholder.
func (t *Template) Render(context, question string) (string, error) {
	if strings.TrimSpace(context) == "" {
		context = EmptyContextPlaceholder
	}
	out, err := t.execute(context, question)
	if err != nil {
		return "", NewTemplateRenderError(err)
	}
	return out, nil
}

func (t *Template) execute(context, question string) (string, error) {
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, map[string]string{
		SlotContext:  context,
		SlotQuestion: question,
	})
	return buf.String(), err
}

// ContextBlock joins fact lines with newlines, or returns the placeholder
// when there are none.
func ContextBlock(lines []string) string {
	if len(lines) == 0 {
		return EmptyContextPlaceholder
	}
	return strings.Join(lines, "\n")
}
