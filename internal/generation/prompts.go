package generation

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(promptFS, "prompts/*.tmpl"),
)

type sentencePromptWord struct {
	Term     string
	WordType string
}

type sentencePromptData struct {
	Words            []sentencePromptWord
	SentenceLanguage string
	AnswerLanguage   string
	Diacritics       bool
	Arabic           bool
}

type gradingPromptData struct {
	Sentence           string
	CorrectTranslation string
	UserAnswer         string
	SentenceLanguage   string
	AnswerLanguage     string
	PassingScore       int
}

func renderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
