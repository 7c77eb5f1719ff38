package prompts

import (
	"bytes"
	"strings"
	"text/template"

	"agent-genesis/internal/domain/entity"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateInstruction renders the initial instruction template for a newly
// configured agent.
func GenerateInstruction(intent *entity.Intent) (string, error) {
	return render("instruction", instructionTemplate, intent)
}

// IntentPrompt renders the user prompt for intent extraction.
func IntentPrompt(instruction string) (string, error) {
	return render("intent", intentUserTemplate, struct{ Instruction string }{instruction})
}

// AdvisorPrompt renders the user prompt for model selection.
func AdvisorPrompt(cfg *entity.AgentConfiguration) (string, error) {
	return render("advisor", advisorUserTemplate, cfg)
}

// QuestionsPrompt renders the user prompt for probe-question generation.
func QuestionsPrompt(cfg *entity.AgentConfiguration, count int) (string, error) {
	return render("questions", questionsUserTemplate, struct {
		*entity.AgentConfiguration
		Count int
	}{cfg, count})
}

// ProbePrompt renders the question put to the agent under test.
func ProbePrompt(q entity.ProbeQuestion) (string, error) {
	return render("probe", probeUserTemplate, q)
}

// ScorerPrompt renders the evaluation prompt for one answer.
func ScorerPrompt(q entity.ProbeQuestion, answer string) (string, error) {
	return render("scorer", scorerUserTemplate, struct {
		Question entity.ProbeQuestion
		Answer   string
	}{q, answer})
}
