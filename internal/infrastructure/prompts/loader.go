package prompts

import (
	_ "embed"
)

//go:embed instruction.txt
var instructionTemplate string

//go:embed intent_system.txt
var IntentSystemPrompt string

//go:embed intent_user.txt
var intentUserTemplate string

//go:embed advisor_system.txt
var AdvisorSystemPrompt string

//go:embed advisor_user.txt
var advisorUserTemplate string

//go:embed questions_system.txt
var QuestionsSystemPrompt string

//go:embed questions_user.txt
var questionsUserTemplate string

//go:embed probe_user.txt
var probeUserTemplate string

//go:embed scorer_system.txt
var ScorerSystemPrompt string

//go:embed scorer_user.txt
var scorerUserTemplate string
