package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"pitplan/internal/models"
	"pitplan/internal/planner"
)

// PitmasterAdvisor answers free-form questions about a planned cook. Thin
// glue around the LLM provider: the plan itself is computed entirely by the
// planner and only summarized into the prompt.
type PitmasterAdvisor struct {
	llm llms.Model
}

// New creates an advisor backed by the OpenAI provider
func New(apiKey, model string) (*PitmasterAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key not set")
	}
	if model == "" {
		model = "gpt-4-turbo-preview"
	}

	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assistant model: %w", err)
	}

	return &PitmasterAdvisor{llm: llm}, nil
}

// Advise builds a prompt from the cook and its plan and asks the model
func (a *PitmasterAdvisor) Advise(ctx context.Context, cook *models.Cook, plan *planner.CookPlan, question string) (string, error) {
	prompt := buildPrompt(cook, plan, question)

	answer, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant call failed: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// buildPrompt summarizes the cook parameters and phase schedule for the model
func buildPrompt(cook *models.Cook, plan *planner.CookPlan, question string) string {
	var b strings.Builder

	b.WriteString("You are an experienced barbecue pitmaster. Answer the question using the cook details below.\n\n")
	fmt.Fprintf(&b, "Cook: %.1f lb %s on a %s smoker at %.0fF, wrap method %s.\n",
		cook.WeightLb, cook.MeatCut, cook.SmokerType, cook.SmokerTempF, cook.WrapMethod)
	fmt.Fprintf(&b, "Serve time: %s. Target internal temperature: %.0fF.\n",
		cook.ServeTime.Format("Mon 15:04"), cook.TargetTempF)
	fmt.Fprintf(&b, "Predicted finish: %s (confidence %d/100).\n",
		plan.PredictedFinishTime.Format("Mon 15:04"), plan.ConfidenceScore)

	b.WriteString("Schedule:\n")
	for _, phase := range plan.Phases {
		fmt.Fprintf(&b, "- %s: %s to %s (%d-%d min, %s confidence)\n",
			phase.Name,
			phase.StartTime.Format("15:04"), phase.EndTime.Format("15:04"),
			phase.Duration.Min, phase.Duration.Max, phase.Confidence)
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}
