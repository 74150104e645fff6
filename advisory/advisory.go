package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-airwatch/types"
)

const maxAdvisoryTokens = 300

// Generate asks the model for a short personalized health advisory from the
// user's latest self-assessment and the current air quality at their
// location.
func Generate(ctx context.Context, client *openai.Client, assessment types.Assessment, location string, aqiValue int, category string) (string, error) {
	prompt := buildPrompt(assessment, location, aqiValue, category)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that writes short, practical air-quality health advisories. You are not a doctor and you always say so.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxAdvisoryTokens,
			N:           1,
			Temperature: 0.5,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(assessment types.Assessment, location string, aqiValue int, category string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current air quality near %s: AQI %d (%s).\n\n", location, aqiValue, category)
	fmt.Fprintf(&b, "User profile:\n- age group: %s\n- smoker: %v\n- typical outdoor hours per day: %d\n",
		assessment.AgeGroup, assessment.Smoker, assessment.OutdoorHours)
	if len(assessment.Conditions) > 0 {
		fmt.Fprintf(&b, "- pre-existing conditions: %s\n", strings.Join(assessment.Conditions, ", "))
	}
	if len(assessment.Symptoms) > 0 {
		fmt.Fprintf(&b, "- current symptoms: %s\n", strings.Join(assessment.Symptoms, ", "))
	}
	if assessment.Notes != "" {
		fmt.Fprintf(&b, "- notes: %s\n", assessment.Notes)
	}
	b.WriteString("\nWrite a personalized advisory (3-5 sentences) for today given this air quality.")
	return b.String()
}
