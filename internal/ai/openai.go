package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"quiz-backend/internal/grading"
	"quiz-backend/internal/models"
	"quiz-backend/internal/scoring"
)

// OpenAIClient implements Generator against an OpenAI-compatible API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateQuestions asks the model for structured questions through a forced
// tool call so the output shape is enforced by the API rather than prompt
// discipline.
func (c *OpenAIClient) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]GeneratedQuestion, error) {
	log.Printf("Generating %d %s questions for subject %q (grade %d)", req.Count, req.Difficulty, req.Subject, req.GradeLevel)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz author for school students. Generate clear, age-appropriate questions. Multiple choice questions need at least 2 options and exactly one correct answer.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: c.buildGenerationPrompt(req),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_questions",
						Description: "Submit generated quiz questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"text": map[string]interface{}{
												"type":        "string",
												"description": "The question text",
											},
											"type": map[string]interface{}{
												"type": "string",
												"enum": []string{"multiple_choice", "true_false", "short_answer", "essay"},
											},
											"options": map[string]interface{}{
												"type":        "array",
												"items":       map[string]interface{}{"type": "string"},
												"description": "Answer options, required for multiple_choice and true_false",
											},
											"correct_answer": map[string]interface{}{
												"type":        "string",
												"description": "The correct answer text",
											},
											"points": map[string]interface{}{
												"type":        "integer",
												"description": "Point value from 1 to 10",
											},
											"difficulty": map[string]interface{}{
												"type": "string",
												"enum": []string{"easy", "medium", "hard"},
											},
										},
										"required": []string{"text", "type", "correct_answer", "points", "difficulty"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: "submit_questions"},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_questions" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var args struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	if len(args.Questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}

	return args.Questions, nil
}

func (c *OpenAIClient) buildGenerationPrompt(req GenerationRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d quiz questions about %s for grade %d students.\n", req.Count, req.Subject, req.GradeLevel)
	if req.Difficulty == models.DifficultyMixed {
		sb.WriteString("Mix easy, medium, and hard questions.\n")
	} else {
		fmt.Fprintf(&sb, "All questions should be %s difficulty.\n", req.Difficulty)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&sb, "Focus on these topics: %s.\n", strings.Join(req.Topics, ", "))
	}
	sb.WriteString("Use a mix of multiple_choice, true_false, short_answer, and essay types.")
	return sb.String()
}

func (c *OpenAIClient) GenerateHint(ctx context.Context, questionText, subject string, gradeLevel int) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: fmt.Sprintf("You are a tutor helping a grade %d student with %s. Give a short hint that nudges them toward the answer without revealing it.", gradeLevel, subject),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: questionText,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("hint generation failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty hint response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) EvaluateAnswer(ctx context.Context, req grading.EvaluationRequest) (*grading.Evaluation, error) {
	prompt := fmt.Sprintf(
		"Question: %s\nReference answer: %s\nStudent answer: %s\n\nJudge the student answer for a grade %d %s student. Respond with JSON only: {\"is_correct\": bool, \"partial_credit\": number between 0 and 1, \"feedback\": short string}.",
		req.QuestionText, req.CorrectAnswer, req.UserAnswer, req.GradeLevel, req.Subject,
	)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You grade free-text quiz answers. Award partial credit for partially correct answers. Respond with strict JSON, no prose.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	var eval struct {
		IsCorrect     bool    `json:"is_correct"`
		PartialCredit float64 `json:"partial_credit"`
		Feedback      string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Choices[0].Message.Content)), &eval); err != nil {
		return nil, fmt.Errorf("malformed evaluation response: %w", err)
	}

	return &grading.Evaluation{
		IsCorrect:     eval.IsCorrect,
		PartialCredit: eval.PartialCredit,
		Feedback:      eval.Feedback,
	}, nil
}

func (c *OpenAIClient) GenerateSuggestions(ctx context.Context, req scoring.SuggestionRequest) ([]string, error) {
	prompt := fmt.Sprintf(
		"A grade %d student scored %.1f%% on a %s quiz and missed %d questions. Respond with JSON only: {\"suggestions\": [two short actionable study suggestions]}.",
		req.GradeLevel, req.ScorePercentage, req.Subject, len(req.IncorrectQuestions),
	)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You coach students on how to improve. Respond with strict JSON, no prose.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("suggestion generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Choices[0].Message.Content)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed suggestions response: %w", err)
	}
	if len(parsed.Suggestions) < 2 {
		return nil, fmt.Errorf("expected 2 suggestions, got %d", len(parsed.Suggestions))
	}

	return parsed.Suggestions[:2], nil
}

// stripCodeFence unwraps ```json ... ``` blocks some models insist on.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
