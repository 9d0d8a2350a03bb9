package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = "You are an HR assistant for an employee self-service portal. " +
	"Answer briefly and helpfully about leave, attendance, payroll, performance and " +
	"learning topics. If a question needs personal records you do not have, say so " +
	"and point the user at the relevant portal section."

// OpenAIClient is a Responder backed by the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func NewOpenAIClient(apiKey, model string, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("ai: api key is empty")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger,
	}, nil
}

func (c *OpenAIClient) Reply(ctx context.Context, history []Message, userText string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		c.log.Warn("openai call failed", zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai: empty choices from model %s", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Responder = (*OpenAIClient)(nil)
