package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLMService wraps the chat-completions API behind the two calls the app
// needs: tag suggestions for a draft and the per-idea chatbot. One request,
// one response; no retry policy, a failure surfaces as a single error.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

// GetLLMService 获取单例 LLM 服务，配置从环境变量读取
func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = &LLMService{
			baseURL: strings.TrimSuffix(os.Getenv("LLM_BASE_URL"), "/"),
			token:   os.Getenv("LLM_TOKEN"),
			model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return llmService
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *LLMService) chat(ctx context.Context, prompt string, format *ResponseFormat) (string, error) {
	if s.baseURL == "" || s.token == "" {
		return "", fmt.Errorf("LLM service is not configured")
	}

	reqBody := ChatRequest{
		Model:          s.model,
		Messages:       []ChatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: format,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed: status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

const suggestTagsPrompt = `You are an expert in suggesting relevant tags for ideas. Given the following idea description, suggest a list of tags that would improve the discoverability of the idea.

Idea Description: %s

Tags:`

// SuggestTags returns tag suggestions for an idea description.
func (s *LLMService) SuggestTags(ctx context.Context, description string) ([]string, error) {
	format := &ResponseFormat{
		Type: "json_object",
		JSONSchema: &JSONSchema{
			Name: "tag_suggestions",
			Schema: map[string]any{
				"type":     "object",
				"required": []string{"tags"},
				"properties": map[string]any{
					"tags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
			Strict: true,
		},
	}

	content, err := s.chat(ctx, fmt.Sprintf(suggestTagsPrompt, description), format)
	if err != nil {
		return nil, err
	}

	var out struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode tag suggestions: %w", err)
	}
	return out.Tags, nil
}

const ideaChatPrompt = `You are a chatbot that answers questions about ideas.

Idea Title: %s
Idea Description: %s

Answer the following question about the idea:
%s`

// IdeaChat answers one user question about an idea.
func (s *LLMService) IdeaChat(ctx context.Context, title, description, question string) (string, error) {
	return s.chat(ctx, fmt.Sprintf(ideaChatPrompt, title, description, question), nil)
}
