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

// DefaultHeroImage is served whenever generation fails or is unconfigured.
const DefaultHeroImage = "/static/img/hero-default.png"

const heroPrompt = "A vibrant and abstract representation of ideas sparking and connecting. " +
	"Themes of innovation, creativity, and technology. Suitable for a website hero banner " +
	"named 'IdeaSpark'. Digital art style, colorful, energetic, optimistic, high resolution."

// HeroImageService generates the landing-page hero banner through an
// images API. The prompt is fixed; failures fall back to the static default.
type HeroImageService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var heroImageService *HeroImageService

func GetHeroImageService() *HeroImageService {
	if heroImageService == nil {
		heroImageService = &HeroImageService{
			baseURL: strings.TrimSuffix(os.Getenv("LLM_BASE_URL"), "/"),
			token:   os.Getenv("LLM_TOKEN"),
			model:   os.Getenv("IMAGE_MODEL"),
			client:  &http.Client{Timeout: 60 * time.Second},
		}
	}
	return heroImageService
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate returns an image reference: either a URL or a data URI. Callers
// should fall back to DefaultHeroImage on error.
func (s *HeroImageService) Generate(ctx context.Context) (string, error) {
	if s.baseURL == "" || s.token == "" {
		return "", fmt.Errorf("image service is not configured")
	}

	payload, err := json.Marshal(imageRequest{
		Model:          s.model,
		Prompt:         heroPrompt,
		N:              1,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return "", fmt.Errorf("encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image request failed: status %d", resp.StatusCode)
	}

	var imgResp imageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(imgResp.Data) == 0 {
		return "", fmt.Errorf("image generation returned no media")
	}
	if imgResp.Data[0].URL != "" {
		return imgResp.Data[0].URL, nil
	}
	if imgResp.Data[0].B64JSON != "" {
		return "data:image/png;base64," + imgResp.Data[0].B64JSON, nil
	}
	return "", fmt.Errorf("image generation returned no media")
}
