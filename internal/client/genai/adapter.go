package genaiclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"
)

// Adapter wraps the Vertex genai client for the two calls this service
// makes: JSON-mode categorization and audio transcription.
type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("genai adapter close failed", "error", err)
	}
	return err
}

// GenerateJSON sends a prompt with JSON-only output enforced and returns the
// raw model text. The caller validates the payload.
func (a *Adapter) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	if a.model == "" {
		return "", fmt.Errorf("genai model is required")
	}

	model := a.client.GenerativeModel(a.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(256)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("genai returned no text content")
	}
	return text, nil
}

// Transcribe sends an audio payload and asks the model for a plain
// transcript.
func (a *Adapter) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if a.model == "" {
		return "", fmt.Errorf("genai model is required")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("audio payload is empty")
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text("Transcribe this audio message. Reply with the transcript only, no commentary."),
	)
	if err != nil {
		return "", err
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("genai returned no transcript")
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}

	return text
}
