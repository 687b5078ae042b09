package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsphweid/notesift/chord"
	"github.com/jsphweid/notesift/model"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var ErrNoAPIKey = errors.New("GEMINI_API_KEY environment variable is required")

const systemPrompt = `You are a music theory assistant. You are given the notes a pitch detector heard
on a piano. Name the chord they most likely form, its root and quality, and mention any inversion.
If the notes do not form a common chord, say what interval or cluster they are.
Keep the answer under 120 words.`

// BuildPrompt describes notes for the model, lowest note first.
func BuildPrompt(notes model.Notes) string {
	sorted := slices.Clone(notes)
	slices.Sort(sorted)

	var names []string
	for _, n := range sorted {
		names = append(names, fmt.Sprintf("%v (MIDI %v)", chord.EnglishName(n), n))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Detected notes, lowest first: %v.\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Pitch classes: %v.\n", chord.FormatNotes(sorted))
	b.WriteString("Which chord is this?")
	return b.String()
}

type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient creates a Gemini client. Calls are limited to one every
// interval, bursting to one.
func NewClient(ctx context.Context, apiKey string, modelName string, interval time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   modelName,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

func (c *Client) Explain(ctx context.Context, notes model.Notes) (string, error) {
	if len(notes) == 0 {
		return "", errors.New("no notes to explain")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleModel),
		Temperature:       genai.Ptr(float32(0.3)),
		MaxOutputTokens:   int32(256),
	}
	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		[]*genai.Content{genai.NewContentFromText(BuildPrompt(notes), genai.RoleUser)},
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(strings.ReplaceAll(resp.Text(), "*", ""))
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
