// Package narrative turns an analysis result into prose through an LLM
// with structured output, so the sections are machine-checkable.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	toon "github.com/toon-format/toon-go"

	"assay/internal/output"
	"assay/pkg/pipeline"
	"assay/pkg/report"
)

// Narrative is the generated prose breakdown of an analysis result.
type Narrative struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
}

// Generator produces a narrative for an analysis result.
type Generator interface {
	Generate(ctx context.Context, result *report.AnalysisResult) (*Narrative, error)
}

const systemPrompt = `You are a senior engineer reviewing an automated repository analysis.
The user message contains the full analysis result in TOON format: detected
technology stack, dependency health, README quality, project structure,
security and performance findings, technical debt and a composite score.
Write a grounded narrative of the repository's state. Reference concrete
evidence from the result (scores, finding counts, missing sections); do not
invent facts that are not in the data. Keep the summary to one paragraph and
each strength, risk and recommendation to one sentence.`

var narrativeSchema = GenerateSchema[Narrative]()

// GenerateSchema reflects a strict JSON schema for structured output.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// OpenAI generates narratives through the chat completions API.
type OpenAI struct {
	client    openai.Client
	model     openai.ChatModel
	maxTokens int
}

// OpenAIOption configures the generator.
type OpenAIOption func(*OpenAI) error

// WithModel overrides the chat model.
func WithModel(model string) OpenAIOption {
	return func(g *OpenAI) error {
		if model != "" {
			g.model = model
		}
		return nil
	}
}

// WithMaxTokens caps the serialized result size sent as context.
func WithMaxTokens(n int) OpenAIOption {
	return func(g *OpenAI) error {
		if n > 0 {
			g.maxTokens = n
		}
		return nil
	}
}

// NewOpenAI creates a generator. The API key is required; baseURL is
// optional and points the client at a compatible endpoint.
func NewOpenAI(apiKey, baseURL string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("narrative: api key is required")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}

	g := &OpenAI{
		client:    openai.NewClient(reqOpts...),
		model:     openai.ChatModelGPT4oMini,
		maxTokens: output.Budget16K,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate serializes the result to TOON and requests a structured
// narrative. Failures carry the narrate phase so callers can retry the
// narrative without re-running the analysis.
func (g *OpenAI) Generate(ctx context.Context, result *report.AnalysisResult) (*Narrative, error) {
	doc, err := Serialize(result, g.maxTokens)
	if err != nil {
		return nil, &pipeline.PhaseError{Phase: pipeline.PhaseNarrate, Err: err}
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   "repository_narrative",
		Schema: narrativeSchema,
		Strict: openai.Bool(true),
	}

	chat, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(doc),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: g.model,
	})
	if err != nil {
		return nil, &pipeline.PhaseError{Phase: pipeline.PhaseNarrate, Err: err}
	}
	if len(chat.Choices) == 0 {
		return nil, &pipeline.PhaseError{Phase: pipeline.PhaseNarrate, Err: errors.New("empty completion")}
	}

	var n Narrative
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &n); err != nil {
		return nil, &pipeline.PhaseError{Phase: pipeline.PhaseNarrate, Err: fmt.Errorf("decoding narrative: %w", err)}
	}
	return &n, nil
}

// Serialize renders the result as TOON and enforces the token budget.
// The full result must fit: a truncated analysis would produce a
// narrative grounded in partial evidence.
func Serialize(result *report.AnalysisResult, maxTokens int) (string, error) {
	out, err := toon.Marshal(result, toon.WithIndent(2))
	if err != nil {
		return "", fmt.Errorf("serializing result: %w", err)
	}
	doc := string(out)
	if maxTokens > 0 {
		if tokens := output.EstimateTokens(doc); tokens > maxTokens {
			return "", fmt.Errorf("serialized result is %d tokens, budget is %d", tokens, maxTokens)
		}
	}
	return doc, nil
}
