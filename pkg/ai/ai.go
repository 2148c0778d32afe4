// Package ai wraps the third-party LLM API: NDE-specialized chat, image
// understanding, content summarization, technical-quality assessment, image
// generation and audio transcription.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/afero"
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

const (
	chatModel          = "gpt-4o"
	chatMaxTokens      = 1500
	chatTemperature    = 0.7
	analysisMaxTokens  = 800
	summarizeMaxTokens = 800
)

// SystemPrompt specializes the model for NDE engineering work.
const SystemPrompt = `You are an expert Non-Destructive Evaluation (NDE) assistant specializing in all aspects of non-destructive testing methods. Your expertise includes:

- Ultrasonic Testing (UT)
- Radiographic Testing (RT)
- Magnetic Particle Testing (MT)
- Liquid Penetrant Testing (PT)
- Eddy Current Testing (ET)
- Visual Testing (VT)
- Acoustic Emission Testing (AE)
- Thermographic Testing (IRT)
- Leak Testing (LT)
- Electromagnetic Testing

You help with:
- Method selection and application
- Equipment recommendations
- Standards and codes (ASME, ASTM, API, AWS, etc.)
- Defect identification and interpretation
- Quality assurance procedures
- Safety protocols
- Training and certification guidance
- Inspection planning and reporting

Always provide technically accurate, detailed responses suitable for engineering professionals. Focus on practical applications, industry standards, and best practices. When discussing defects or inspection results, be precise about their implications for structural integrity and safety.`

const imageSystemPrompt = "You are an expert in Non-Destructive Evaluation (NDE) image analysis. Analyze images for defects, inspection results, equipment, and testing procedures. Provide detailed technical analysis suitable for engineering professionals."

const imageUserPrompt = "Analyze this image for NDE-related content. Identify any defects, testing methods, equipment, or inspection results. Provide detailed technical analysis including potential implications for structural integrity."

// Assessment is the technical-quality verdict for a document.
type Assessment struct {
	Confidence       float64 `json:"confidence"`
	TechnicalQuality int     `json:"technical_quality"`
	Assessment       string  `json:"assessment"`
}

// Service talks to the LLM provider. Chat, vision and summarization go
// through langchaingo; image generation and transcription use the provider
// endpoints langchaingo does not expose.
type Service struct {
	llm      llms.Model
	provider *goopenai.Client
	fs       afero.Fs
	logger   *logging.Logger
}

// New builds the service. An empty API key is allowed (the server still
// boots) but every call will fail until one is configured.
func New(apiKey string, fs afero.Fs, logger *logging.Logger) (*Service, error) {
	if apiKey == "" {
		logger.Warn("OPENAI_API_KEY not set; AI features will be unavailable")
		// The client refuses to construct without a token; a placeholder keeps
		// the server bootable and pushes the failure to the first call.
		apiKey = "unset"
	}

	llm, err := lcopenai.New(lcopenai.WithToken(apiKey), lcopenai.WithModel(chatModel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &Service{
		llm:      llm,
		provider: goopenai.NewClient(apiKey),
		fs:       fs,
		logger:   logger,
	}, nil
}

// Chat sends one user message under the NDE system prompt.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	}

	resp, err := s.llm.GenerateContent(ctx, content,
		llms.WithMaxTokens(chatMaxTokens),
		llms.WithTemperature(chatTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return firstChoice(resp)
}

// AnalyzeImage sends the image bytes for NDE-focused visual analysis.
func (s *Service) AnalyzeImage(ctx context.Context, path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, imageSystemPrompt),
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(imageUserPrompt),
				llms.BinaryPart("image/jpeg", data),
			},
		},
	}

	resp, err := s.llm.GenerateContent(ctx, content, llms.WithMaxTokens(analysisMaxTokens))
	if err != nil {
		return "", fmt.Errorf("image analysis failed: %w", err)
	}
	return firstChoice(resp)
}

// Summarize condenses NDE technical content.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following NDE technical content, focusing on key technical points, standards referenced, methods discussed, and practical implications:

%s`, text)

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := s.llm.GenerateContent(ctx, content, llms.WithMaxTokens(summarizeMaxTokens))
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	return firstChoice(resp)
}

// AssessDocument rates the technical quality of NDE content. The verdict is
// clamped to valid ranges; on any failure a neutral assessment is returned
// rather than an error, since the rating only annotates the response.
func (s *Service) AssessDocument(ctx context.Context, text string) Assessment {
	neutral := Assessment{Confidence: 0.5, TechnicalQuality: 3, Assessment: "Unable to analyze document quality"}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem,
			`You are analyzing technical NDE documents. Provide confidence assessment and technical quality rating. Respond with JSON format: {"confidence": number_0_to_1, "technical_quality": number_1_to_5, "assessment": "brief_description"}`),
		llms.TextParts(llms.ChatMessageTypeHuman,
			fmt.Sprintf("Analyze the technical quality and confidence level of this NDE content:\n\n%s", text)),
	}

	resp, err := s.llm.GenerateContent(ctx, content, llms.WithJSONMode())
	if err != nil {
		s.logger.Error("document assessment failed", "error", err)
		return neutral
	}

	raw, err := firstChoice(resp)
	if err != nil {
		return neutral
	}

	var a Assessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		s.logger.Error("document assessment returned malformed JSON", "error", err)
		return neutral
	}

	a.Confidence = clampFloat(a.Confidence, 0, 1)
	a.TechnicalQuality = clampInt(a.TechnicalQuality, 1, 5)
	if strings.TrimSpace(a.Assessment) == "" {
		a.Assessment = "Technical document analyzed"
	}
	return a
}

// GenerateImage renders an NDE technical illustration and returns its URL.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := s.provider.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:  prompt,
		Model:   goopenai.CreateImageModelDallE3,
		N:       1,
		Size:    goopenai.CreateImageSize1024x1024,
		Quality: goopenai.CreateImageQualityStandard,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", errors.New("image generation returned no data")
	}
	return resp.Data[0].URL, nil
}

// Transcribe converts an audio file to text.
func (s *Service) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := s.provider.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
