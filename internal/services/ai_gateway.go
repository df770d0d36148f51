package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yungbote/divergex-backend/internal/clients/gemini"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

// AIGatewayService wraps the language model behind typed, feature-scoped
// operations. Every operation degrades to a static fallback instead of
// returning an error, so callers never fail a request on model trouble.
type AIGatewayService interface {
	AnalyzeTone(ctx context.Context, text, msgContext string) *types.ToneAnalysis
	FormatMessage(ctx context.Context, text, targetTone string) *types.FormattedMessage
	SimulateConversation(ctx context.Context, scenario, userMessage string, history []types.ConversationMessage) *types.SimulationTurn
	SimplifyText(ctx context.Context, text string, targetLevel int) *types.SimplifiedText
	GenerateVisualSummary(ctx context.Context, text string) *types.VisualSummary
}

type aiGatewayService struct {
	gen gemini.Generator
	log *logger.Logger
}

func NewAIGatewayService(gen gemini.Generator, baseLog *logger.Logger) AIGatewayService {
	return &aiGatewayService{gen: gen, log: baseLog.With("service", "AIGatewayService")}
}

// jsonBlockRe grabs everything from the first opening brace to the last
// closing brace, so fenced or prose-wrapped model output still yields the
// embedded JSON object.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func extractJSON(responseText string) (string, bool) {
	match := jsonBlockRe.FindString(responseText)
	return match, match != ""
}

func (s *aiGatewayService) AnalyzeTone(ctx context.Context, text, msgContext string) *types.ToneAnalysis {
	if msgContext == "" {
		msgContext = "General communication"
	}
	prompt := fmt.Sprintf(`Analyze the emotional tone and social context of this message. Provide a neurodivergent-friendly interpretation.

Message: "%s"
Context: %s

Provide a JSON response with:
- tone: primary emotional tone (friendly, formal, anxious, confident, neutral, etc.)
- sentiment: positive, negative, or neutral
- socialContext: professional, casual, confrontational, supportive, etc.
- interpretation: clear explanation of the tone for someone who might struggle with social cues
- confidence: 0-100 score
- suggestions: array of tips for understanding or responding

Return ONLY valid JSON, no other text.`, text, msgContext)

	errFallback := &types.ToneAnalysis{
		Tone:           "neutral",
		Sentiment:      "neutral",
		SocialContext:  "general",
		Interpretation: "Unable to analyze tone at this time.",
		Confidence:     0,
		Suggestions:    []string{},
	}

	responseText, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("tone analysis fell back", "error", err)
		return errFallback
	}
	raw, ok := extractJSON(responseText)
	if !ok {
		return &types.ToneAnalysis{
			Tone:           "neutral",
			Sentiment:      "neutral",
			SocialContext:  "general",
			Interpretation: responseText,
			Confidence:     50,
			Suggestions:    []string{},
		}
	}
	var out types.ToneAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("tone analysis returned malformed JSON", "error", err)
		return errFallback
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return &out
}

func (s *aiGatewayService) FormatMessage(ctx context.Context, text, targetTone string) *types.FormattedMessage {
	if targetTone == "" {
		targetTone = "professional"
	}
	prompt := fmt.Sprintf(`Improve this message for clarity and appropriate tone. Target tone: %s

Original message: "%s"

Provide a JSON response with:
- formattedMessage: the improved version
- changes: array of objects with {original, improved, reason}
- toneAdjustments: what was changed about the tone
- clarityImprovements: what was made clearer

Return ONLY valid JSON, no other text.`, targetTone, text)

	errFallback := &types.FormattedMessage{
		FormattedMessage:    text,
		Changes:             []types.MessageChange{},
		ToneAdjustments:     "Unable to format message",
		ClarityImprovements: "Error occurred",
	}

	responseText, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("message formatting fell back", "error", err)
		return errFallback
	}
	raw, ok := extractJSON(responseText)
	if !ok {
		return &types.FormattedMessage{
			FormattedMessage:    text,
			Changes:             []types.MessageChange{},
			ToneAdjustments:     "No changes needed",
			ClarityImprovements: "Message is clear",
		}
	}
	var out types.FormattedMessage
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("message formatting returned malformed JSON", "error", err)
		return errFallback
	}
	if out.Changes == nil {
		out.Changes = []types.MessageChange{}
	}
	return &out
}

func (s *aiGatewayService) SimulateConversation(ctx context.Context, scenario, userMessage string, history []types.ConversationMessage) *types.SimulationTurn {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	prompt := fmt.Sprintf(`You are simulating a %s conversation to help someone practice social interactions.

Conversation history:
%s

User's message: "%s"

Provide a JSON response with:
- response: your reply in the conversation
- feedback: constructive feedback on the user's message
- socialCues: array of social cues present in the interaction
- suggestions: tips for improvement
- score: 0-100 rating of the response appropriateness

Return ONLY valid JSON, no other text.`, scenario, strings.Join(lines, "\n"), userMessage)

	errFallback := &types.SimulationTurn{
		Response:    "I understand. Could you tell me more?",
		Feedback:    "Unable to provide feedback",
		SocialCues:  []string{},
		Suggestions: []string{},
		Score:       0,
	}

	responseText, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("conversation simulation fell back", "error", err)
		return errFallback
	}
	raw, ok := extractJSON(responseText)
	if !ok {
		return &types.SimulationTurn{
			Response:    "I understand. Could you tell me more?",
			Feedback:    "Good communication",
			SocialCues:  []string{},
			Suggestions: []string{},
			Score:       75,
		}
	}
	var out types.SimulationTurn
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("conversation simulation returned malformed JSON", "error", err)
		return errFallback
	}
	if out.SocialCues == nil {
		out.SocialCues = []string{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return &out
}

// simplifiedPayload defers readingLevel decoding because models return it as
// either a number or a string like "Grade 8".
type simplifiedPayload struct {
	SimplifiedText string                  `json:"simplifiedText"`
	Chunks         []string                `json:"chunks"`
	KeyPoints      []string                `json:"keyPoints"`
	Vocabulary     []types.VocabularyEntry `json:"vocabulary"`
	ReadingLevel   json.RawMessage         `json:"readingLevel"`
}

var nonDigitRe = regexp.MustCompile(`\D`)

func coerceReadingLevel(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 {
		return fallback
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		digits := nonDigitRe.ReplaceAllString(str, "")
		if v, err := strconv.Atoi(digits); err == nil && v != 0 {
			return v
		}
	}
	return fallback
}

func (s *aiGatewayService) SimplifyText(ctx context.Context, text string, targetLevel int) *types.SimplifiedText {
	if targetLevel == 0 {
		targetLevel = 8
	}
	prompt := fmt.Sprintf(`Simplify this text to a grade %d reading level. Break it into digestible chunks and highlight key concepts.

Text: "%s"

Provide a JSON response with:
- simplifiedText: the simplified version
- chunks: array of text chunks (paragraphs)
- keyPoints: array of main ideas
- vocabulary: array of {word, definition} for complex terms
- readingLevel: estimated grade level as a NUMBER (e.g., 8, not "Grade 8")

Return ONLY valid JSON, no other text.`, targetLevel, text)

	fallback := &types.SimplifiedText{
		SimplifiedText: text,
		Chunks:         []string{text},
		KeyPoints:      []string{},
		Vocabulary:     []types.VocabularyEntry{},
		ReadingLevel:   targetLevel,
	}

	responseText, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("text simplification fell back", "error", err)
		return fallback
	}
	raw, ok := extractJSON(responseText)
	if !ok {
		return fallback
	}
	var payload simplifiedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		s.log.Warn("text simplification returned malformed JSON", "error", err)
		return fallback
	}
	out := &types.SimplifiedText{
		SimplifiedText: payload.SimplifiedText,
		Chunks:         payload.Chunks,
		KeyPoints:      payload.KeyPoints,
		Vocabulary:     payload.Vocabulary,
		ReadingLevel:   coerceReadingLevel(payload.ReadingLevel, targetLevel),
	}
	if out.Chunks == nil {
		out.Chunks = []string{}
	}
	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	if out.Vocabulary == nil {
		out.Vocabulary = []types.VocabularyEntry{}
	}
	return out
}

func (s *aiGatewayService) GenerateVisualSummary(ctx context.Context, text string) *types.VisualSummary {
	prompt := fmt.Sprintf(`Create a structured outline and concept map data from this text:

"%s"

Provide a JSON response with:
- outline: hierarchical structure with main topics and subtopics
- mindMap: {nodes: [{id, label, level}], edges: [{from, to}]}
- keyRelationships: array of concept connections
- summary: brief overview

Return ONLY valid JSON, no other text.`, text)

	summary := text
	if runes := []rune(summary); len(runes) > 200 {
		summary = string(runes[:200])
	}
	fallback := &types.VisualSummary{
		Outline:          []any{},
		MindMap:          types.MindMap{Nodes: []types.MindMapNode{}, Edges: []types.MindMapEdge{}},
		KeyRelationships: []any{},
		Summary:          summary,
	}

	responseText, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("visual summary fell back", "error", err)
		return fallback
	}
	raw, ok := extractJSON(responseText)
	if !ok {
		return fallback
	}
	var out types.VisualSummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("visual summary returned malformed JSON", "error", err)
		return fallback
	}
	if out.MindMap.Nodes == nil {
		out.MindMap.Nodes = []types.MindMapNode{}
	}
	if out.MindMap.Edges == nil {
		out.MindMap.Edges = []types.MindMapEdge{}
	}
	return &out
}
