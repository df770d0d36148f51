package types

// Response shapes for the AI gateway. Field names and fallback values are
// load-bearing: the web client consumes these keys directly.

type ToneAnalysis struct {
	Tone           string   `json:"tone"`
	Sentiment      string   `json:"sentiment"`
	SocialContext  string   `json:"socialContext"`
	Interpretation string   `json:"interpretation"`
	Confidence     float64  `json:"confidence"`
	Suggestions    []string `json:"suggestions"`
}

type MessageChange struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

type FormattedMessage struct {
	FormattedMessage    string          `json:"formattedMessage"`
	Changes             []MessageChange `json:"changes"`
	ToneAdjustments     string          `json:"toneAdjustments"`
	ClarityImprovements string          `json:"clarityImprovements"`
}

type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SimulationTurn struct {
	Response    string   `json:"response"`
	Feedback    string   `json:"feedback"`
	SocialCues  []string `json:"socialCues"`
	Suggestions []string `json:"suggestions"`
	Score       float64  `json:"score"`
}

type VocabularyEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type SimplifiedText struct {
	SimplifiedText string            `json:"simplifiedText"`
	Chunks         []string          `json:"chunks"`
	KeyPoints      []string          `json:"keyPoints"`
	Vocabulary     []VocabularyEntry `json:"vocabulary"`
	ReadingLevel   int               `json:"readingLevel"`
}

type MindMapNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level"`
}

type MindMapEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type MindMap struct {
	Nodes []MindMapNode `json:"nodes"`
	Edges []MindMapEdge `json:"edges"`
}

// Outline and KeyRelationships pass through whatever JSON structure the
// model produced; the fallback uses empty arrays.
type VisualSummary struct {
	Outline          any     `json:"outline"`
	MindMap          MindMap `json:"mindMap"`
	KeyRelationships any     `json:"keyRelationships"`
	Summary          string  `json:"summary"`
}
