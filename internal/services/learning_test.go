package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/storage"
	"github.com/yungbote/divergex-backend/internal/repos"
)

const mindMapResponse = `{"outline":[{"topic":"Water cycle"}],"mindMap":{"nodes":[{"id":"n1","label":"Water cycle","level":0},{"id":"n2","label":"Evaporation","level":1},{"id":"n3","label":"Condensation","level":1}],"edges":[{"from":"n1","to":"n2"},{"from":"n1","to":"n3"}]},"keyRelationships":["evaporation feeds condensation"],"summary":"How water moves."}`

func newLearningEnv(t *testing.T, gen *stubGenerator) (*testEnv, LearningService, string) {
	t.Helper()
	mediaRoot := t.TempDir()
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("MEDIA_ROOT", mediaRoot)

	env := newTestEnv(t)
	log := testLogger(t)
	store, err := storage.New(context.Background(), log)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	renderer, err := NewSummaryRenderer(log)
	if err != nil {
		t.Fatalf("init renderer: %v", err)
	}
	svc := NewLearningService(
		env.db,
		log,
		NewAIGatewayService(gen, log),
		renderer,
		store,
		repos.NewLearningContentRepo(env.db, log),
	)
	return env, svc, mediaRoot
}

func TestProcessTextPersistsContent(t *testing.T) {
	gen := &stubGenerator{response: `{"simplifiedText":"Water goes up and comes down.","chunks":["Water goes up and comes down."],"keyPoints":["rain"],"vocabulary":[],"readingLevel":4}`}
	env, svc, _ := newLearningEnv(t, gen)
	ctx := context.Background()
	userID := registerUser(t, env, "learn@example.com")

	processed, err := svc.ProcessText(ctx, userID, "The hydrological cycle...", 4, "science")
	if err != nil {
		t.Fatalf("process text: %v", err)
	}
	if processed.ID == uuid.Nil {
		t.Fatalf("processed text has no content id")
	}
	if processed.SimplifiedText.SimplifiedText != "Water goes up and comes down." {
		t.Fatalf("simplified = %q", processed.SimplifiedText.SimplifiedText)
	}

	content, err := svc.ContentByID(ctx, userID, processed.ID)
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if content.OriginalContent != "The hydrological cycle..." || content.ReadingLevel != 4 {
		t.Fatalf("stored content = %+v", content)
	}
	if content.DomainType != "science" {
		t.Fatalf("domainType = %q", content.DomainType)
	}
}

func TestProcessTextRequiresText(t *testing.T) {
	env, svc, _ := newLearningEnv(t, &stubGenerator{response: "{}"})
	userID := registerUser(t, env, "learnempty@example.com")

	_, err := svc.ProcessText(context.Background(), userID, "", 8, "")
	if apierr.CodeOf(err) != "missing_text" {
		t.Fatalf("empty text should be rejected, got %v", err)
	}
}

func TestGenerateVisualSummaryWritesPNG(t *testing.T) {
	env, svc, mediaRoot := newLearningEnv(t, &stubGenerator{response: mindMapResponse})
	ctx := context.Background()
	userID := registerUser(t, env, "visual@example.com")

	result, err := svc.GenerateVisualSummary(ctx, userID, "The water cycle...", nil)
	if err != nil {
		t.Fatalf("generate visual summary: %v", err)
	}
	if len(result.MindMap.Nodes) != 3 {
		t.Fatalf("mind map nodes = %d", len(result.MindMap.Nodes))
	}
	if result.VisualSummaryURL == "" {
		t.Fatalf("expected a rendered image URL")
	}
	if !strings.HasPrefix(result.VisualSummaryURL, "/media/visual_summary/") {
		t.Fatalf("url = %q", result.VisualSummaryURL)
	}

	rel := strings.TrimPrefix(result.VisualSummaryURL, "/media/")
	data, err := os.ReadFile(filepath.Join(mediaRoot, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("rendered file is not a PNG (%d bytes)", len(data))
	}
}

func TestGenerateVisualSummaryDegradesWithoutNodes(t *testing.T) {
	// Model failure produces the empty fallback map, which cannot be drawn.
	env, svc, _ := newLearningEnv(t, &stubGenerator{err: fmt.Errorf("model down")})
	ctx := context.Background()
	userID := registerUser(t, env, "visualfail@example.com")

	result, err := svc.GenerateVisualSummary(ctx, userID, "Some text", nil)
	if err != nil {
		t.Fatalf("render failure must not fail the request: %v", err)
	}
	if result.VisualSummaryURL != "" {
		t.Fatalf("url = %q, want empty on render failure", result.VisualSummaryURL)
	}
}

func TestGenerateVisualSummaryLinksOwnedContent(t *testing.T) {
	gen := &stubGenerator{response: mindMapResponse}
	env, svc, _ := newLearningEnv(t, gen)
	ctx := context.Background()
	userID := registerUser(t, env, "visuallink@example.com")
	otherID := registerUser(t, env, "visualother@example.com")

	gen.response = `{"simplifiedText":"short","chunks":["short"],"keyPoints":[],"vocabulary":[],"readingLevel":8}`
	processed, err := svc.ProcessText(ctx, userID, "long text", 8, "")
	if err != nil {
		t.Fatalf("process text: %v", err)
	}

	gen.response = mindMapResponse
	result, err := svc.GenerateVisualSummary(ctx, userID, "long text", &processed.ID)
	if err != nil {
		t.Fatalf("generate with contentId: %v", err)
	}

	content, err := svc.ContentByID(ctx, userID, processed.ID)
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if content.VisualSummaryURL != result.VisualSummaryURL {
		t.Fatalf("stored url %q, responded %q", content.VisualSummaryURL, result.VisualSummaryURL)
	}

	if _, err := svc.GenerateVisualSummary(ctx, otherID, "long text", &processed.ID); apierr.StatusOf(err) != 404 {
		t.Fatalf("foreign contentId should 404, got %v", err)
	}
}

func TestLearningHistoryScopedAndLimited(t *testing.T) {
	gen := &stubGenerator{response: `{"simplifiedText":"s","chunks":["s"],"keyPoints":[],"vocabulary":[],"readingLevel":8}`}
	env, svc, _ := newLearningEnv(t, gen)
	ctx := context.Background()
	userID := registerUser(t, env, "history@example.com")
	otherID := registerUser(t, env, "historyother@example.com")

	for i := 0; i < 3; i++ {
		if _, err := svc.ProcessText(ctx, userID, fmt.Sprintf("text %d", i), 8, ""); err != nil {
			t.Fatalf("process %d: %v", i, err)
		}
	}
	if _, err := svc.ProcessText(ctx, otherID, "foreign", 8, ""); err != nil {
		t.Fatalf("process foreign: %v", err)
	}

	rows, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("history rows = %d, want 3", len(rows))
	}
	for _, row := range rows {
		if row.UserID != userID {
			t.Fatalf("history leaked foreign row: %+v", row)
		}
	}

	if _, err := svc.ContentByID(ctx, otherID, rows[0].ID); apierr.StatusOf(err) != 404 {
		t.Fatalf("foreign content fetch should 404, got %v", err)
	}
}

func TestContentByIDUnknownID(t *testing.T) {
	env, svc, _ := newLearningEnv(t, &stubGenerator{response: "{}"})
	userID := registerUser(t, env, "unknown@example.com")

	_, err := svc.ContentByID(context.Background(), userID, uuid.New())
	if apierr.StatusOf(err) != 404 || apierr.CodeOf(err) != "content_not_found" {
		t.Fatalf("unknown id should 404 content_not_found, got %v", err)
	}
}
