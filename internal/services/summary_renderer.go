package services

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

// SummaryRenderer turns mind-map data into a PNG concept map.
type SummaryRenderer interface {
	Render(visual *types.VisualSummary) ([]byte, error)
}

type summaryRenderer struct {
	log       *logger.Logger
	labelFace font.Face
	titleFace font.Face
}

const (
	canvasW    = 1200
	canvasH    = 800
	nodeW      = 200.0
	nodeH      = 56.0
	marginX    = 60.0
	marginY    = 80.0
	levelGap   = 260.0
	cornerRad  = 10.0
	titleBandH = 48.0
)

var levelFills = []color.NRGBA{
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
}

// NewSummaryRenderer loads the label font from SUMMARY_FONT when set; without
// it gg falls back to its built-in bitmap face, which is fine for tests.
func NewSummaryRenderer(baseLog *logger.Logger) (SummaryRenderer, error) {
	sr := &summaryRenderer{log: baseLog.With("service", "SummaryRenderer")}
	fontPath := strings.TrimSpace(os.Getenv("SUMMARY_FONT"))
	if fontPath != "" {
		labelFace, err := loadFontFace(fontPath, 16)
		if err != nil {
			return nil, fmt.Errorf("load summary font: %w", err)
		}
		titleFace, err := loadFontFace(fontPath, 22)
		if err != nil {
			return nil, fmt.Errorf("load summary title font: %w", err)
		}
		sr.labelFace = labelFace
		sr.titleFace = titleFace
	}
	return sr, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

func (sr *summaryRenderer) Render(visual *types.VisualSummary) ([]byte, error) {
	if visual == nil || len(visual.MindMap.Nodes) == 0 {
		return nil, fmt.Errorf("no mind map nodes to render")
	}

	dc := gg.NewContext(canvasW, canvasH)
	dc.SetColor(color.NRGBA{R: 0xF9, G: 0xFA, B: 0xFB, A: 0xFF})
	dc.Clear()

	positions := layoutNodes(visual.MindMap.Nodes)

	// Edges under nodes.
	dc.SetColor(color.NRGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF})
	dc.SetLineWidth(2)
	for _, edge := range visual.MindMap.Edges {
		from, okFrom := positions[edge.From]
		to, okTo := positions[edge.To]
		if !okFrom || !okTo {
			continue
		}
		dc.DrawLine(from.x+nodeW/2, from.y+nodeH/2, to.x+nodeW/2, to.y+nodeH/2)
		dc.Stroke()
	}

	if sr.labelFace != nil {
		dc.SetFontFace(sr.labelFace)
	}
	for _, node := range visual.MindMap.Nodes {
		pos, ok := positions[node.ID]
		if !ok {
			continue
		}
		fill := levelFills[node.Level%len(levelFills)]
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(pos.x, pos.y, nodeW, nodeH, cornerRad)
		dc.Fill()

		dc.SetColor(color.White)
		label := truncateLabel(node.Label, 26)
		dc.DrawStringAnchored(label, pos.x+nodeW/2, pos.y+nodeH/2, 0.5, 0.5)
	}

	if visual.Summary != "" {
		if sr.titleFace != nil {
			dc.SetFontFace(sr.titleFace)
		}
		dc.SetColor(color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF})
		dc.DrawStringAnchored(truncateLabel(visual.Summary, 110), canvasW/2, titleBandH/2+8, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

type nodePos struct {
	x, y float64
}

// layoutNodes places each level in its own column and spreads that level's
// nodes evenly down the column.
func layoutNodes(nodes []types.MindMapNode) map[string]nodePos {
	byLevel := map[int][]types.MindMapNode{}
	levels := []int{}
	for _, n := range nodes {
		if _, seen := byLevel[n.Level]; !seen {
			levels = append(levels, n.Level)
		}
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	sort.Ints(levels)

	positions := make(map[string]nodePos, len(nodes))
	for col, level := range levels {
		group := byLevel[level]
		x := marginX + float64(col)*levelGap
		span := float64(canvasH) - titleBandH - 2*marginY
		step := span / float64(len(group))
		for i, n := range group {
			y := titleBandH + marginY + float64(i)*step + (step-nodeH)/2
			positions[n.ID] = nodePos{x: x, y: y}
		}
	}
	return positions
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
