package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Verifier renders a verdict for one category.
type Verifier interface {
	Verify(ctx context.Context, c domain.Category) (domain.Verdict, error)
}

// CatalogService serves challenge metadata with lecture and solution
// material loaded from markdown files at request time.
type CatalogService struct {
	cfg      domain.Config
	reader   domain.SourceReader
	verifier Verifier
	logger   *slog.Logger
}

// NewCatalogService creates a catalog. verifier may be nil, in which case
// every challenge is reported as degraded.
func NewCatalogService(cfg domain.Config, reader domain.SourceReader, verifier Verifier, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{cfg: cfg, reader: reader, verifier: verifier, logger: logger}
}

// Catalog returns all challenges in order. With withStatus set, each
// challenge is verified and its status reflects the verdict.
func (s *CatalogService) Catalog(ctx context.Context, withStatus bool) (domain.Catalog, error) {
	ctx, span := tracer.Start(ctx, "catalog.list")
	defer span.End()

	s.logger.Info("providing challenge metadata",
		"request_id", RequestID(ctx),
		"with_status", withStatus,
	)

	cat := domain.Catalog{}
	for _, c := range domain.ValidCategories {
		ch, err := s.Challenge(ctx, c.ChallengeID())
		if err != nil {
			return domain.Catalog{}, err
		}
		if withStatus && s.verifier != nil {
			v, err := s.verifier.Verify(ctx, c)
			if err != nil {
				return domain.Catalog{}, fmt.Errorf("verifying %s: %w", c, err)
			}
			ch.Status = v.SystemComponent.Status
			if v.Valid {
				cat.Solved++
			}
		}
		cat.Challenges = append(cat.Challenges, ch)
	}
	cat.Total = len(cat.Challenges)
	return cat, nil
}

// Challenge returns one catalog entry with its learning material.
func (s *CatalogService) Challenge(ctx context.Context, id int) (domain.Challenge, error) {
	ch, err := domain.ChallengeByID(id)
	if err != nil {
		return domain.Challenge{}, err
	}
	code, explanation := s.loadSolution(ctx, id)
	ch.Solution = domain.Solution{
		Code:        code,
		Explanation: explanation,
		Lecture:     s.loadLecture(ctx, id),
	}
	return ch, nil
}

func (s *CatalogService) lecturePath(name string) string {
	dir := s.cfg.LecturesDir
	if !filepath.IsAbs(dir) && s.cfg.Workspace != "" {
		dir = filepath.Join(s.cfg.Workspace, dir)
	}
	return filepath.Join(dir, name)
}

func (s *CatalogService) loadLecture(ctx context.Context, id int) string {
	path := s.lecturePath(fmt.Sprintf("challenge%d.md", id))
	content, err := s.reader.ReadSource(ctx, path)
	if err != nil {
		s.logger.Warn("failed to load lecture content from file", "path", path, "error", err)
		return fmt.Sprintf("# Lecture for Challenge #%d\n\nLecture content could not be loaded.", id)
	}
	return content
}

func (s *CatalogService) loadSolution(ctx context.Context, id int) (code, explanation string) {
	path := s.lecturePath(fmt.Sprintf("challenge%d_solution.md", id))
	content, err := s.reader.ReadSource(ctx, path)
	if err != nil {
		s.logger.Warn("failed to load solution content from file", "path", path, "error", err)
		return fmt.Sprintf("// Solution code for Challenge #%d unavailable", id),
			fmt.Sprintf("Solution explanation for Challenge #%d unavailable", id)
	}
	return SplitSolution(content)
}

// SplitSolution separates a solution document into the body of its first
// fenced code block and the text that follows the block.
func SplitSolution(content string) (code, explanation string) {
	src := []byte(content)
	block := firstFencedBlock(goldmark.DefaultParser().Parse(text.NewReader(src)))
	if block == nil {
		return "", orUnavailable(strings.TrimSpace(content))
	}

	var rest string
	lines := block.Lines()
	switch {
	case lines.Len() > 0:
		var b strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		code = strings.TrimRight(b.String(), "\n")
		rest = content[lines.At(lines.Len()-1).Stop:]
	case block.Info != nil:
		rest = content[block.Info.Segment.Stop:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
	default:
		return "", orUnavailable("")
	}

	// The closing fence, if any, is the first line after the block body.
	if isFence(rest) {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		} else {
			rest = ""
		}
	}
	return code, orUnavailable(strings.TrimSpace(rest))
}

func firstFencedBlock(doc ast.Node) *ast.FencedCodeBlock {
	var found *ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && entering {
			found = fcb
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

func isFence(line string) bool {
	line = strings.TrimLeft(line, " ")
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}

func orUnavailable(explanation string) string {
	if explanation == "" {
		return "Solution explanation unavailable"
	}
	return explanation
}
