package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// WordBank is the ordered list of words to search for. Duplicates are
// allowed; each entry is searched independently.
type WordBank []string

// ParseWordBank reads a plain-text word bank from r, one word per line.
// Blank lines are skipped. Words may not contain embedded whitespace.
func ParseWordBank(r io.Reader) (WordBank, error) {
	var bank WordBank

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if strings.ContainsAny(word, " \t") {
			return nil, fmt.Errorf("line %d: word %q contains whitespace", lineNo, word)
		}
		bank = append(bank, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, fmt.Errorf("word bank is empty")
	}

	return bank, nil
}

// ParseMarkdownBank reads a word bank from a Markdown document. Every line
// of body text counts as a word, whether it appears as a list item or as a
// bare paragraph line; headings and other markup are ignored.
func ParseMarkdownBank(r io.Reader) (WordBank, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read word bank: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	var bank WordBank
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		// Paragraphs carry bare lines; tight list items carry text blocks.
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				word := strings.TrimSpace(string(seg.Value(content)))
				if word == "" {
					continue
				}
				if strings.ContainsAny(word, " \t") {
					return ast.WalkStop, fmt.Errorf("word %q contains whitespace", word)
				}
				bank = append(bank, word)
			}
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(bank) == 0 {
		return nil, fmt.Errorf("word bank is empty")
	}

	return bank, nil
}

// LoadWordBank parses a word bank from the file at path. Files with a .md
// or .markdown extension are parsed as Markdown; everything else is plain
// one-word-per-line text.
func LoadWordBank(path string) (WordBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word bank file %s: %w", path, err)
	}
	defer f.Close()

	var bank WordBank
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		bank, err = ParseMarkdownBank(f)
	default:
		bank, err = ParseWordBank(f)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid word bank file %s: %w", path, err)
	}
	return bank, nil
}
