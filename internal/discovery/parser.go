package discovery

import (
	"fmt"
	"os"
	"regexp"

	"specrun/internal/domain"
)

// itPattern matches it('title', ...) and it("title", ...) calls, including it.only and it.skip
var itPattern = regexp.MustCompile(`(?m)\bit(?:\.only|\.skip)?\(\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")`)

// Parser parses spec files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds all test case titles in a spec file, in source order
func (p *Parser) FindTestCases(filePath string) ([]domain.TestCase, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	var testCases []domain.TestCase
	for _, match := range itPattern.FindAllStringSubmatch(string(content), -1) {
		title := match[1]
		if title == "" {
			title = match[2]
		}
		testCases = append(testCases, domain.TestCase{Name: title, FilePath: filePath})
	}
	return testCases, nil
}
