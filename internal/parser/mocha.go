package parser

import (
	"regexp"
	"strconv"
	"strings"

	"specrun/internal/domain"
)

var (
	passingPattern = regexp.MustCompile(`(?m)^\s*(\d+)\s+passing`)
	failingPattern = regexp.MustCompile(`(?m)^\s*(\d+)\s+failing`)
	pendingPattern = regexp.MustCompile(`(?m)^\s*(\d+)\s+pending`)
	headerPattern  = regexp.MustCompile(`^\s*(\d+)\)\s+(.*)$`)
	locationRegexp = regexp.MustCompile(`([^\s()]+\.js):(\d+)(?::\d+)?`)
	ansiPattern    = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// MochaParser parses the summary and failure blocks printed by mocha reporters
type MochaParser struct{}

// NewMochaParser creates a new MochaParser
func NewMochaParser() *MochaParser {
	return &MochaParser{}
}

// ParseCounts extracts passing, failing and pending counts from the runner summary.
// If no summary is found, the whole run counts as one passed or one failed test.
func (p *MochaParser) ParseCounts(result domain.RunResult) (passed, failed, pending int) {
	output := ansiPattern.ReplaceAllString(result.Output, "")

	passed = firstInt(passingPattern, output)
	failed = firstInt(failingPattern, output)
	pending = firstInt(pendingPattern, output)
	if passed > 0 || failed > 0 || pending > 0 {
		return passed, failed, pending
	}

	// Fallback: one "test" per run
	if result.Success {
		return 1, 0, 0
	}
	return 0, 1, 0
}

// ParseFailures extracts the numbered failure blocks printed after the "N failing" line
func (p *MochaParser) ParseFailures(result domain.RunResult) []domain.TestFailure {
	output := ansiPattern.ReplaceAllString(result.Output, "")
	lines := strings.Split(output, "\n")

	start := -1
	for i, line := range lines {
		if failingPattern.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var failures []domain.TestFailure
	for i := start; i < len(lines); i++ {
		m := headerPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		failure, next := p.parseFailureBlock(lines, i, m)
		failures = append(failures, failure)
		i = next - 1
	}
	return failures
}

// parseFailureBlock parses one block starting at lines[i] and returns the index of the next block
func (p *MochaParser) parseFailureBlock(lines []string, i int, header []string) (domain.TestFailure, int) {
	number, _ := strconv.Atoi(header[1])
	failure := domain.TestFailure{Number: number, StackTrace: []string{}}

	// Title spans lines until one ends with ':'
	titles := []string{strings.TrimSpace(header[2])}
	j := i + 1
	for !strings.HasSuffix(titles[len(titles)-1], ":") && j < len(lines) {
		next := strings.TrimSpace(lines[j])
		if next == "" || headerPattern.MatchString(lines[j]) {
			break
		}
		titles = append(titles, next)
		j++
	}
	titles[len(titles)-1] = strings.TrimSuffix(titles[len(titles)-1], ":")
	if len(titles) == 1 {
		failure.TestName = titles[0]
	} else {
		failure.Suite = strings.Join(titles[:len(titles)-1], " ")
		failure.TestName = titles[len(titles)-1]
	}

	var messageLines []string
	for ; j < len(lines); j++ {
		line := lines[j]
		if headerPattern.MatchString(line) {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "at ") {
			failure.StackTrace = append(failure.StackTrace, trimmed)
			if failure.File == "" && strings.Contains(trimmed, ".spec.js") {
				if loc := locationRegexp.FindStringSubmatch(trimmed); loc != nil {
					failure.File = loc[1]
					failure.Line, _ = strconv.Atoi(loc[2])
				}
			}
			continue
		}
		if len(failure.StackTrace) > 0 {
			continue
		}
		// Skip empty lines at the very start
		if len(messageLines) == 0 && trimmed == "" {
			continue
		}
		messageLines = append(messageLines, trimmed)
	}

	// Trim trailing empty lines
	for len(messageLines) > 0 && messageLines[len(messageLines)-1] == "" {
		messageLines = messageLines[:len(messageLines)-1]
	}
	failure.Message = strings.Join(messageLines, "\n")

	return failure, j
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
