// Package ignore compiles gitignore-style exclusion patterns into regular
// expressions and matches slash-normalized relative paths against them.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type Pattern struct {
	Regex  *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Indicates if the pattern is a negation (starts with '!').
	Line   string         // Original pattern line.
	LineNo int            // Position in the rule set (1-based).
}

// RuleSet represents an ordered collection of exclusion patterns.
// Later patterns win, so a negation can re-include a previously excluded path.
type RuleSet struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewRuleSet initializes a RuleSet with an optional logger.
func NewRuleSet(logger *zap.Logger) *RuleSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleSet{
		patterns: []*Pattern{},
		logger:   logger,
	}
}

// Len returns the number of compiled patterns.
func (rs *RuleSet) Len() int {
	return len(rs.patterns)
}

// CompileLines compiles a set of pattern lines and appends them to the rule set.
// Empty lines and comments are skipped.
func (rs *RuleSet) CompileLines(lines ...string) {
	for _, line := range lines {
		regex, negate := parsePatternLine(line, rs.logger)
		if regex == nil {
			continue
		}
		p := &Pattern{
			Regex:  regex,
			Negate: negate,
			Line:   strings.TrimSpace(line),
			LineNo: len(rs.patterns) + 1,
		}
		rs.patterns = append(rs.patterns, p)
		rs.logger.Debug("Compiled exclusion pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// CompileFile reads a pattern file and compiles its lines into the rule set.
// A missing file is not an error; the rule set is simply left unchanged.
func (rs *RuleSet) CompileFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			rs.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		rs.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	rs.CompileLines(strings.Split(string(content), "\n")...)
	rs.logger.Debug("Compiled ignore file",
		zap.String("filePath", filePath),
		zap.Int("totalPatterns", len(rs.patterns)))
	return nil
}

// Matches checks if the given relative path matches any of the exclusion patterns.
func (rs *RuleSet) Matches(path string) bool {
	matched, _ := rs.MatchesWithPattern(path)
	return matched
}

// MatchesWithPattern checks if the given path matches any exclusion pattern.
// It returns a boolean indicating a match and the last pattern that decided it.
func (rs *RuleSet) MatchesWithPattern(path string) (bool, *Pattern) {
	normalized := filepath.ToSlash(path)

	matched := false
	var decided *Pattern
	for _, pattern := range rs.patterns {
		if !pattern.Regex.MatchString(normalized) {
			continue
		}
		decided = pattern
		matched = !pattern.Negate
	}
	return matched, decided
}

// parsePatternLine processes a single pattern line and returns a compiled
// regular expression and a negation flag. Returns nil for comments and blanks.
func parsePatternLine(line string, logger *zap.Logger) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	rooted := strings.HasPrefix(trimmed, "/")
	body := strings.TrimPrefix(trimmed, "/")
	dirOnly := strings.HasSuffix(body, "/")
	body = strings.TrimSuffix(body, "/")

	pattern := escapeSpecialChars(body)
	pattern = protectDoubleStarPatterns(pattern)
	pattern = wildcardToRegex(pattern)
	pattern = expandDoubleStarTokens(pattern)
	pattern = anchorPattern(pattern, rooted, dirOnly)

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		logger.Error("Invalid exclusion pattern",
			zap.String("pattern", trimmed),
			zap.Error(err))
		return nil, false
	}
	return compiled, negate
}

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
	singleStarPattern         = regexp.MustCompile(`\*`)
)

// Placeholder tokens keep '**' expansions out of reach of the single-star
// conversion; they never occur in pattern lines.
const (
	tokenAnyDirs = "\x00"
	tokenTail    = "\x01"
	tokenHead    = "\x02"
)

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	const specialChars = `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// protectDoubleStarPatterns replaces '**' constructs with placeholder tokens.
func protectDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, tokenAnyDirs)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, tokenTail)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, tokenHead)
	return pattern
}

// wildcardToRegex converts wildcard patterns '*' and '?' to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStarPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	return pattern
}

// expandDoubleStarTokens substitutes the real regex for each placeholder token.
func expandDoubleStarTokens(pattern string) string {
	pattern = strings.ReplaceAll(pattern, tokenAnyDirs, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, tokenTail, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, tokenHead, `(.*/)?`)
	return pattern
}

// anchorPattern anchors the regex pattern to match the entire path.
// Root-relative patterns (leading '/') match from the path start only;
// all others match at any directory depth. Directory-only patterns
// (trailing '/') match the directory itself and everything beneath it.
func anchorPattern(pattern string, rooted, dirOnly bool) string {
	if dirOnly {
		pattern += `(/.*)?$`
	} else {
		pattern += `(|/.*)?$`
	}

	if rooted {
		return "^" + pattern
	}
	return `^(|.*/)` + pattern
}
