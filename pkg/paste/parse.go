package paste

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// header patterns, compiled on first use
type headerPatterns struct {
	gender   *regexp.Regexp
	nickname *regexp.Regexp
}

var loadHeaderPatterns = sync.OnceValues(func() (*headerPatterns, error) {
	gender, err := regexp.Compile(`\(([mf])\)`)
	if err != nil {
		return nil, err
	}
	nickname, err := regexp.Compile(`\(([^)]+)\)`)
	if err != nil {
		return nil, err
	}
	return &headerPatterns{gender: gender, nickname: nickname}, nil
})

// Parse splits a team paste into sets, preserving block order.
//
// Blocks are separated by one blank line. If the input contains a carriage
// return anywhere it is treated as CRLF text and blocks are split on
// "\r\n\r\n"; otherwise on "\n\n". The check covers the whole input, so a
// paste that mixes line endings is not supported.
//
// The first failing block aborts the parse; no partial result is returned.
func Parse(text string) ([]Set, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	patterns, err := loadHeaderPatterns()
	if err != nil {
		return nil, &ParseError{Err: ErrPattern, Line: err.Error()}
	}

	blocks := splitBlocks(text)
	sets := make([]Set, 0, len(blocks))
	for i, block := range blocks {
		set, err := parseBlock(patterns, block)
		if err != nil {
			err.Block = i + 1
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func splitBlocks(text string) []string {
	if strings.Contains(text, "\r") {
		return strings.Split(text, "\r\n\r\n")
	}
	return strings.Split(text, "\n\n")
}

func parseBlock(p *headerPatterns, block string) (Set, *ParseError) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Set{}, &ParseError{Err: ErrEmptyBlock}
	}

	set := NewSet()
	header := lines[0]
	if strings.Contains(header, ":") || strings.HasPrefix(header, "-") {
		return Set{}, &ParseError{Err: ErrMissingName, Line: header}
	}
	p.parseHeader(header, &set)

	for _, line := range lines[1:] {
		if err := parseLine(line, &set); err != nil {
			return Set{}, err
		}
	}

	if set.Species == "" {
		return Set{}, &ParseError{Err: ErrMissingName, Line: header}
	}
	return set, nil
}

// parseHeader reads "Nickname (Species) (F) @ Item". Species and item are
// stored lower-cased; the nickname is dropped.
func (p *headerPatterns) parseHeader(header string, set *Set) {
	name, item, _ := strings.Cut(strings.ToLower(header), "@")
	name = strings.TrimSpace(name)

	if m := p.gender.FindStringSubmatch(name); m != nil {
		set.Gender = m[1]
		name = strings.TrimSpace(p.gender.ReplaceAllString(name, ""))
	}
	if strings.Contains(name, "(") && strings.Contains(name, ")") {
		if m := p.nickname.FindStringSubmatch(name); m != nil {
			name = m[1]
		}
	}

	set.Species = strings.TrimSpace(name)
	set.Item = strings.TrimSpace(item)
}

func parseLine(line string, set *Set) *ParseError {
	if strings.HasPrefix(line, "-") {
		move := strings.TrimSpace(line[1:])
		if move == "" {
			return &ParseError{Err: ErrMalformedLine, Line: line}
		}
		set.Moves = append(set.Moves, move)
		return nil
	}

	if key, value, ok := strings.Cut(line, ": "); ok {
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "ability":
			set.Ability = value
		case "level":
			set.Level = atoiOrZero(value)
		case "tera type":
			set.Tera = value
		case "shiny":
			set.Shiny = strings.EqualFold(value, "yes")
		case "evs":
			return parseStats(line, value, &set.EVs)
		case "ivs":
			return parseStats(line, value, &set.IVs)
		}
		return nil
	}

	if i := indexFold(line, " nature"); i >= 0 {
		set.Nature = strings.TrimSpace(line[:i])
	}
	return nil
}

// parseStats reads "252 HP / 4 Def / 252 Spe" into block.
func parseStats(line, value string, block *StatBlock) *ParseError {
	for _, tok := range strings.Split(value, " / ") {
		parts := strings.Split(strings.TrimSpace(tok), " ")
		if len(parts) != 2 {
			return &ParseError{Err: ErrMalformedStats, Line: line}
		}
		stat, ok := parseStat(parts[1])
		if !ok {
			continue
		}
		block.Put(stat, atoiOrZero(parts[0]))
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// indexFold is strings.Index ignoring ASCII case of substr.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
