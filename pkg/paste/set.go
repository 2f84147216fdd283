package paste

import (
	"fmt"
	"strconv"
	"strings"
)

// Stat indexes the six core stats.
type Stat int

const (
	HP Stat = iota
	Atk
	Def
	SpA
	SpD
	Spe

	NumStats = 6
)

var statLabels = [NumStats]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

func (s Stat) String() string {
	if s < 0 || s >= NumStats {
		return "Stat(" + strconv.Itoa(int(s)) + ")"
	}
	return statLabels[s]
}

// parseStat matches a stat abbreviation case-insensitively.
func parseStat(abbr string) (Stat, bool) {
	for i, label := range statLabels {
		if strings.EqualFold(abbr, label) {
			return Stat(i), true
		}
	}
	return 0, false
}

// StatKind selects the default applied to stats a paste leaves out.
type StatKind int

const (
	// KindEffort is trained value semantics (EVs): missing means 0.
	KindEffort StatKind = iota
	// KindPotential is innate value semantics (IVs): missing means 31.
	KindPotential
)

const (
	EffortDefault    = 0
	PotentialDefault = 31
)

// Default is the value assumed for a stat the paste did not mention.
func (k StatKind) Default() int {
	if k == KindPotential {
		return PotentialDefault
	}
	return EffortDefault
}

func (k StatKind) label() string {
	if k == KindPotential {
		return "IVs"
	}
	return "EVs"
}

// StatValue is one stat as read from a paste. Set is false when the paste
// did not mention the stat.
type StatValue struct {
	Value int
	Set   bool
}

// StatBlock is a six stat line (EVs or IVs).
type StatBlock struct {
	Kind   StatKind
	Values [NumStats]StatValue
}

// NewStatBlock returns an empty block of the given kind.
func NewStatBlock(kind StatKind) StatBlock {
	return StatBlock{Kind: kind}
}

// Get returns the stat's value, falling back to the kind's default when
// the stat was not set.
func (b StatBlock) Get(s Stat) int {
	v := b.Values[s]
	if !v.Set {
		return b.Kind.Default()
	}
	return v.Value
}

// Put sets a stat explicitly.
func (b *StatBlock) Put(s Stat, value int) {
	b.Values[s] = StatValue{Value: value, Set: true}
}

// String renders the block as a paste line, e.g. "EVs: 252 SpA / 4 SpD".
// Stats equal to the default are left out; an all-default block renders
// as the empty string.
func (b StatBlock) String() string {
	var parts []string
	for i := Stat(0); i < NumStats; i++ {
		v := b.Get(i)
		if v == b.Kind.Default() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", v, i))
	}
	if len(parts) == 0 {
		return ""
	}
	return b.Kind.label() + ": " + strings.Join(parts, " / ")
}

// Set is one creature entry of a paste. Categorical fields hold free text
// until a codec resolves them against the vocabulary.
type Set struct {
	Species string
	Gender  string // "m", "f" or empty
	Item    string
	Ability string
	Level   int // 0 when absent
	Shiny   bool
	Tera    string
	EVs     StatBlock
	Nature  string
	IVs     StatBlock
	Moves   []string
}

// NewSet returns a Set with its stat blocks typed.
func NewSet() Set {
	return Set{
		EVs: NewStatBlock(KindEffort),
		IVs: NewStatBlock(KindPotential),
	}
}

// String renders the set as a paste block without a trailing blank line.
func (s Set) String() string {
	var b strings.Builder

	b.WriteString(s.Species)
	if s.Gender != "" {
		fmt.Fprintf(&b, " (%s)", strings.ToUpper(s.Gender))
	}
	if s.Item != "" {
		fmt.Fprintf(&b, " @ %s", s.Item)
	}
	b.WriteByte('\n')

	if s.Ability != "" {
		fmt.Fprintf(&b, "Ability: %s\n", s.Ability)
	}
	if s.Level != 0 {
		fmt.Fprintf(&b, "Level: %d\n", s.Level)
	}
	if s.Shiny {
		b.WriteString("Shiny: Yes\n")
	}
	if s.Tera != "" {
		fmt.Fprintf(&b, "Tera Type: %s\n", s.Tera)
	}
	if line := s.EVs.String(); line != "" {
		b.WriteString(line + "\n")
	}
	if s.Nature != "" {
		fmt.Fprintf(&b, "%s Nature\n", s.Nature)
	}
	if line := s.IVs.String(); line != "" {
		b.WriteString(line + "\n")
	}
	for _, m := range s.Moves {
		if m == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", m)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Format renders sets as a paste, blocks separated by a blank line.
func Format(sets []Set) string {
	blocks := make([]string, len(sets))
	for i, s := range sets {
		blocks[i] = s.String()
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
