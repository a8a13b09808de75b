package numext

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/juju/errors"
)

// Names of the section groups inside an assembled pattern.
const (
	secHead = "head"
	secBody = "body"
	secTail = "tail"
)

// Section designates the head, body or tail region of a Parser: absent
// (None), an ordered sequence of line patterns, or, for the body only,
// a nested parser.
type Section struct {
	lines  []string
	nested *Parser
	set    bool
}

// None is the absent section, for parsers without a head or tail.
var None = Section{}

// Line builds a section from a single line pattern.
func Line(pattern string) Section {
	return Section{lines: []string{pattern}, set: true}
}

// Lines builds a section from an ordered sequence of line patterns.
// Lines("") is a deliberate blank-line pattern, not an absent section.
func Lines(patterns ...string) Section {
	return Section{lines: patterns, set: true}
}

// Nested builds a body section from another parser. The outer body
// then consists of one or more occurrences of the nested parser's
// whole head/body/tail window, with blank lines tolerated between
// occurrences. This is how repeated multi-block structures are
// captured.
func Nested(p *Parser) Section {
	return Section{nested: p, set: true}
}

func (s Section) isNested() bool { return s.nested != nil }

func (s Section) present() bool {
	return s.set && (s.nested != nil || len(s.lines) > 0)
}

// Block is the captured content of one head/body/tail window of a
// document.
//
// For a flat body exactly Rows is populated: one row per match of the
// body pattern within the window, one entry per captured value. A
// one-or-more capture contributes one entry per whitespace-separated
// value it matched. For a nested body exactly Blocks is populated,
// deepening the result by one level per nesting.
type Block struct {
	Rows   [][]string
	Blocks []Block
}

// sectionPattern is one compiled head, body or tail section.
type sectionPattern struct {
	fragment string          // captures off; lines joined by \n
	capRe    *regexp2.Regexp // captures on, anchored per line; rescans a window
	groups   []string        // capture group names in source order
}

// Parser matches a head/body/tail shaped region of a document and
// extracts the captured values of its tokens. The head and tail are
// optional; the body is required and may itself be another Parser.
//
// A Parser is compiled once by NewParser and is immutable afterwards:
// the same value may be used from many goroutines concurrently.
type Parser struct {
	head Section
	body Section
	tail Section

	headPat *sectionPattern
	bodyPat *sectionPattern // nil when the body is nested
	tailPat *sectionPattern
	inner   *Parser // recompiled nested body, ids offset into this parser's range

	pattern string // assembled, with named section groups
	plain   string // assembled, anonymous; used when embedded in an outer parser
	re      *regexp2.Regexp
	nextID  int
}

// NewParser builds and compiles a parser from its three sections. Pass
// None to omit the head or tail. Construction fails with ErrBadToken,
// ErrLineCompile or ErrBadSection; a constructed parser never fails
// afterwards except for faults inside the regex engine.
func NewParser(head, body, tail Section) (*Parser, error) {
	p, _, err := compileParser(head, body, tail, 0)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}

// compileParser compiles the three sections with capture group ids
// allocated from startID on, in head, body, tail order. A nested body
// is recompiled from its definition over the reserved id range; the
// parser value supplied by the caller is never touched.
func compileParser(head, body, tail Section, startID int) (*Parser, int, error) {
	if !body.set {
		return nil, startID, badSection("parser requires a body")
	}
	if body.set && !body.isNested() && len(body.lines) == 0 {
		return nil, startID, badSection("body has no line patterns")
	}
	if head.isNested() || tail.isNested() {
		return nil, startID, badSection("nested parsers are only supported as the body")
	}

	p := &Parser{head: head, body: body, tail: tail}
	id := startID
	var err error

	if head.present() {
		p.headPat, id, err = compileSection(head.lines, id)
		if err != nil {
			return nil, startID, errors.Annotatef(err, "head section")
		}
	}
	if body.isNested() {
		n := body.nested
		p.inner, id, err = compileParser(n.head, n.body, n.tail, id)
		if err != nil {
			return nil, startID, errors.Annotatef(err, "nested body")
		}
	} else {
		p.bodyPat, id, err = compileSection(body.lines, id)
		if err != nil {
			return nil, startID, errors.Annotatef(err, "body section")
		}
	}
	if tail.present() {
		p.tailPat, id, err = compileSection(tail.lines, id)
		if err != nil {
			return nil, startID, errors.Annotatef(err, "tail section")
		}
	}
	p.nextID = id

	p.pattern = p.assemble(true)
	p.plain = p.assemble(false)

	// The assembled pattern is generated from fragments that each
	// compiled on their own; failing here is a bug, not user error.
	p.re = regexp2.MustCompile(p.pattern, regexp2.None)

	return p, id, nil
}

// compileSection compiles a sequence of line patterns into one section,
// rendering it both without captures (for assembly into the entry
// pattern) and with captures (for rescanning a matched window).
func compileSection(lines []string, startID int) (*sectionPattern, int, error) {
	var offFrags, capFrags []string
	var groups []string
	id := startID

	for i, line := range lines {
		capFrag, next, err := CompileLine(line, id, true)
		if err != nil {
			return nil, startID, errors.Annotatef(err, "line %d", i)
		}
		offFrag, _, err := CompileLine(line, 0, false)
		if err != nil {
			return nil, startID, errors.Trace(err)
		}
		for g := id; g < next; g++ {
			groups = append(groups, groupPrefix+strconv.Itoa(g))
		}
		id = next
		capFrags = append(capFrags, capFrag)
		offFrags = append(offFrags, offFrag)
	}

	return &sectionPattern{
		fragment: strings.Join(offFrags, `\n`),
		capRe:    regexp2.MustCompile(strings.Join(capFrags, `\n`), regexp2.None),
		groups:   groups,
	}, id, nil
}

// assemble joins the compiled sections into the full pattern. With
// sectionGroups the head, body and tail windows are exposed as named
// groups; without, everything is anonymous so the result can embed
// into an outer parser.
//
// Adjacent lines of a section are glued with a literal newline; the
// gaps between sections and between body repetitions accept one or
// more newlines, so blank separator lines are tolerated there.
func (p *Parser) assemble(sectionGroups bool) string {
	wrap := func(name, frag string) string {
		if sectionGroups {
			return "(?<" + name + ">" + frag + ")"
		}
		return "(?:" + frag + ")"
	}

	var b strings.Builder
	if p.headPat != nil {
		b.WriteString(wrap(secHead, p.headPat.fragment))
		b.WriteString(`\n+`)
	}

	var bodyFrag string
	if p.inner != nil {
		bodyFrag = "(?:" + p.inner.plain + ")"
	} else {
		bodyFrag = "(?:" + p.bodyPat.fragment + ")"
	}
	b.WriteString(wrap(secBody, bodyFrag+`(?:\n+`+bodyFrag+`)*`))

	if p.tailPat != nil {
		b.WriteString(`\n+`)
		b.WriteString(wrap(secTail, p.tailPat.fragment))
	}
	return b.String()
}

// Pattern returns the assembled regex for the whole parser.
func (p *Parser) Pattern() string { return p.pattern }

// CaptureHead extracts the captured values of the head section from
// the first window the parser matches in text. An absent head or a
// document that does not match yields an empty result.
func (p *Parser) CaptureHead(text string) ([]string, error) {
	return p.captureEnds(text, p.headPat, secHead)
}

// CaptureTail extracts the captured values of the tail section from
// the first window the parser matches in text. An absent tail or a
// document that does not match yields an empty result.
func (p *Parser) CaptureTail(text string) ([]string, error) {
	return p.captureEnds(text, p.tailPat, secTail)
}

func (p *Parser) captureEnds(text string, sp *sectionPattern, name string) ([]string, error) {
	if sp == nil {
		return []string{}, nil
	}
	m, err := p.re.FindStringMatch(text)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if m == nil {
		return []string{}, nil
	}
	vals, err := captureValues(sp, groupText(m, name))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return vals, nil
}

// CaptureBody extracts the body captures of every window the parser
// matches in text, one Block per window in document order. A document
// that does not match yields an empty slice.
func (p *Parser) CaptureBody(text string) ([]Block, error) {
	blocks := []Block{}

	m, err := p.re.FindStringMatch(text)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for m != nil {
		window := groupText(m, secBody)

		if p.inner != nil {
			sub, err := p.inner.CaptureBody(window)
			if err != nil {
				return nil, errors.Trace(err)
			}
			blocks = append(blocks, Block{Blocks: sub})
		} else {
			rows, err := captureRows(p.bodyPat, window)
			if err != nil {
				return nil, errors.Trace(err)
			}
			blocks = append(blocks, Block{Rows: rows})
		}

		m, err = p.re.FindNextMatch(m)
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return blocks, nil
}

// captureValues rescans one section window with its capture-enabled
// pattern and returns every captured value in group order, flattened
// across matches. Captured text is split on whitespace, so a
// one-or-more capture yields one value per repetition.
func captureValues(sp *sectionPattern, window string) ([]string, error) {
	vals := []string{}
	err := eachMatch(sp.capRe, window, func(m *regexp2.Match) {
		vals = append(vals, matchValues(sp, m)...)
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return vals, nil
}

// captureRows rescans a flat body window and returns one row of
// captured values per body-pattern match.
func captureRows(sp *sectionPattern, window string) ([][]string, error) {
	rows := [][]string{}
	err := eachMatch(sp.capRe, window, func(m *regexp2.Match) {
		rows = append(rows, matchValues(sp, m))
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return rows, nil
}

func matchValues(sp *sectionPattern, m *regexp2.Match) []string {
	vals := []string{}
	for _, name := range sp.groups {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		vals = append(vals, strings.Fields(g.String())...)
	}
	return vals
}

func eachMatch(re *regexp2.Regexp, text string, fn func(m *regexp2.Match)) error {
	m, err := re.FindStringMatch(text)
	if err != nil {
		return errors.Trace(err)
	}
	for m != nil {
		fn(m)
		m, err = re.FindNextMatch(m)
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func groupText(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
