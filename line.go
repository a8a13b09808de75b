package numext

import (
	"strings"

	"github.com/juju/errors"
)

// CompileLine converts one line pattern of the mini-language into a
// regex fragment that matches exactly one line of the target document.
//
// The fragment is anchored to a line: it matches at the start of the
// input or just after a newline, tolerates leading and trailing
// horizontal whitespace, and requires the end of the input or a
// following newline. The empty pattern "" compiles to a blank-line
// matcher.
//
// Capturing tokens are assigned strictly increasing group ids starting
// at startID; the next free id is returned so that multi-line patterns
// produce globally unique group names. With captures false no named
// groups are emitted and the returned id equals startID.
func CompileLine(line string, startID int, captures bool) (string, int, error) {
	atoms, err := splitAtoms(line)
	if err != nil {
		return "", startID, errors.Trace(err)
	}
	if len(atoms) == 0 && line != "" {
		return "", startID, badLine(line, "pattern is empty after lexing")
	}

	tokens := make([]Token, len(atoms))
	for i, atom := range atoms {
		t, err := ParseToken(atom, captures)
		if err != nil {
			return "", startID, errors.Annotatef(err, "atom %d of line pattern", i)
		}
		tokens[i] = t
	}

	var b strings.Builder
	b.WriteString(lineOpen)
	b.WriteString(hwsOptional)

	id := startID

	// Tracks whether the previous token omitted its closing word
	// boundary (space mode Prohibited or Optional), in which case the
	// current token must not demand an opening word boundary either.
	priorNoSpace := false

	for i, t := range tokens {
		gid := -1
		if t.NeedsGroupID() {
			gid = id
			id++
		}
		frag, err := t.Fragment(gid)
		if err != nil {
			return "", startID, errors.Annotatef(err, "atom %d of line pattern", i)
		}

		if t.IsAny() {
			b.WriteString(frag)
			priorNoSpace = false
			continue
		}

		if !priorNoSpace {
			frag = wordOpen + frag
		}
		if t.Space() == SpaceRequired {
			frag += wordClose
			priorNoSpace = false
		} else {
			priorNoSpace = true
		}
		b.WriteString(frag)

		if i < len(tokens)-1 {
			switch t.Space() {
			case SpaceRequired:
				b.WriteString(hwsRequired)
			case SpaceOptional:
				b.WriteString(hwsOptional)
			}
		}
	}

	b.WriteString(hwsOptional)
	b.WriteString(lineClose)
	return b.String(), id, nil
}
