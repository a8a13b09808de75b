package numext

// Building blocks of the generated regexes. Everything here is a plain
// string fragment; apart from the unnamed groups of the two line
// anchors, grouping is non-capturing throughout, capture enclosure is
// applied per token and word boundaries per line.

const (
	// Horizontal whitespace separating values on a data line.
	hwsRequired = `[ \t]+`
	hwsOptional = `[ \t]*`

	// Zero-width line anchors: a line begins at the start of the input
	// or just after a newline, and ends at the end of the input or
	// just before one.
	lineOpen  = `(^|(?<=\n))`
	lineClose = `($|(?=\n))`

	// Word-boundary lookarounds. The boundary class extends \w with
	// '.', '+' and '-' so that "23." is not accepted as the integer 23
	// and "123-456" is not torn apart unless a token explicitly
	// suppresses the boundary.
	wordOpen  = `(?<![\w.+-])`
	wordClose = `(?![\w.+-])`
)

// Mantissa shapes per number format, unsigned.
var numberShapes = map[NumberFormat]string{
	FmtInteger: `\d+`,
	FmtFloat:   `(?:\d+\.\d*|\.\d+)`,
	FmtSciNot:  `(?:\d+\.?\d*|\.\d+)[eE][+-]?\d+`,
	FmtDecimal: `(?:\d+\.\d*|\.\d+)(?:[eE][+-]?\d+)?`,
	FmtGeneral: `(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`,
}

var signPrefixes = map[Sign]string{
	SignPositive: `\+?`,
	SignNegative: `-`,
	SignAny:      `[+-]?`,
}

type numberKey struct {
	format NumberFormat
	sign   Sign
}

// numberPatterns maps every (format, sign) pair to a fragment matching
// exactly one numeric literal of that shape.
var numberPatterns = buildNumberPatterns()

func buildNumberPatterns() map[numberKey]string {
	pats := make(map[numberKey]string, len(numberShapes)*len(signPrefixes))
	for format, shape := range numberShapes {
		for sign, prefix := range signPrefixes {
			pats[numberKey{format, sign}] = "(?:" + prefix + shape + ")"
		}
	}
	return pats
}
