package numext

import (
	"errors"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParserSectionErrors(t *testing.T) {
	inner, err := NewParser(None, Line("#!.+i"), None)
	require.NoError(t, err)

	cases := []struct {
		name             string
		head, body, tail Section
	}{
		{"missing_body", Line("~"), None, None},
		{"empty_body", None, Lines(), None},
		{"nested_head", Nested(inner), Line("~"), None},
		{"nested_tail", None, Line("~"), Nested(inner)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser(tc.head, tc.body, tc.tail)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadSection)
		})
	}
}

func TestNewParserCompileErrors(t *testing.T) {
	_, err := NewParser(None, Line("bogus"), None)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadToken)

	_, err = NewParser(Line("@?foo"), Line("~"), None)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLineCompile)

	var perr *Error
	require.True(t, errors.As(err, &perr))
}

func TestParserEmptyPatternMatchesBlankLine(t *testing.T) {
	prs, err := NewParser(None, Line(""), None)
	require.NoError(t, err)

	re := regexp2.MustCompile(prs.Pattern(), regexp2.None)

	m, err := re.FindStringMatch("")
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = re.FindStringMatch("3")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestParserMultilineBodyWithBlankLines(t *testing.T) {
	prs, err := NewParser(
		None,
		Lines("", "#!.+i", "", "#!.+i", "", "", "#!.+i"),
		None,
	)
	require.NoError(t, err)

	blocks, err := prs.CaptureBody("\n1\n\n2\n\n\n4")
	require.NoError(t, err)

	want := []Block{{Rows: [][]string{{"1", "2", "4"}}}}
	assert.Equal(t, want, blocks)
}

func TestParserOptionalSpaceAfterLiteral(t *testing.T) {
	text := "1 2 3 4 5\nVALUE= 1\nVALUE= 2 \nVALUE=10"
	want := []Block{{Rows: [][]string{{"1"}, {"2"}, {"10"}}}}

	good, err := NewParser(Line("#++i"), Line("@o.VALUE= #!..i"), None)
	require.NoError(t, err)
	fail, err := NewParser(Line("#++i"), Line("@.VALUE= #!..i"), None)
	require.NoError(t, err)

	got, err := good.CaptureBody(text)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = fail.CaptureBody(text)
	require.NoError(t, err)
	assert.NotEqual(t, want, got)
}

func TestParserOptionalSpaceAfterNumber(t *testing.T) {
	text := "\n1 2 3 4 5\n23 .\n23.\n-3e4 .\n-3e4.\n"
	want := []Block{{Rows: [][]string{{"23"}, {"23"}, {"-3e4"}, {"-3e4"}}}}

	good, err := NewParser(Line("#++i"), Line("#o!..g @.."), None)
	require.NoError(t, err)
	fail, err := NewParser(Line("#++i"), Line("#!..g @.."), None)
	require.NoError(t, err)

	got, err := good.CaptureBody(text)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = fail.CaptureBody(text)
	require.NoError(t, err)
	assert.NotEqual(t, want, got)
}

func TestParserCaptureEndsWithoutSections(t *testing.T) {
	prs, err := NewParser(None, Line("#!.+i"), None)
	require.NoError(t, err)

	head, err := prs.CaptureHead("12")
	require.NoError(t, err)
	assert.Empty(t, head)

	tail, err := prs.CaptureTail("12")
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestParserNoMatchIsEmptyNotError(t *testing.T) {
	prs, err := NewParser(Line("@.$data"), Line("#!.+i"), None)
	require.NoError(t, err)

	blocks, err := prs.CaptureBody("nothing relevant here")
	require.NoError(t, err)
	assert.Empty(t, blocks)

	head, err := prs.CaptureHead("nothing relevant here")
	require.NoError(t, err)
	assert.Empty(t, head)
}

func TestParserGroupAllocation(t *testing.T) {
	inner, err := NewParser(Line("#!.+i"), Line("#!+.f"), None)
	require.NoError(t, err)

	outer, err := NewParser(Line("#!.+i"), Nested(inner), Line("#!++i"))
	require.NoError(t, err)

	require.NotNil(t, outer.headPat)
	assert.Equal(t, []string{"g0"}, outer.headPat.groups)

	require.NotNil(t, outer.inner)
	assert.Equal(t, []string{"g1"}, outer.inner.headPat.groups)
	assert.Equal(t, []string{"g2"}, outer.inner.bodyPat.groups)

	require.NotNil(t, outer.tailPat)
	assert.Equal(t, []string{"g3"}, outer.tailPat.groups)

	assert.Equal(t, 4, outer.nextID)

	// The supplied nested parser keeps its own zero-based ids.
	assert.Equal(t, []string{"g0"}, inner.headPat.groups)
	assert.Equal(t, []string{"g1"}, inner.bodyPat.groups)
}

func TestParserPatternDeterministic(t *testing.T) {
	build := func() *Parser {
		return Must(NewParser(
			Lines("@.$vibrational_frequencies", "#!.+i"),
			Line("#.+i #!..f"),
			Lines("~", "@.$normal_modes", "#!++i"),
		))
	}
	assert.Equal(t, build().Pattern(), build().Pattern())
}

const repeatedBlockData = `$top
    1     2     3
    0.2   0.3   0.4
    0.3   0.4   0.6
    4     5     6
    0.1   0.1   0.1
    0.5   0.5   0.5

$top
    7     8     9
    0.2   0.2   0.2
    0.6   0.6   0.6
    1     2     3
    0.4   0.4   0.4
    0.8   0.8   0.8
`

// Captures of an outer parser with a nested body must equal the nested
// parser's own captures over the outer windows.
func TestParserNestedCompositionCommutes(t *testing.T) {
	inner, err := NewParser(Line("#++i"), Line("#!+.f"), None)
	require.NoError(t, err)
	outer, err := NewParser(Line("@.$top"), Nested(inner), None)
	require.NoError(t, err)

	outerBlocks, err := outer.CaptureBody(repeatedBlockData)
	require.NoError(t, err)
	require.Len(t, outerBlocks, 2)

	var flattened []Block
	for _, b := range outerBlocks {
		assert.Empty(t, b.Rows)
		flattened = append(flattened, b.Blocks...)
	}

	innerBlocks, err := inner.CaptureBody(repeatedBlockData)
	require.NoError(t, err)
	assert.Equal(t, innerBlocks, flattened)
}

func TestParserRepeatedMultiblock(t *testing.T) {
	inner := Must(NewParser(Line("#++i"), Line("#!+.f"), None))
	outer := Must(NewParser(Line("@.$top"), Nested(inner), None))

	got, err := outer.CaptureBody(repeatedBlockData)
	require.NoError(t, err)

	want := []Block{
		{Blocks: []Block{
			{Rows: [][]string{{"0.2", "0.3", "0.4"}, {"0.3", "0.4", "0.6"}}},
			{Rows: [][]string{{"0.1", "0.1", "0.1"}, {"0.5", "0.5", "0.5"}}},
		}},
		{Blocks: []Block{
			{Rows: [][]string{{"0.2", "0.2", "0.2"}, {"0.6", "0.6", "0.6"}}},
			{Rows: [][]string{{"0.4", "0.4", "0.4"}, {"0.8", "0.8", "0.8"}}},
		}},
	}
	assert.Equal(t, want, got)
}

func TestParserConcurrentUse(t *testing.T) {
	prs := Must(NewParser(Line("@.$top"), Nested(
		Must(NewParser(Line("#++i"), Line("#!+.f"), None)),
	), None))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := prs.CaptureBody(repeatedBlockData)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() {
		Must(NewParser(None, None, None))
	})
	assert.NotPanics(t, func() {
		Must(NewParser(None, Line("~"), None))
	})
}
