package numext

// Version string
const Version = "v1"

// Helper function which panics if a Parser couldn't successfully be
// constructed. This is how you would use it:
//
//	var freqs = numext.Must(numext.NewParser(
//	    numext.Line("@.$vibrational_frequencies"),
//	    numext.Line("#.+i #!..f"),
//	    numext.None,
//	))
func Must(p *Parser, err error) *Parser {
	if err != nil {
		panic(err)
	}
	return p
}
