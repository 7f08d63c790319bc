package buildcore

import "strings"

// QuoteCommandLine builds a Windows command line from argv. Each argument is
// double-quoted. Quotes and the backslashes preceding them are escaped the
// way the Microsoft C runtime splits command lines.
func QuoteCommandLine(argv []string) string {
	var sb strings.Builder
	for i, arg := range argv {
		if i > 0 {
			sb.WriteByte(' ')
		}
		quoteArg(&sb, arg)
	}
	return sb.String()
}

func quoteArg(sb *strings.Builder, arg string) {
	sb.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		switch c := arg[i]; c {
		case '\\':
			slashes++
		case '"':
			sb.WriteString(strings.Repeat(`\`, 2*slashes+1))
			sb.WriteByte('"')
			slashes = 0
		default:
			sb.WriteString(strings.Repeat(`\`, slashes))
			sb.WriteByte(c)
			slashes = 0
		}
	}
	sb.WriteString(strings.Repeat(`\`, 2*slashes))
	sb.WriteByte('"')
}
