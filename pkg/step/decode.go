package step

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// DecodeString resolves the control directives of an exchange-file string
// body (quote doubling already removed):
//
//	\\            backslash
//	\S\c          c + 128 in the active ISO 8859 page
//	\Pa\          page switch (ignored, Latin-1 is assumed)
//	\X\hh         one ISO 8859-1 code point
//	\X2\hhhh…\X0\ UTF-16 code units
//	\X4\hhhhhhhh…\X0\ UTF-32 code points
func DecodeString(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}

	var out strings.Builder
	out.Grow(len(raw))

	for i := 0; i < len(raw); {
		ch := raw[i]
		if ch != '\\' {
			out.WriteByte(ch)
			i++
			continue
		}

		rest := raw[i:]
		switch {
		case strings.HasPrefix(rest, `\\`):
			out.WriteByte('\\')
			i += 2

		case strings.HasPrefix(rest, `\S\`):
			if len(rest) < 4 {
				return "", fmt.Errorf("truncated \\S\\ directive")
			}
			out.WriteRune(rune(rest[3]) + 0x80)
			i += 4

		case strings.HasPrefix(rest, `\P`) && len(rest) >= 4 && rest[3] == '\\':
			i += 4

		case strings.HasPrefix(rest, `\X2\`):
			n, err := decodeWide(&out, rest[4:], 4)
			if err != nil {
				return "", err
			}
			i += 4 + n

		case strings.HasPrefix(rest, `\X4\`):
			n, err := decodeWide(&out, rest[4:], 8)
			if err != nil {
				return "", err
			}
			i += 4 + n

		case strings.HasPrefix(rest, `\X\`):
			if len(rest) < 5 {
				return "", fmt.Errorf("truncated \\X\\ directive")
			}
			code, err := strconv.ParseUint(rest[3:5], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\X\\ directive %q", rest[:5])
			}
			out.WriteRune(rune(code))
			i += 5

		default:
			// A lone backslash is kept literally; some writers do not escape it.
			out.WriteByte(ch)
			i++
		}
	}

	return out.String(), nil
}

// decodeWide decodes hex groups of the given width up to the \X0\ terminator
// and returns the number of bytes consumed, terminator included.
func decodeWide(out *strings.Builder, s string, width int) (int, error) {
	end := strings.Index(s, `\X0\`)
	if end < 0 {
		return 0, fmt.Errorf("unterminated \\X%d\\ directive", width/2)
	}
	body := s[:end]
	if len(body)%width != 0 {
		return 0, fmt.Errorf("malformed \\X%d\\ directive %q", width/2, body)
	}

	units := make([]uint16, 0, len(body)/width)
	for j := 0; j < len(body); j += width {
		code, err := strconv.ParseUint(body[j:j+width], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex %q", body[j:j+width])
		}
		if width == 4 {
			units = append(units, uint16(code))
			continue
		}
		out.WriteString(string(utf16.Decode(units)))
		units = units[:0]
		out.WriteRune(rune(code))
	}
	out.WriteString(string(utf16.Decode(units)))

	return end + len(`\X0\`), nil
}
