package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"mvdan.cc/xurls/v2"
)

const byteOrderMark = "\ufeff"

//nolint:gochecknoglobals // Compiled once, read-only.
var strictURLRe = xurls.Strict()

// Normalize converts s to NFC, unifies line endings and trims surrounding
// whitespace.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, byteOrderMark)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.TrimSpace(norm.NFC.String(s))
}

// StripURLs removes every URL with a scheme from s.
func StripURLs(s string) string {
	return strictURLRe.ReplaceAllString(s, "")
}

// WordSpans returns byte offsets [start, end) of every word in s. A word is a
// run of letters, digits, marks and underscores.
func WordSpans(s string) [][2]int {
	var spans [][2]int
	start := -1

	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			spans = append(spans, [2]int{start, i})
			start = -1
		}
	}

	if start >= 0 {
		spans = append(spans, [2]int{start, len(s)})
	}

	return spans
}

func Words(s string) []string {
	spans := WordSpans(s)
	words := make([]string, 0, len(spans))

	for _, span := range spans {
		words = append(words, s[span[0]:span[1]])
	}

	return words
}

func CountWords(s string) int {
	return len(WordSpans(s))
}

// TruncateWords keeps the first n words of s together with the text between
// them.
func TruncateWords(s string, n int) string {
	if n <= 0 {
		return ""
	}

	spans := WordSpans(s)
	if len(spans) <= n {
		return s
	}

	return strings.TrimSpace(s[:spans[n-1][1]])
}

// Sentences splits s on terminal punctuation followed by whitespace and on
// blank lines. Whitespace inside every sentence is collapsed.
func Sentences(s string) []string {
	var sentences []string
	start := 0

	flush := func(end int) {
		if sentence := collapseSpace(s[start:end]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case isTerminal(r):
			j := i + size
			for j < len(s) {
				next, nextSize := utf8.DecodeRuneInString(s[j:])
				if !isTerminal(next) && !isCloser(next) {
					break
				}
				j += nextSize
			}

			if j == len(s) || startsWithSpace(s[j:]) {
				flush(j)
			}
			i = j
		case r == '\n' && isParagraphBreak(s[i+size:]):
			flush(i)
			i += size
		default:
			i += size
		}
	}
	flush(len(s))

	return sentences
}

// LatinShare reports which fraction of the letters in s belong to the Latin
// script. It is 0 when s has no letters.
func LatinShare(s string) float64 {
	var letters, latin int

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}

		letters++
		if unicode.Is(unicode.Latin, r) {
			latin++
		}
	}

	if letters == 0 {
		return 0
	}

	return float64(latin) / float64(letters)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	default:
		return false
	}
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	default:
		return false
	}
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.IsSpace(r)
}

func isParagraphBreak(rest string) bool {
	trimmed := strings.TrimLeft(rest, " \t\r")

	return strings.HasPrefix(trimmed, "\n")
}
