package summarizer

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"textsum/internal/text"
)

// Inputs with a smaller share of Latin letters are outside the vocabulary.
const minLatinShare = 0.5

//nolint:gochecknoglobals // Read-only lookup table.
var englishStopWords = makeSet(strings.Fields(`
a about above after again against all am an and any are as at be because
been before being below between both but by can could did do does doing down
during each few for from further had has have having he her here hers herself
him himself his how i if in into is it its itself just me more most my myself
no nor not now of off on once only or other our ours ourselves out over own
same she should so some such than that the their theirs them themselves then
there these they this those through to too under until up very was we were
what when where which while who whom why will with would you your yours
yourself yourselves s t ll re ve d m
`))

// ExtractiveEngine is an in-process model that selects the most salient
// sentences of the input. Its length unit is words and its output depends
// only on its input.
type ExtractiveEngine struct {
	stopWords map[string]struct{}
}

func NewExtractiveEngine() *ExtractiveEngine {
	return &ExtractiveEngine{stopWords: englishStopWords}
}

func (e *ExtractiveEngine) Name() string {
	return "extractive"
}

type rankedSentence struct {
	index int
	words int
	score float64
}

func (e *ExtractiveEngine) Summarize(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if req.MinLength < 0 || req.MaxLength <= 0 || req.MinLength > req.MaxLength {
		return "", fmt.Errorf("%w (min = %d, max = %d)", ErrInvalidBounds, req.MinLength, req.MaxLength)
	}

	source := text.StripURLs(req.Text)

	total := text.CountWords(source)
	if total == 0 {
		return "", ErrNoWords
	}

	if share := text.LatinShare(source); share < minLatinShare {
		return "", fmt.Errorf("%w (latinShare = %.2f)", ErrUnsupportedScript, share)
	}

	var sentences []string
	for _, sentence := range text.Sentences(source) {
		if text.CountWords(sentence) > 0 {
			sentences = append(sentences, sentence)
		}
	}

	if total <= req.MinLength {
		return strings.Join(sentences, " "), nil
	}

	ranked := e.rank(sentences)
	selected := make(map[int]string, len(ranked))
	count := 0

	for _, r := range ranked {
		if count >= req.MinLength {
			break
		}

		if count+r.words > req.MaxLength {
			continue
		}

		selected[r.index] = sentences[r.index]
		count += r.words
	}

	// Every unselected sentence is longer than the remaining budget here,
	// so the first one is cut to fill it exactly.
	if count < req.MinLength {
		for _, r := range ranked {
			if _, ok := selected[r.index]; ok {
				continue
			}

			selected[r.index] = text.TruncateWords(sentences[r.index], req.MaxLength-count)

			break
		}
	}

	parts := make([]string, 0, len(selected))
	for i := range sentences {
		if sentence, ok := selected[i]; ok {
			parts = append(parts, sentence)
		}
	}

	return strings.Join(parts, " "), nil
}

// rank orders sentences by the density of frequent content words. Ties keep
// the original order.
func (e *ExtractiveEngine) rank(sentences []string) []rankedSentence {
	freq := make(map[string]int)
	maxFreq := 0

	tokenized := make([][]string, len(sentences))
	for i, sentence := range sentences {
		words := text.Words(sentence)
		for j, word := range words {
			words[j] = strings.ToLower(word)
		}
		tokenized[i] = words

		for _, word := range words {
			if e.isStopWord(word) {
				continue
			}

			freq[word]++
			maxFreq = max(maxFreq, freq[word])
		}
	}

	ranked := make([]rankedSentence, 0, len(sentences))
	for i, words := range tokenized {
		var sum float64

		if maxFreq > 0 {
			for _, word := range words {
				if e.isStopWord(word) {
					continue
				}
				sum += float64(freq[word]) / float64(maxFreq)
			}
		}

		ranked = append(ranked, rankedSentence{
			index: i,
			words: len(words),
			score: sum / float64(len(words)),
		})
	}

	slices.SortStableFunc(ranked, func(a, b rankedSentence) int {
		return cmp.Compare(b.score, a.score)
	})

	return ranked
}

func (e *ExtractiveEngine) isStopWord(word string) bool {
	_, ok := e.stopWords[word]

	return ok
}

func makeSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}

	return set
}
