package summarizer_test

import (
	"context"
	"errors"
	"sync"

	"textsum/internal/summarizer"
)

// reefParagraph is a coherent English paragraph of exactly 300 words.
const reefParagraph = `
Coral reefs cover less than one percent of the ocean floor, yet they support roughly a quarter of all known marine species. The reefs are built by tiny animals called polyps, which secrete calcium carbonate skeletons that accumulate over thousands of years. Inside the tissue of each polyp live microscopic algae that provide the coral with most of its energy through photosynthesis. This partnership is delicate, because the algae only thrive within a narrow range of water temperature and light. When ocean temperatures rise even one or two degrees above the seasonal maximum, corals expel their algae and turn white, a process known as bleaching. Bleached corals are not dead, but they are starving, and prolonged heat stress often kills them. Scientists have recorded mass bleaching events on reefs across the Pacific, Indian and Atlantic oceans during the past three decades. The Great Barrier Reef alone experienced severe bleaching in 2016, 2017, 2020 and 2022, leaving many sections with little time to recover. Warming is not the only threat, since pollution, overfishing and coastal development also damage reefs. Runoff from farms carries fertilizer that feeds algae blooms, which smother corals and block sunlight. Destructive fishing methods break apart reef structures that took centuries to grow. Despite these pressures, some reefs show surprising resilience, and researchers are studying why certain corals tolerate heat better than others. Conservation groups are restoring damaged reefs by growing coral fragments in underwater nurseries and transplanting them. Local communities that depend on reefs for food and tourism increasingly support marine protected areas. Reducing greenhouse gas emissions remains the most important step for the long term survival of coral reefs, because no local measure can offset sustained ocean warming. Protecting reefs therefore requires both global climate action and careful local management of fishing, pollution and coastal construction.`

type stubEngine struct {
	mu       sync.Mutex
	calls    int
	requests []summarizer.Request
	summary  string
	err      error
	panicMsg string
}

func (s *stubEngine) Name() string {
	return "stub"
}

func (s *stubEngine) Summarize(
	_ context.Context,
	req summarizer.Request,
) (string, error) {
	s.mu.Lock()
	s.calls++
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}

	return s.summary, s.err
}

func (s *stubEngine) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

var errStub = errors.New("model exploded")
