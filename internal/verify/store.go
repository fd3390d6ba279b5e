package verify

import "sync"

type cacheKey struct {
	questionID string
	answerID   string
}

// Store owns the shared mutable state behind the simulated verifier: the
// memoization cache keyed by (question, answer) and the first-check-wins
// correct-answer registry. Lifetime is caller-controlled: one store per
// process in the app, one per test otherwise. All access is serialized
// by a mutex so concurrent checks stay safe.
type Store struct {
	mu      sync.Mutex
	answers map[string]string
	cache   map[cacheKey]Outcome
}

// NewStore creates an empty verification store.
func NewStore() *Store {
	return &Store{
		answers: make(map[string]string),
		cache:   make(map[cacheKey]Outcome),
	}
}

// fixAnswer returns the question's correct answer id, fixing it to
// candidate if none is registered yet (atomic set-if-absent). The first
// answer ever checked for a question wins and stays fixed for the life
// of the store. A real backend would hold a pre-authored correct answer
// instead; this is a reference-contract simplification.
func (s *Store) fixAnswer(questionID, candidate string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fixed, ok := s.answers[questionID]; ok {
		return fixed
	}
	s.answers[questionID] = candidate
	return candidate
}

// lookup returns the cached outcome for the pair, if any.
func (s *Store) lookup(questionID, answerID string) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.cache[cacheKey{questionID, answerID}]
	return out, ok
}

// memoize records a successfully resolved outcome.
func (s *Store) memoize(questionID, answerID string, out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[cacheKey{questionID, answerID}] = out
}
