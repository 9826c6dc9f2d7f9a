package mocks

// MockRandom is a mock implementation of Random for testing. Unqueued calls
// return zero values and Shuffle leaves order untouched, so tests see
// deterministic seat order and deck order by default.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// ShuffleFunc, if set, is invoked instead of the identity shuffle
	ShuffleFunc func(n int, swap func(i, j int))
}

// NewMockRandom creates a new MockRandom.
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueIntn queues results for Intn calls.
func (r *MockRandom) QueueIntn(results ...int) {
	r.IntnResults = append(r.IntnResults, results...)
}

// QueueString queues results for String calls.
func (r *MockRandom) QueueString(results ...string) {
	r.StringResults = append(r.StringResults, results...)
}

// Intn returns the next queued result, or 0 if the queue is exhausted.
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex < len(r.IntnResults) {
		result := r.IntnResults[r.intnIndex]
		r.intnIndex++
		if result < n {
			return result
		}
		return 0
	}
	return 0
}

// String returns the next queued result. An exhausted queue falls back to a
// deterministic counter-based string, so repeated id generation still yields
// unique values.
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex < len(r.StringResults) {
		result := r.StringResults[r.stringIndex]
		r.stringIndex++
		return result
	}
	n := r.stringIndex
	r.stringIndex++
	result := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		result[i] = alphabet[n%len(alphabet)]
		n /= len(alphabet)
	}
	return string(result)
}

// Shuffle invokes ShuffleFunc if set; otherwise order is left unchanged.
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	if r.ShuffleFunc != nil {
		r.ShuffleFunc(n, swap)
	}
}
