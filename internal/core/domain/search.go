package domain

// DefaultTopK is the number of chunks retrieved per question by default.
const DefaultTopK = 4

// FallbackAnswer is returned whenever the document cannot support an answer.
const FallbackAnswer = "I don't know based on the provided document."

// VectorHit is one nearest-neighbour result.
type VectorHit struct {
	// ID is the store-internal entry id, assigned in insertion order.
	ID int

	// Score is the inner product between the query and the entry vector.
	// For L2-normalised vectors this equals cosine similarity.
	Score float64

	// Text is the chunk text stored alongside the vector.
	Text string
}

// Answer is the result of asking a question.
type Answer struct {
	// Answer is the generated text or FallbackAnswer.
	Answer string

	// TopChunks are the retrieved context texts in rank order.
	TopChunks []string
}

// IsFallback reports whether the answer is the refusal sentence.
func (a Answer) IsFallback() bool {
	return a.Answer == FallbackAnswer
}
