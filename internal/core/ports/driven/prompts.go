package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names with no default return an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptGroundedAnswer restricts the model to the retrieved context.
	// The template expects two %s placeholders: the context block, then the question.
	PromptGroundedAnswer = "grounded_answer"
)
