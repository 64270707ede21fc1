package provider

import (
	"context"
	"fmt"
)

// LLMProvider defines the interface for the external answer-generation
// collaborator. It consumes a fully built prompt and returns plain text.
type LLMProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// BuildPrompt assembles the instruction block handed to the generator.
// The context string is the numbered block produced by the retrieval
// core; the model is told to reference those labels in its answer.
func BuildPrompt(query, context string) string {
	if context == "" {
		context = "No relevant documents found."
	}

	return "You are a secure offline document assistant. Answer strictly using the provided context.\n" +
		"Include numbered citations like [1], [2] referencing the source documents.\n" +
		"If the context does not contain relevant information, say so clearly. Be precise and professional.\n\n" +
		fmt.Sprintf("CONTEXT:\n%s\n\nQUESTION:\n%s\n\nANSWER:\n", context, query)
}
