// Package prompt assembles retrieved context and renders the instruction
// prompt sent to the answer service. The template and preambles are fixed
// strings that downstream consumers expect bit-for-bit; substitution is
// purely textual, with no escaping of embedded content.
package prompt

import "strings"

// DefaultSystemPrompt is the fixed safety preamble.
const DefaultSystemPrompt = `You are a helpful, respectful, and honest assistant. Always answer as helpfully as possible, while being safe. Your answers should not include any harmful, unethical, racist, sexist, toxic, dangerous, or illegal content. Please ensure that your responses are socially unbiased and positive in nature.

If a question does not make any sense, or is not factually coherent, explain why instead of answering something not correct. If you don't know the answer to a question, please don't share false information.`

// RetrievalInstruction tells the model how to use the retrieved context.
const RetrievalInstruction = "Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know; don't try to make up an answer."

// Assemble concatenates chunk texts in the given result order, separated by
// a single space, then hard-cuts the result to at most maxChars characters.
// The cut is not word-aware. Positions in order must be valid indexes into
// chunks. An empty order yields an empty string.
func Assemble(chunks []string, order []int, maxChars int) string {
	if len(order) == 0 {
		return ""
	}
	selected := make([]string, len(order))
	for i, pos := range order {
		selected[i] = chunks[pos]
	}
	joined := strings.Join(selected, " ")
	runes := []rune(joined)
	if len(runes) > maxChars {
		joined = string(runes[:maxChars])
	}
	return joined
}

// Build renders the instruction prompt. It is a pure function: identical
// inputs always produce byte-identical output.
func Build(systemPrompt, context, question string) string {
	var b strings.Builder
	b.WriteString("[INST] <<SYS>>\n")
	b.WriteString(systemPrompt)
	b.WriteString("\n<</SYS>>\n\n")
	b.WriteString(RetrievalInstruction)
	b.WriteString("\n\n")
	b.WriteString(context)
	b.WriteString("\n\nQuestion : ")
	b.WriteString(question)
	b.WriteString(" [/INST]")
	return b.String()
}
