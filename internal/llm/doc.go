// Package llm talks to hosted chat-completion APIs. It provides an
// OpenAI-compatible provider (the default, used for Infini/DeepSeek and
// OpenAI itself), a Gemini provider, an Ollama provider, and a circuit
// breaker that can wrap any of them.
package llm
