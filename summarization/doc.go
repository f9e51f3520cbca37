// Package summarization defines the transcript-to-minutes stage contract
// and common types.
//
// Backends are interchangeable behind Provider: a deterministic
// keyword-driven mock, and summarization/ollama for a local LLM. Model
// output is never trusted to be well-formed; ParseModelOutput degrades
// malformed replies to a plain-text summary instead of failing the stage.
package summarization
