// Package ai defines the provider-agnostic chat contract used by mathprose
// to talk to language models. It contains the [Provider] interface together
// with the generic request/response models that concrete providers (see the
// groq and ollama subpackages) translate to and from their own wire formats.
package ai
