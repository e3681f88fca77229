// Package normalize resolves an extracted candidate payload into the
// canonical [Record]: one primary MathJS form, one primary LaTeX form, their
// ordered alternative forms, an optional pretty-printed rendition, and the
// query latency. The shape polymorphism of the payload (single string vs.
// list of equivalent forms) is resolved exactly once here; nothing
// downstream re-inspects it.
package normalize
