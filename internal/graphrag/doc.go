// Package graphrag turns free-text questions into grounding facts drawn from
// the knowledge graph.
//
//	┌────────────────┐   tokens   ┌────────────────┐  relations  ┌──────────────┐
//	│  ExtractTerms  │──────────▶│   Retriever    │◀───────────│ RelationStore│
//	└────────────────┘            └────────────────┘             └──────────────┘
//	                                      │ []Fact
//	                                      ▼
//	                            TracedFactSource (spans, metrics)
//
// ExtractTerms splits a question on whitespace, trims surrounding punctuation
// and drops anything shorter than two characters. Each remaining term is
// looked up as an exact, case-sensitive entity name. Every relation found is
// flattened to the sentence "<source> <type> <target>." and collected into a
// FactSet, which keeps first-seen order and drops exact duplicates.
//
// # Determinism
//
// For a fixed graph and question, Retrieve returns the same facts in the same
// order: terms are processed left to right and relations in store order.
// WithParallelism lets lookups run concurrently, but results are still merged
// in term order, so the output does not change.
//
// # Failures
//
// Retrieval is all-or-nothing. The first store error aborts the call and is
// returned unchanged; a partial fact list is never returned as if complete.
// A term that names no entity contributes nothing and is not an error.
//
// Facts are not normalized by direction: "A R B." and "B R A." are distinct.
package graphrag
