package graphrag

import (
	"strings"

	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
)

// Fact is one relation flattened to a sentence. Two facts are equal when
// their text is equal.
type Fact struct {
	Text string `json:"text"`
}

// String returns the fact sentence.
func (f Fact) String() string {
	return f.Text
}

// FactFromRelation renders rel as "<source> <type> <target>.".
func FactFromRelation(rel graph.Relation) Fact {
	return Fact{Text: rel.Source + " " + rel.Type + " " + rel.Target + "."}
}

// FactSet is an insertion-ordered set of facts. The zero value is not usable;
// create one with NewFactSet. A FactSet is not safe for concurrent use.
type FactSet struct {
	seen  map[string]struct{}
	facts []Fact
}

// NewFactSet returns an empty set.
func NewFactSet() *FactSet {
	return &FactSet{
		seen:  make(map[string]struct{}),
		facts: make([]Fact, 0),
	}
}

// Add appends f unless a fact with the same text is already present. It
// reports whether f was added.
func (s *FactSet) Add(f Fact) bool {
	if _, ok := s.seen[f.Text]; ok {
		return false
	}
	s.seen[f.Text] = struct{}{}
	s.facts = append(s.facts, f)
	return true
}

// Len returns the number of facts in the set.
func (s *FactSet) Len() int {
	return len(s.facts)
}

// Facts returns a copy of the facts in insertion order.
func (s *FactSet) Facts() []Fact {
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// JoinFacts concatenates fact texts with sep.
func JoinFacts(facts []Fact, sep string) string {
	texts := make([]string, len(facts))
	for i, f := range facts {
		texts[i] = f.Text
	}
	return strings.Join(texts, sep)
}
