package graph

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// EntityLabel is the node label every knowledge-graph entity carries.
const EntityLabel = "Entity"

// FindRelationsCypher matches the entity named $name and every relationship
// touching it in either direction. It is the only query graphqa issues and it
// never writes.
const FindRelationsCypher = `MATCH (n:` + EntityLabel + ` {name: $name})-[r]-(m:` + EntityLabel + `)
RETURN n.name AS source, type(r) AS rel, m.name AS target`

// Relation is one edge incident to a looked-up entity, oriented from that
// entity: Source is always the name that was searched for.
type Relation struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Target string `json:"target"`
}

// RelationFinder looks up the relations incident to a named entity.
type RelationFinder interface {
	FindRelations(ctx context.Context, entityName string) ([]Relation, error)
}

// RelationStore implements RelationFinder over any GraphClient.
type RelationStore struct {
	client GraphClient
}

// NewRelationStore returns a RelationStore backed by client. The store does
// not own the client; closing it remains the caller's job.
func NewRelationStore(client GraphClient) *RelationStore {
	return &RelationStore{client: client}
}

// FindRelations returns the (source, type, target) triples for every edge
// incident to the entity whose name equals entityName exactly, in the order
// the store returned them. An unknown name yields an empty slice.
func (s *RelationStore) FindRelations(ctx context.Context, entityName string) ([]Relation, error) {
	result, err := s.client.Query(ctx, FindRelationsCypher, map[string]any{"name": entityName})
	if err != nil {
		return nil, err
	}

	relations := make([]Relation, 0, len(result.Records))
	for i, record := range result.Records {
		rel, err := relationFromRecord(record)
		if err != nil {
			return nil, types.WrapError(ErrCodeGraphQueryFailed,
				fmt.Sprintf("row %d for entity %q", i, entityName), err)
		}
		relations = append(relations, rel)
	}
	return relations, nil
}

func relationFromRecord(record map[string]any) (Relation, error) {
	source, err := stringColumn(record, "source")
	if err != nil {
		return Relation{}, err
	}
	relType, err := stringColumn(record, "rel")
	if err != nil {
		return Relation{}, err
	}
	target, err := stringColumn(record, "target")
	if err != nil {
		return Relation{}, err
	}
	return Relation{Source: source, Type: relType, Target: target}, nil
}

func stringColumn(record map[string]any, column string) (string, error) {
	v, ok := record[column]
	if !ok {
		return "", types.NewError(ErrCodeGraphResultParsing, "missing column "+column)
	}
	s, ok := v.(string)
	if !ok {
		return "", types.NewError(ErrCodeGraphResultParsing,
			fmt.Sprintf("column %s has type %T, want string", column, v))
	}
	return s, nil
}
