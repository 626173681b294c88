// Package graph is graphqa's read-only gateway to the knowledge graph.
//
// GraphClient abstracts a graph database connection; Neo4jClient is the
// production implementation and MockGraphClient an in-memory one for tests.
// RelationStore builds the one query the rest of the system needs on top of
// a GraphClient: all relations incident to an entity with a given name.
//
//	client, err := graph.NewNeo4jClient(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	rels, err := graph.NewRelationStore(client).FindRelations(ctx, "Paris")
//
// # Sessions
//
// The driver owns a connection pool shared across goroutines. Every Query
// opens a read session, runs one managed read transaction and closes the
// session before returning, including on cancellation. Close releases the
// pool; it is never left to a finalizer.
//
// # Errors
//
// Failures are *types.Error values with one of these codes:
//
//   - ErrCodeGraphConnectionFailed: unreachable store or rejected credentials
//   - ErrCodeGraphConnectionClosed: use before Connect or after Close
//   - ErrCodeGraphQueryFailed: the query itself failed or returned bad rows
//   - ErrCodeGraphQueryTimeout: the caller's context ended first
//   - ErrCodeGraphInvalidConfig: rejected at construction
//
// An entity that does not exist is not an error: FindRelations returns an
// empty slice.
package graph
