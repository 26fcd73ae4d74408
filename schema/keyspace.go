package schema

import "fmt"

// DefaultKeyspace is the keyspace every table lives in unless overridden.
const DefaultKeyspace = "registrar"

// KeyspaceDDL returns the idempotent keyspace bootstrap statement.
//
// SimpleStrategy with a replication factor of 1 suits a single-node or test
// cluster; production deployments override the keyspace out of band and
// skip schema creation.
func KeyspaceDDL(keyspace string) string {
	return fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s "+
		"WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}", keyspace)
}
