package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"
)

// CassandraImage is the image used by integration tests.
const CassandraImage = "cassandra:4.1"

// StartCassandra starts a single-node Cassandra container and waits until it
// accepts CQL sessions. The container is terminated when the test completes.
//
// Parameters:
//   - ctx: Context for container operations
//   - t: Testing context for cleanup registration
//
// Returns:
//   - string: The contact point in host:port form
//   - error: Error if the container fails to start or never becomes ready
func StartCassandra(ctx context.Context, t *testing.T) (string, error) {
	t.Helper()

	container, err := cassandra.Run(ctx, CassandraImage,
		testcontainers.WithEnv(map[string]string{
			"HEAP_NEWSIZE":     "128M",
			"MAX_HEAP_SIZE":    "512M",
			"CASSANDRA_SNITCH": "SimpleSnitch",
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start Cassandra container: %w", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Cassandra container: %v", err)
		}
	})

	host, err := container.ConnectionHost(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get connection host: %w", err)
	}

	// The container reports ready slightly before CQL is usable; probe the
	// system keyspace until a session sticks.
	cluster := gocql.NewCluster(host)
	cluster.Keyspace = "system"
	cluster.Timeout = 60 * time.Second
	cluster.ConnectTimeout = 60 * time.Second

	var session *gocql.Session
	for i := 0; i < 10; i++ {
		session, err = cluster.CreateSession()
		if err == nil {
			session.Close()

			return host, nil
		}
		t.Logf("waiting for Cassandra to be ready (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	return "", fmt.Errorf("failed to create session after retries: %w", err)
}
