// Package containers starts throwaway postgres instances, seeded with
// the scheduletf schema, for database tests.
package containers

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "postgres:16.3-alpine"

type DBContainer struct {
	container *postgres.PostgresContainer
}

func NewDBContainer(ctx context.Context) (*DBContainer, error) {
	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("scheduletf"),
		postgres.WithUsername("tfuser"),
		postgres.WithPassword("secret"),
		postgres.WithInitScripts(schemaPath()),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("error starting postgres container: %w", err)
	}

	return &DBContainer{container: container}, nil
}

// schemaPath resolves schema/schema.sql relative to this source file,
// so the container can be started from any package's tests regardless
// of the working directory.
func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "schema", "schema.sql")
}

func (c *DBContainer) Shutdown(ctx context.Context) error {
	return c.container.Terminate(ctx)
}

func (c *DBContainer) ConnectionString(ctx context.Context) (string, error) {
	// sslmode=disable because the container is not configured for TLS.
	connStr, err := c.container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("error getting connection string: %w", err)
	}
	return connStr, nil
}
