//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/adapter/postgres"
	"github.com/clementchett/Zane-Food-Tracker/internal/domain"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func dsnFor(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/tracker?sslmode=disable", host, port.Port())
}

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "tracker",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", dsnFor).WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(termCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return dsnFor(host, port)
}

func TestPostgresStoreIntegration(t *testing.T) {
	ctx := context.Background()
	db, err := postgres.Open(startPostgres(ctx, t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, ok, err := db.Read(ctx, domain.EntriesKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, db.Write(ctx, domain.EntriesKey, `[]`))
	require.NoError(t, db.Write(ctx, domain.EntriesKey, `[{"id":"a","timestamp":1,"type":"MILK","amountMl":90}]`))

	v, ok, err := db.Read(ctx, domain.EntriesKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, v, `"amountMl":90`)

	sessions := postgres.NewSessionRepo(db)
	now := time.Now()
	require.NoError(t, sessions.Create(ctx, domain.Session{Token: "t1", Subject: "passcode", UserAgent: "ua", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, sessions.Create(ctx, domain.Session{Token: "t2", Subject: "passcode", UserAgent: "ua", ExpiresAt: now.Add(-time.Hour), CreatedAt: now}))

	s, err := sessions.GetByToken(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "ua", s.UserAgent)

	require.NoError(t, sessions.DeleteExpired(ctx, now))
	s, err = sessions.GetByToken(ctx, "t2")
	require.NoError(t, err)
	require.Nil(t, s)

	require.NoError(t, sessions.Delete(ctx, "t1"))
	s, err = sessions.GetByToken(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, s)
}
