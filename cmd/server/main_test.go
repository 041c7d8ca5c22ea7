package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupledger/internal/auth"
	"github.com/mmynk/groupledger/internal/storage/sqlite"
)

func setEnv(t *testing.T, dbPath string) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_IssueToken(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	setEnv(t, dbPath)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-issue-token", "Alice", "-email", "alice@example.com"}, &out)
	require.NoError(t, err)

	values := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, "unexpected output line %q", line)
		values[k] = v
	}
	require.NotEmpty(t, values["member_id"])

	sess, err := auth.NewJWTManager("test-secret", time.Hour).Session(values["token"])
	require.NoError(t, err)
	assert.Equal(t, values["member_id"], sess.MemberID)

	// run closed its store; the database opens again cleanly.
	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()
	member, err := store.GetMember(context.Background(), values["member_id"])
	require.NoError(t, err)
	assert.Equal(t, "Alice", member.DisplayName)
}

func TestRun_ReturnsErrors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		setEnv(t, filepath.Join(t.TempDir(), "ledger.db"))
		t.Setenv("JWT_SECRET", "")

		err := run(context.Background(), nil, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("unknown flag", func(t *testing.T) {
		err := run(context.Background(), []string{"-nope"}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
