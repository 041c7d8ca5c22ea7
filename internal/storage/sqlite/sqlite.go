// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGroup persists a new group to the database.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group. Foreign keys cascade to its rows.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Splits hang off expenses, not groups.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
		groupID,
	); err != nil {
		return fmt.Errorf("failed to delete group splits: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := requireAffected(res, "group", groupID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateMember persists a new member profile. Email is stored lower-cased.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	member.Email = normalizeEmail(member.Email)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, display_name, email, auth_user_id, payment_handle, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.DisplayName, nullString(member.Email), nullString(member.AuthUserID),
		nullString(member.PaymentHandle), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member profile by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	member := &models.Member{}
	var email, authUserID, handle sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, auth_user_id, payment_handle, created_at
		 FROM members WHERE id = ?`,
		memberID,
	).Scan(&member.ID, &member.DisplayName, &email, &authUserID, &handle, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	member.Email = email.String
	member.AuthUserID = authUserID.String
	member.PaymentHandle = handle.String
	return member, nil
}

// UpdateMember overwrites the editable profile fields.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	member.Email = normalizeEmail(member.Email)
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET display_name = ?, email = ?, payment_handle = ? WHERE id = ?",
		member.DisplayName, nullString(member.Email), nullString(member.PaymentHandle), member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return requireAffected(res, "member", member.ID)
}

// AddMembership places a member in a group.
func (s *SQLiteStore) AddMembership(ctx context.Context, m *models.Membership) error {
	if m.JoinedAt == 0 {
		m.JoinedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO memberships (group_id, member_id, role, authenticated, joined_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, member_id) DO NOTHING`,
		m.GroupID, m.MemberID, string(m.Role), m.Authenticated, m.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check membership insert: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s in group %s: %w", m.MemberID, m.GroupID, storage.ErrAlreadyMember)
	}
	return nil
}

// GetMembership retrieves a single membership.
func (s *SQLiteStore) GetMembership(ctx context.Context, groupID, memberID string) (*models.Membership, error) {
	m := &models.Membership{}
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT group_id, member_id, role, authenticated, joined_at
		 FROM memberships WHERE group_id = ? AND member_id = ?`,
		groupID, memberID,
	).Scan(&m.GroupID, &m.MemberID, &role, &m.Authenticated, &m.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s in group %s: %w", memberID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	m.Role = models.Role(role)
	return m, nil
}

// ListMemberships returns a group's memberships in join order.
func (s *SQLiteStore) ListMemberships(ctx context.Context, groupID string) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, member_id, role, authenticated, joined_at
		 FROM memberships WHERE group_id = ? ORDER BY joined_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var out []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		var role string
		if err := rows.Scan(&m.GroupID, &m.MemberID, &role, &m.Authenticated, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Role = models.Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return out, nil
}

// DeleteMembership removes a member from a group. Splits are left alone;
// purging them first is the caller's job.
func (s *SQLiteStore) DeleteMembership(ctx context.Context, groupID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM memberships WHERE group_id = ? AND member_id = ?",
		groupID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return requireAffected(res, "membership", groupID+"/"+memberID)
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nullString stores empty strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// placeholders returns "?, ?, ..." with n entries for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
