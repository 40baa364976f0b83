// Package projects provides the PostgreSQL-backed project store. Member sets
// live in project_members, whose primary key makes membership a true set.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an empty project. The unique index on name is the only
// duplicate check; a violation yields common.ErrDuplicateName.
func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Project, error) {
	query :=
		`INSERT INTO projects (name)
		 VALUES ($1)
		 RETURNING id, created_at
		 `

	p := &models.Project{Name: name}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateName
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// AddMembers unions userIDs into the member set in a single statement.
// Existing members are skipped by the engine, so concurrent calls never lose
// an update. An unknown user id yields common.ErrInvalidUser.
func (r *PostgresRepository) AddMembers(ctx context.Context, projectID string, userIDs []string) error {
	query :=
		`INSERT INTO project_members (project_id, user_id)
		 SELECT $1, u FROM unnest($2::uuid[]) AS u
		 ON CONFLICT (project_id, user_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, projectID, userIDs); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrInvalidUser
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM project_members
		   WHERE project_id = $1 AND user_id = $2
		 )
		 `

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return ok, nil
}

// GetForMember returns the project only when userID belongs to it. Absence
// and lack of membership both yield common.ErrorNotFound.
func (r *PostgresRepository) GetForMember(ctx context.Context, projectID, userID string) (*models.Project, error) {
	query :=
		`SELECT p.id, p.name, p.created_at,
		        (SELECT string_agg(m.user_id::text, ',' ORDER BY m.added_at, m.user_id)
		           FROM project_members m WHERE m.project_id = p.id)
		 FROM projects p
		 WHERE p.id = $1
		   AND EXISTS (SELECT 1 FROM project_members g WHERE g.project_id = p.id AND g.user_id = $2)
		 `

	var (
		p       models.Project
		members sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&p.ID, &p.Name, &p.CreatedAt, &members)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Members = splitMembers(members)

	return &p, nil
}

// ListForMember returns the projects whose member set contains userID,
// newest first.
func (r *PostgresRepository) ListForMember(ctx context.Context, userID string, page models.Page) ([]*models.Project, error) {
	page = page.Normalize()

	query :=
		`SELECT p.id, p.name, p.created_at,
		        (SELECT string_agg(m.user_id::text, ',' ORDER BY m.added_at, m.user_id)
		           FROM project_members m WHERE m.project_id = p.id)
		 FROM projects p
		 JOIN project_members g ON g.project_id = p.id AND g.user_id = $1
		 ORDER BY p.created_at DESC, p.id
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		var (
			id, name  string
			createdAt time.Time
			members   sql.NullString
		)
		if err := rows.Scan(&id, &name, &createdAt, &members); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &models.Project{ID: id, Name: name, CreatedAt: createdAt, Members: splitMembers(members)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func splitMembers(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	return strings.Split(s.String, ",")
}
