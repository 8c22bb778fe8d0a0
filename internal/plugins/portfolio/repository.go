package portfolio

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// ProjectRepository defines data access for portfolio projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	ListAll(ctx context.Context) ([]Project, error)
	ListFeatured(ctx context.Context, limit int) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type mariaDBProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a MariaDB-backed project repository.
func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &mariaDBProjectRepository{db: db}
}

const projectColumns = `id, slug, title, summary, description_html, tech, repo_url, live_url, featured, sort_order, created_at, updated_at`

func (r *mariaDBProjectRepository) Create(ctx context.Context, project *Project) error {
	tech, err := marshalTech(project.Tech)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to encode project tech: %w", err))
	}

	query := `INSERT INTO projects (id, slug, title, summary, description_html, tech, repo_url, live_url, featured, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		project.ID, project.Slug, project.Title, project.Summary, project.DescriptionHTML,
		tech, project.RepoURL, project.LiveURL, project.Featured, project.SortOrder,
	)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to create project: %w", err))
	}
	return nil
}

func (r *mariaDBProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = ?`, projectColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *mariaDBProjectRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE slug = ?`, projectColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

func (r *mariaDBProjectRepository) ListAll(ctx context.Context) ([]Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY sort_order ASC, created_at DESC`, projectColumns)
	return r.queryProjects(ctx, query)
}

func (r *mariaDBProjectRepository) ListFeatured(ctx context.Context, limit int) ([]Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE featured = TRUE ORDER BY sort_order ASC, created_at DESC LIMIT ?`, projectColumns)
	return r.queryProjects(ctx, query, limit)
}

func (r *mariaDBProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to list projects: %w", err))
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to iterate projects: %w", err))
	}
	return projects, nil
}

func (r *mariaDBProjectRepository) Update(ctx context.Context, project *Project) error {
	tech, err := marshalTech(project.Tech)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to encode project tech: %w", err))
	}

	query := `UPDATE projects
		SET title = ?, summary = ?, description_html = ?, tech = ?, repo_url = ?, live_url = ?, featured = ?, sort_order = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		project.Title, project.Summary, project.DescriptionHTML, tech,
		project.RepoURL, project.LiveURL, project.Featured, project.SortOrder, project.ID,
	)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to update project: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("project not found")
	}
	return nil
}

func (r *mariaDBProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to delete project: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("project not found")
	}
	return nil
}

func (r *mariaDBProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, apperror.NewInternal(fmt.Errorf("failed to check project slug: %w", err))
	}
	return exists, nil
}

func (r *mariaDBProjectRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total)
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("failed to count projects: %w", err))
	}
	return total, nil
}

func (r *mariaDBProjectRepository) scanOne(row *sql.Row) (*Project, error) {
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("project not found")
		}
		return nil, err
	}
	return project, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var project Project
	var tech sql.NullString
	err := row.Scan(
		&project.ID, &project.Slug, &project.Title, &project.Summary, &project.DescriptionHTML,
		&tech, &project.RepoURL, &project.LiveURL, &project.Featured, &project.SortOrder,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("failed to scan project: %w", err))
	}
	if tech.Valid && tech.String != "" {
		if err := json.Unmarshal([]byte(tech.String), &project.Tech); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("failed to decode project tech: %w", err))
		}
	}
	return &project, nil
}

func marshalTech(tech []string) (any, error) {
	if len(tech) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tech)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
