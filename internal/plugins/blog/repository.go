package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// PostRepository defines data access for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]Post, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]Post, int, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountPublished(ctx context.Context) (int, error)
}

type mariaDBPostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a MariaDB-backed post repository.
func NewPostRepository(db *sql.DB) PostRepository {
	return &mariaDBPostRepository{db: db}
}

const postColumns = `id, slug, title, excerpt, content_html, tags, published, published_at, created_at, updated_at`

func (r *mariaDBPostRepository) Create(ctx context.Context, post *Post) error {
	tags, err := marshalTags(post.Tags)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to encode post tags: %w", err))
	}

	query := `INSERT INTO posts (id, slug, title, excerpt, content_html, tags, published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Excerpt, post.ContentHTML,
		tags, post.Published, post.PublishedAt,
	)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to create post: %w", err))
	}
	return nil
}

func (r *mariaDBPostRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = ?`, postColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *mariaDBPostRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE slug = ?`, postColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

func (r *mariaDBPostRepository) ListPublished(ctx context.Context, limit, offset int) ([]Post, int, error) {
	return r.list(ctx, `WHERE published = TRUE`, `published_at DESC`, limit, offset)
}

func (r *mariaDBPostRepository) ListAll(ctx context.Context, limit, offset int) ([]Post, int, error) {
	return r.list(ctx, ``, `created_at DESC`, limit, offset)
}

func (r *mariaDBPostRepository) list(ctx context.Context, where, order string, limit, offset int) ([]Post, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to count posts: %w", err))
	}

	query := fmt.Sprintf(`SELECT %s FROM posts %s ORDER BY %s LIMIT ? OFFSET ?`, postColumns, where, order)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to list posts: %w", err))
	}
	defer rows.Close()

	posts := make([]Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to iterate posts: %w", err))
	}
	return posts, total, nil
}

func (r *mariaDBPostRepository) Update(ctx context.Context, post *Post) error {
	tags, err := marshalTags(post.Tags)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to encode post tags: %w", err))
	}

	query := `UPDATE posts
		SET title = ?, excerpt = ?, content_html = ?, tags = ?, published = ?, published_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Excerpt, post.ContentHTML, tags,
		post.Published, post.PublishedAt, post.ID,
	)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to update post: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("post not found")
	}
	return nil
}

func (r *mariaDBPostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to delete post: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("post not found")
	}
	return nil
}

func (r *mariaDBPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, apperror.NewInternal(fmt.Errorf("failed to check post slug: %w", err))
	}
	return exists, nil
}

func (r *mariaDBPostRepository) CountPublished(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE published = TRUE`).Scan(&total)
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("failed to count posts: %w", err))
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *mariaDBPostRepository) scanOne(row *sql.Row) (*Post, error) {
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

func scanPost(row rowScanner) (*Post, error) {
	var post Post
	var tags sql.NullString
	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.ContentHTML,
		&tags, &post.Published, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("failed to scan post: %w", err))
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &post.Tags); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("failed to decode post tags: %w", err))
		}
	}
	return &post, nil
}

func marshalTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
