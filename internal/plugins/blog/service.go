package blog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/calebmorris/devfolio/internal/apperror"
	"github.com/calebmorris/devfolio/internal/sanitize"
)

const (
	maxTitleLength   = 200
	maxExcerptLength = 500
	maxTags          = 10
	postsPerPage     = 10
)

// Service handles blog business logic.
type Service interface {
	// ListPublished returns a page of published posts, newest first.
	ListPublished(ctx context.Context, page int) ([]Post, int, error)
	// GetPublished returns a published post by slug. Unpublished posts
	// are reported as not found.
	GetPublished(ctx context.Context, slug string) (*Post, error)
	ListAll(ctx context.Context, page int) ([]Post, int, error)
	Get(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id string) error
	CountPublished(ctx context.Context) (int, error)
}

type blogService struct {
	repo PostRepository
}

// NewService creates a blog service.
func NewService(repo PostRepository) Service {
	return &blogService{repo: repo}
}

func (s *blogService) ListPublished(ctx context.Context, page int) ([]Post, int, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListPublished(ctx, postsPerPage, (page-1)*postsPerPage)
}

func (s *blogService) GetPublished(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, apperror.NewNotFound("post not found")
	}
	return post, nil
}

func (s *blogService) ListAll(ctx context.Context, page int) ([]Post, int, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListAll(ctx, postsPerPage, (page-1)*postsPerPage)
}

func (s *blogService) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *blogService) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validatePost(req.Title, req.Excerpt, req.Tags); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       req.Title,
		Excerpt:     strings.TrimSpace(req.Excerpt),
		ContentHTML: sanitize.HTML(req.ContentHTML),
		Tags:        normalizeTags(req.Tags),
		Published:   req.Published,
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, post.ID)
}

func (s *blogService) Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.ContentHTML != nil {
		post.ContentHTML = sanitize.HTML(*req.ContentHTML)
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(*req.Tags)
	}
	if req.Published != nil {
		// First publish stamps the timestamp; later toggles keep it.
		if *req.Published && !post.Published && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := validatePost(post.Title, post.Excerpt, post.Tags); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *blogService) CountPublished(ctx context.Context) (int, error) {
	return s.repo.CountPublished(ctx)
}

// uniqueSlug turns the title into a URL slug, appending a numeric suffix
// when the plain slug is already taken.
func (s *blogService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Slugify lowercases the input and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func validatePost(title, excerpt string, tags []string) error {
	if title == "" {
		return apperror.NewValidation("title is required")
	}
	if len(title) > maxTitleLength {
		return apperror.NewValidation(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if len(excerpt) > maxExcerptLength {
		return apperror.NewValidation(fmt.Sprintf("excerpt must be at most %d characters", maxExcerptLength))
	}
	if len(tags) > maxTags {
		return apperror.NewValidation(fmt.Sprintf("a post can have at most %d tags", maxTags))
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
