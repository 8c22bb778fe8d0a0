package portfolio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/calebmorris/devfolio/internal/apperror"
	"github.com/calebmorris/devfolio/internal/plugins/blog"
	"github.com/calebmorris/devfolio/internal/sanitize"
)

const (
	maxTitleLength   = 200
	maxSummaryLength = 500
	featuredLimit    = 3
)

// Service handles portfolio business logic.
type Service interface {
	List(ctx context.Context) ([]Project, error)
	// Featured returns the projects highlighted on the landing page.
	Featured(ctx context.Context) ([]Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type portfolioService struct {
	repo ProjectRepository
}

// NewService creates a portfolio service.
func NewService(repo ProjectRepository) Service {
	return &portfolioService{repo: repo}
}

func (s *portfolioService) List(ctx context.Context) ([]Project, error) {
	return s.repo.ListAll(ctx)
}

func (s *portfolioService) Featured(ctx context.Context) ([]Project, error) {
	return s.repo.ListFeatured(ctx, featuredLimit)
}

func (s *portfolioService) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *portfolioService) Get(ctx context.Context, id string) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *portfolioService) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateProject(req.Title, req.Summary, req.RepoURL, req.LiveURL); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	project := &Project{
		ID:              uuid.NewString(),
		Slug:            slug,
		Title:           req.Title,
		Summary:         strings.TrimSpace(req.Summary),
		DescriptionHTML: sanitize.HTML(req.DescriptionHTML),
		Tech:            normalizeTech(req.Tech),
		RepoURL:         strings.TrimSpace(req.RepoURL),
		LiveURL:         strings.TrimSpace(req.LiveURL),
		Featured:        req.Featured,
		SortOrder:       req.SortOrder,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, project.ID)
}

func (s *portfolioService) Update(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		project.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.DescriptionHTML != nil {
		project.DescriptionHTML = sanitize.HTML(*req.DescriptionHTML)
	}
	if req.Tech != nil {
		project.Tech = normalizeTech(*req.Tech)
	}
	if req.RepoURL != nil {
		project.RepoURL = strings.TrimSpace(*req.RepoURL)
	}
	if req.LiveURL != nil {
		project.LiveURL = strings.TrimSpace(*req.LiveURL)
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		project.SortOrder = *req.SortOrder
	}

	if err := validateProject(project.Title, project.Summary, project.RepoURL, project.LiveURL); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *portfolioService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *portfolioService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *portfolioService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := blog.Slugify(title)
	if base == "" {
		base = "project"
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

func validateProject(title, summary, repoURL, liveURL string) error {
	if title == "" {
		return apperror.NewValidation("title is required")
	}
	if len(title) > maxTitleLength {
		return apperror.NewValidation(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if len(summary) > maxSummaryLength {
		return apperror.NewValidation(fmt.Sprintf("summary must be at most %d characters", maxSummaryLength))
	}
	for _, link := range []string{repoURL, liveURL} {
		if link == "" {
			continue
		}
		u, err := url.Parse(strings.TrimSpace(link))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return apperror.NewValidation("links must be absolute http(s) URLs")
		}
	}
	return nil
}

func normalizeTech(tech []string) []string {
	out := make([]string, 0, len(tech))
	seen := make(map[string]struct{}, len(tech))
	for _, t := range tech {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
