package portfolio

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// mockProjectRepo implements ProjectRepository for testing.
type mockProjectRepo struct {
	createFn       func(ctx context.Context, project *Project) error
	findByIDFn     func(ctx context.Context, id string) (*Project, error)
	findBySlugFn   func(ctx context.Context, slug string) (*Project, error)
	listAllFn      func(ctx context.Context) ([]Project, error)
	listFeaturedFn func(ctx context.Context, limit int) ([]Project, error)
	updateFn       func(ctx context.Context, project *Project) error
	deleteFn       func(ctx context.Context, id string) error
	slugExistsFn   func(ctx context.Context, slug string) (bool, error)
	countFn        func(ctx context.Context) (int, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, project *Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*Project, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("project not found")
}

func (m *mockProjectRepo) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, apperror.NewNotFound("project not found")
}

func (m *mockProjectRepo) ListAll(ctx context.Context) ([]Project, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepo) ListFeatured(ctx context.Context, limit int) ([]Project, error) {
	if m.listFeaturedFn != nil {
		return m.listFeaturedFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProjectRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *mockProjectRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func TestCreateProject_Success(t *testing.T) {
	var stored Project
	repo := &mockProjectRepo{
		createFn: func(ctx context.Context, project *Project) error {
			stored = *project
			return nil
		},
		findByIDFn: func(ctx context.Context, id string) (*Project, error) {
			return &stored, nil
		},
	}

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateProjectRequest{
		Title:   "Invoice Robot",
		Summary: "Automated invoicing for freelancers",
		Tech:    []string{"Go", "MySQL", "go"},
		RepoURL: "https://github.com/calebmorris/invoice-robot",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if stored.Slug != "invoice-robot" {
		t.Errorf("expected slug invoice-robot, got %s", stored.Slug)
	}
	// Tech keeps original casing but deduplicates case-insensitively.
	if len(stored.Tech) != 2 || stored.Tech[0] != "Go" || stored.Tech[1] != "MySQL" {
		t.Errorf("unexpected tech list: %v", stored.Tech)
	}
}

func TestCreateProject_RejectsBadURLs(t *testing.T) {
	svc := NewService(&mockProjectRepo{})

	for _, link := range []string{"ftp://example.com/x", "javascript:alert(1)", "not a url at all://"} {
		_, err := svc.Create(context.Background(), CreateProjectRequest{
			Title:   "P",
			RepoURL: link,
		})
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("link %q: expected 422, got %v", link, err)
		}
	}
}

func TestUpdateProject_TogglesFeatured(t *testing.T) {
	existing := &Project{ID: "p1", Slug: "invoice-robot", Title: "Invoice Robot"}
	repo := &mockProjectRepo{
		findByIDFn: func(ctx context.Context, id string) (*Project, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, project *Project) error {
			*existing = *project
			return nil
		},
	}

	yes := true
	order := 5
	_, err := NewService(repo).Update(context.Background(), "p1", UpdateProjectRequest{
		Featured:  &yes,
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !existing.Featured || existing.SortOrder != 5 {
		t.Errorf("unexpected state after update: %+v", existing)
	}
	if existing.Title != "Invoice Robot" {
		t.Errorf("untouched field changed: %q", existing.Title)
	}
}
