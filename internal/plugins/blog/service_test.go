package blog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// --- Mock Repository ---

// mockPostRepo implements PostRepository for testing.
type mockPostRepo struct {
	createFn         func(ctx context.Context, post *Post) error
	findByIDFn       func(ctx context.Context, id string) (*Post, error)
	findBySlugFn     func(ctx context.Context, slug string) (*Post, error)
	listPublishedFn  func(ctx context.Context, limit, offset int) ([]Post, int, error)
	listAllFn        func(ctx context.Context, limit, offset int) ([]Post, int, error)
	updateFn         func(ctx context.Context, post *Post) error
	deleteFn         func(ctx context.Context, id string) error
	slugExistsFn     func(ctx context.Context, slug string) (bool, error)
	countPublishedFn func(ctx context.Context) (int, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("post not found")
}

func (m *mockPostRepo) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, apperror.NewNotFound("post not found")
}

func (m *mockPostRepo) ListPublished(ctx context.Context, limit, offset int) ([]Post, int, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockPostRepo) ListAll(ctx context.Context, limit, offset int) ([]Post, int, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *mockPostRepo) CountPublished(ctx context.Context) (int, error) {
	if m.countPublishedFn != nil {
		return m.countPublishedFn(ctx)
	}
	return 0, nil
}

// echoCreated wires FindByID to return whatever Create stored, mirroring
// the real repository's read-after-write.
func echoCreated(repo *mockPostRepo) *Post {
	var stored Post
	repo.createFn = func(ctx context.Context, post *Post) error {
		stored = *post
		return nil
	}
	repo.findByIDFn = func(ctx context.Context, id string) (*Post, error) {
		return &stored, nil
	}
	return &stored
}

// --- Slugify Tests ---

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Go 1.24 is out", "go-1-24-is-out"},
		{"---", ""},
		{"MiXeD CaSe", "mixed-case"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- Create Tests ---

func TestCreatePost_Success(t *testing.T) {
	repo := &mockPostRepo{}
	stored := echoCreated(repo)

	svc := NewService(repo)
	post, err := svc.Create(context.Background(), CreatePostRequest{
		Title:       "  My First Post  ",
		Excerpt:     "A short intro",
		ContentHTML: "<p>Hello</p>",
		Tags:        []string{"Go", "go", " web ", ""},
		Published:   true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if stored.Slug != "my-first-post" {
		t.Errorf("expected slug my-first-post, got %s", stored.Slug)
	}
	if stored.Title != "My First Post" {
		t.Errorf("expected trimmed title, got %q", stored.Title)
	}
	// Tags are lowercased, trimmed, deduplicated.
	if len(stored.Tags) != 2 || stored.Tags[0] != "go" || stored.Tags[1] != "web" {
		t.Errorf("unexpected tags: %v", stored.Tags)
	}
	if !stored.Published || stored.PublishedAt == nil {
		t.Error("expected published post with PublishedAt stamped")
	}
	if post.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestCreatePost_SanitizesContent(t *testing.T) {
	repo := &mockPostRepo{}
	stored := echoCreated(repo)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreatePostRequest{
		Title:       "XSS Check",
		ContentHTML: `<p>fine</p><script>alert("pwn")</script>`,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if strings.Contains(stored.ContentHTML, "<script>") {
		t.Errorf("script tag survived sanitization: %s", stored.ContentHTML)
	}
	if !strings.Contains(stored.ContentHTML, "<p>fine</p>") {
		t.Errorf("safe markup was stripped: %s", stored.ContentHTML)
	}
}

func TestCreatePost_SlugCollisionGetsSuffix(t *testing.T) {
	repo := &mockPostRepo{
		slugExistsFn: func(ctx context.Context, slug string) (bool, error) {
			// "hello" and "hello-2" are taken.
			return slug == "hello" || slug == "hello-2", nil
		},
	}
	stored := echoCreated(repo)

	svc := NewService(repo)
	if _, err := svc.Create(context.Background(), CreatePostRequest{Title: "Hello"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if stored.Slug != "hello-3" {
		t.Errorf("expected slug hello-3, got %s", stored.Slug)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	svc := NewService(&mockPostRepo{})

	tests := []struct {
		name string
		req  CreatePostRequest
	}{
		{"empty title", CreatePostRequest{Title: "   "}},
		{"title too long", CreatePostRequest{Title: strings.Repeat("x", maxTitleLength+1)}},
		{"excerpt too long", CreatePostRequest{Title: "ok", Excerpt: strings.Repeat("x", maxExcerptLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected 422 validation error, got %v", err)
			}
		})
	}
}

// --- Update Tests ---

func TestUpdatePost_PublishStampsOnce(t *testing.T) {
	existing := &Post{
		ID:    "post-1",
		Slug:  "hello",
		Title: "Hello",
	}
	repo := &mockPostRepo{
		findByIDFn: func(ctx context.Context, id string) (*Post, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, post *Post) error {
			*existing = *post
			return nil
		},
	}

	svc := NewService(repo)
	yes := true
	no := false

	if _, err := svc.Update(context.Background(), "post-1", UpdatePostRequest{Published: &yes}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if existing.PublishedAt == nil {
		t.Fatal("expected PublishedAt after first publish")
	}
	first := *existing.PublishedAt

	// Unpublish keeps the original timestamp; republish doesn't reset it.
	if _, err := svc.Update(context.Background(), "post-1", UpdatePostRequest{Published: &no}); err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := svc.Update(context.Background(), "post-1", UpdatePostRequest{Published: &yes}); err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if !existing.PublishedAt.Equal(first) {
		t.Errorf("PublishedAt moved on republish: %v vs %v", existing.PublishedAt, first)
	}
}

func TestUpdatePost_PartialFieldsOnly(t *testing.T) {
	existing := &Post{ID: "post-1", Slug: "hello", Title: "Hello", Excerpt: "keep me"}
	repo := &mockPostRepo{
		findByIDFn: func(ctx context.Context, id string) (*Post, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, post *Post) error {
			*existing = *post
			return nil
		},
	}

	title := "New Title"
	if _, err := NewService(repo).Update(context.Background(), "post-1", UpdatePostRequest{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if existing.Title != "New Title" {
		t.Errorf("title not updated: %q", existing.Title)
	}
	if existing.Excerpt != "keep me" {
		t.Errorf("untouched field changed: %q", existing.Excerpt)
	}
	if existing.Slug != "hello" {
		t.Errorf("slug must not change on update: %q", existing.Slug)
	}
}

// --- Read Path Tests ---

func TestGetPublished_HidesDrafts(t *testing.T) {
	repo := &mockPostRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Post, error) {
			return &Post{ID: "post-1", Slug: slug, Title: "Draft", Published: false}, nil
		},
	}

	_, err := NewService(repo).GetPublished(context.Background(), "draft")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for draft, got %v", err)
	}
}

func TestListPublished_ClampsPage(t *testing.T) {
	var gotOffset = -1
	repo := &mockPostRepo{
		listPublishedFn: func(ctx context.Context, limit, offset int) ([]Post, int, error) {
			gotOffset = offset
			return nil, 0, nil
		},
	}

	if _, _, err := NewService(repo).ListPublished(context.Background(), -3); err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset 0 for clamped page, got %d", gotOffset)
	}
}
