package blogService_test

import (
	blogService "DevBlogFrontend/internal/api/blog/service"

	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	blogs "DevBlogFrontend/internal/api/blog"
	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/config"
	"DevBlogFrontend/internal/fakeapi"
	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

type testEnv struct {
	svc  blogService.IBlogService
	api  *client.Client
	fake *fakeapi.Server
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	fake := fakeapi.New()
	baseURL := fake.Start()
	t.Cleanup(fake.Close)

	logger := log.NewDiscard()
	api := client.New(logger, client.Config{BaseURL: baseURL})
	svc := blogService.NewBlogService(logger, blogRepository.New(api, logger), config.NewValidator())

	return &testEnv{svc: svc, api: api, fake: fake}
}

func publicCtx() context.Context {
	return session.With(context.Background(), session.New("reader", storage.NewMemory(), "/"))
}

// adminCtx logs the admin in against the fake and returns a context whose
// session sits inside the admin area.
func (e *testEnv) adminCtx(t *testing.T) context.Context {
	t.Helper()

	store := storage.NewMemory()
	ctx := session.With(context.Background(), session.New("admin", store, "/admin"))

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	err := e.api.Post(ctx, "api/auth/login", client.Options{JSON: map[string]string{
		"email":    fakeapi.AdminEmail,
		"password": fakeapi.AdminPassword,
	}}, &resp)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Set(ctx, storage.KeyAccessToken, resp.Data.AccessToken); err != nil {
		t.Fatal(err)
	}

	e.fake.ResetRequests()
	return ctx
}

func pngThumbnail() *blogs.Thumbnail {
	return &blogs.Thumbnail{Filename: "cover.png", ContentType: "image/png", Data: []byte("\x89PNG")}
}

func TestCreateThenGetBySlugRoundTrip(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	created, err := env.svc.CreateBlog(admin, blogs.CreateBlogRequest{
		Title:     "T",
		Slug:      "t",
		Content:   "C",
		Published: false,
		Tags:      []string{"a", "b"},
		Thumbnail: pngThumbnail(),
	})
	if err != nil {
		t.Fatalf("CreateBlog() error = %v", err)
	}

	req, _ := env.fake.LastRequest()
	if got := req.Form["tags"]; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("tags sent = %v, want repeated [a b]", got)
	}
	if got := req.Files["thumbnail"]; len(got) != 1 || got[0] != "cover.png" {
		t.Errorf("thumbnail files = %v, want [cover.png]", got)
	}
	if _, ok := req.Form["series_id"]; ok {
		t.Error("series_id sent on create without a series")
	}

	// A draft is only reachable through the admin endpoint.
	got, err := env.svc.GetBlogByID(admin, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetBlogByID() = (%v, %v)", got, err)
	}
	if _, err := env.svc.SetPublished(admin, created.ID, true); err != nil {
		t.Fatal(err)
	}

	got, err = env.svc.GetBlogBySlug(publicCtx(), "t")
	if err != nil || got == nil {
		t.Fatalf("GetBlogBySlug() = (%v, %v)", got, err)
	}
	if got.Title != "T" || got.Slug != "t" || got.Content != "C" {
		t.Errorf("blog = %+v, want title T slug t content C", got)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", got.Tags)
	}
	if got.Likes != 0 {
		t.Errorf("Likes = %d, want 0", got.Likes)
	}
	if got.Thumbnail == "" {
		t.Error("Thumbnail empty after file upload")
	}
	if created.Published {
		t.Error("created blog published, want draft")
	}
}

func TestCreateBlogEmptyTitleSendsNothing(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	_, err := env.svc.CreateBlog(admin, blogs.CreateBlogRequest{
		Title:     "   ",
		Slug:      "s",
		Content:   "C",
		Thumbnail: pngThumbnail(),
	})
	if !errors.Is(err, blogs.ErrInvalidBlogData) {
		t.Fatalf("err = %v, want ErrInvalidBlogData", err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || verrs[0].Field() != "title" {
		t.Errorf("validation errors = %v, want title", verrs)
	}
	if n := len(env.fake.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestCreateBlogRequiresThumbnail(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	_, err := env.svc.CreateBlog(admin, blogs.CreateBlogRequest{Title: "T", Slug: "t", Content: "C"})
	if !errors.Is(err, blogs.ErrThumbnailRequired) {
		t.Fatalf("err = %v, want ErrThumbnailRequired", err)
	}
	if n := len(env.fake.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestCreateBlogSeriesNoneIsOmitted(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	_, err := env.svc.CreateBlog(admin, blogs.CreateBlogRequest{
		Title: "T", Slug: "t", Content: "C", SeriesID: "none",
		Thumbnail: &blogs.Thumbnail{URL: "https://img.test/x.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	req, _ := env.fake.LastRequest()
	if _, ok := req.Form["series_id"]; ok {
		t.Errorf("series_id sent: %v", req.Form["series_id"])
	}
	if got := req.Form.Get("thumbnail"); got != "https://img.test/x.png" {
		t.Errorf("thumbnail = %q, want url string", got)
	}
}

func TestUpdateBlogIsSparse(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)
	seeded := env.fake.SeedBlog(fakeapi.Blog{Title: "Old", Slug: "old", Content: "body", SeriesID: "s1", Tags: []string{"x"}})

	title := "New"
	none := "none"
	updated, err := env.svc.UpdateBlog(admin, seeded.ID, blogs.UpdateBlogRequest{Title: &title, SeriesID: &none})
	if err != nil {
		t.Fatalf("UpdateBlog() error = %v", err)
	}

	req, _ := env.fake.LastRequest()
	for _, field := range []string{"slug", "content", "published", "tags", "thumbnail"} {
		if _, ok := req.Form[field]; ok {
			t.Errorf("field %q sent in sparse update", field)
		}
	}
	if got, ok := req.Form["series_id"]; !ok || got[0] != "" {
		t.Errorf("series_id = %v, want explicit empty", got)
	}

	if updated.Title != "New" || updated.Content != "body" || updated.SeriesID != "" {
		t.Errorf("updated = %+v", updated)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"x"}) {
		t.Errorf("Tags = %v, want untouched [x]", updated.Tags)
	}
}

func TestUpdateBlogRejectsEmptyProvidedTitle(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	empty := ""
	_, err := env.svc.UpdateBlog(admin, "any", blogs.UpdateBlogRequest{Title: &empty})
	if !errors.Is(err, blogs.ErrInvalidBlogData) {
		t.Fatalf("err = %v, want ErrInvalidBlogData", err)
	}
	if n := len(env.fake.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestTogglePublishTwiceRestoresState(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)
	seeded := env.fake.SeedBlog(fakeapi.Blog{Title: "T", Slug: "t", Content: "C", Published: false})

	first, err := env.svc.TogglePublish(admin, seeded.ID)
	if err != nil {
		t.Fatalf("TogglePublish() error = %v", err)
	}
	if !first.Published {
		t.Fatal("first toggle did not publish")
	}

	req, _ := env.fake.LastRequest()
	if len(req.Form) != 1 || req.Form.Get("published") != "true" {
		t.Errorf("toggle sent %v, want only published=true", req.Form)
	}

	second, err := env.svc.TogglePublish(admin, seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Published != seeded.Published {
		t.Errorf("Published after two toggles = %v, want %v", second.Published, seeded.Published)
	}
}

func TestTogglePublishMissingBlog(t *testing.T) {
	env := setup(t)
	if _, err := env.svc.TogglePublish(env.adminCtx(t), "missing"); !errors.Is(err, blogs.ErrBlogNotFound) {
		t.Fatalf("err = %v, want ErrBlogNotFound", err)
	}
}

func TestPublicListingNeverIncludesDrafts(t *testing.T) {
	env := setup(t)
	env.fake.SeedBlog(fakeapi.Blog{Title: "pub", Slug: "pub", Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "draft", Slug: "draft", Published: false})
	env.fake.SetLeakDrafts(true)

	list, err := env.svc.GetAllBlogs(publicCtx(), false, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Slug != "pub" {
		t.Errorf("public list = %+v, want only pub", list)
	}

	admin, err := env.svc.GetAllBlogs(env.adminCtx(t), true, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(admin) != 2 {
		t.Errorf("admin list has %d blogs, want 2", len(admin))
	}
	if admin[0].Slug != "draft" {
		t.Errorf("admin list not newest first: %s", admin[0].Slug)
	}
}

func TestGetAllBlogsSeriesFilterIsSentToServer(t *testing.T) {
	env := setup(t)
	if _, err := env.svc.GetAllBlogs(publicCtx(), false, "s1"); err != nil {
		t.Fatal(err)
	}
	req, _ := env.fake.LastRequest()
	if req.Path != "/api/blog" || req.Query.Get("series_id") != "s1" {
		t.Errorf("request = %s %v, want /api/blog?series_id=s1", req.Path, req.Query)
	}
}

func TestGetBlogBySlugMissingIsNil(t *testing.T) {
	env := setup(t)
	got, err := env.svc.GetBlogBySlug(publicCtx(), "nope")
	if err != nil || got != nil {
		t.Errorf("GetBlogBySlug(missing) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestGetBlogBySlugFailureIsError(t *testing.T) {
	env := setup(t)
	env.fake.FailPath("/api/blog", http.StatusInternalServerError)

	got, err := env.svc.GetBlogBySlug(publicCtx(), "any")
	if err == nil || got != nil {
		t.Errorf("GetBlogBySlug() = (%v, %v), want error", got, err)
	}
}

func TestIncrementLikesSetsLiked(t *testing.T) {
	env := setup(t)
	seeded := env.fake.SeedBlog(fakeapi.Blog{Title: "T", Slug: "t", Published: true})

	store := storage.NewMemory()
	_ = store.Set(context.Background(), storage.KeyVisitorID, "v1")
	ctx := session.With(context.Background(), session.New("r", store, "/blog/t"))

	liked, err := env.svc.IncrementLikes(ctx, seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !liked.Liked || liked.Likes != 1 {
		t.Errorf("liked = %+v, want Liked with 1 like", liked)
	}

	req, _ := env.fake.LastRequest()
	if req.Query.Get("visitor_id") != "v1" {
		t.Errorf("like request query = %v, want visitor_id", req.Query)
	}

	again, _ := env.svc.IncrementLikes(ctx, seeded.ID)
	if again.Likes != 1 {
		t.Errorf("second like from same visitor counted: %d", again.Likes)
	}
}

func TestGetBlogsBySeriesFiltersPerViewer(t *testing.T) {
	env := setup(t)
	env.fake.SeedBlog(fakeapi.Blog{Title: "one", Slug: "one", SeriesID: "s1", Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "two", Slug: "two", SeriesID: "s1", Published: false})
	env.fake.SeedBlog(fakeapi.Blog{Title: "other", Slug: "other", SeriesID: "s2", Published: true})

	public, err := env.svc.GetBlogsBySeries(publicCtx(), "s1", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 1 || public[0].Slug != "one" {
		t.Errorf("public series blogs = %+v, want [one]", public)
	}

	admin, err := env.svc.GetBlogsBySeries(env.adminCtx(t), "s1", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(admin) != 2 || admin[0].Slug != "one" || admin[1].Slug != "two" {
		t.Errorf("admin series blogs = %+v, want [one two] oldest first", admin)
	}
}

func TestSearchBlogs(t *testing.T) {
	env := setup(t)
	env.fake.SeedBlog(fakeapi.Blog{Title: "Go Channels", Slug: "go", Content: "pipes", Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "Rust", Slug: "rust", Content: "borrowck", Tags: []string{"Systems"}, Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "Go drafts", Slug: "draft", Published: false})

	tests := []struct {
		query string
		admin bool
		want  []string
	}{
		{"go", false, []string{"go"}},
		{"GO", true, []string{"draft", "go"}},
		{"systems", false, []string{"rust"}},
		{"PIPES", false, []string{"go"}},
		{"rüst", false, []string{"rust"}},
		{"", false, []string{"rust", "go"}},
	}

	for _, tt := range tests {
		ctx := publicCtx()
		if tt.admin {
			ctx = env.adminCtx(t)
		}
		got, err := env.svc.SearchBlogs(ctx, tt.query, tt.admin)
		if err != nil {
			t.Fatal(err)
		}
		slugs := make([]string, 0, len(got))
		for _, b := range got {
			slugs = append(slugs, b.Slug)
		}
		if strings.Join(slugs, ",") != strings.Join(tt.want, ",") {
			t.Errorf("SearchBlogs(%q, admin=%v) = %v, want %v", tt.query, tt.admin, slugs, tt.want)
		}
	}
}

func TestDeleteBlog(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)
	seeded := env.fake.SeedBlog(fakeapi.Blog{Title: "T", Slug: "t"})

	if err := env.svc.DeleteBlog(admin, seeded.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.fake.Blog(seeded.ID); ok {
		t.Error("blog still stored after delete")
	}
	if err := env.svc.DeleteBlog(admin, seeded.ID); !errors.Is(err, blogs.ErrBlogNotFound) {
		t.Errorf("second delete err = %v, want ErrBlogNotFound", err)
	}
}
