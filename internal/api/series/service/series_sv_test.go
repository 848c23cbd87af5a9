package seriesService_test

import (
	seriesService "DevBlogFrontend/internal/api/series/service"

	"context"
	"errors"
	"net/http"
	"testing"

	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	blogService "DevBlogFrontend/internal/api/blog/service"
	"DevBlogFrontend/internal/api/series"
	seriesRepository "DevBlogFrontend/internal/api/series/repository"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/config"
	"DevBlogFrontend/internal/fakeapi"
	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/storage"

	jsoniter "github.com/json-iterator/go"
)

type testEnv struct {
	svc  seriesService.ISeriesService
	api  *client.Client
	fake *fakeapi.Server
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	fake := fakeapi.New()
	baseURL := fake.Start()
	t.Cleanup(fake.Close)

	logger := log.NewDiscard()
	validate := config.NewValidator()
	api := client.New(logger, client.Config{BaseURL: baseURL})

	blogs := blogService.NewBlogService(logger, blogRepository.New(api, logger), validate)
	svc := seriesService.NewSeriesService(logger, seriesRepository.New(api, logger), blogs, validate)

	return &testEnv{svc: svc, api: api, fake: fake}
}

func publicCtx() context.Context {
	return session.With(context.Background(), session.New("reader", storage.NewMemory(), "/series/x"))
}

func (e *testEnv) adminCtx(t *testing.T) context.Context {
	t.Helper()

	store := storage.NewMemory()
	ctx := session.With(context.Background(), session.New("admin", store, "/admin/series"))

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

func TestGetSeriesBySlugFiltersBlogsPerViewer(t *testing.T) {
	env := setup(t)
	sr := env.fake.SeedSeries(fakeapi.Series{Title: "X", Slug: "x", Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "Part 1", Slug: "p1", SeriesID: sr.ID, Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "Part 2", Slug: "p2", SeriesID: sr.ID, Published: false})
	env.fake.SeedBlog(fakeapi.Blog{Title: "Elsewhere", Slug: "e", Published: true})

	public, err := env.svc.GetSeriesBySlug(publicCtx(), "x", false)
	if err != nil || public == nil {
		t.Fatalf("GetSeriesBySlug(public) = (%v, %v)", public, err)
	}
	if len(public.Blogs) != 1 || public.Blogs[0].Slug != "p1" {
		t.Errorf("public blogs = %+v, want [p1]", public.Blogs)
	}

	admin, err := env.svc.GetSeriesBySlug(env.adminCtx(t), "x", true)
	if err != nil || admin == nil {
		t.Fatalf("GetSeriesBySlug(admin) = (%v, %v)", admin, err)
	}
	if len(admin.Blogs) != 2 || admin.Blogs[0].Slug != "p1" || admin.Blogs[1].Slug != "p2" {
		t.Errorf("admin blogs = %+v, want [p1 p2]", admin.Blogs)
	}
	for _, b := range admin.Blogs {
		if b.SeriesID != sr.ID {
			t.Errorf("blog %s has series %q, want %q", b.Slug, b.SeriesID, sr.ID)
		}
	}
}

func TestGetSeriesMissingIsNil(t *testing.T) {
	env := setup(t)

	got, err := env.svc.GetSeriesBySlug(publicCtx(), "nope", false)
	if err != nil || got != nil {
		t.Errorf("GetSeriesBySlug(missing) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestGetSeriesDraftHiddenFromPublic(t *testing.T) {
	env := setup(t)
	sr := env.fake.SeedSeries(fakeapi.Series{Title: "D", Slug: "d", Published: false})

	got, err := env.svc.GetSeriesBySlug(publicCtx(), "d", false)
	if err != nil || got != nil {
		t.Errorf("public draft series = (%v, %v), want (nil, nil)", got, err)
	}

	byID, err := env.svc.GetSeriesByID(env.adminCtx(t), sr.ID, true)
	if err != nil || byID == nil {
		t.Fatalf("GetSeriesByID(admin) = (%v, %v)", byID, err)
	}
	if byID.Slug != "d" {
		t.Errorf("Slug = %q, want d", byID.Slug)
	}
}

func TestGetSeriesFailureIsError(t *testing.T) {
	env := setup(t)
	env.fake.FailPath("/api/series", http.StatusInternalServerError)

	got, err := env.svc.GetSeriesBySlug(publicCtx(), "x", false)
	if err == nil || got != nil {
		t.Errorf("GetSeriesBySlug() = (%v, %v), want error", got, err)
	}
}

func TestGetAllSeriesJoinsOneBlogListing(t *testing.T) {
	env := setup(t)
	a := env.fake.SeedSeries(fakeapi.Series{Title: "A", Slug: "a", Published: true})
	b := env.fake.SeedSeries(fakeapi.Series{Title: "B", Slug: "b", Published: true})
	env.fake.SeedSeries(fakeapi.Series{Title: "Hidden", Slug: "h", Published: false})
	env.fake.SeedBlog(fakeapi.Blog{Title: "a1", Slug: "a1", SeriesID: a.ID, Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "a2", Slug: "a2", SeriesID: a.ID, Published: false})
	env.fake.SeedBlog(fakeapi.Blog{Title: "b1", Slug: "b1", SeriesID: b.ID, Published: true})

	list, err := env.svc.GetAllSeries(publicCtx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("series = %d, want 2", len(list))
	}
	if len(list[0].Blogs) != 1 || list[0].Blogs[0].Slug != "a1" {
		t.Errorf("A blogs = %+v, want [a1]", list[0].Blogs)
	}
	if len(list[1].Blogs) != 1 || list[1].Blogs[0].Slug != "b1" {
		t.Errorf("B blogs = %+v, want [b1]", list[1].Blogs)
	}

	if n := env.fake.CountRequests(http.MethodGet, "/api/blog"); n != 1 {
		t.Errorf("blog listings = %d, want 1", n)
	}
}

func TestGetAllSeriesAdminIncludesDrafts(t *testing.T) {
	env := setup(t)
	a := env.fake.SeedSeries(fakeapi.Series{Title: "A", Slug: "a", Published: true})
	env.fake.SeedSeries(fakeapi.Series{Title: "Hidden", Slug: "h", Published: false})
	env.fake.SeedBlog(fakeapi.Blog{Title: "a1", Slug: "a1", SeriesID: a.ID, Published: true})
	env.fake.SeedBlog(fakeapi.Blog{Title: "a2", Slug: "a2", SeriesID: a.ID, Published: false})

	list, err := env.svc.GetAllSeriesAdmin(env.adminCtx(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("series = %d, want 2", len(list))
	}
	if len(list[0].Blogs) != 2 {
		t.Errorf("A blogs = %d, want 2", len(list[0].Blogs))
	}
	if len(list[1].Blogs) != 0 {
		t.Errorf("Hidden blogs = %d, want 0", len(list[1].Blogs))
	}
}

func TestCreateSeries(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)

	created, err := env.svc.CreateSeries(admin, series.CreateSeriesRequest{
		Title:       " Go Basics ",
		Slug:        "go-basics",
		Description: "intro",
		Published:   true,
	})
	if err != nil {
		t.Fatalf("CreateSeries() error = %v", err)
	}
	if created.ID == "" || created.Title != "Go Basics" || !created.Published {
		t.Errorf("created = %+v", created)
	}
	if created.Blogs == nil || len(created.Blogs) != 0 {
		t.Errorf("Blogs = %v, want empty", created.Blogs)
	}

	req, _ := env.fake.LastRequest()
	var body map[string]interface{}
	if err := jsoniter.Unmarshal(req.Body, &body); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"title", "slug", "description", "published"} {
		if _, ok := body[field]; !ok {
			t.Errorf("field %q missing from create body", field)
		}
	}
}

func TestCreateSeriesValidation(t *testing.T) {
	env := setup(t)

	_, err := env.svc.CreateSeries(env.adminCtx(t), series.CreateSeriesRequest{Title: "", Slug: "s"})
	if !errors.Is(err, series.ErrInvalidSeriesData) {
		t.Fatalf("err = %v, want ErrInvalidSeriesData", err)
	}
	if n := len(env.fake.Requests()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestTogglePublishSendsOnlyPublished(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)
	sr := env.fake.SeedSeries(fakeapi.Series{Title: "A", Slug: "a", Description: "keep"})

	updated, err := env.svc.TogglePublish(admin, sr.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Published || updated.Description != "keep" {
		t.Errorf("updated = %+v", updated)
	}

	var put []byte
	for _, r := range env.fake.Requests() {
		if r.Method == http.MethodPut {
			put = r.Body
		}
	}
	var body map[string]interface{}
	if err := jsoniter.Unmarshal(put, &body); err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 || body["published"] != true {
		t.Errorf("update body = %v, want only published", body)
	}
}

func TestDeleteSeries(t *testing.T) {
	env := setup(t)
	admin := env.adminCtx(t)
	sr := env.fake.SeedSeries(fakeapi.Series{Title: "A", Slug: "a"})

	if err := env.svc.DeleteSeries(admin, sr.ID); err != nil {
		t.Fatal(err)
	}
	if err := env.svc.DeleteSeries(admin, sr.ID); !errors.Is(err, series.ErrSeriesNotFound) {
		t.Errorf("second delete err = %v, want ErrSeriesNotFound", err)
	}
}
