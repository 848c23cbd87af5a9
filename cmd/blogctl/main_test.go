package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"DevBlogFrontend/internal/fakeapi"
)

func newFake(t *testing.T) (*fakeapi.Server, []string) {
	t.Helper()

	fake := fakeapi.New()
	baseURL := fake.Start()
	t.Cleanup(fake.Close)

	storePath := filepath.Join(t.TempDir(), "storage.json")
	return fake, []string{"--api", baseURL, "--storage", storePath}
}

func runCmd(t *testing.T, base []string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(append(append([]string{}, base...), args...), &out)
	return out.String(), err
}

func TestLoginListLogout(t *testing.T) {
	fake, base := newFake(t)
	fake.SeedBlog(fakeapi.Blog{
		Title:     "Live",
		Slug:      "live-post",
		Content:   "# Live\n\nShort intro to the\npost.\n\nMore text.",
		Published: true,
	})
	fake.SeedBlog(fakeapi.Blog{Title: "Draft", Slug: "draft-post", Content: "x"})

	out, err := runCmd(t, base, "login", fakeapi.AdminEmail, "--password", fakeapi.AdminPassword)
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out, "(admin)") {
		t.Errorf("login output = %q, want admin role", out)
	}

	out, err = runCmd(t, base, "blogs", "--admin")
	if err != nil {
		t.Fatalf("blogs --admin error = %v", err)
	}
	if !strings.Contains(out, "draft-post") || !strings.Contains(out, "live-post") {
		t.Errorf("admin listing = %q, want both posts", out)
	}

	out, err = runCmd(t, base, "blogs")
	if err != nil {
		t.Fatalf("blogs error = %v", err)
	}
	if strings.Contains(out, "draft-post") {
		t.Errorf("public listing = %q, must not show drafts", out)
	}
	if !strings.Contains(out, "Short intro to the post.") || strings.Contains(out, "More text.") {
		t.Errorf("public listing = %q, want the first paragraph as summary", out)
	}

	if _, err := runCmd(t, base, "logout"); err != nil {
		t.Fatalf("logout error = %v", err)
	}

	out, err = runCmd(t, base, "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(out, "Not logged in") {
		t.Errorf("whoami after logout = %q", out)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, base := newFake(t)

	if _, err := runCmd(t, base, "login", fakeapi.AdminEmail, "--password", "nope"); err == nil {
		t.Fatal("login with wrong password error = nil")
	}
}

func TestCommentAndRead(t *testing.T) {
	fake, base := newFake(t)
	blog := fake.SeedBlog(fakeapi.Blog{Title: "Hello", Slug: "hello", Content: "# Hi", Published: true})

	out, err := runCmd(t, base, "comment", blog.ID, "nice", "post")
	if err != nil {
		t.Fatalf("comment error = %v", err)
	}
	if !strings.Contains(out, "Anonymous") {
		t.Errorf("comment output = %q, want Anonymous", out)
	}

	out, err = runCmd(t, base, "comments", blog.ID)
	if err != nil {
		t.Fatalf("comments error = %v", err)
	}
	if !strings.Contains(out, "nice post") {
		t.Errorf("comments output = %q", out)
	}

	out, err = runCmd(t, base, "blog", "hello", "--render")
	if err != nil {
		t.Fatalf("blog error = %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("rendered blog = %q, want heading markup", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, base := newFake(t)

	if _, err := runCmd(t, base, "frobnicate"); err == nil {
		t.Fatal("unknown command error = nil")
	}
	if _, err := runCmd(t, base, "blog"); err == nil {
		t.Fatal("blog without slug error = nil")
	}
}
