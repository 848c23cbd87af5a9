package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/pkg/markdown"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("wrong number of arguments")

func newFlags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func parseArgs(fs *pflag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("%s: %w", fs.Name(), errUsage)
	}
	return fs.Args(), nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	password := fs.String("password", os.Getenv("DEVBLOG_PASSWORD"), "account password")
	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	state, err := a.auth.Login(ctx, auth.LoginRequest{Email: rest[0], Password: *password})
	if err != nil {
		return err
	}

	role := "reader"
	if state.IsAdmin() {
		role = "admin"
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", rest[0], role)
	return nil
}

func cmdLogout(ctx context.Context, a *app, args []string) error {
	if _, err := parseArgs(newFlags("logout"), args, 0); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func cmdWhoami(ctx context.Context, a *app, args []string) error {
	if _, err := parseArgs(newFlags("whoami"), args, 0); err != nil {
		return err
	}

	if !a.auth.IsAuthenticated(ctx) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	state, err := a.auth.GetSession(ctx)
	if err != nil {
		return err
	}
	if a.jsonOutput {
		return a.printJSON(state)
	}

	if state.User != nil {
		fmt.Fprintf(a.out, "user:    %s\nadmin:   %t\n", state.User.ID, state.User.IsAdmin)
	}
	if !state.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "expires: %s\n", state.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdPasswd(ctx context.Context, a *app, args []string) error {
	rest, err := parseArgs(newFlags("passwd"), args, 2)
	if err != nil {
		return err
	}

	req := auth.ChangePasswordRequest{
		CurrentPassword: rest[0],
		NewPassword:     rest[1],
		ConfirmPassword: rest[1],
	}
	if err := a.auth.ChangePassword(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func cmdBlogs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("blogs")
	admin := fs.Bool("admin", false, "include drafts (requires admin login)")
	seriesID := fs.String("series", "", "only posts in this series")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}

	list, err := a.blogs.GetAllBlogs(ctx, *admin, *seriesID)
	if err != nil {
		return err
	}
	return a.printBlogs(list)
}

func cmdBlog(ctx context.Context, a *app, args []string) error {
	fs := newFlags("blog")
	render := fs.Bool("render", false, "print the content as HTML")
	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	a.visitor.EnsureVisitorID(ctx)

	blog, err := a.blogs.GetBlogBySlug(ctx, rest[0])
	if err != nil {
		return err
	}
	if blog == nil {
		return fmt.Errorf("no post with slug %q", rest[0])
	}
	if a.jsonOutput {
		return a.printJSON(blog)
	}

	fmt.Fprintf(a.out, "%s\n%s\n\n", blog.Title, strings.Repeat("=", len(blog.Title)))
	fmt.Fprintf(a.out, "id: %s  likes: %d  tags: %s\n\n", blog.ID, blog.Likes, strings.Join(blog.Tags, ", "))

	if !*render {
		fmt.Fprintln(a.out, blog.Content)
		return nil
	}
	html, err := markdown.Render(blog.Content)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, html)
	return nil
}

func cmdSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlags("search")
	admin := fs.Bool("admin", false, "include drafts (requires admin login)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("search: %w", errUsage)
	}

	list, err := a.blogs.SearchBlogs(ctx, strings.Join(fs.Args(), " "), *admin)
	if err != nil {
		return err
	}
	return a.printBlogs(list)
}

func cmdLike(ctx context.Context, a *app, args []string) error {
	rest, err := parseArgs(newFlags("like"), args, 1)
	if err != nil {
		return err
	}

	a.visitor.EnsureVisitorID(ctx)

	blog, err := a.blogs.IncrementLikes(ctx, rest[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Liked %q (%d likes)\n", blog.Title, blog.Likes)
	return nil
}

func cmdComments(ctx context.Context, a *app, args []string) error {
	rest, err := parseArgs(newFlags("comments"), args, 1)
	if err != nil {
		return err
	}

	list, err := a.comments.GetCommentsByBlogID(ctx, rest[0])
	if err != nil {
		return err
	}
	if a.jsonOutput {
		return a.printJSON(list)
	}

	for _, c := range list {
		fmt.Fprintf(a.out, "%s  %s\n  %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Username, c.Comment)
	}
	return nil
}

func cmdComment(ctx context.Context, a *app, args []string) error {
	fs := newFlags("comment")
	name := fs.String("name", "", "display name, Anonymous when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("comment: %w", errUsage)
	}

	a.visitor.EnsureVisitorID(ctx)

	c, err := a.comments.AddComment(ctx, fs.Arg(0), *name, strings.Join(fs.Args()[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment posted as %s\n", c.Username)
	return nil
}

func cmdToggle(ctx context.Context, a *app, args []string) error {
	rest, err := parseArgs(newFlags("toggle"), args, 1)
	if err != nil {
		return err
	}

	blog, err := a.blogs.TogglePublish(ctx, rest[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%q is now %s\n", blog.Title, status(blog.Published))
	return nil
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	rest, err := parseArgs(newFlags("delete"), args, 1)
	if err != nil {
		return err
	}

	if err := a.blogs.DeleteBlog(ctx, rest[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", rest[0])
	return nil
}

func cmdSeries(ctx context.Context, a *app, args []string) error {
	fs := newFlags("series")
	admin := fs.Bool("admin", false, "include unpublished series (requires admin login)")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}

	var (
		list []entity.Series
		err  error
	)
	if *admin {
		list, err = a.series.GetAllSeriesAdmin(ctx)
	} else {
		list, err = a.series.GetAllSeries(ctx)
	}
	if err != nil {
		return err
	}
	if a.jsonOutput {
		return a.printJSON(list)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tSTATUS\tPOSTS\tTITLE")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Slug, status(s.Published), len(s.Blogs), s.Title)
	}
	return w.Flush()
}

func cmdSeriesGet(ctx context.Context, a *app, args []string) error {
	fs := newFlags("series-get")
	admin := fs.Bool("admin", false, "allow unpublished series (requires admin login)")
	rest, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	s, err := a.series.GetSeriesBySlug(ctx, rest[0], *admin)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("no series with slug %q", rest[0])
	}
	if a.jsonOutput {
		return a.printJSON(s)
	}

	fmt.Fprintf(a.out, "%s (%s)\n%s\n\n", s.Title, status(s.Published), s.Description)
	return a.printBlogs(s.Blogs)
}

const summaryRunes = 48

func (a *app) printBlogs(list []entity.Blog) error {
	if a.jsonOutput {
		return a.printJSON(list)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tSTATUS\tLIKES\tTITLE\tSUMMARY")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			b.ID, b.Slug, status(b.Published), b.Likes, b.Title, markdown.Excerpt(b.Content, summaryRunes))
	}
	return w.Flush()
}

func (a *app) printJSON(v interface{}) error {
	raw, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(raw))
	return err
}

func status(published bool) string {
	if published {
		return "published"
	}
	return "draft"
}
