// Command blogctl drives the DevBlog backend from a terminal through the
// same services the web gateway uses. Tokens persist in a local JSON file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	authRepository "DevBlogFrontend/internal/api/auth/repository"
	authService "DevBlogFrontend/internal/api/auth/service"
	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	blogService "DevBlogFrontend/internal/api/blog/service"
	commentRepository "DevBlogFrontend/internal/api/comment/repository"
	commentService "DevBlogFrontend/internal/api/comment/service"
	seriesRepository "DevBlogFrontend/internal/api/series/repository"
	seriesService "DevBlogFrontend/internal/api/series/service"
	visitorRepository "DevBlogFrontend/internal/api/visitor/repository"
	visitorService "DevBlogFrontend/internal/api/visitor/service"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/config"
	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/storage"

	"github.com/spf13/pflag"
)

const cliScope = "blogctl"

type app struct {
	out io.Writer

	auth     authService.IAuthService
	blogs    blogService.IBlogService
	comments commentService.ICommentService
	series   seriesService.ISeriesService
	visitor  visitorService.IVisitorService

	jsonOutput bool
}

type command struct {
	usage string
	admin bool
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":      {usage: "login <email> [--password p]", run: cmdLogin},
	"logout":     {usage: "logout", run: cmdLogout},
	"whoami":     {usage: "whoami", run: cmdWhoami},
	"passwd":     {usage: "passwd <current> <new>", admin: true, run: cmdPasswd},
	"blogs":      {usage: "blogs [--admin] [--series id]", run: cmdBlogs},
	"blog":       {usage: "blog <slug> [--render]", run: cmdBlog},
	"search":     {usage: "search <query> [--admin]", run: cmdSearch},
	"like":       {usage: "like <blog-id>", run: cmdLike},
	"comments":   {usage: "comments <blog-id>", run: cmdComments},
	"comment":    {usage: "comment <blog-id> <text> [--name n]", run: cmdComment},
	"toggle":     {usage: "toggle <blog-id>", admin: true, run: cmdToggle},
	"delete":     {usage: "delete <blog-id>", admin: true, run: cmdDelete},
	"series":     {usage: "series [--admin]", run: cmdSeries},
	"series-get": {usage: "series-get <slug> [--admin]", run: cmdSeriesGet},
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "blogctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := pflag.NewFlagSet("blogctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	apiURL := global.String("api", envOr("API_BASE_URL", "http://localhost:8080"), "backend base URL")
	storePath := global.String("storage", defaultStoragePath(), "file holding tokens and the visitor id")
	timeout := global.Duration("timeout", 15*time.Second, "per-command deadline")
	verbose := global.BoolP("verbose", "v", false, "log API traffic to stderr")
	jsonOutput := global.Bool("json", false, "print results as JSON")
	global.Usage = func() { printUsage(global) }

	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		printUsage(global)
		return errors.New("no command given")
	}

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	logger := log.NewDiscard()
	if *verbose {
		logger = log.NewLogger()
	}

	store := storage.NewFile(*storePath)
	api := client.New(logger, client.Config{BaseURL: *apiURL, Timeout: *timeout})
	validate := config.NewValidator()

	blogs := blogService.NewBlogService(logger, blogRepository.New(api, logger), validate)
	a := &app{
		out:        out,
		auth:       authService.New(logger, authRepository.New(api, logger), validate),
		blogs:      blogs,
		comments:   commentService.NewCommentService(logger, commentRepository.New(api, logger), validate),
		series:     seriesService.NewSeriesService(logger, seriesRepository.New(api, logger), blogs, validate),
		visitor:    visitorService.NewVisitorService(logger, visitorRepository.New(api, logger)),
		jsonOutput: *jsonOutput,
	}

	location := session.HomePath
	if cmd.admin || hasFlag(rest, "--admin") {
		location = session.AdminPrefix
	}
	sess := session.New(cliScope, store, location)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = session.With(ctx, sess)

	err := cmd.run(ctx, a, rest)

	if to, ok := sess.Redirected(); ok && to == session.LoginPath {
		fmt.Fprintln(out, "Session expired. Run `blogctl login <email>` again.")
	}
	return err
}

func printUsage(fs *pflag.FlagSet) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "usage: blogctl [flags] <command> [args]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	fs.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devblog-storage.json"
	}
	return filepath.Join(home, ".devblog", "storage.json")
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}
