// Command fakeapi serves an in-memory stand-in for the DevBlog backend so
// the gateway and blogctl can be run without the real service.
package main

import (
	"fmt"

	"DevBlogFrontend/internal/fakeapi"
	"DevBlogFrontend/pkg/log"

	"github.com/spf13/pflag"
)

func main() {
	logger := log.NewLogger()

	port := pflag.IntP("port", "p", 8080, "port to listen on")
	seed := pflag.Bool("seed", true, "load a few sample posts and series")
	pflag.Parse()

	fake := fakeapi.New()
	if *seed {
		seedSamples(fake)
	}

	logger.WithFields(log.Fields{
		"port":  *port,
		"admin": fakeapi.AdminEmail,
	}).Info("Fake API listening")

	if err := fake.Listen(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Fatalf("Error starting fake API: %v", err)
	}
}

func seedSamples(fake *fakeapi.Server) {
	sr := fake.SeedSeries(fakeapi.Series{
		Title:       "Go in Production",
		Slug:        "go-in-production",
		Description: "Notes from running Go services.",
		Published:   true,
	})

	fake.SeedBlog(fakeapi.Blog{
		Title:     "Structured logging with logrus",
		Slug:      "structured-logging-with-logrus",
		Content:   "# Fields over strings\n\nAttach a request id to every line.",
		Thumbnail: "https://images.devblog.example/logging.png",
		Published: true,
		Tags:      []string{"go", "logging"},
		SeriesID:  sr.ID,
	})
	fake.SeedBlog(fakeapi.Blog{
		Title:     "Timeouts everywhere",
		Slug:      "timeouts-everywhere",
		Content:   "Every outbound call gets a context deadline.",
		Thumbnail: "https://images.devblog.example/timeouts.png",
		Published: true,
		Tags:      []string{"go", "http"},
		SeriesID:  sr.ID,
	})
	fake.SeedBlog(fakeapi.Blog{
		Title:     "Unfinished thoughts on caching",
		Slug:      "unfinished-thoughts-on-caching",
		Content:   "Draft.",
		Thumbnail: "https://images.devblog.example/cache.png",
		Tags:      []string{"redis"},
	})
}
