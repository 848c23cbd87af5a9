package utils

import (
	"crypto/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewRequestID() string
}

type utils struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func New() IUtils {
	return &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewRequestID never fails; a broken entropy source degrades to a
// timestamp-only id.
func (u *utils) NewRequestID() string {
	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return ulid.Make().String()
	}
	return id
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases text, turns every run of other characters into a
// single dash and trims dashes from both ends.
func GenerateSlug(text string) string {
	s := slugSeparators.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries. Order is preserved.
func ParseTags(tagString string) []string {
	parts := strings.Split(tagString, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
