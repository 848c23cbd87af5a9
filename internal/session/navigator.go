package session

import "sync"

// Navigator receives forced navigations such as the redirect to the login
// page after an admin-scoped 401.
type Navigator interface {
	Redirect(to string)
	Redirected() (string, bool)
}

// Recorder keeps the last requested navigation so the caller can act on it
// once the current operation returns.
type Recorder struct {
	mu  sync.Mutex
	to  string
	set bool
}

func (r *Recorder) Redirect(to string) {
	r.mu.Lock()
	r.to = to
	r.set = true
	r.mu.Unlock()
}

func (r *Recorder) Redirected() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.to, r.set
}
