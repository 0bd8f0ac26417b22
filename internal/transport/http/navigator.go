package http

import "net/http"

// navigator is the Navigator handed to the view and gate for one request. It
// remembers the first navigation; the handler turns it into a redirect.
type navigator struct {
	target string
	status int
}

func (n *navigator) HardNavigate(path string) { n.set(path, http.StatusSeeOther) }

func (n *navigator) RouteNavigate(path string) { n.set(path, http.StatusFound) }

func (n *navigator) set(path string, status int) {
	if n.target != "" {
		return
	}
	n.target, n.status = path, status
}

// redirect writes the recorded navigation and reports whether there was one.
func (n *navigator) redirect(w http.ResponseWriter, r *http.Request) bool {
	if n.target == "" {
		return false
	}
	http.Redirect(w, r, n.target, n.status)
	return true
}
