package service

// Navigator moves the browser somewhere else.
type Navigator interface {
	// HardNavigate performs a full page load of path.
	HardNavigate(path string)
	// RouteNavigate is an in-app route change to path.
	RouteNavigate(path string)
}
