package dpkg

import "strings"

// Package represents a single entry of the dpkg status database.
type Package struct {
	Name         string
	Architecture string
	Version      string
	Status       string // e.g. "install ok installed"
	Installed    bool
}

// ShortName returns the unversioned, architecture-free package name.
func (p *Package) ShortName() string {
	if i := strings.IndexByte(p.Name, ':'); i >= 0 {
		return p.Name[:i]
	}
	return p.Name
}

// Filter returns the packages for which pred returns true, preserving order.
func Filter(pkgs []*Package, pred func(*Package) bool) []*Package {
	var out []*Package
	for _, pkg := range pkgs {
		if pred(pkg) {
			out = append(out, pkg)
		}
	}
	return out
}
