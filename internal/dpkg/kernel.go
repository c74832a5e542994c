package dpkg

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

// kernelSections are the name fragments that mark a package as part of a
// kernel flavour.
var kernelSections = []string{
	"backports-modules",
	"restricted-modules",
	"headers",
	"image",
	"tools",
}

// KernelRelease returns the running kernel's release string, e.g.
// "5.4.0-100-generic".
func KernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname failed: %w", err)
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}

// VersionToken derives the token that identifies the running kernel's
// packages: the first two "-" separated components of release.
// "5.4.0-100-generic" -> "5.4.0-100".
func VersionToken(release string) string {
	parts := strings.SplitN(release, "-", 3)
	if len(parts) < 2 {
		return release
	}
	return parts[0] + "-" + parts[1]
}

// IsOldKernel reports whether pkg is an installed kernel package that does
// not belong to the kernel identified by token.
func IsOldKernel(pkg *Package, token string) bool {
	if !pkg.Installed {
		return false
	}

	name := pkg.ShortName()
	if !strings.HasPrefix(name, "linux") {
		return false
	}

	inSection := false
	for _, section := range kernelSections {
		if strings.Contains(name, section) {
			inSection = true
			break
		}
	}
	if !inSection {
		return false
	}

	// Unversioned meta packages (linux-image-generic) never match.
	if !strings.ContainsAny(name, "0123456789") {
		return false
	}

	return !strings.Contains(name, token)
}

// OldKernels returns the short names of installed kernel packages that do
// not belong to the running kernel release, sorted and de-duplicated across
// architectures.
func OldKernels(ctx context.Context, db Database, release string) ([]string, error) {
	pkgs, err := db.Packages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	token := VersionToken(release)
	var names []string
	for _, pkg := range Filter(pkgs, func(p *Package) bool { return IsOldKernel(p, token) }) {
		names = append(names, pkg.ShortName())
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}
