package dpkg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testStatus = `Package: linux-image-5.4.0-100-generic
Status: install ok installed
Architecture: amd64
Version: 5.4.0-100.113
Description: Signed kernel image generic
 A kernel image for generic.

Package: linux-image-5.4.0-99-generic
Status: install ok installed
Architecture: amd64
Version: 5.4.0-99.112

Package: linux-headers-5.4.0-90
Status: deinstall ok config-files
Architecture: all
Version: 5.4.0-90.101

Package: linux-image-generic
Status: install ok installed
Architecture: amd64
Version: 5.4.0.100.104

Package: coreutils
Status: install ok installed
Architecture: amd64
Version: 8.30-3ubuntu2

Package: libc6
Status: install ok installed
Architecture: amd64
Multi-Arch: same
Version: 2.31-0ubuntu9
`

// writeAdminDir lays out a fake dpkg admin directory with the given status
// file and per-package file lists.
func writeAdminDir(t *testing.T, status string, lists map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "info"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0644))

	for name, files := range lists {
		content := "/.\n"
		for _, f := range files {
			content += f + "\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info", name+".list"), []byte(content), 0644))
	}

	return dir
}

type runCall struct {
	name string
	args []string
}

// fakeRunner records invocations and returns canned output.
type fakeRunner struct {
	output []byte
	err    error
	calls  []runCall
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, runCall{name: name, args: args})
	return f.output, f.err
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, runCall{name: name, args: args})
	return f.err
}
