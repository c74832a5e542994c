package dpkg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionToken(t *testing.T) {
	tests := []struct {
		release string
		want    string
	}{
		{"5.4.0-100-generic", "5.4.0-100"},
		{"6.8.0-45-lowlatency", "6.8.0-45"},
		{"6.1.0-18-amd64", "6.1.0-18"},
		{"6.18.44", "6.18.44"},
	}

	for _, tt := range tests {
		t.Run(tt.release, func(t *testing.T) {
			assert.Equal(t, tt.want, VersionToken(tt.release))
		})
	}
}

func TestIsOldKernel(t *testing.T) {
	token := VersionToken("5.4.0-100-generic")

	tests := []struct {
		name string
		pkg  *Package
		want bool
	}{
		{
			name: "running kernel image is kept",
			pkg:  &Package{Name: "linux-image-5.4.0-100-generic", Installed: true},
			want: false,
		},
		{
			name: "older kernel image is reported",
			pkg:  &Package{Name: "linux-image-5.4.0-99-generic", Installed: true},
			want: true,
		},
		{
			name: "older headers are reported",
			pkg:  &Package{Name: "linux-headers-5.4.0-99", Installed: true},
			want: true,
		},
		{
			name: "older tools are reported",
			pkg:  &Package{Name: "linux-tools-5.4.0-99", Installed: true},
			want: true,
		},
		{
			name: "backports modules are reported",
			pkg:  &Package{Name: "linux-backports-modules-3.2.0-20-generic", Installed: true},
			want: true,
		},
		{
			name: "not installed is never reported",
			pkg:  &Package{Name: "linux-image-5.4.0-99-generic", Installed: false},
			want: false,
		},
		{
			name: "name not starting with linux",
			pkg:  &Package{Name: "firmware-linux-image-5.4.0-99", Installed: true},
			want: false,
		},
		{
			name: "no kernel section",
			pkg:  &Package{Name: "linux-firmware-5.4.0-99", Installed: true},
			want: false,
		},
		{
			name: "unversioned meta package",
			pkg:  &Package{Name: "linux-image-generic", Installed: true},
			want: false,
		},
		{
			name: "architecture qualified name",
			pkg:  &Package{Name: "linux-image-5.4.0-99-generic:amd64", Installed: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOldKernel(tt.pkg, token))
		})
	}
}

func TestIsOldKernel_NotInstalledAlwaysFalse(t *testing.T) {
	names := []string{
		"linux-image-5.4.0-99-generic",
		"linux-headers-4.15.0-1",
		"linux-tools-3.0",
		"linux-restricted-modules-2.6.32",
	}
	for _, name := range names {
		assert.False(t, IsOldKernel(&Package{Name: name}, "5.4.0-100"), name)
	}
}

func TestOldKernels(t *testing.T) {
	dir := writeAdminDir(t, testStatus, nil)

	names, err := OldKernels(context.Background(), NewStatusDB(dir), "5.4.0-100-generic")
	require.NoError(t, err)
	assert.Equal(t, []string{"linux-image-5.4.0-99-generic"}, names)
}

func TestOldKernels_HalfConfigured(t *testing.T) {
	status := `Package: linux-image-5.4.0-99-generic
Status: install ok half-configured
Architecture: amd64
Version: 5.4.0-99.112
`
	dir := writeAdminDir(t, status, nil)

	names, err := OldKernels(context.Background(), NewStatusDB(dir), "5.4.0-100-generic")
	require.NoError(t, err)
	assert.Equal(t, []string{"linux-image-5.4.0-99-generic"}, names)
}

func TestKernelRelease(t *testing.T) {
	release, err := KernelRelease()
	require.NoError(t, err)
	assert.NotEmpty(t, release)
}
