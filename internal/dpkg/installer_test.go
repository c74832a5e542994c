package dpkg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelections(t *testing.T) {
	runner := &fakeRunner{output: []byte("vim\ncurl\n\ngit\ncurl\n")}

	names, err := Selections(context.Background(), runner, []string{"apt-mark", "showmanual"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "git", "vim"}, names)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "apt-mark", runner.calls[0].name)
	assert.Equal(t, []string{"showmanual"}, runner.calls[0].args)
}

func TestSelections_SecondColumn(t *testing.T) {
	// deborphan -a prints "section package"
	runner := &fakeRunner{output: []byte("main/editors     vim\nmain/net         curl\n")}

	names, err := Selections(context.Background(), runner, []string{"deborphan", "-a"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "vim"}, names)
}

func TestSelections_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Selections(ctx, &fakeRunner{}, nil, 1)
	require.Error(t, err)

	_, err = Selections(ctx, &fakeRunner{}, []string{"apt-mark"}, 0)
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = Selections(ctx, &fakeRunner{err: boom}, []string{"apt-mark", "showmanual"}, 1)
	require.ErrorIs(t, err, boom)
}

func TestInstall_SingleInvocation(t *testing.T) {
	runner := &fakeRunner{}

	err := Install(context.Background(), runner, []string{"apt-get", "install"}, []string{"curl", "git", "vim"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "apt-get", runner.calls[0].name)
	assert.Equal(t, []string{"install", "curl", "git", "vim"}, runner.calls[0].args)
}

func TestInstall_Errors(t *testing.T) {
	ctx := context.Background()

	require.Error(t, Install(ctx, &fakeRunner{}, nil, []string{"vim"}))
	require.Error(t, Install(ctx, &fakeRunner{}, []string{"apt-get", "install"}, nil))

	boom := errors.New("exit status 100")
	err := Install(ctx, &fakeRunner{err: boom}, []string{"apt-get", "install"}, []string{"vim"})
	require.ErrorIs(t, err, boom)

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, boom, installErr.Err)
}

func TestExtractColumn(t *testing.T) {
	got := extractColumn("a b c\nd e\nf\n", 2)
	assert.Equal(t, []string{"b", "e"}, got)
}
