package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/subroute/internal/daemon"
)

const testConfig = `
routes:
  api:
    url: http://127.0.0.1:3000
  sub.api:
    text: nested
fallback:
  text: home
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "subroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestResolve(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "resolve", "api.example.com:8080", "sub.api.localhost", "blog.example.com")
	require.NoError(t, err)

	var got []daemon.Resolution
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, []daemon.Resolution{
		{Host: "api.example.com:8080", Subdomain: "api", Outcome: "dispatched", Target: "http://127.0.0.1:3000"},
		{Host: "sub.api.localhost", Subdomain: "sub.api", Outcome: "dispatched", Target: "text"},
		{Host: "blog.example.com", Subdomain: "blog", Outcome: "fallback", Target: "text"},
	}, got)
}

func TestResolve_StrictFlag(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "resolve", "--strict", "--known-hosts", "example.co.uk", "blog.example.co.uk")
	require.NoError(t, err)

	var got []daemon.Resolution
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Equal(t, "blog", got[0].Subdomain)
	require.Equal(t, "rejected", got[0].Outcome)
}

func TestResolve_RequiresHost(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "resolve")
	require.Error(t, err)
}

func TestResolve_BadConfig(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "resolve", "api.example.com"})
	require.Error(t, cmd.Execute())
}
