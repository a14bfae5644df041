package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInput(t *testing.T) {
	ctx := context.Background()
	log := newLogger()

	t.Run("with no year configured", func(t *testing.T) {
		dir := chdirTemp(t)
		var hits atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		err := getInput(ctx, log, filepath.Join(dir, configFile), srv.URL, 1)
		require.ErrorIs(t, err, errNotConfigured)
		require.Zero(t, hits.Load(), "must fail before any network call")
	})

	t.Run("with no session available", func(t *testing.T) {
		dir := chdirTemp(t)
		t.Setenv(envSessionKey, "")
		var hits atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))

		err := getInput(ctx, log, configPath, srv.URL, 1)
		require.ErrorIs(t, err, errNoSession)
		require.Zero(t, hits.Load())
	})

	t.Run("happy path", func(t *testing.T) {
		dir := chdirTemp(t)
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte("1721\n979\n366\n"))
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))
		require.NoError(t, saveSessionKey(configPath, "some-key"))

		require.NoError(t, getInput(ctx, log, configPath, srv.URL, 1))
		require.Equal(t, "/2023/day/1/input", gotPath)

		got, err := os.ReadFile(filepath.Join(dir, "inputs", "2023", "1"))
		require.NoError(t, err)
		require.Equal(t, []byte("1721\n979\n366\n"), got)
	})

	t.Run("rerunning refreshes the file", func(t *testing.T) {
		dir := chdirTemp(t)
		bodies := []string{"first\n", "second\n"}
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(bodies[calls.Add(1)-1]))
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))
		require.NoError(t, saveSessionKey(configPath, "some-key"))

		require.NoError(t, getInput(ctx, log, configPath, srv.URL, 2))
		require.NoError(t, getInput(ctx, log, configPath, srv.URL, 2))

		got, err := os.ReadFile(filepath.Join(dir, "inputs", "2023", "2"))
		require.NoError(t, err)
		require.Equal(t, []byte("second\n"), got)
	})

	t.Run("with a rejected session", func(t *testing.T) {
		dir := chdirTemp(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Please log in to get your puzzle input."))
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))
		require.NoError(t, saveSessionKey(configPath, "stale-key"))

		err := getInput(ctx, log, configPath, srv.URL, 1)
		require.Error(t, err)
		require.Contains(t, err.Error(), "session rejected")
		require.NoFileExists(t, filepath.Join(dir, "inputs", "2023", "1"))
	})

	t.Run("with an unpublished day", func(t *testing.T) {
		dir := chdirTemp(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))
		require.NoError(t, saveSessionKey(configPath, "some-key"))

		err := getInput(ctx, log, configPath, srv.URL, 25)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not published")
		require.NoFileExists(t, filepath.Join(dir, "inputs", "2023", "25"))
	})

	t.Run("session falls back through a credential source", func(t *testing.T) {
		dir := chdirTemp(t)
		t.Setenv(envSessionKey, "")
		var gotCookie string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("session"); err == nil {
				gotCookie = c.Value
			}
			_, _ = w.Write([]byte("ok\n"))
		}))
		defer srv.Close()

		configPath := filepath.Join(dir, configFile)
		require.NoError(t, saveYear(configPath, 2023))

		src := &fakeSource{key: "browser-key"}
		require.NoError(t, getInput(ctx, log, configPath, srv.URL, 3, src))
		require.Equal(t, 1, src.consults)
		require.Equal(t, "browser-key", gotCookie)
	})
}

func TestRunSet(t *testing.T) {
	log := newLogger()

	t.Run("set year", func(t *testing.T) {
		dir := chdirTemp(t)
		require.NoError(t, runSet(log, []string{"year", "2023"}))

		cfg, err := loadConfig(filepath.Join(dir, configFile))
		require.NoError(t, err)
		require.Equal(t, 2023, cfg.Year)
	})

	t.Run("set session_key", func(t *testing.T) {
		dir := chdirTemp(t)
		require.NoError(t, runSet(log, []string{"session_key", "some-key"}))
		require.NoError(t, runSet(log, []string{"year", "2023"}))

		cfg, err := loadConfig(filepath.Join(dir, configFile))
		require.NoError(t, err)
		require.Equal(t, "some-key", cfg.SessionKey)
	})

	t.Run("rejects a bad year", func(t *testing.T) {
		chdirTemp(t)
		require.Error(t, runSet(log, []string{"year", "twenty23"}))
		require.Error(t, runSet(log, []string{"year", "1999"}))
	})

	t.Run("rejects an unknown setting", func(t *testing.T) {
		chdirTemp(t)
		require.Error(t, runSet(log, []string{"color", "blue"}))
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		chdirTemp(t)
		require.Error(t, runSet(log, []string{"year"}))
		require.Error(t, runSet(log, nil))
	})
}

func TestRun(t *testing.T) {
	log := newLogger()

	t.Run("rejects an unknown command", func(t *testing.T) {
		err := run(context.Background(), log, []string{"frobnicate"})
		require.Error(t, err)
	})

	t.Run("rejects a bad day argument", func(t *testing.T) {
		chdirTemp(t)
		require.Error(t, run(context.Background(), log, []string{"get", "26"}))
		require.Error(t, run(context.Background(), log, []string{"get", "zero"}))
		require.Error(t, run(context.Background(), log, []string{"get"}))
	})
}
