package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/writeup"
	writeuphttp "github.com/fwojciec/writeup/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChallengeClient(url string) *writeuphttp.ChallengeClient {
	return writeuphttp.NewChallengeClient(
		writeuphttp.WithBaseURL(url),
		writeuphttp.WithRetry(1, time.Millisecond, 2*time.Millisecond),
	)
}

func TestChallengeClient_FindChallengeByID(t *testing.T) {
	t.Parallel()

	t.Run("decodes data envelope and sends headers", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotAuth, gotTarget, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotTarget = r.Header.Get("x-target")
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"description":"d","steps":[{"name":"s1","description":"x"}]}}`))
		}))
		defer server.Close()

		ctx := writeup.NewContextWithToken(context.Background(), "tok")

		c, err := newTestChallengeClient(server.URL).FindChallengeByID(ctx, "380")

		require.NoError(t, err)
		assert.Equal(t, "/v1/challenges/380", gotPath)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "API", gotTarget)
		assert.Equal(t, "application/json, text/plain, */*", gotAccept)
		assert.Equal(t, &writeup.Challenge{
			ID:          "380",
			Description: "d",
			Steps:       []writeup.ChallengeStep{{Name: "s1", Description: "x"}},
		}, c)
	})

	t.Run("decodes bare payload without token", func(t *testing.T) {
		t.Parallel()

		var hasAuth bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasAuth = r.Header["Authorization"]
			_, _ = w.Write([]byte(`{"description":"bare"}`))
		}))
		defer server.Close()

		c, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		require.NoError(t, err)
		assert.False(t, hasAuth)
		assert.Equal(t, "bare", c.Description)
	})

	t.Run("non-string description is ignored", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"description":{"html":"x"},"steps":[]}}`))
		}))
		defer server.Close()

		c, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		require.NoError(t, err)
		assert.Empty(t, c.Description)
		assert.Empty(t, c.Steps)
	})

	t.Run("404 is not found and not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		assert.Equal(t, writeup.ENOTFOUND, writeup.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("server errors are retried then unavailable", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		assert.Equal(t, writeup.EUNAVAILABLE, writeup.ErrorCode(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("transient failure recovers", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"data":{"description":"ok"}}`))
		}))
		defer server.Close()

		c, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, "ok", c.Description)
	})

	t.Run("malformed json is invalid", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>login</html>`))
		}))
		defer server.Close()

		_, err := newTestChallengeClient(server.URL).FindChallengeByID(context.Background(), "1")

		assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := writeuphttp.NewChallengeClient().FindChallengeByID(context.Background(), "")

		assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))
	})

	t.Run("breaker opens after repeated failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestChallengeClient(server.URL)
		for i := 0; i < 6; i++ {
			_, err := client.FindChallengeByID(context.Background(), "1")
			require.Equal(t, writeup.EUNAVAILABLE, writeup.ErrorCode(err))
		}
		before := calls.Load()

		_, err := client.FindChallengeByID(context.Background(), "1")

		assert.Equal(t, writeup.EUNAVAILABLE, writeup.ErrorCode(err))
		assert.True(t, strings.Contains(err.Error(), "open"))
		assert.Equal(t, before, calls.Load())
	})

	t.Run("forwards cookies from context", func(t *testing.T) {
		t.Parallel()

		var gotCookie string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCookie = r.Header.Get("Cookie")
			_, _ = w.Write([]byte(`{"data":{"description":"d"}}`))
		}))
		defer server.Close()

		ctx := writeup.NewContextWithCookies(context.Background(), []*http.Cookie{
			{Name: "session", Value: "s1"},
			{Name: "csrf", Value: "c2"},
		})

		_, err := newTestChallengeClient(server.URL).FindChallengeByID(ctx, "1")

		require.NoError(t, err)
		assert.Equal(t, "session=s1; csrf=c2", gotCookie)
	})

	t.Run("timeout bounds the whole call including retries", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		client := writeuphttp.NewChallengeClient(
			writeuphttp.WithBaseURL(server.URL),
			writeuphttp.WithRequestTimeout(200*time.Millisecond),
			writeuphttp.WithRetry(3, 100*time.Millisecond, 200*time.Millisecond),
		)

		begin := time.Now()
		_, err := client.FindChallengeByID(context.Background(), "1")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(begin), time.Second)
	})
}

func TestChallengeStepsExtractor_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	e := &writeup.ChallengeStepsExtractor{Service: writeuphttp.NewChallengeClient(
		writeuphttp.WithBaseURL(server.URL),
		writeuphttp.WithRequestTimeout(200*time.Millisecond),
	)}

	begin := time.Now()
	steps := e.ExtractSteps(context.Background(), &writeup.Page{URL: "https://xj.edisec.net/challenges/380"})

	assert.Empty(t, steps)
	assert.Less(t, time.Since(begin), time.Second)
}

func TestXuanjiNoteFromAPI(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/challenges/380" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"description":"d","steps":[{"name":"s1","description":"x"}]}}`))
	}))
	defer server.Close()

	steps := &writeup.ChallengeStepsExtractor{Service: newTestChallengeClient(server.URL)}
	g := writeup.NewGenerator(writeup.NewDefaultRegistry(steps, nil), writeup.DefaultConfig())
	g.Now = func() time.Time { return time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC) }

	note, err := g.Generate(context.Background(), &writeup.Page{
		URL:   "https://xj.edisec.net/challenges/380",
		Title: "应急响应 | 玄机",
	})

	require.NoError(t, err)
	assert.Equal(t, "网安/练习WP/玄机/应急响应.md", note.Path)
	assert.Contains(t, note.Content, "## 题目描述\n\nd")
	assert.Contains(t, note.Content, "### 步骤 1：s1\n\nx\n\n**解答**：")
}

func TestXuanjiNoteFromAPI_MissingChallenge(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	steps := &writeup.ChallengeStepsExtractor{Service: newTestChallengeClient(server.URL)}
	g := writeup.NewGenerator(writeup.NewDefaultRegistry(steps, nil), writeup.DefaultConfig())

	note, err := g.Generate(context.Background(), &writeup.Page{URL: "https://xj.edisec.net/challenges/380"})

	require.NoError(t, err)
	assert.Contains(t, note.Content, writeup.XuanjiStepsPlaceholder)
}
