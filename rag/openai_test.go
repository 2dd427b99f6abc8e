package rag

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamma-omg/policy-helper/ingest"
)

func newOpenAITestGenerator(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewOpenAIGenerator("sk-test", "gpt-4o-mini", "")
	require.NoError(t, err)
	g.baseURL = srv.URL

	return g
}

func Test_OpenAIGenerator_New_RequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator("", "gpt-4o-mini", "")
	require.Error(t, err)

	g, err := NewOpenAIGenerator("sk-test", "gpt-4o-mini", "")
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", g.Model())
}

func Test_OpenAIGenerator_Generate(t *testing.T) {
	g := newOpenAITestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Refunds within 14 days."}}]}`)
	})

	answer, err := g.Generate(context.Background(), "refund window?", []ingest.Chunk{
		{Title: "returns.md", Section: "Refund Policy", Text: "Refunds within 14 days."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Refunds within 14 days.", answer)
}

func Test_OpenAIGenerator_Generate_Errors(t *testing.T) {
	cases := []struct {
		status int
		body   string
	}{
		{http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`},
		{http.StatusOK, `{not json`},
		{http.StatusOK, `{"choices":[]}`},
		{http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			g := newOpenAITestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				fmt.Fprint(w, c.body)
			})

			answer, err := g.Generate(context.Background(), "refund window?", nil)
			require.Error(t, err)
			assert.Empty(t, answer)
		})
	}
}
