package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/catalog"
	"github.com/mrlokans/bookreviews/internal/entities"
)

func seedCatalog(h *harness) {
	h.seedBooks(
		entities.Book{ISBN: "0380795272", Title: "Krondor: The Betrayal", Author: "Raymond E. Feist", Year: 1998},
		entities.Book{ISBN: "1416949658", Title: "The Dark Is Rising", Author: "Susan Cooper", Year: 1973},
		entities.Book{ISBN: "0439023483", Title: "The Hunger Games", Author: "Suzanne Collins", Year: 2008},
	)
}

func TestSearch_ByISBNFragment(t *testing.T) {
	h := newHarness(t, nil)
	seedCatalog(h)
	h.registerAndLogin("alice", "secret")
	h.page("/")

	rr := h.do(http.MethodPost, "/", url.Values{"criteria": {"isbn"}, "book": {"043"}})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr.Body.Bytes())
	found, _ := body["Books"].([]any)
	require.Len(t, found, 1)
	assert.Equal(t, "0439023483", found[0].(map[string]any)["isbn"])
	assert.Equal(t, []string{msgBooksLoaded}, flashMessages(body))
	assert.Equal(t, "043", body["Query"])
}

func TestSearch_TitleIgnoresCase(t *testing.T) {
	h := newHarness(t, nil)
	seedCatalog(h)
	h.registerAndLogin("alice", "secret")

	rr := h.do(http.MethodPost, "/", url.Values{"criteria": {"title"}, "book": {"the "}})
	require.Equal(t, http.StatusOK, rr.Code)

	found, _ := decodeBody(t, rr.Body.Bytes())["Books"].([]any)
	assert.Len(t, found, 3)
}

func TestSearch_UnknownCriteriaSearchesTitle(t *testing.T) {
	h := newHarness(t, nil)
	seedCatalog(h)
	h.registerAndLogin("alice", "secret")

	rr := h.do(http.MethodPost, "/", url.Values{"criteria": {"year"}, "book": {"hunger"}})
	require.Equal(t, http.StatusOK, rr.Code)

	found, _ := decodeBody(t, rr.Body.Bytes())["Books"].([]any)
	assert.Len(t, found, 1)
}

func TestSearch_RejectionsAreFlashed(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing criteria", url.Values{"book": {"krondor"}}, catalog.ErrCriteriaRequired.Error()},
		{"missing term", url.Values{"criteria": {"title"}}, catalog.ErrTermRequired.Error()},
		{"no results", url.Values{"criteria": {"author"}, "book": {"tolkien"}}, msgNoBooks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			seedCatalog(h)
			h.registerAndLogin("alice", "secret")
			h.page("/")

			rr := h.do(http.MethodPost, "/", tt.form)
			require.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, "/", rr.Header().Get("Location"))

			assert.Equal(t, []string{tt.want}, flashMessages(h.page("/")))
		})
	}
}
