package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"data-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var defaultLayout = PageLayout{RecordsPath: "results", TotalPath: "total"}

func TestHTTPFetcher_FetchPage(t *testing.T) {
	var gotURL, gotAuth, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"total": 2345, "results": [
			{"assetId": "A1", "price": 10.50, "active": true, "owner": null},
			{"assetId": "A2", "price": 3}
		]}`)
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(APIConfig{BaseURI: server.URL + "/", BasePath: "/api/v1/"}, server.Client(),
		"assets", "tok", defaultLayout, zap.NewNop())
	require.NoError(t, err)

	page, err := fetcher.FetchPage(context.Background(), 2000, 1000)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/assets?limit=1000&offset=2000", gotURL)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotAccept)

	require.NotNil(t, page.Total)
	assert.Equal(t, 2345, *page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "10.50", page.Records[0].Value("price"))
	assert.Equal(t, "true", page.Records[0].Value("active"))
	assert.Equal(t, reconcile.NullValue, page.Records[0].Value("owner"))
	assert.Equal(t, "A2", page.Records[1].Value("assetId"))
}

func TestHTTPFetcher_URL(t *testing.T) {
	fetcher, err := NewHTTPFetcher(APIConfig{
		BaseURI:     "https://api.example.com",
		BasePath:    "v2",
		OffsetParam: "skip",
		LimitParam:  "take",
	}, nil, "/assets?type=chair", "", defaultLayout, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v2/assets?skip=0&take=50&type=chair", fetcher.URL(0, 50))
}

func TestHTTPFetcher_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		layout   PageLayout
		wantKind error
		wantMsg  string
	}{
		{"server error", http.StatusInternalServerError, `{"message":"db down"}`, defaultLayout, reconcile.ErrProtocol, "status 500"},
		{"unauthorized", http.StatusUnauthorized, ``, defaultLayout, reconcile.ErrProtocol, "<empty body>"},
		{"not json", http.StatusOK, `<html>`, defaultLayout, reconcile.ErrProtocol, "failed to decode body"},
		{"missing records", http.StatusOK, `{"total": 1}`, defaultLayout, reconcile.ErrProtocol, `no "results" field`},
		{"records not array", http.StatusOK, `{"results": {"a": 1}}`, defaultLayout, reconcile.ErrProtocol, "not an array"},
		{"record not object", http.StatusOK, `{"results": [1]}`, defaultLayout, reconcile.ErrProtocol, "record 0"},
		{"bad total", http.StatusOK, `{"results": [], "total": "many"}`, defaultLayout, reconcile.ErrProtocol, "not a record count"},
		{"scalar body", http.StatusOK, `42`, defaultLayout, reconcile.ErrProtocol, "neither an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			fetcher, err := NewHTTPFetcher(APIConfig{BaseURI: server.URL}, server.Client(), "/x", "t", tt.layout, nil)
			require.NoError(t, err)

			page, err := fetcher.FetchPage(context.Background(), 0, 10)
			require.Error(t, err)
			assert.Nil(t, page)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	fetcher, err := NewHTTPFetcher(APIConfig{BaseURI: base}, nil, "/x", "", defaultLayout, nil)
	require.NoError(t, err)

	_, err = fetcher.FetchPage(context.Background(), 0, 10)
	assert.ErrorIs(t, err, reconcile.ErrConnectivity)
}

func TestDecodePage_Layouts(t *testing.T) {
	t.Run("top level array", func(t *testing.T) {
		page, err := decodePage(strings.NewReader(`[{"id":1},{"id":2}]`), PageLayout{})
		require.NoError(t, err)
		assert.Len(t, page.Records, 2)
		assert.Nil(t, page.Total)
	})

	t.Run("nested paths", func(t *testing.T) {
		page, err := decodePage(strings.NewReader(`{"data":{"items":[{"id":1}],"meta":{"count":7}}}`),
			PageLayout{RecordsPath: "data.items", TotalPath: "data.meta.count"})
		require.NoError(t, err)
		assert.Len(t, page.Records, 1)
		require.NotNil(t, page.Total)
		assert.Equal(t, 7, *page.Total)
	})

	t.Run("null records and absent total", func(t *testing.T) {
		page, err := decodePage(strings.NewReader(`{"results":null}`), defaultLayout)
		require.NoError(t, err)
		assert.Empty(t, page.Records)
		assert.Nil(t, page.Total)
	})
}

func TestNewHTTPFetcher_Invalid(t *testing.T) {
	_, err := NewHTTPFetcher(APIConfig{}, nil, "/x", "", defaultLayout, nil)
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	_, err = NewHTTPFetcher(APIConfig{BaseURI: "not a url"}, nil, "/x", "", defaultLayout, nil)
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)
}

// TestHTTPFetcher_DrivesEngine runs the engine against a paginated test server.
func TestHTTPFetcher_DrivesEngine(t *testing.T) {
	const population = 25
	var offsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		var offset, limit int
		_, _ = fmt.Sscan(r.URL.Query().Get("offset"), &offset)
		_, _ = fmt.Sscan(r.URL.Query().Get("limit"), &limit)

		var items []string
		for i := offset; i < offset+limit && i < population; i++ {
			items = append(items, fmt.Sprintf(`{"id":"K%d","qty":%d}`, i, i))
		}
		_, _ = fmt.Fprintf(w, `{"total":%d,"results":[%s]}`, population, strings.Join(items, ","))
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(APIConfig{BaseURI: server.URL}, server.Client(), "/items", "", defaultLayout, nil)
	require.NoError(t, err)

	dataset := reconcile.Dataset{}
	for i := 0; i < population; i++ {
		dataset[fmt.Sprintf("K%d", i)] = reconcile.Record{"QTY": fmt.Sprint(i)}
	}
	dataset["K13"] = reconcile.Record{"QTY": "0"}

	agg, err := reconcile.Reconcile(context.Background(), reconcile.Spec{
		Dataset:    dataset,
		Mapping:    reconcile.FieldMapping{{Remote: "qty", Local: "qty"}},
		PrimaryKey: "id",
		PageSize:   10,
		Fetcher:    fetcher,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "10", "20"}, offsets)
	assert.Equal(t, population, agg.TotalValidated)
	assert.Equal(t, []string{"K13"}, agg.FailureKeys)
	assert.Equal(t, "qty: remote='13' local='0'", agg.Failures["K13"])
}
