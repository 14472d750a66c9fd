package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"data-reconciler/core/reconcile"
	"data-reconciler/core/utils"

	"go.uber.org/zap"
)

// maxSnippet caps how much of an error body ends up in an error message.
const maxSnippet = 512

// PageLayout tells the fetcher where records and the total hint live in a body.
type PageLayout struct {
	// RecordsPath is the dotted path of the record array. Empty means the body is the array.
	RecordsPath string
	// TotalPath is the dotted path of the total count. Empty means no hint.
	TotalPath string
}

// HTTPFetcher retrieves pages from a paginated REST endpoint.
type HTTPFetcher struct {
	client      *http.Client
	endpoint    *url.URL
	token       string
	layout      PageLayout
	offsetParam string
	limitParam  string
	log         *zap.Logger
}

// NewHTTPFetcher builds a fetcher for {base_uri}{base_path}{endpoint}.
func NewHTTPFetcher(cfg APIConfig, client *http.Client, endpoint, token string, layout PageLayout, log *zap.Logger) (*HTTPFetcher, error) {
	if cfg.BaseURI == "" {
		return nil, reconcile.ConfigurationError("page fetcher", fmt.Errorf("api.base_uri is not set"))
	}

	raw := strings.TrimSuffix(cfg.BaseURI, "/") + joinPath(cfg.BasePath, endpoint)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, reconcile.ConfigurationError("page fetcher", fmt.Errorf("invalid endpoint url %q", raw))
	}

	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}

	offsetParam, limitParam := cfg.OffsetParam, cfg.LimitParam
	if offsetParam == "" {
		offsetParam = "offset"
	}
	if limitParam == "" {
		limitParam = "limit"
	}

	return &HTTPFetcher{
		client:      client,
		endpoint:    u,
		token:       token,
		layout:      layout,
		offsetParam: offsetParam,
		limitParam:  limitParam,
		log:         log,
	}, nil
}

// URL returns the request URL for one page.
func (f *HTTPFetcher) URL(offset, limit int) string {
	u := *f.endpoint
	q := u.Query()
	q.Set(f.offsetParam, strconv.Itoa(offset))
	q.Set(f.limitParam, strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchPage performs one GET request and decodes the page.
func (f *HTTPFetcher) FetchPage(ctx context.Context, offset, limit int) (*reconcile.Page, error) {
	target := f.URL(offset, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, reconcile.ConfigurationError("fetch page", fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	f.log.Debug("Requesting page", zap.String("uri", target))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, reconcile.ConnectivityError("fetch page", fmt.Errorf("request to %s failed: %w", target, err))
	}
	defer resp.Body.Close()

	f.log.Debug("Page response", zap.String("uri", target), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnippet))
		return nil, reconcile.ProtocolError("fetch page",
			fmt.Errorf("%s returned status %d: %s", target, resp.StatusCode, snippet(body)))
	}

	page, err := decodePage(resp.Body, f.layout)
	if err != nil {
		return nil, reconcile.ProtocolError("fetch page", fmt.Errorf("%s: %w", target, err))
	}
	return page, nil
}

func decodePage(r io.Reader, layout PageLayout) (*reconcile.Page, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}

	var (
		rawRecords any
		root       reconcile.RemoteRecord
	)
	switch b := body.(type) {
	case map[string]any:
		root = reconcile.RemoteRecord(b)
		if layout.RecordsPath == "" {
			return nil, fmt.Errorf("body is an object but no records path is configured")
		}
		v, ok := root.Get(layout.RecordsPath)
		if !ok {
			return nil, fmt.Errorf("body has no %q field", layout.RecordsPath)
		}
		rawRecords = v
	case []any:
		rawRecords = b
	default:
		return nil, fmt.Errorf("body is neither an object nor an array")
	}

	items, ok := rawRecords.([]any)
	if !ok {
		if rawRecords == nil {
			items = []any{}
		} else {
			return nil, fmt.Errorf("%q is not an array", layout.RecordsPath)
		}
	}

	page := &reconcile.Page{Records: make([]reconcile.RemoteRecord, 0, len(items))}
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		page.Records = append(page.Records, reconcile.RemoteRecord(obj))
	}

	if root != nil && layout.TotalPath != "" {
		if v, ok := root.Get(layout.TotalPath); ok && v != nil {
			total, ok := utils.ParseInt(v)
			if !ok || total < 0 {
				return nil, fmt.Errorf("%q holds %v, not a record count", layout.TotalPath, v)
			}
			page.Total = &total
		}
	}

	return page, nil
}

func joinPath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(p)
	}
	return b.String()
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippet {
		s = s[:maxSnippet] + "..."
	}
	if s == "" {
		return "<empty body>"
	}
	return s
}
