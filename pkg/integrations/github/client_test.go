package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/noticer/pkg/cache"
	"github.com/matzehuels/noticer/pkg/license"
)

const apacheText = "Apache License\nVersion 2.0, January 2004\n"

func licenseHandler(hits *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rate_limit":
			var resp rateLimitResponse
			resp.Resources.Core.Limit = 60
			resp.Resources.Core.Remaining = 42
			json.NewEncoder(w).Encode(resp)
		case "/repos/square/okio/license":
			atomic.AddInt32(hits, 1)
			var resp licenseResponse
			resp.Encoding = "base64"
			// GitHub wraps base64 content at 60 columns.
			enc := base64.StdEncoding.EncodeToString([]byte(apacheText))
			resp.Content = enc[:20] + "\n" + enc[20:]
			resp.License.Key = "apache-2.0"
			resp.License.Name = "Apache License 2.0"
			resp.License.SPDXID = "Apache-2.0"
			json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestClient_RateLimit(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)

	budget, err := c.RateLimit(context.Background())
	if err != nil {
		t.Fatalf("RateLimit failed: %v", err)
	}
	if budget != 42 {
		t.Errorf("budget = %d, want 42", budget)
	}
}

func TestClient_Enrich(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	set := license.NewSet(license.New("The Apache Software License, Version 2.0", "https://www.apache.org/licenses/LICENSE-2.0.txt", ""))
	budget := c.Enrich(ctx, "com.squareup.okio:okio", "scm:git:git@github.com:square/okio.git", set, 5)

	if budget != 4 {
		t.Errorf("budget = %d, want 4", budget)
	}
	for _, l := range set {
		if l.SPDXID != "Apache-2.0" {
			t.Errorf("SPDXID = %q, want Apache-2.0", l.SPDXID)
		}
		if l.Content != apacheText {
			t.Errorf("Content = %q, want %q", l.Content, apacheText)
		}
	}

	// The second lookup of the same repository is a cache hit and costs nothing.
	budget = c.Enrich(ctx, "com.squareup.okio:okio-jvm", "https://github.com/square/okio", license.NewSet(license.New("MIT", "", "")), budget)
	if budget != 4 {
		t.Errorf("budget after cache hit = %d, want 4", budget)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestClient_EnrichStopsWhenExhausted(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)

	set := license.NewSet(license.New("Apache-2.0", "", ""))
	budget := c.Enrich(context.Background(), "com.squareup.okio:okio", "https://github.com/square/okio", set, 0)

	if budget != 0 {
		t.Errorf("budget = %d, want 0", budget)
	}
	if got := atomic.LoadInt32(&hits); got != 0 {
		t.Errorf("server hits = %d, want 0", got)
	}
	for _, l := range set {
		if l.Content != "" {
			t.Error("license should not be enriched")
		}
	}
}

func TestClient_EnrichNonGitHub(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)

	budget := c.Enrich(context.Background(), "org.example:lib", "https://gitlab.com/example/lib",
		license.NewSet(license.New("MIT", "", "")), 3)
	if budget != 3 {
		t.Errorf("budget = %d, want 3", budget)
	}
	if got := atomic.LoadInt32(&hits); got != 0 {
		t.Errorf("server hits = %d, want 0", got)
	}
}

func TestClient_EnrichMissingRepoSpendsBudget(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)

	set := license.NewSet(license.New("MIT", "", ""))
	budget := c.Enrich(context.Background(), "org.example:lib", "https://github.com/example/missing", set, 3)
	if budget != 2 {
		t.Errorf("budget = %d, want 2", budget)
	}
	for _, l := range set {
		if l.SPDXID != "" || l.Content != "" {
			t.Errorf("license changed on failed fetch: %+v", l)
		}
	}
}

func TestClient_EnrichRetriesWithinBudget(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	set := license.NewSet(license.New("Apache-2.0", "", ""))
	budget := c.Enrich(context.Background(), "com.squareup.okio:okio", "https://github.com/square/okio", set, 1)
	if budget != 0 {
		t.Errorf("budget = %d, want 0", budget)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestClient_EnrichRateLimitedExhaustsBudget(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	set := license.NewSet(license.New("Apache-2.0", "", ""))
	budget := c.Enrich(context.Background(), "com.squareup.okio:okio", "https://github.com/square/okio", set, 40)
	if budget != 0 {
		t.Errorf("budget = %d, want 0", budget)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestClient_EnrichMatchesOnlyRepoLicense(t *testing.T) {
	var hits int32
	server := httptest.NewServer(licenseHandler(&hits))
	defer server.Close()

	c := testClient(t, server.URL)

	apache := license.New("Apache-2.0", "", "")
	mit := license.New("MIT License", "https://opensource.org/licenses/MIT", "")
	set := license.NewSet(apache, mit)

	c.Enrich(context.Background(), "com.squareup.okio:okio", "https://github.com/square/okio", set, 10)

	if got := set[apache.Hash()].Content; got != apacheText {
		t.Errorf("apache Content = %q, want %q", got, apacheText)
	}
	if got := set[mit.Hash()].Content; got != "" {
		t.Errorf("mit Content = %q, want empty", got)
	}
}

func TestRepoLicense_Matches(t *testing.T) {
	rl := RepoLicense{Name: "MIT License", SPDXID: "MIT"}

	tests := []struct {
		name string
		l    license.License
		want bool
	}{
		{"spdx name", license.New("mit", "", ""), true},
		{"full name", license.New("MIT License", "", ""), true},
		{"url", license.New("The License", "https://spdx.org/licenses/MIT.html", ""), true},
		{"other", license.New("Apache-2.0", "", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rl.Matches(tt.l); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.l, got, tt.want)
			}
		})
	}
}

func TestExtractURL(t *testing.T) {
	tests := []struct {
		urls      []string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{urls: []string{"https://github.com/foo/bar"}, wantOwner: "foo", wantRepo: "bar", wantOK: true},
		{urls: []string{"", "http://github.com/baz/qux"}, wantOwner: "baz", wantRepo: "qux", wantOK: true},
		{urls: []string{"scm:git:git://github.com/square/okio.git"}, wantOwner: "square", wantRepo: "okio", wantOK: true},
		{urls: []string{"https://google.com"}, wantOK: false},
	}

	for _, tt := range tests {
		owner, repo, ok := ExtractURL(tt.urls...)
		if ok != tt.wantOK {
			t.Errorf("ExtractURL(%v) ok=%v, want %v", tt.urls, ok, tt.wantOK)
		}
		if ok {
			if owner != tt.wantOwner {
				t.Errorf("got owner %s, want %s", owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("got repo %s, want %s", repo, tt.wantRepo)
			}
		}
	}
}

func TestValidateRepoRef(t *testing.T) {
	if err := ValidateRepoRef("square", "okio"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range [][2]string{{"", "x"}, {"-x", "y"}, {"a", ".."}, {"a", "b/c"}} {
		if err := ValidateRepoRef(bad[0], bad[1]); err == nil {
			t.Errorf("ValidateRepoRef(%q, %q) expected error", bad[0], bad[1])
		}
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(nil, "test-token", time.Hour)
	if c.Client == nil {
		t.Error("expected embedded client")
	}
	if c.baseURL != APIURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, APIURL)
	}

	anon := NewClient(nil, "", time.Hour)
	if c.keyer.LicenseKey("square", "okio") == anon.keyer.LicenseKey("square", "okio") {
		t.Error("authenticated and anonymous clients should not share license cache keys")
	}
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(store, "", time.Hour)
	c.baseURL = baseURL
	return c
}
