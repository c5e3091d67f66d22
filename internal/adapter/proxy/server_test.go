package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/domain"
)

type upstreamCall struct {
	Path  string
	Query url.Values
	Auth  string
}

// newUpstream fakes api.bitbucket.org and records each request.
func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *[]upstreamCall) {
	t.Helper()
	var calls []upstreamCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, upstreamCall{Path: r.URL.Path, Query: r.URL.Query(), Auth: r.Header.Get("Authorization")})
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newProxy(t *testing.T, upstream *httptest.Server) *httptest.Server {
	t.Helper()
	s, err := NewServer(Config{UpstreamURL: upstream.URL, HTTPClient: upstream.Client()})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, []byte) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if token != "" {
		req.Header.Set(bitbucket.TokenHeader, token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestProxy_MissingToken(t *testing.T) {
	upstream, calls := newUpstream(t, 200, `{}`)
	proxy := newProxy(t, upstream)

	for _, path := range []string{"/repositories", "/user", "/workspaces", "/search/repositories?query=x"} {
		resp, body := get(t, proxy, Prefix+path, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, resp.StatusCode)
		}
		var detail map[string]string
		json.Unmarshal(body, &detail)
		if detail["detail"] != "Missing X-BitBucket-Token header" {
			t.Errorf("%s detail = %q", path, detail["detail"])
		}
	}
	if len(*calls) != 0 {
		t.Errorf("upstream called %d times without a token", len(*calls))
	}
}

func TestProxy_Repositories(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantPath string
		wantQ    url.Values
	}{
		{
			name:     "user repositories",
			path:     "/repositories",
			wantPath: "/user/repositories",
			wantQ:    url.Values{"page": {"1"}, "pagelen": {"10"}, "sort": {"updated_on"}},
		},
		{
			name:     "workspace repositories",
			path:     "/repositories?workspace=test-workspace&page=2&per_page=25&sort=-name",
			wantPath: "/repositories/test-workspace",
			wantQ:    url.Values{"page": {"2"}, "pagelen": {"25"}, "sort": {"-name"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream, calls := newUpstream(t, 200, `{"values":[{"name":"test-repo"}]}`)
			proxy := newProxy(t, upstream)

			resp, body := get(t, proxy, Prefix+tt.path, "test-token")
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if string(body) != `{"values":[{"name":"test-repo"}]}` {
				t.Errorf("body = %s", body)
			}

			want := []upstreamCall{{Path: tt.wantPath, Query: tt.wantQ, Auth: "Bearer test-token"}}
			if diff := cmp.Diff(want, *calls); diff != "" {
				t.Errorf("upstream calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProxy_User(t *testing.T) {
	upstream, calls := newUpstream(t, 200, `{"username":"test-user"}`)
	proxy := newProxy(t, upstream)

	resp, body := get(t, proxy, Prefix+"/user", "test-token")
	if resp.StatusCode != http.StatusOK || string(body) != `{"username":"test-user"}` {
		t.Fatalf("response = %d %s", resp.StatusCode, body)
	}
	if len(*calls) != 1 || (*calls)[0].Path != "/user" {
		t.Errorf("upstream calls = %+v", *calls)
	}
}

func TestProxy_WorkspacesFlattened(t *testing.T) {
	upstream, _ := newUpstream(t, 200, `{"values":[{"slug":"workspace1"},{"slug":"workspace2"}]}`)
	proxy := newProxy(t, upstream)

	resp, body := get(t, proxy, Prefix+"/workspaces", "test-token")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got []string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"workspace1", "workspace2"}, got); diff != "" {
		t.Errorf("workspaces mismatch (-want +got):\n%s", diff)
	}
}

func TestProxy_Search(t *testing.T) {
	upstream, calls := newUpstream(t, 200, `{"values":[{"name":"test-repo"}]}`)
	proxy := newProxy(t, upstream)

	resp, _ := get(t, proxy, Prefix+"/search/repositories?query=test", "test-token")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	want := []upstreamCall{{
		Path:  "/repositories",
		Query: url.Values{"q": {`name~"test"`}, "pagelen": {"5"}, "sort": {"updated_on"}},
		Auth:  "Bearer test-token",
	}}
	if diff := cmp.Diff(want, *calls); diff != "" {
		t.Errorf("upstream calls mismatch (-want +got):\n%s", diff)
	}
}

func TestProxy_ValidationErrors(t *testing.T) {
	upstream, calls := newUpstream(t, 200, `{}`)
	proxy := newProxy(t, upstream)

	for _, path := range []string{"/search/repositories", "/repositories?page=abc", "/search/repositories?query=x&per_page=z"} {
		resp, _ := get(t, proxy, Prefix+path, "t")
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("%s status = %d, want 422", path, resp.StatusCode)
		}
	}
	if len(*calls) != 0 {
		t.Errorf("upstream called for invalid requests: %+v", *calls)
	}
}

func TestProxy_UpstreamErrorStatusPropagates(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusUnauthorized, `{"error":"bad token"}`)
	proxy := newProxy(t, upstream)

	resp, body := get(t, proxy, Prefix+"/user", "expired")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	var detail map[string]string
	json.Unmarshal(body, &detail)
	if detail["detail"] == "" {
		t.Error("missing error detail")
	}
}

func TestProxy_EndToEndWithClient(t *testing.T) {
	upstream, _ := newUpstream(t, 200, `{"values":[{"slug":"ws"}]}`)
	proxy := newProxy(t, upstream)

	client, err := bitbucket.NewClient(proxy.URL+Prefix, domain.StaticToken("tok"), bitbucket.WithHTTPClient(proxy.Client()))
	if err != nil {
		t.Fatal(err)
	}
	res, err := bitbucket.NewAPI(client).ListWorkspaces(context.Background())
	if err != nil {
		t.Fatalf("ListWorkspaces() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ws"}, res.Data); diff != "" {
		t.Errorf("workspaces mismatch (-want +got):\n%s", diff)
	}
}

func TestNameFilter(t *testing.T) {
	tests := map[string]string{
		"test":    `name~"test"`,
		`a"b`:     `name~"a\"b"`,
		`back\sl`: `name~"back\\sl"`,
	}
	for in, want := range tests {
		if got := NameFilter(in); got != want {
			t.Errorf("NameFilter(%q) = %q, want %q", in, got, want)
		}
	}
}
