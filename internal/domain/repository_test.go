package domain

import "testing"

func TestRepository_Namespace(t *testing.T) {
	tests := []struct {
		name string
		repo Repository
		want string
	}{
		{
			name: "workspace slug present",
			repo: Repository{FullName: "org/repo", Workspace: WorkspaceRef{Slug: "team"}},
			want: "team",
		},
		{
			name: "falls back to full name prefix",
			repo: Repository{FullName: "org/repo"},
			want: "org",
		},
		{
			name: "no namespace",
			repo: Repository{FullName: "repo"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.repo.Namespace(); got != tt.want {
				t.Errorf("Namespace() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPage_Cursors(t *testing.T) {
	p := Page[Repository]{Page: 2, PageLen: 10, Size: 35, Next: "https://x/?page=3"}

	if !p.HasNext() {
		t.Error("HasNext() = false, want true")
	}
	if p.HasPrevious() {
		t.Error("HasPrevious() = true, want false")
	}
}

func TestHasToken(t *testing.T) {
	tests := []struct {
		name     string
		provider TokenProvider
		want     bool
	}{
		{"nil provider", nil, false},
		{"empty static", StaticToken(""), false},
		{"static token", StaticToken("abc"), true},
		{"func token", TokenProviderFunc(func() string { return "xyz" }), true},
		{"nil func", TokenProviderFunc(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasToken(tt.provider); got != tt.want {
				t.Errorf("HasToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		install bool
	}{
		{"saas with slug", AppConfig{Mode: ModeSaaS, Slug: "my-app"}, true},
		{"saas without slug", AppConfig{Mode: ModeSaaS}, false},
		{"oss with slug", AppConfig{Mode: ModeOSS, Slug: "my-app"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.CanInstallRepositories(); got != tt.install {
				t.Errorf("CanInstallRepositories() = %v, want %v", got, tt.install)
			}
		})
	}

	cfg := AppConfig{Mode: ModeSaaS, Slug: "my-app"}
	want := "https://bitbucket.org/site/oauth2/authorize?client_id=my-app"
	if got := cfg.AuthorizeURL(); got != want {
		t.Errorf("AuthorizeURL() = %q, want %q", got, want)
	}
}

func TestParseAppMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AppMode
		wantErr bool
	}{
		{"", ModeOSS, false},
		{"oss", ModeOSS, false},
		{"saas", ModeSaaS, false},
		{"cloud", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAppMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAppMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAppMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
