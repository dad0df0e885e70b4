// Package web serves the server-rendered pages. The dashboard pages are
// shells that load their data from the JSON API.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

type user struct {
	ID   string
	Name string
}

type page struct {
	Title string
	User  *user

	// login
	Error         string
	CallbackURL   string
	GoogleEnabled bool

	// dashboard
	Section string
	API     string
}

var sections = map[string]string{
	"":           "Overview",
	"courses":    "Courses",
	"modules":    "Modules",
	"flashcards": "Flashcards",
	"analytics":  "Analytics",
}

var loginErrors = map[string]string{
	"OAuthState":    "Your sign-in request expired. Please try again.",
	"OAuthCallback": "Google sign-in failed. Please try again.",
}

type Pages struct {
	sessions      *auth.Sessions
	googleEnabled bool
	templates     map[string]*template.Template
}

func New(sessions *auth.Sessions, googleEnabled bool) (*Pages, error) {
	p := &Pages{
		sessions:      sessions,
		googleEnabled: googleEnabled,
		templates:     map[string]*template.Template{},
	}
	for _, name := range []string{"landing", "login", "register", "dashboard"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

func (p *Pages) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", p.Landing)
	mux.HandleFunc("GET /login", p.Login)
	mux.HandleFunc("GET /register", p.Register)
	mux.HandleFunc("GET /dashboard", p.Dashboard)
	mux.HandleFunc("GET /dashboard/", p.Dashboard)
}

func (p *Pages) Landing(w http.ResponseWriter, r *http.Request) {
	p.render(w, "landing", page{Title: "Home", User: p.currentUser(r)})
}

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	if p.currentUser(r) != nil {
		http.Redirect(w, r, safeCallback(r.URL.Query().Get("callbackUrl")), http.StatusFound)
		return
	}
	p.render(w, "login", page{
		Title:         "Sign in",
		Error:         loginErrors[r.URL.Query().Get("error")],
		CallbackURL:   safeCallback(r.URL.Query().Get("callbackUrl")),
		GoogleEnabled: p.googleEnabled,
	})
}

func (p *Pages) Register(w http.ResponseWriter, r *http.Request) {
	if p.currentUser(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	p.render(w, "register", page{Title: "Register"})
}

// Dashboard renders /dashboard and /dashboard/{section}[/{id}].
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/dashboard"), "/")
	section, id, _ := strings.Cut(rest, "/")

	title, ok := sections[section]
	if !ok || strings.Contains(id, "/") || (id != "" && section == "analytics") {
		http.NotFound(w, r)
		return
	}

	api := "/api/analytics"
	if section != "" && section != "analytics" {
		api = "/api/" + section
		if id != "" {
			api += "/" + id
		}
	}

	p.render(w, "dashboard", page{
		Title:   title,
		User:    p.currentUser(r),
		Section: section,
		API:     api,
	})
}

func (p *Pages) currentUser(r *http.Request) *user {
	claims, err := p.sessions.FromRequest(r)
	if err != nil {
		return nil
	}
	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return &user{ID: claims.Subject, Name: name}
}

func (p *Pages) render(w http.ResponseWriter, name string, data page) {
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// safeCallback only allows local paths so the login page cannot be used as
// an open redirect.
func safeCallback(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/dashboard"
	}
	return target
}
