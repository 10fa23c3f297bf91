package router

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type LayoutData struct {
	Title         string
	Menu          []models.MenuEntry
	App           *models.SubApplicationDescriptor
	ContainerID   string
	BundlePath    string
	NotFound      bool
	Notifications []request.Notification
}

type LoginData struct {
	Title         string
	Username      string
	Tenant        string
	Notifications []request.Notification
}

type Renderer struct {
	title  string
	layout *template.Template
	login  *template.Template
}

func NewRenderer(title string) (*Renderer, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}
	login, err := template.ParseFS(templateFS, "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}
	return &Renderer{title: title, layout: layout, login: login}, nil
}

func (r *Renderer) Layout(w http.ResponseWriter, status int, data LayoutData) error {
	if data.Title == "" {
		data.Title = r.title
	}
	return render(w, status, r.layout, data)
}

func (r *Renderer) Login(w http.ResponseWriter, status int, data LoginData) error {
	if data.Title == "" {
		data.Title = r.title
	}
	return render(w, status, r.login, data)
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
