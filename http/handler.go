package http

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fwojciec/handbook"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	handbook.ECONFIG:   http.StatusServiceUnavailable,
	handbook.EINTERNAL: http.StatusInternalServerError,
	handbook.EINVALID:  http.StatusBadRequest,
	handbook.ENOTFOUND: http.StatusNotFound,
	handbook.EUPSTREAM: http.StatusBadGateway,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a plain-text response. Internal errors are logged and
// their details hidden.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := handbook.ErrorCode(err), handbook.ErrorMessage(err)
	if code == handbook.EINTERNAL {
		s.Logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	http.Error(w, message, ErrorStatusCode(code))
}

// Report notices keyed by dispatch outcome.
var reportNotices = map[handbook.DispatchStatus]notice{
	handbook.DispatchSent:        {Kind: "success", Text: "Thank you for your report. We will look into it."},
	handbook.DispatchInvalid:     {Kind: "error", Text: "The report could not be sent. Select a page and a report type first."},
	handbook.DispatchConfigError: {Kind: "error", Text: "Reporting is not configured on this server."},
	handbook.DispatchFailed:      {Kind: "error", Text: "An error occurred while sending the report."},
}

type notice struct {
	Kind string
	Text string
}

type categoryOption struct {
	Value string
	Label string
}

type sectionData struct {
	Name     string
	Expanded bool
	Entries  []*handbook.Entry
}

type pageData struct {
	AppName string
	Query   string
	Count   int

	Sections     []sectionData
	SelectedID   int
	HasSelection bool
	CatalogError string

	// Entry is the selected entry, set even when its view failed to build.
	Entry     *handbook.Entry
	View      *handbook.View
	ViewError string
	Intro     template.HTML

	Categories   []categoryOption
	ReportNotice *notice
}

var templateFuncs = template.FuncMap{
	"sectionLabel": func(name string) string {
		if name == "" {
			return "(untitled)"
		}
		return name
	},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := SessionFromContext(ctx)
	query := r.URL.Query().Get("q")

	data := pageData{
		AppName: s.appName(),
		Query:   query,
	}
	for _, c := range handbook.Categories() {
		data.Categories = append(data.Categories, categoryOption{Value: string(c), Label: string(c)})
	}
	if status, ok := session.TakeNotice(); ok {
		if n, ok := reportNotices[status]; ok {
			data.ReportNotice = &n
		}
	}

	entries, err := s.CatalogService.Entries(ctx)
	if err != nil {
		data.CatalogError = "The catalog could not be loaded: " + handbook.ErrorMessage(err)
	}

	// A selection that no longer resolves renders exactly like no selection.
	if id, ok := session.Current(); ok && err == nil {
		entry, err := s.CatalogService.FindEntryByID(ctx, id)
		switch {
		case err == nil:
			data.Entry = entry
			data.SelectedID, data.HasSelection = id, true
		case handbook.ErrorCode(err) != handbook.ENOTFOUND:
			data.CatalogError = "The catalog could not be loaded: " + handbook.ErrorMessage(err)
		}
	}

	filtered := handbook.FilterEntries(entries, query)
	data.Count = len(filtered)
	for _, sec := range handbook.GroupBySection(filtered) {
		data.Sections = append(data.Sections, sectionData{
			Name:     sec.Name,
			Expanded: query != "" || (data.Entry != nil && sec.Name == data.Entry.SectionName),
			Entries:  sec.Entries,
		})
	}

	view, err := s.renderer().Render(data.Entry)
	if err != nil {
		data.ViewError = "An error occurred while loading the document: " + handbook.ErrorMessage(err)
	}
	data.View = view
	if view != nil && view.Home != nil && view.Home.Intro != "" {
		data.Intro = template.HTML(s.policy.Sanitize(view.Home.Intro))
	}

	s.render(w, r, "page.html", data)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.Error(w, r, handbook.Errorf(handbook.EINVALID, "invalid form"))
		return
	}

	id, err := strconv.Atoi(r.PostForm.Get("id"))
	if err != nil {
		s.Error(w, r, handbook.Errorf(handbook.EINVALID, "invalid entry id"))
		return
	}

	SessionFromContext(r.Context()).Select(id)
	http.Redirect(w, r, indexURL(r.PostForm.Get("q")), http.StatusSeeOther)
}

// handleReport relays a report for the session's current entry. The URL is
// taken from the catalog, never from the form.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.Error(w, r, handbook.Errorf(handbook.EINVALID, "invalid form"))
		return
	}
	query := r.PostForm.Get("q")
	session := SessionFromContext(ctx)

	id, ok := session.Current()
	if !ok {
		session.SetNotice(handbook.DispatchInvalid)
		http.Redirect(w, r, indexURL(query), http.StatusSeeOther)
		return
	}
	entry, err := s.CatalogService.FindEntryByID(ctx, id)
	if handbook.ErrorCode(err) == handbook.ENOTFOUND {
		session.SetNotice(handbook.DispatchInvalid)
		http.Redirect(w, r, indexURL(query), http.StatusSeeOther)
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	result, _ := s.ReportService.SubmitReport(ctx, &handbook.Report{
		Category: handbook.Category(r.PostForm.Get("category")),
		URL:      entry.URL,
	})
	status := handbook.DispatchFailed
	if result != nil {
		status = result.Status
	}
	session.SetNotice(status)
	http.Redirect(w, r, indexURL(query), http.StatusSeeOther)
}

func (s *Server) renderer() *handbook.Renderer {
	if s.Renderer == nil {
		return &handbook.Renderer{}
	}
	return s.Renderer
}

// render executes a template into a buffer so a failing template never
// leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func indexURL(query string) string {
	if query == "" {
		return "/"
	}
	return "/?" + url.Values{"q": {query}}.Encode()
}
