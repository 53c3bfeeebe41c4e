package handbook

import (
	"net/url"
	"strings"
)

// DefaultViewerURL is the document viewer used for PDF entries.
const DefaultViewerURL = "https://docs.google.com/viewer"

// FrameSandbox restricts directly embedded pages. Top navigation and every
// capability not listed here stay disabled.
const FrameSandbox = "allow-same-origin allow-scripts allow-popups allow-forms"

// HelpNote is shown with every document view. Pages that refuse to be
// framed cannot be detected, so the user is pointed at the external link.
const HelpNote = "If the page does not display, use \"Open in new tab\" above. " +
	"If it still does not display, please send a report with the form at the bottom of the page."

// ViewMode identifies how the main pane is rendered.
type ViewMode string

// ViewMode constants.
const (
	ModeIdle   ViewMode = "idle"
	ModeViewer ViewMode = "viewer"
	ModeDirect ViewMode = "direct"
)

// Frame is one embedded viewing surface.
type Frame struct {
	Src string `json:"src"`

	// Sandbox is the iframe sandbox attribute. Empty for viewer frames.
	Sandbox string `json:"sandbox,omitempty"`
}

// Update is one changelog line on the idle page.
type Update struct {
	Date  string `json:"date" toml:"date"`
	Title string `json:"title" toml:"title"`
	URL   string `json:"url" toml:"url"`
}

// Home is the static content of the idle page. It is supplied at build time
// and never comes from the catalog.
type Home struct {
	CompanionTitle string   `json:"companionTitle" toml:"companion_title"`
	CompanionURL   string   `json:"companionUrl" toml:"companion_url"`
	Intro          string   `json:"intro" toml:"intro"`
	Updates        []Update `json:"updates" toml:"updates"`
}

// View describes what the main pane shows.
type View struct {
	Mode  ViewMode `json:"mode"`
	Entry *Entry   `json:"entry,omitempty"`

	Frames      []Frame `json:"frames,omitempty"`
	ExternalURL string  `json:"externalUrl,omitempty"`
	HelpNote    string  `json:"helpNote,omitempty"`

	Home *Home `json:"home,omitempty"`
}

// Renderer decides how a selected entry is embedded.
type Renderer struct {
	// ViewerURL is the base URL of the document viewer used for PDFs.
	// Defaults to DefaultViewerURL.
	ViewerURL string

	Home *Home
}

// Render returns the view for entry. A nil entry yields the idle view.
func (r *Renderer) Render(entry *Entry) (*View, error) {
	if entry == nil {
		return &View{Mode: ModeIdle, Home: r.Home}, nil
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	view := &View{
		Entry:       entry,
		ExternalURL: strings.TrimSpace(entry.URL),
		HelpNote:    HelpNote,
	}

	if !entry.IsPDF() {
		view.Mode = ModeDirect
		view.Frames = []Frame{{Src: view.ExternalURL, Sandbox: FrameSandbox}}
		return view, nil
	}

	view.Mode = ModeViewer
	for _, raw := range []string{view.ExternalURL, entry.SecondaryURL()} {
		if raw == "" {
			continue
		}
		src, err := r.viewerSrc(raw)
		if err != nil {
			return nil, err
		}
		view.Frames = append(view.Frames, Frame{Src: src})
	}
	return view, nil
}

// viewerSrc builds the viewer URL that renders the document at raw.
func (r *Renderer) viewerSrc(raw string) (string, error) {
	base := r.ViewerURL
	if base == "" {
		base = DefaultViewerURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid viewer URL %q: %v", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "viewer URL %q must be absolute", base)
	}

	q := u.Query()
	q.Set("url", raw)
	q.Set("embedded", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
