package site

import (
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/scholia-labs/scholia/internal/taxonomy"
)

// Page template names.
const (
	pageHome       = "home"
	pageLegends    = "legends"
	pageLegend     = "legend"
	pageVolume     = "volume"
	pageArchetypes = "archetypes"
	pageLibrary    = "library"
	pageNotFound   = "notfound"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)

var templateFuncs = template.FuncMap{
	"displayName": taxonomy.DisplayName,
	"motif":       taxonomy.FormatMotif,
	"noteColor":   taxonomy.MarginaliaColor,
	"accent": func(color string) template.CSS {
		if !hexColor.MatchString(color) {
			return template.CSS("--accent: " + taxonomy.DefaultMarginaliaColor)
		}
		return template.CSS("--accent: " + color)
	},
}

type templates struct {
	set map[string]*template.Template
}

func parseTemplates() (*templates, error) {
	base, err := template.New("layout").Funcs(templateFuncs).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}

	t := &templates{set: make(map[string]*template.Template, len(pageTemplates))}
	for name, src := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		t.set[name] = clone
	}
	return t, nil
}

func (t *templates) render(w io.Writer, name string, data any) error {
	tmpl, ok := t.set[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}} · {{end}}{{.SiteTitle}}</title>
{{with .Description}}<meta name="description" content="{{.}}">{{end}}
{{with .Canonical}}<link rel="canonical" href="{{.}}">{{end}}
<link rel="stylesheet" href="/static/style.css">
</head>
<body{{if .LiveReload}} data-livereload="/livereload"{{end}}>
<header class="site-header">
  <a class="brand" href="/">{{.SiteTitle}}</a>
  <nav class="site-nav">
    <a href="/legends"{{if eq .Active "legends"}} class="active"{{end}}>Legends</a>
    <a href="/archetypes"{{if eq .Active "archetypes"}} class="active"{{end}}>Archetypes</a>
    <a href="/library"{{if eq .Active "library"}} class="active"{{end}}>Library</a>
  </nav>
</header>
<main>
{{template "content" .}}
</main>
<footer class="site-footer"><p>{{.SiteTitle}}</p></footer>
<script src="/static/site.js"></script>
</body>
</html>
`

var pageTemplates = map[string]string{
	pageHome: `{{define "content"}}
<section class="hero">
  <h1>{{.SiteTitle}}</h1>
  <p class="lede">Long-form dossiers on the people who built things, read with the notes in the margin.</p>
</section>
{{if .Legends}}
<section class="cards">
  <h2>Legends</h2>
  <div class="card-grid">{{range .Legends}}{{template "legendCard" .}}{{end}}</div>
</section>
{{end}}
{{if .Analyses}}
<section class="cards">
  <h2>Across the archetypes</h2>
  <div class="card-grid">{{range .Analyses}}{{template "legendCard" .}}{{end}}</div>
</section>
{{end}}
{{if .Models}}
<section class="library-teaser">
  <h2>The library</h2>
  <ul>{{range .Models}}<li>{{.Title}}{{if .Planned}} <span class="soon">Coming soon</span>{{end}}</li>{{end}}</ul>
</section>
{{end}}
{{end}}
{{define "legendCard"}}<a class="legend-card" href="/legends/{{.Slug}}" style="{{accent .ArchetypeColor}}">
  <span class="chip">{{if .IsCrossCutting}}Cross-archetype analysis{{else}}{{.ArchetypeName}}{{end}}</span>
  <strong>{{.Name}}</strong>
  {{with .Subtitle}}<span class="subtitle">{{.}}</span>{{end}}
  {{with .Hook}}<span class="hook">{{.}}</span>{{end}}
</a>{{end}}`,

	pageLegends: `{{define "content"}}
<section class="cards">
  <h1>Legends</h1>
  {{if .Legends}}
  <div class="card-grid">{{range .Legends}}<a class="legend-card" href="/legends/{{.Slug}}" style="{{accent .ArchetypeColor}}">
    <span class="chip">{{.ArchetypeName}}</span>
    <strong>{{.Name}}</strong>
    {{with .Dates}}<span class="dates">{{.}}</span>{{end}}
    {{with .Industry}}<span class="industry">{{.}}</span>{{end}}
    <span class="count">{{len .Volumes}} volume{{if ne (len .Volumes) 1}}s{{end}}</span>
  </a>{{end}}</div>
  {{else}}
  <p class="empty">No legends have been published yet.</p>
  {{end}}
</section>
{{end}}`,

	pageLegend: `{{define "content"}}
<article class="hub" style="{{accent .Legend.ArchetypeColor}}">
  <header class="hub-header">
    <span class="chip">{{if .Legend.IsCrossCutting}}Cross-archetype analysis{{else}}{{.Legend.ArchetypeName}}{{end}}</span>
    <h1>{{.Legend.Name}}</h1>
    {{with .Legend.Subtitle}}<p class="subtitle">{{.}}</p>{{end}}
    <p class="meta">{{with .Legend.Dates}}{{.}} · {{end}}{{with .Legend.Industry}}{{.}} · {{end}}{{.Legend.TotalReadingTime}} min total</p>
    {{if .Legend.SecondaryArchetypes}}<ul class="tags">{{range .Legend.SecondaryArchetypes}}<li>{{displayName .}}</li>{{end}}</ul>{{end}}
    {{with .Legend.CoverQuote}}<blockquote class="epigraph">{{.}}{{with $.Legend.QuoteAttribution}}<cite>{{.}}</cite>{{end}}</blockquote>{{end}}
  </header>
  {{with .Legend.Hook}}<p class="lede">{{.}}</p>{{end}}
  {{with .Legend.CentralQuestion}}<p class="central-question">{{.}}</p>{{end}}
  <div class="hub-body">{{.Body}}</div>
  <ol class="volume-list">
  {{range .Entries}}<li>
    {{if .Available}}<a href="/legends/{{$.Legend.Slug}}/{{.Slug}}">{{.Title}}</a>{{else}}<span>{{.Title}}</span> <span class="soon">Coming soon</span>{{end}}
    {{with .Subtitle}}<span class="subtitle">{{.}}</span>{{end}}
    {{if .ReadingTime}}<span class="meta">{{.ReadingTime}} min</span>{{end}}
  </li>{{end}}
  </ol>
</article>
{{end}}`,

	pageVolume: `{{define "content"}}
<article class="dossier" style="{{accent .Volume.ArchetypeColor}}">
  <header class="dossier-header">
    <p class="eyebrow"><a href="/legends/{{.Volume.LegendSlug}}">{{.Volume.LegendName}}</a>{{with .Volume.Dates}} · {{.}}{{end}}</p>
    <h1>{{.Volume.Title}}</h1>
    {{with .Volume.Subtitle}}<p class="subtitle">{{.}}</p>{{end}}
    <p class="meta">{{.Volume.ReadingTime}} min read{{with .Volume.ArchetypeName}} · <span class="chip">{{.}}</span>{{end}}{{with .Volume.PDFURL}} · <a href="{{.}}">PDF</a>{{end}}</p>
    {{if .Volume.Disciplines}}<ul class="tags">{{range .Volume.Disciplines}}<li>{{displayName .}}</li>{{end}}</ul>{{end}}
    {{with .Volume.Quote}}<blockquote class="epigraph">{{.}}{{with $.Volume.QuoteAttribution}}<cite>{{.}}</cite>{{end}}</blockquote>{{end}}
  </header>
  <div class="dossier-grid">
    <nav class="toc" aria-label="Sections">
      <ol>{{range .Volume.Sections}}<li><a href="#{{.ID}}" data-toc="{{.ID}}">{{.Title}}</a></li>{{end}}</ol>
    </nav>
    <div class="dossier-body">{{.Body}}</div>
    <aside class="marginalia" id="marginalia" aria-live="polite">
      <div class="marginalia-card" data-visible="false">
        <p class="marginalia-empty">{{.EmptyHint}}</p>
      </div>
    </aside>
  </div>
  {{if .Volume.Motifs}}<section class="motifs"><h2>Motifs</h2><ul class="tags">{{range .Volume.Motifs}}<li>{{motif .}}</li>{{end}}</ul></section>{{end}}
  {{if .Volume.Sources}}<section class="sources"><h2>Sources</h2><ol>{{range .Volume.Sources}}<li id="source-{{.ID}}">{{.Citation}}</li>{{end}}</ol></section>{{end}}
  <nav class="volume-nav">
    {{with .Volume.Prev}}<a rel="prev" href="/legends/{{$.Volume.LegendSlug}}/{{.Slug}}">&larr; {{.Title}}</a>{{end}}
    {{with .Volume.Next}}<a rel="next" href="/legends/{{$.Volume.LegendSlug}}/{{.Slug}}">{{.Title}} &rarr;</a>{{end}}
  </nav>
</article>
<script type="application/json" id="scholia-manifest">{{.ManifestJSON}}</script>
{{end}}`,

	pageArchetypes: `{{define "content"}}
<section class="archetypes">
  <h1>Archetypes</h1>
  {{range .Groups}}
  <section class="archetype-group">
    <h2>{{.Name}}</h2>
    <ul>{{range .Legends}}<li><a href="/legends/{{.Slug}}">{{.Name}}</a>{{with .Subtitle}} <span class="subtitle">{{.}}</span>{{end}}</li>{{end}}</ul>
  </section>
  {{end}}
  {{if .Analyses}}
  <section class="archetype-group analyses">
    <h2>Cross-archetype analyses</h2>
    <ul>{{range .Analyses}}<li><a href="/legends/{{.Slug}}">{{.Name}}</a>{{with .Hook}} <span class="hook">{{.}}</span>{{end}}</li>{{end}}</ul>
  </section>
  {{end}}
</section>
{{end}}`,

	pageLibrary: `{{define "content"}}
<section class="library">
  <h1>The library</h1>
  {{if .Models}}
  <ul class="model-list">{{range .Models}}<li>
    <strong>{{.Title}}</strong>{{if .Planned}} <span class="soon">Coming soon</span>{{end}}
    {{with .Summary}}<p>{{.}}</p>{{end}}
  </li>{{end}}</ul>
  {{else}}
  <p class="empty">Mental models are on their way.</p>
  {{end}}
</section>
{{end}}`,

	pageNotFound: `{{define "content"}}
<section class="not-found">
  <h1>Not found</h1>
  <p>Nothing lives at <code>{{.Path}}</code>.</p>
  <p><a href="/legends">Browse the legends</a></p>
</section>
{{end}}`,
}

const cssContent = `:root {
  --ink: #1f2328;
  --muted: #59636e;
  --paper: #fbfaf7;
  --rule: #e5e1d8;
  --accent: #CA8A04;
  --measure: 42rem;
  font-family: Georgia, "Iowan Old Style", serif;
  color: var(--ink);
  background: var(--paper);
}

body { margin: 0; line-height: 1.6; }
a { color: inherit; }

.site-header {
  display: flex;
  justify-content: space-between;
  align-items: baseline;
  padding: 1rem 2rem;
  border-bottom: 1px solid var(--rule);
}
.brand { font-weight: bold; text-decoration: none; }
.site-nav a { margin-left: 1.5rem; text-decoration: none; color: var(--muted); }
.site-nav a.active { color: var(--ink); border-bottom: 2px solid var(--accent); }
.site-footer { padding: 2rem; color: var(--muted); border-top: 1px solid var(--rule); }

main { padding: 2rem; max-width: 80rem; margin: 0 auto; }

.chip {
  display: inline-block;
  padding: 0.1rem 0.6rem;
  border-radius: 999px;
  font-size: 0.75rem;
  letter-spacing: 0.04em;
  text-transform: uppercase;
  color: #fff;
  background: var(--accent);
}
.tags { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 0.5rem; }
.tags li { border: 1px solid var(--rule); padding: 0.1rem 0.6rem; border-radius: 4px; font-size: 0.85rem; }
.soon { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; }
.subtitle, .meta, .dates, .industry, .count { color: var(--muted); }

.card-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(16rem, 1fr)); gap: 1.5rem; }
.legend-card {
  display: flex;
  flex-direction: column;
  gap: 0.4rem;
  padding: 1.25rem;
  border: 1px solid var(--rule);
  border-top: 4px solid var(--accent);
  text-decoration: none;
  background: #fff;
}
.legend-card strong { font-size: 1.25rem; }

.epigraph { border-left: 3px solid var(--accent); margin: 1.5rem 0; padding-left: 1rem; font-style: italic; }
.epigraph cite { display: block; font-style: normal; color: var(--muted); margin-top: 0.5rem; }

.dossier-grid {
  display: grid;
  grid-template-columns: 14rem minmax(0, var(--measure)) 18rem;
  gap: 2.5rem;
  align-items: start;
}
.toc { position: sticky; top: 1.5rem; font-size: 0.9rem; }
.toc ol { list-style: none; padding: 0; }
.toc a { display: block; padding: 0.25rem 0 0.25rem 0.75rem; border-left: 2px solid transparent; text-decoration: none; color: var(--muted); }
.toc a.active { color: var(--ink); border-left-color: var(--accent); }
.section-title { scroll-margin-top: 1.5rem; }

.marginalia { position: sticky; top: 1.5rem; }
.marginalia-card {
  border-left: 3px solid var(--note, var(--accent));
  padding: 0.75rem 1rem;
  background: #fff;
  opacity: 0;
  transition: opacity 200ms ease;
}
.marginalia-card[data-visible="true"] { opacity: 1; }
.marginalia-card:has(.marginalia-empty) { opacity: 1; }
.marginalia-label { font-size: 0.7rem; letter-spacing: 0.06em; text-transform: uppercase; color: var(--note, var(--accent)); }
.marginalia-title { font-weight: bold; margin: 0.25rem 0; }
.marginalia-empty { color: var(--muted); font-style: italic; }
.pips { display: flex; gap: 0.3rem; margin-top: 0.75rem; }
.pips span { width: 0.45rem; height: 0.45rem; border-radius: 50%; background: var(--rule); }
.pips span.active { background: var(--note, var(--accent)); }

.volume-list li { margin-bottom: 0.75rem; }
.volume-nav { display: flex; justify-content: space-between; margin-top: 3rem; }
.sources ol { font-size: 0.9rem; color: var(--muted); }

@media (max-width: 64rem) {
  .dossier-grid { grid-template-columns: minmax(0, 1fr); }
  .toc, .marginalia { position: static; }
}
`

const jsContent = `(function () {
  var lr = document.body.getAttribute("data-livereload");
  if (lr && window.WebSocket) {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + lr);
    ws.onmessage = function (e) {
      try {
        if (JSON.parse(e.data).action === "reload") location.reload();
      } catch (_) {}
    };
  }

  if (!document.getElementById("scholia-manifest") || !window.WebAssembly) return;
  var s = document.createElement("script");
  s.src = "/static/wasm_exec.js";
  s.onload = function () {
    var go = new Go();
    fetch("/static/reader.wasm")
      .then(function (r) {
        if (!r.ok) throw new Error("reader unavailable");
        return r.arrayBuffer();
      })
      .then(function (buf) { return WebAssembly.instantiate(buf, go.importObject); })
      .then(function (res) { go.run(res.instance); })
      .catch(function () { document.documentElement.classList.add("reader-unavailable"); });
  };
  document.head.appendChild(s);
})();
`
