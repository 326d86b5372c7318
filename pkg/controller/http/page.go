package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/model"
	"github.com/m-mizutani/md5calc/pkg/domain/types"
)

//go:embed templates/index.html
var templateFS embed.FS

// pageData is passed to the index template
type pageData struct {
	Version  string
	Selected int
	BatchID  model.BatchID
	Results  []model.FileDigest
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page template")
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

// render writes the page. batch may be nil when nothing has been calculated.
func (p *pageRenderer) render(w io.Writer, selected int, batch *model.DigestBatch) error {
	data := pageData{
		Version:  types.Version,
		Selected: selected,
	}
	if batch != nil {
		data.BatchID = batch.ID
		data.Results = batch.Files
	}

	if err := p.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		return goerr.Wrap(err, "failed to render page")
	}
	return nil
}
