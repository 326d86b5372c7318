package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/valyala/fasttemplate"
)

// Format is output format of a digest batch
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatTOML     Format = "toml"
	FormatTemplate Format = "template"
)

// DefaultTemplate prints lines in the same layout as md5sum
const DefaultTemplate = "{md5}  {name}"

// Formats lists all supported formats
var Formats = []Format{FormatText, FormatJSON, FormatTOML, FormatTemplate}

// ParseFormat converts a string to Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, v := range Formats {
		if f == v {
			return f, nil
		}
	}
	return "", goerr.New("unsupported output format", goerr.V("format", s))
}

type config struct {
	format   Format
	template string
}

// Option is a functional option for Render
type Option func(*config)

// WithFormat sets output format. Default is text.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithTemplate sets line template for template format. {name} and {md5} are replaced.
func WithTemplate(tmpl string) Option {
	return func(c *config) {
		c.template = tmpl
	}
}

// Render writes the batch to w
func Render(w io.Writer, batch *model.DigestBatch, opts ...Option) error {
	cfg := &config{
		format:   FormatText,
		template: DefaultTemplate,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch cfg.format {
	case FormatText:
		return renderText(w, batch)
	case FormatJSON:
		return renderJSON(w, batch)
	case FormatTOML:
		return renderTOML(w, batch)
	case FormatTemplate:
		return renderTemplate(w, batch, cfg.template)
	default:
		return goerr.New("unsupported output format", goerr.V("format", cfg.format))
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderText(w io.Writer, batch *model.DigestBatch) error {
	if batch.Len() > 0 {
		rows := make([][]string, 0, batch.Len())
		for _, f := range batch.Files {
			rows = append(rows, []string{f.Name, f.MD5})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Name", "MD5").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		if _, err := io.WriteString(w, t.String()+"\n"); err != nil {
			return goerr.Wrap(err, "failed to write table")
		}
	}

	var err error
	if batch.Len() == 0 {
		_, err = color.New(color.FgYellow).Fprintln(w, "No files selected")
	} else {
		_, err = color.New(color.FgGreen).Fprintf(w, "Calculated MD5 of %d files\n", batch.Len())
	}
	if err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}
	return nil
}

func renderJSON(w io.Writer, batch *model.DigestBatch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(batch)); err != nil {
		return goerr.Wrap(err, "failed to encode JSON report")
	}
	return nil
}

func renderTOML(w io.Writer, batch *model.DigestBatch) error {
	if err := toml.NewEncoder(w).Encode(normalize(batch)); err != nil {
		return goerr.Wrap(err, "failed to encode TOML report")
	}
	return nil
}

func renderTemplate(w io.Writer, batch *model.DigestBatch, tmpl string) error {
	t, err := fasttemplate.NewTemplate(tmpl, "{", "}")
	if err != nil {
		return goerr.Wrap(err, "invalid template", goerr.V("template", tmpl))
	}

	for _, f := range normalize(batch).Files {
		line := t.ExecuteString(map[string]any{
			"name": f.Name,
			"md5":  f.MD5,
		})
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return goerr.Wrap(err, "failed to write line", goerr.V("name", f.Name))
		}
	}
	return nil
}

// normalize keeps encoders from emitting null for an empty batch
func normalize(batch *model.DigestBatch) *model.DigestBatch {
	if batch == nil {
		return &model.DigestBatch{Files: []model.FileDigest{}}
	}
	if batch.Files == nil {
		return &model.DigestBatch{ID: batch.ID, Files: []model.FileDigest{}}
	}
	return batch
}
