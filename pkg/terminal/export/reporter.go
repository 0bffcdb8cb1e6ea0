package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

type Row struct {
	Name  string
	Value string
	Unit  string
}

type Table struct {
	Title    string
	Subtitle string
	Rows     []Row
}

type TableConfig struct {
	NameWidth  int
	ValueWidth int
	UnitWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  36,
		ValueWidth: 20,
		UnitWidth:  8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(table Table) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, unit string) string {
			return fmt.Sprintf("| %-*s | %*s | %-*s |",
				r.config.NameWidth, name,
				r.config.ValueWidth, value,
				r.config.UnitWidth, unit)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", r.config.NameWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2),
				strings.Repeat("-", r.config.UnitWidth+2))
		},
	}

	tmpl := `
{{.Title}}
{{- if .Subtitle}}
{{.Subtitle}}
{{- end}}

{{separator}}
{{formatRow "Metric" "Value" "Unit"}}
{{separator}}
{{- range .Rows}}
{{formatRow .Name .Value .Unit}}
{{- end}}
{{separator}}
`

	t, err := template.New("table").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(r.writer, table)
}
