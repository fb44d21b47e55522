package formatter

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

func writeCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range v.Rows {
		rec := make([]string, len(v.Columns))
		for i, c := range v.Columns {
			rec[i] = v.Cell(r, c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// mdEscaper backslash-escapes the characters markdown treats as inline
// syntax, so cell text renders literally and raw HTML stays text.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`, "~", `\~`, "^", `\^`, "&", `\&`,
	"\n", " ", "\r", "",
)

func escapeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = mdEscaper.Replace(l)
	}
	return out
}

// markdownTable renders the view as a GitHub-style pipe table.
func markdownTable(v View) []byte {
	var b bytes.Buffer
	b.WriteString("|")
	for _, c := range v.Columns {
		b.WriteString(" " + mdEscaper.Replace(c.Header) + " |")
	}
	b.WriteString("\n|")
	for _, c := range v.Columns {
		if c.Kind == grid.KindInt || c.Kind == grid.KindCurrency {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")
	for _, r := range v.Rows {
		b.WriteString("|")
		for _, c := range v.Columns {
			b.WriteString(" " + mdEscaper.Replace(v.Cell(r, c)) + " |")
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

func writeMarkdown(w io.Writer, v View) error {
	if _, err := w.Write(markdownTable(v)); err != nil {
		return err
	}
	if len(v.Footer) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return writeFooter(w, escapeLines(v.Footer))
}

// writeHTML renders the markdown table to a standalone HTML page.
func writeHTML(w io.Writer, v View) error {
	src := markdownTable(v)
	for _, l := range escapeLines(v.Footer) {
		src = append(src, "\n"+l+"\n"...)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(src)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: v.title(),
		Flags: html.CommonFlags | html.CompletePage,
	})
	_, err := w.Write(markdown.Render(doc, renderer))
	return err
}
