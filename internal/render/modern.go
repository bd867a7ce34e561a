package render

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/moduquote/moduquote/internal/models"
)

// modernRenderer: two-column header/info grid, tabular item listing with
// inline thumbnails, subtotal/tax-placeholder/total block.
type modernRenderer struct{}

func (r *modernRenderer) Name() string { return models.TemplateModern }

func (r *modernRenderer) Render(in Input) ([]core.Row, error) {
	rows := []core.Row{}

	subKey := "quote.purchase.sub"
	if in.Type == models.TypeRental {
		subKey = "quote.rental.sub"
	}
	rows = append(rows,
		row.New(5).Add(
			text.NewCol(6, "QUOTATION", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}),
			text.NewCol(6, in.TeamName, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(12).Add(
			text.NewCol(8, in.t("quote"), props.Text{Size: 20, Style: fontstyle.Bold, Color: colorInk}),
		),
		row.New(6).Add(
			text.NewCol(12, in.t(subKey), props.Text{Size: 8, Color: colorMuted}),
		),
		line.NewRow(2, props.Line{Color: colorFaint, Thickness: 0.3}),
		row.New(6),
	)

	// Info grid: recipient left, supplier right.
	rows = append(rows,
		row.New(5).Add(
			text.NewCol(6, strings.ToUpper(in.t("to")), props.Text{Size: 6, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(6, strings.ToUpper(in.t("from")), props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Right, Color: colorFaint}),
		),
		row.New(8).Add(
			text.NewCol(6, orDefault(in.RecipientName, "Client"), props.Text{Size: 12, Style: fontstyle.Bold, Color: colorInk}),
			text.NewCol(6, in.TeamName, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(5).Add(
			text.NewCol(6, in.RecipientContact, props.Text{Size: 8, Color: colorMuted}),
			text.NewCol(6, strings.TrimSpace(in.ManagerName+" / "+in.ManagerEmail), props.Text{Size: 8, Align: align.Right, Color: colorMuted}),
		),
		row.New(5).Add(
			col.New(6),
			text.NewCol(6, "Valid Until: "+in.IssuedAt.AddDate(0, 0, 14).Format("2006-01-02"), props.Text{Size: 7, Align: align.Right, Color: colorMuted}),
		),
		row.New(8),
	)

	// Table header. The term column only exists on rental quotes.
	header := []core.Col{
		text.NewCol(1, "No.", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorInk}),
	}
	if in.Type == models.TypeRental {
		header = append(header,
			text.NewCol(5, "Description", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorInk}),
			text.NewCol(2, "Unit Price", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
			text.NewCol(1, "Qty", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: colorInk}),
			text.NewCol(1, "Mth", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: colorInk}),
			text.NewCol(2, "Amount", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorAccent}),
		)
	} else {
		header = append(header,
			text.NewCol(6, "Description", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorInk}),
			text.NewCol(2, "Unit Price", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
			text.NewCol(1, "Qty", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: colorInk}),
			text.NewCol(2, "Amount", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorAccent}),
		)
	}
	rows = append(rows,
		row.New(7).Add(header...),
		line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.5}),
	)

	for i, ln := range in.Lines {
		rows = append(rows, r.itemRows(in, i, ln)...)
	}

	// Totals block, right-aligned: subtotal, visual-only tax line, total.
	rows = append(rows,
		row.New(10),
		row.New(6).Add(
			col.New(7),
			text.NewCol(2, in.t("subtotal"), props.Text{Size: 8, Color: colorMuted}),
			text.NewCol(3, Won(in.GrandTotal), props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(6).Add(
			col.New(7),
			text.NewCol(2, in.t("tax"), props.Text{Size: 8, Color: colorMuted}),
			text.NewCol(3, in.t("tax.visual"), props.Text{Size: 7, Align: align.Right, Color: colorFaint}),
		),
		line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.6}),
		row.New(10).Add(
			col.New(6),
			text.NewCol(2, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Color: colorInk}),
			text.NewCol(4, Won(in.GrandTotal), props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: colorAccent}),
		),
		row.New(8),
		line.NewRow(1, props.Line{Color: colorFaint, Thickness: 0.2}),
		row.New(5).Add(
			text.NewCol(6, "Powered by ModuQuote", props.Text{Size: 6, Color: colorMuted}),
			text.NewCol(6, "Page 1 / 1", props.Text{Size: 6, Align: align.Right, Color: colorFaint}),
		),
	)
	return rows, nil
}

func (r *modernRenderer) itemRows(in Input, index int, ln Line) []core.Row {
	it := ln.Item
	nameCols := []core.Col{
		text.NewCol(1, lineNo(index), props.Text{Size: 7, Color: colorFaint}),
	}
	descSize := 6
	if in.Type == models.TypeRental {
		descSize = 5
	}
	descCol := text.NewCol(descSize, it.Name, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorInk})
	if data, ext, ok := decodeDataURL(it.ImageRef); ok {
		descCol = col.New(descSize).Add(
			image.NewFromBytes(data, ext, props.Rect{Percent: 60}),
			text.New(it.Name, props.Text{Size: 8, Style: fontstyle.Bold, Left: 18, Color: colorInk}),
		)
	}
	nameCols = append(nameCols, descCol,
		text.NewCol(2, FormatAmount(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Color: colorInk}),
		text.NewCol(1, FormatAmount(int64(it.Quantity)), props.Text{Size: 8, Align: align.Center, Color: colorInk}),
	)
	if in.Type == models.TypeRental {
		nameCols = append(nameCols,
			text.NewCol(1, FormatAmount(int64(it.PeriodMonths)), props.Text{Size: 8, Align: align.Center, Color: colorInk}),
		)
	}
	nameCols = append(nameCols,
		text.NewCol(2, FormatAmount(ln.Total), props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
	)

	out := []core.Row{row.New(8).Add(nameCols...)}
	if len(it.Specs) > 0 {
		out = append(out, row.New(4).Add(
			col.New(1),
			text.NewCol(8, strings.Join(it.Specs, "  |  "), props.Text{Size: 6, Color: colorMuted}),
		))
	}
	out = append(out, line.NewRow(1, props.Line{Color: colorFaint, Thickness: 0.2}))
	return out
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
