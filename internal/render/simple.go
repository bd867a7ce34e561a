package render

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/signature"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/moduquote/moduquote/internal/models"
)

// minTableRows pads the ledger table with empty rows so short quotes still
// fill the page like a printed form.
const minTableRows = 15

// simpleRenderer: monospaced ledger layout with a fixed-size table and an
// explicit signature block.
type simpleRenderer struct{}

func (r *simpleRenderer) Name() string { return models.TemplateSimple }

func mono(size float64, style fontstyle.Type, al align.Type, color *props.Color) props.Text {
	return props.Text{Family: fontfamily.Courier, Size: size, Style: style, Align: al, Color: color}
}

func (r *simpleRenderer) Render(in Input) ([]core.Row, error) {
	rows := []core.Row{}

	// Header band.
	rows = append(rows,
		row.New(10).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(
			text.NewCol(6, "QUOTATION", mono(14, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(6, in.TeamName, mono(10, fontstyle.Bold, align.Right, colorInk)),
		),
		row.New(5).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(
			text.NewCol(6, "Date: "+in.IssuedAt.Format("2006-01-02"), mono(7, fontstyle.Normal, align.Left, colorInk)),
			text.NewCol(6, strings.TrimSpace(in.ManagerName+" / "+in.ManagerEmail), mono(7, fontstyle.Normal, align.Right, colorInk)),
		),
		row.New(5).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(
			text.NewCol(12, "No: "+in.Number, mono(7, fontstyle.Normal, align.Left, colorInk)),
		),
		line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.5}),
	)

	// Recipient / type band.
	rows = append(rows,
		row.New(6).Add(
			text.NewCol(6, "TO: "+in.RecipientName, mono(8, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(6, "TYPE: "+string(in.Type), mono(8, fontstyle.Bold, align.Left, colorInk)),
		),
		row.New(5).Add(
			text.NewCol(6, in.RecipientContact, mono(7, fontstyle.Normal, align.Left, colorMuted)),
		),
		line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.5}),
	)

	// Table header.
	rows = append(rows, row.New(6).WithStyle(&props.Cell{BackgroundColor: colorBand}).Add(r.tableHeader(in)...))

	// Item rows padded to the fixed form size.
	for i, ln := range in.Lines {
		rows = append(rows, r.itemRow(in, i, ln))
	}
	for i := len(in.Lines); i < minTableRows; i++ {
		rows = append(rows, r.fillerRow())
	}
	rows = append(rows, line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.5}))

	// Notes left, total + signature right.
	rows = append(rows,
		row.New(7).Add(
			text.NewCol(8, "Note:", mono(7, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(2, "TOTAL", mono(9, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(2, Won(in.GrandTotal), mono(9, fontstyle.Bold, align.Right, colorInk)),
		),
		row.New(5).Add(
			text.NewCol(8, in.t("note.validity"), mono(6, fontstyle.Normal, align.Left, colorMuted)),
		),
		row.New(5).Add(
			text.NewCol(8, in.t("note.payment"), mono(6, fontstyle.Normal, align.Left, colorMuted)),
		),
		row.New(18).Add(
			col.New(7),
			signature.NewCol(5, in.t("signature"), props.Signature{FontFamily: fontfamily.Courier, FontSize: 7}),
		),
	)
	return rows, nil
}

func (r *simpleRenderer) tableHeader(in Input) []core.Col {
	cols := []core.Col{
		text.NewCol(1, "NO", mono(6, fontstyle.Bold, align.Center, colorInk)),
	}
	if in.Type == models.TypeRental {
		cols = append(cols,
			text.NewCol(5, "ITEM & DESCRIPTION", mono(6, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(2, "UNIT PRICE", mono(6, fontstyle.Bold, align.Right, colorInk)),
			text.NewCol(1, "QTY", mono(6, fontstyle.Bold, align.Center, colorInk)),
			text.NewCol(1, "TERM", mono(6, fontstyle.Bold, align.Center, colorInk)),
			text.NewCol(2, "AMOUNT", mono(6, fontstyle.Bold, align.Right, colorInk)),
		)
	} else {
		cols = append(cols,
			text.NewCol(6, "ITEM & DESCRIPTION", mono(6, fontstyle.Bold, align.Left, colorInk)),
			text.NewCol(2, "UNIT PRICE", mono(6, fontstyle.Bold, align.Right, colorInk)),
			text.NewCol(1, "QTY", mono(6, fontstyle.Bold, align.Center, colorInk)),
			text.NewCol(2, "AMOUNT", mono(6, fontstyle.Bold, align.Right, colorInk)),
		)
	}
	return cols
}

func (r *simpleRenderer) itemRow(in Input, index int, ln Line) core.Row {
	it := ln.Item
	desc := it.Name
	if len(it.Specs) > 0 {
		desc += " (" + strings.Join(it.Specs, ", ") + ")"
	}
	cols := []core.Col{
		text.NewCol(1, lineNo(index), mono(7, fontstyle.Normal, align.Center, colorInk)),
	}
	if in.Type == models.TypeRental {
		cols = append(cols,
			text.NewCol(5, desc, mono(7, fontstyle.Normal, align.Left, colorInk)),
			text.NewCol(2, FormatAmount(it.UnitPrice), mono(7, fontstyle.Normal, align.Right, colorInk)),
			text.NewCol(1, FormatAmount(int64(it.Quantity)), mono(7, fontstyle.Normal, align.Center, colorInk)),
			text.NewCol(1, FormatAmount(int64(it.PeriodMonths)), mono(7, fontstyle.Normal, align.Center, colorInk)),
			text.NewCol(2, FormatAmount(ln.Total), mono(7, fontstyle.Normal, align.Right, colorInk)),
		)
	} else {
		cols = append(cols,
			text.NewCol(6, desc, mono(7, fontstyle.Normal, align.Left, colorInk)),
			text.NewCol(2, FormatAmount(it.UnitPrice), mono(7, fontstyle.Normal, align.Right, colorInk)),
			text.NewCol(1, FormatAmount(int64(it.Quantity)), mono(7, fontstyle.Normal, align.Center, colorInk)),
			text.NewCol(2, FormatAmount(ln.Total), mono(7, fontstyle.Normal, align.Right, colorInk)),
		)
	}
	return row.New(6).Add(cols...)
}

func (r *simpleRenderer) fillerRow() core.Row {
	return row.New(6).Add(col.New(12))
}
