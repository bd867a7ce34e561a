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

// standardRenderer is the default layout: brand header, addressed TO/FROM
// sections, itemized rows with spec tags and optional thumbnail, validity
// note and grand total footer.
type standardRenderer struct{}

func (r *standardRenderer) Name() string { return models.TemplateStandard }

func (r *standardRenderer) Render(in Input) ([]core.Row, error) {
	rows := []core.Row{}

	// Header: brand mark left, document title right.
	titleKey := "quote.purchase"
	if in.Type == models.TypeRental {
		titleKey = "quote.rental"
	}
	rows = append(rows,
		row.New(14).Add(
			text.NewCol(6, in.TeamName, props.Text{Size: 18, Style: fontstyle.BoldItalic, Color: colorInk}),
			text.NewCol(6, in.t(titleKey), props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(5).Add(
			col.New(8),
			text.NewCol(4, in.IssuedAt.Format("2006-01-02"), props.Text{Size: 7, Align: align.Right, Color: colorFaint}),
		),
		row.New(8),
	)

	// Addresses.
	recipient := in.RecipientName
	if recipient == "" {
		recipient = in.t("item.placeholder")
	}
	rows = append(rows,
		row.New(5).Add(
			text.NewCol(6, "TO. "+in.t("to"), props.Text{Size: 6, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(6, "FROM. "+in.t("from"), props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Right, Color: colorFaint}),
		),
		row.New(7).Add(
			text.NewCol(6, recipient, props.Text{Size: 13, Style: fontstyle.Bold, Color: colorInk}),
			text.NewCol(6, in.TeamName, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(6).Add(
			text.NewCol(6, in.RecipientContact, props.Text{Size: 8, Color: colorMuted}),
			text.NewCol(6, strings.TrimSpace(in.ManagerName+" "+in.t("manager")), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(5).Add(
			col.New(6),
			text.NewCol(6, in.ManagerEmail, props.Text{Size: 7, Align: align.Right, Color: colorMuted}),
		),
		row.New(10),
	)

	// Table header.
	rows = append(rows,
		row.New(6).Add(
			text.NewCol(1, "No", props.Text{Size: 6, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(6, "Description", props.Text{Size: 6, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(2, "Image", props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Center, Color: colorFaint}),
			text.NewCol(3, "Pricing", props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Right, Color: colorFaint}),
		),
		line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.4}),
	)

	// Item rows. Each line shows name, spec tags, optional embedded thumbnail
	// and the pricing block (unit price, qty, term when rental, line total).
	for i, ln := range in.Lines {
		rows = append(rows, r.itemRow(in, i, ln)...)
		rows = append(rows, line.NewRow(1, props.Line{Color: colorFaint, Thickness: 0.2}))
	}

	// Footer: validity notes left, grand total right.
	rows = append(rows,
		row.New(10),
		row.New(5).Add(
			text.NewCol(7, in.t("validity_note"), props.Text{Size: 7, Color: colorMuted}),
			text.NewCol(5, "Total Amount", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorFaint}),
		),
		row.New(9).Add(
			text.NewCol(7, in.t("vat_note"), props.Text{Size: 7, Color: colorMuted}),
			text.NewCol(5, Won(in.GrandTotal), props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right, Color: colorInk}),
		),
		row.New(8),
		line.NewRow(1, props.Line{Color: colorFaint, Thickness: 0.2}),
		row.New(5).Add(
			text.NewCol(6, in.t("official_proposal"), props.Text{Size: 6, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(6, strings.ToUpper(in.TeamName), props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Right, Color: colorFaint}),
		),
	)
	return rows, nil
}

func (r *standardRenderer) itemRow(in Input, index int, ln Line) []core.Row {
	it := ln.Item
	name := it.Name
	if name == "" {
		name = in.t("item.placeholder")
	}
	specs := in.t("no_specs")
	if len(it.Specs) > 0 {
		specs = strings.Join(it.Specs, "  ·  ")
	}
	priceLabel := in.t("price")
	if in.Type == models.TypeRental {
		priceLabel = in.t("monthly")
	}

	imgCol := col.New(2)
	if data, ext, ok := decodeDataURL(it.ImageRef); ok {
		imgCol = image.NewFromBytesCol(2, data, ext, props.Rect{Center: true, Percent: 80})
	}

	qtyTerm := FormatAmount(int64(it.Quantity)) + " EA"
	if in.Type == models.TypeRental {
		qtyTerm += "  /  " + FormatAmount(int64(it.PeriodMonths)) + " M"
	}

	return []core.Row{
		row.New(7).Add(
			text.NewCol(1, lineNo(index), props.Text{Size: 8, Style: fontstyle.Bold, Color: colorFaint}),
			text.NewCol(6, name, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorInk}),
			imgCol,
			text.NewCol(3, priceLabel+"  "+Won(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Color: colorMuted}),
		),
		row.New(6).Add(
			col.New(1),
			text.NewCol(6, specs, props.Text{Size: 7, Color: colorMuted}),
			col.New(2),
			text.NewCol(3, qtyTerm, props.Text{Size: 7, Align: align.Right, Color: colorMuted}),
		),
		row.New(5).Add(
			col.New(9),
			text.NewCol(3, "Subtotal  "+Won(ln.Total), props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: colorMuted}),
		),
	}
}
