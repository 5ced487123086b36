package cart

import "github.com/shopspring/decimal"

type LineView struct {
	*Line
	Total decimal.Decimal `json:"total"`
}

type View struct {
	Lines     []LineView      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func ToView(c *Cart) *View {
	lines := make([]LineView, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = LineView{Line: l, Total: l.Total()}
	}
	return &View{
		Lines:     lines,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}
