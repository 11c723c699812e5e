//go:build js && wasm

package dom

import (
	"strconv"
	"syscall/js"

	"github.com/scholia-labs/scholia/internal/marginalia"
)

// CardView renders the selector's displayed annotation into the marginalia
// aside. Content is written with textContent, never as markup.
type CardView struct {
	root       js.Value
	doc        js.Value
	index      *marginalia.Index
	truncateAt int
}

// NewCardView binds to the .marginalia-card element root.
func NewCardView(root js.Value, index *marginalia.Index, truncateAt int) *CardView {
	return &CardView{
		root:       root,
		doc:        js.Global().Get("document"),
		index:      index,
		truncateAt: truncateAt,
	}
}

// Render draws v. With nothing displayed the empty hint is shown.
func (c *CardView) Render(v marginalia.View) {
	if c.root.IsNull() || c.root.IsUndefined() {
		return
	}
	c.root.Call("setAttribute", "data-visible", strconv.FormatBool(v.Visible))
	c.root.Call("setAttribute", "data-phase", v.Phase.String())

	if v.Displayed == nil {
		c.root.Get("style").Call("removeProperty", "--note")
		c.root.Call("replaceChildren", c.el("p", "marginalia-empty", marginalia.EmptyHint))
		return
	}

	card := marginalia.NewCard(*v.Displayed, c.index, c.truncateAt)
	c.root.Get("style").Call("setProperty", "--note", card.Color)

	children := []any{c.el("span", "marginalia-label", card.Label)}
	if card.Title != "" {
		children = append(children, c.el("h3", "marginalia-title", card.Title))
	}
	children = append(children, c.el("p", "marginalia-text", card.Text))
	if len(card.Pips) > 0 {
		pips := c.el("div", "pips", "")
		for _, on := range card.Pips {
			cls := ""
			if on {
				cls = "active"
			}
			pips.Call("appendChild", c.el("span", cls, ""))
		}
		children = append(children, pips)
	}
	c.root.Call("replaceChildren", children...)
}

func (c *CardView) el(tag, class, text string) js.Value {
	e := c.doc.Call("createElement", tag)
	e.Set("className", class)
	if text != "" {
		e.Set("textContent", text)
	}
	return e
}
