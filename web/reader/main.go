//go:build js && wasm

// Command reader is the in-browser dossier reader. Build it with
//
//	GOOS=js GOARCH=wasm go build -o public/static/reader.wasm ./web/reader
//
// and copy $(go env GOROOT)/lib/wasm/wasm_exec.js to public/static.
package main

import (
	"syscall/js"

	"github.com/scholia-labs/scholia/internal/dom"
	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/scroll"
)

func main() {
	doc := dom.NewDocument()
	m, err := doc.ReadManifest()
	if err != nil {
		println("[scholia] reader disabled:", err.Error())
		return
	}

	index := m.Index()
	frames := dom.Frames{}

	selector := marginalia.NewSelector(index, dom.Clock{}, frames, m.Reader.Fade())
	card := dom.NewCardView(doc.Query("#marginalia .marginalia-card"), index, m.Reader.TruncateAt)
	selector.Watch(card.Render)

	tracker := scroll.NewTracker(m.Reader.ScrollConfig(), doc, dom.Viewport{}, frames, index.SectionNotes())
	tracker.Watch(func(st scroll.State) {
		selector.Follow(st)
		doc.HighlightTOC(st.ActiveSectionID)
	})
	stop := tracker.Start()

	done := make(chan struct{})
	var onHide js.Func
	onHide = js.FuncOf(func(this js.Value, args []js.Value) any {
		onHide.Release()
		stop()
		selector.Close()
		close(done)
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", onHide, js.ValueOf(map[string]any{"once": true}))

	println("[scholia] reader ready:", m.Legend+"/"+m.Volume)
	<-done
}
