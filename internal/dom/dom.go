//go:build js && wasm

// Package dom binds the reader's scroll tracker and annotation selector to
// the browser through syscall/js.
package dom

import (
	"errors"
	"sync"
	"syscall/js"
	"time"

	"github.com/scholia-labs/scholia/internal/manifest"
	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/scroll"
)

// Document reads layout from the live page. It implements scroll.Geometry.
type Document struct {
	doc js.Value
	win js.Value
}

// NewDocument binds to the global window and document.
func NewDocument() *Document {
	win := js.Global()
	return &Document{doc: win.Get("document"), win: win}
}

// Markers returns the page offset of every [data-section] heading.
func (d *Document) Markers() []scroll.Marker {
	nodes := d.doc.Call("querySelectorAll", "[data-section]")
	n := nodes.Length()
	scrollY := d.ScrollY()
	markers := make([]scroll.Marker, 0, n)
	for i := 0; i < n; i++ {
		el := nodes.Index(i)
		top := el.Call("getBoundingClientRect").Get("top").Float()
		markers = append(markers, scroll.Marker{
			ID:     el.Get("dataset").Get("section").String(),
			Offset: top + scrollY,
		})
	}
	return markers
}

func (d *Document) ScrollY() float64 { return d.win.Get("scrollY").Float() }

func (d *Document) ViewportHeight() float64 { return d.win.Get("innerHeight").Float() }

// Query returns the first element matching selector, or js.Null().
func (d *Document) Query(selector string) js.Value {
	return d.doc.Call("querySelector", selector)
}

// HighlightTOC marks the table-of-contents link for sectionID as active and
// clears the others.
func (d *Document) HighlightTOC(sectionID string) {
	links := d.doc.Call("querySelectorAll", "[data-toc]")
	for i := 0; i < links.Length(); i++ {
		el := links.Index(i)
		active := el.Get("dataset").Get("toc").String() == sectionID
		el.Get("classList").Call("toggle", "active", active)
		if active {
			el.Call("setAttribute", "aria-current", "location")
		} else {
			el.Call("removeAttribute", "aria-current")
		}
	}
}

// ReadManifest decodes the manifest embedded in the page.
func (d *Document) ReadManifest() (*manifest.Manifest, error) {
	el := d.doc.Call("getElementById", manifest.ElementID)
	if el.IsNull() {
		return nil, errors.New("page has no reader manifest")
	}
	return manifest.Decode([]byte(el.Get("textContent").String()))
}

// Viewport reports scroll and resize events. It implements scroll.Viewport.
type Viewport struct{}

// Subscribe attaches passive scroll and resize listeners. The returned
// function detaches them and releases the callback.
func (Viewport) Subscribe(onChange func()) (unsubscribe func()) {
	win := js.Global()
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		onChange()
		return nil
	})
	opts := js.ValueOf(map[string]any{"passive": true})
	win.Call("addEventListener", "scroll", cb, opts)
	win.Call("addEventListener", "resize", cb, opts)

	var once sync.Once
	return func() {
		once.Do(func() {
			win.Call("removeEventListener", "scroll", cb, opts)
			win.Call("removeEventListener", "resize", cb, opts)
			cb.Release()
		})
	}
}

// Frames schedules work with requestAnimationFrame. It implements
// scroll.FrameScheduler.
type Frames struct{}

func (Frames) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

// Clock schedules with setTimeout. It implements marginalia.Clock.
type Clock struct{}

type timeout struct {
	mu      sync.Mutex
	id      js.Value
	cb      js.Func
	pending bool
}

func (Clock) AfterFunc(d time.Duration, fn func()) marginalia.Timer {
	t := &timeout{pending: true}
	t.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if t.finish() {
			fn()
		}
		return nil
	})
	t.id = js.Global().Call("setTimeout", t.cb, d.Milliseconds())
	return t
}

func (t *timeout) finish() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pending {
		return false
	}
	t.pending = false
	t.cb.Release()
	return true
}

// Stop cancels the timeout. It reports whether the callback was still
// pending.
func (t *timeout) Stop() bool {
	if !t.finish() {
		return false
	}
	js.Global().Call("clearTimeout", t.id)
	return true
}
