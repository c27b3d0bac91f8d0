package listedit

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/surface"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const noItem = -1

// ItemSelection - выделение внутри элемента списка.
type ItemSelection struct {
	Index int
	surface.Selection
}

// Editor - состояние редактирования списка. Каждый элемент имеет свой DOM-корень.
// Элемент, который сейчас редактируется, не перезаписывается из модели.
type Editor struct {
	sched *surface.Scheduler

	kind  edtypes.ListKind
	items []edtypes.ParagraphListItem
	roots []*html.Node

	editing        int
	focused        int
	toolbarVisible bool

	live  *ItemSelection
	saved *ItemSelection
	link  *surface.LinkPrompt

	OnItemsChange func([]edtypes.ParagraphListItem)
	OnAlign       func(edtypes.Align)
	OnToggleList  func(edtypes.ListKind)
}

func New(kind edtypes.ListKind, sched *surface.Scheduler, onItemsChange func([]edtypes.ParagraphListItem)) *Editor {
	if sched == nil {
		sched = surface.NewScheduler()
	}
	if !kind.IsList() {
		kind = edtypes.ListUL
	}
	return &Editor{
		sched:         sched,
		kind:          kind,
		editing:       noItem,
		focused:       noItem,
		OnItemsChange: onItemsChange,
	}
}

func (e *Editor) Kind() edtypes.ListKind {
	return e.kind
}

func (e *Editor) SetKind(kind edtypes.ListKind) {
	if kind.IsList() {
		e.kind = kind
	}
}

func (e *Editor) Items() []edtypes.ParagraphListItem {
	return e.items
}

// EditingIndex возвращает индекс редактируемого элемента или -1.
func (e *Editor) EditingIndex() int {
	return e.editing
}

func (e *Editor) Root(i int) *html.Node {
	if i < 0 || i >= len(e.roots) {
		return nil
	}
	return e.roots[i]
}

func (e *Editor) ItemHTML(i int) string {
	return editor.InnerHTML(e.Root(i))
}

// HTML выводит список целиком.
func (e *Editor) HTML() string {
	var sb strings.Builder
	sb.WriteString("<" + string(e.kind) + ">")
	for i := range e.roots {
		sb.WriteString("<li>" + e.ItemHTML(i) + "</li>")
	}
	sb.WriteString("</" + string(e.kind) + ">")
	return sb.String()
}

// SetItems принимает элементы от модели и перерисовывает все элементы, кроме редактируемого.
func (e *Editor) SetItems(items []edtypes.ParagraphListItem) {
	e.items = items
	for len(e.roots) < len(items) {
		e.roots = append(e.roots, &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li})
	}
	e.roots = e.roots[:len(items)]
	for i, it := range items {
		if i == e.editing {
			continue
		}
		e.renderItem(i, it.Spans)
	}
	if e.editing >= len(items) {
		e.editing = noItem
	}
}

func (e *Editor) renderItem(i int, spans []edtypes.RichSpan) {
	if err := editor.SetInnerHTML(e.roots[i], editor.SpansToHTML(spans)); err != nil {
		slog.Error("Render list item", "index", i, "err", err)
	}
}

// SetToolbarVisible при показе панели инструментов делает активным первый элемент, если активного нет.
func (e *Editor) SetToolbarVisible(visible bool) {
	e.toolbarVisible = visible
	if visible && e.editing == noItem && len(e.items) > 0 {
		e.editing = 0
	}
}

func (e *Editor) FocusItem(i int) {
	if e.Root(i) == nil {
		return
	}
	e.editing = i
	e.focused = i
}

// Select задает текущее выделение пользователя в элементе i.
func (e *Editor) Select(i int, sel surface.Selection) {
	e.live = &ItemSelection{Index: i, Selection: sel}
}

func (e *Editor) Selection() *ItemSelection {
	if e.live == nil {
		return nil
	}
	sel := *e.live
	return &sel
}

// SaveSelection запоминает выделение, если оно лежит внутри редактируемого элемента.
func (e *Editor) SaveSelection() {
	if e.live == nil || e.live.Index != e.editing {
		return
	}
	root := e.Root(e.live.Index)
	if root == nil || !e.live.Within(surface.TextLen(root)) {
		return
	}
	sel := *e.live
	e.saved = &sel
}

func (e *Editor) RestoreSelection() *ItemSelection {
	if e.saved != nil {
		sel := *e.saved
		e.live = &sel
	}
	return e.Selection()
}

// InputItem обрабатывает ввод в элементе i.
func (e *Editor) InputItem(i int) {
	e.SaveSelection()
	e.syncItem(i)
}

func (e *Editor) syncItem(i int) {
	root := e.Root(i)
	if root == nil {
		return
	}
	next := slices.Clone(e.items)
	next[i] = edtypes.ParagraphListItem{Spans: editor.RootToSpans(root)}
	e.items = next
	if e.OnItemsChange != nil {
		e.OnItemsChange(next)
	}
}

// KeyDown обрабатывает нажатие клавиши в элементе i и возвращает true, если событие поглощено.
// Enter без Shift вставляет пустой элемент после текущего и после отрисовки переводит
// в него фокус с кареткой в конце.
func (e *Editor) KeyDown(i int, key string, shift bool) bool {
	if key != "Enter" || shift || e.Root(i) == nil {
		return false
	}
	next := slices.Insert(slices.Clone(e.items), i+1, edtypes.ParagraphListItem{Spans: edtypes.EmptySpans()})
	e.SetItems(next)
	if e.OnItemsChange != nil {
		e.OnItemsChange(next)
	}
	e.sched.AfterRender(func() {
		target := i + 1
		root := e.Root(target)
		if root == nil {
			return
		}
		e.FocusItem(target)
		e.live = &ItemSelection{Index: target, Selection: surface.Caret(surface.TextLen(root))}
	})
	return true
}

// BlurItem синхронизирует элемент i. Режим редактирования снимается после отрисовки,
// если фокус не перешел в другой элемент и панель инструментов скрыта.
func (e *Editor) BlurItem(i int) {
	e.syncItem(i)
	if e.focused == i {
		e.focused = noItem
	}
	e.sched.AfterRender(func() {
		if e.focused != noItem || e.toolbarVisible {
			return
		}
		prev := e.editing
		e.editing = noItem
		if prev >= 0 && prev < len(e.items) {
			e.renderItem(prev, e.items[prev].Spans)
		}
	})
}

// Exec применяет команду форматирования к сохраненному выделению редактируемого элемента.
func (e *Editor) Exec(cmd string) bool {
	m, ok := surface.ParseCommand(cmd)
	if !ok || e.editing == noItem {
		return false
	}
	sel := e.RestoreSelection()
	if sel == nil || sel.Collapsed() || e.Root(sel.Index) == nil {
		return false
	}
	if err := surface.ApplyMark(e.roots[sel.Index], sel.Selection, m); err != nil {
		slog.Error("Apply list command", "cmd", cmd, "err", err)
		return false
	}
	e.scheduleSync()
	return true
}

func (e *Editor) scheduleSync() {
	if e.editing == noItem {
		return
	}
	i := e.editing
	e.sched.AfterRender(func() { e.syncItem(i) })
}

func (e *Editor) Align(a edtypes.Align) {
	if e.OnAlign != nil {
		e.OnAlign(a)
	}
	e.scheduleSync()
}

func (e *Editor) ToggleList(kind edtypes.ListKind) {
	if e.OnToggleList != nil {
		e.OnToggleList(kind)
	}
	e.scheduleSync()
}

// SelectWordAt выделяет слово вокруг позиции offset в элементе i.
func (e *Editor) SelectWordAt(i int, offset int) *ItemSelection {
	root := e.Root(i)
	if root == nil {
		return nil
	}
	e.FocusItem(i)
	start, end := surface.WordBounds(editor.TextContent(root), offset)
	e.live = &ItemSelection{Index: i, Selection: surface.Selection{Start: start, End: end}}
	saved := *e.live
	e.saved = &saved
	return e.Selection()
}

func (e *Editor) OpenLink() *surface.LinkPrompt {
	e.saved = e.Selection()
	e.link = &surface.LinkPrompt{URL: surface.DefaultLinkURL}
	return e.link
}

func (e *Editor) LinkPrompt() *surface.LinkPrompt {
	return e.link
}

func (e *Editor) CancelLink() {
	e.link = nil
}

// ApplyLink применяет ссылку из открытого ввода к сохраненному выделению.
func (e *Editor) ApplyLink() bool {
	prompt := e.link
	e.link = nil
	if prompt == nil || strings.TrimSpace(prompt.URL) == "" {
		return false
	}
	sel := e.RestoreSelection()
	if sel == nil {
		return false
	}
	root := e.Root(sel.Index)
	if root == nil || !sel.Within(surface.TextLen(root)) {
		return false
	}
	linked, err := surface.ApplyLink(root, sel.Selection, prompt.URL, prompt.NewTab)
	if err != nil {
		slog.Error("Apply list link", "err", err)
		return false
	}
	e.live = &ItemSelection{Index: sel.Index, Selection: linked}
	e.scheduleSync()
	return true
}
