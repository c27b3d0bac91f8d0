// Пакет реализует редактируемую область абзаца поверх DOM-дерева golang.org/x/net/html.
//
// Region синхронизирует спаны модели и содержимое DOM в обе стороны. Пока область редактируется,
// модель не перезаписывает DOM, чтобы не сбивать каретку. Изменения DOM возвращаются в модель
// по событиям ввода, потери фокуса и после команд форматирования.
package surface

import (
	"log/slog"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultLinkURL - начальное значение поля адреса при открытии ввода ссылки.
const DefaultLinkURL = "https://"

// LinkPrompt - состояние открытого ввода ссылки.
type LinkPrompt struct {
	URL    string
	NewTab bool
}

type Region struct {
	root  *html.Node
	sched *Scheduler

	value          []edtypes.RichSpan
	editing        bool
	toolbarVisible bool

	live  *Selection
	saved *Selection
	link  *LinkPrompt

	OnChange     func([]edtypes.RichSpan)
	OnAlign      func(edtypes.Align)
	OnToggleList func(edtypes.ListKind)
}

// NewRegion создает область поверх root. Nil root заменяется пустым <div>.
func NewRegion(root *html.Node, sched *Scheduler, onChange func([]edtypes.RichSpan)) *Region {
	if root == nil {
		root = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	if sched == nil {
		sched = NewScheduler()
	}
	return &Region{
		root:     root,
		sched:    sched,
		value:    edtypes.EmptySpans(),
		OnChange: onChange,
	}
}

func (r *Region) Root() *html.Node {
	return r.root
}

func (r *Region) HTML() string {
	return editor.InnerHTML(r.root)
}

func (r *Region) Value() []edtypes.RichSpan {
	return r.value
}

func (r *Region) Editing() bool {
	return r.editing
}

// SetValue принимает спаны от модели. DOM перезаписывается только вне режима редактирования.
func (r *Region) SetValue(spans []edtypes.RichSpan) {
	r.value = spans
	if r.editing {
		return
	}
	r.render()
}

func (r *Region) render() {
	if err := editor.SetInnerHTML(r.root, editor.SpansToHTML(r.value)); err != nil {
		slog.Error("Render region", "err", err)
	}
}

// SetToolbarVisible при показе панели инструментов включает режим редактирования без перемещения каретки.
func (r *Region) SetToolbarVisible(visible bool) {
	r.toolbarVisible = visible
	if visible {
		r.editing = true
	}
}

func (r *Region) Focus() {
	r.editing = true
}

// Select задает текущее выделение пользователя.
func (r *Region) Select(sel Selection) {
	r.live = &sel
}

// Selection возвращает текущее выделение, nil если его нет.
func (r *Region) Selection() *Selection {
	if r.live == nil {
		return nil
	}
	sel := *r.live
	return &sel
}

// SaveSelection запоминает текущее выделение, если оно лежит внутри области.
func (r *Region) SaveSelection() {
	if r.live == nil || !r.live.Within(TextLen(r.root)) {
		return
	}
	sel := *r.live
	r.saved = &sel
}

// RestoreSelection делает сохраненное выделение текущим. Без сохраненного выделения ничего не меняет.
func (r *Region) RestoreSelection() *Selection {
	if r.saved != nil {
		sel := *r.saved
		r.live = &sel
	}
	return r.Selection()
}

// Input обрабатывает событие ввода: DOM уже изменен пользователем.
func (r *Region) Input() {
	r.SaveSelection()
	r.sync()
}

// Blur синхронизирует модель и выходит из режима редактирования, если панель инструментов скрыта.
func (r *Region) Blur() {
	r.sync()
	r.live = nil
	if r.toolbarVisible {
		return
	}
	r.editing = false
	r.render()
}

func (r *Region) sync() {
	r.value = editor.RootToSpans(r.root)
	if r.OnChange != nil {
		r.OnChange(r.value)
	}
}

// Exec применяет команду форматирования (bold, italic, underline, strikeThrough) к сохраненному выделению.
// Без выделения или со свернутым выделением команда ничего не делает.
func (r *Region) Exec(cmd string) bool {
	m, ok := ParseCommand(cmd)
	if !ok {
		slog.Debug("Unsupported region command", "cmd", cmd)
		return false
	}
	sel := r.RestoreSelection()
	if sel == nil || sel.Collapsed() {
		return false
	}
	if err := ApplyMark(r.root, *sel, m); err != nil {
		slog.Error("Apply region command", "cmd", cmd, "err", err)
		return false
	}
	r.sched.AfterRender(r.sync)
	return true
}

// Align передает выравнивание владельцу области и синхронизирует спаны после отрисовки.
func (r *Region) Align(a edtypes.Align) {
	if r.OnAlign != nil {
		r.OnAlign(a)
	}
	r.sched.AfterRender(r.sync)
}

// ToggleList передает переключение списка владельцу области и синхронизирует спаны после отрисовки.
func (r *Region) ToggleList(kind edtypes.ListKind) {
	if r.OnToggleList != nil {
		r.OnToggleList(kind)
	}
	r.sched.AfterRender(r.sync)
}

// SelectWordAt выделяет слово вокруг позиции offset (Ctrl+Shift+Click) и запоминает выделение.
func (r *Region) SelectWordAt(offset int) Selection {
	r.editing = true
	start, end := WordBounds(editor.TextContent(r.root), offset)
	sel := Selection{Start: start, End: end}
	r.live = &sel
	saved := sel
	r.saved = &saved
	return sel
}

// OpenLink открывает ввод ссылки и запоминает текущее выделение.
func (r *Region) OpenLink() *LinkPrompt {
	r.saved = r.Selection()
	r.link = &LinkPrompt{URL: DefaultLinkURL}
	return r.link
}

func (r *Region) LinkPrompt() *LinkPrompt {
	return r.link
}

func (r *Region) CancelLink() {
	r.link = nil
}

// ApplyLink применяет ссылку из открытого ввода к сохраненному выделению.
// Пустой адрес закрывает ввод без изменений. Для новой вкладки target и rel
// выставляются последней ссылке внутри общего предка выделенного участка.
func (r *Region) ApplyLink() bool {
	prompt := r.link
	r.link = nil
	if prompt == nil {
		return false
	}
	url := strings.TrimSpace(prompt.URL)
	if url == "" {
		return false
	}
	sel := r.RestoreSelection()
	if sel == nil || !sel.Within(TextLen(r.root)) {
		return false
	}

	linked, err := ApplyLink(r.root, *sel, url, prompt.NewTab)
	if err != nil {
		slog.Error("Apply link", "err", err)
		return false
	}
	r.live = &linked
	r.sched.AfterRender(r.sync)
	return true
}
