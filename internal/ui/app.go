// Package ui provides the Bubble Tea-based terminal storefront.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tqc04/basket/internal/cart"
	"github.com/tqc04/basket/internal/compare"
	"github.com/tqc04/basket/internal/favorites"
	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/prefs"
	"github.com/tqc04/basket/internal/product"
	"github.com/tqc04/basket/internal/search"
	"github.com/tqc04/basket/internal/session"
	"github.com/tqc04/basket/internal/shopapi"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewCart
	ViewFavorites
	ViewCompare
)

// ViewFromName maps a preference string to a view, defaulting to browse.
func ViewFromName(name string) View {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cart":
		return ViewCart
	case "favorites":
		return ViewFavorites
	case "compare":
		return ViewCompare
	default:
		return ViewBrowse
	}
}

// toastVisible is how long a notification stays on screen.
const toastVisible = 4 * time.Second

// refreshTick drives re-renders while background store work completes.
const refreshTick = 500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Backend   shopapi.Backend
	Cart      *cart.Store
	Favorites *favorites.Store
	Compare   *compare.Store
	Session   *session.Session
	Bus       *notify.Bus
	Suggester *search.Suggester
	LoginAs   string // account for the L key; empty disables login
	ThemeName string
	StartView string
	PageSize  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	backend   shopapi.Backend
	cart      *cart.Store
	favorites *favorites.Store
	compare   *compare.Store
	session   *session.Session
	suggester *search.Suggester
	loginAs   string
	prefsPath string
	pageSize  int

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Search state
	searchInput   textinput.Model
	searchFocused bool
	debounce      *search.Debouncer
	suggestions   []product.Summary
	activeQuery   string

	// Voucher entry state
	voucherInput   textinput.Model
	voucherFocused bool

	// Catalog state
	page       shopapi.ProductPage
	pageLoaded bool

	// Per-view selection
	selected map[View]int

	// Toast state
	toasts   chan notify.Event
	toast    *notify.Event
	toastSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "search products"
	searchInput.CharLimit = 80
	searchInput.Width = 32

	voucherInput := textinput.New()
	voucherInput.Placeholder = "voucher code"
	voucherInput.CharLimit = 24
	voucherInput.Width = 20

	m := Model{
		ctx:          ctx,
		backend:      opts.Backend,
		cart:         opts.Cart,
		favorites:    opts.Favorites,
		compare:      opts.Compare,
		session:      opts.Session,
		suggester:    opts.Suggester,
		loginAs:      opts.LoginAs,
		prefsPath:    prefsPath,
		pageSize:     pageSize,
		theme:        theme,
		styles:       theme.Styles(),
		currentView:  ViewFromName(opts.StartView),
		searchInput:  searchInput,
		voucherInput: voucherInput,
		debounce:     search.NewDebouncer(search.DefaultDelay),
		selected:     make(map[View]int),
		toasts:       make(chan notify.Event, 16),
	}

	// The bus delivers from store goroutines; a full channel drops the
	// toast rather than blocking a mutation.
	if opts.Bus != nil {
		opts.Bus.Subscribe(func(ev notify.Event) {
			select {
			case m.toasts <- ev:
			default:
			}
		})
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForToastCmd(m.toasts),
		tickCmd(),
		m.fetchProductsCmd("", 0),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		// Stores mutate in the background; re-render on a cadence so
		// snapshots stay fresh without per-store plumbing.
		return m, tickCmd()

	case toastMsg:
		ev := notify.Event(msg)
		m.toast = &ev
		m.toastSeq++
		return m, tea.Batch(
			waitForToastCmd(m.toasts),
			toastExpireCmd(m.toastSeq),
		)

	case toastExpiredMsg:
		if int(msg) == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case search.FireMsg:
		if !m.debounce.Current(msg) {
			return m, nil
		}
		m.activeQuery = msg.Query
		return m, tea.Batch(
			m.fetchProductsCmd(msg.Query, 0),
			m.fetchSuggestionsCmd(msg.Query),
		)

	case productsMsg:
		m.page = shopapi.ProductPage(msg)
		m.pageLoaded = true
		m.clampSelection(ViewBrowse, len(m.page.Content))
		return m, nil

	case productsErrMsg:
		// The browse view keeps showing the previous page; the failure
		// already produced a log line.
		return m, nil

	case suggestionsMsg:
		m.suggestions = msg
		return m, nil

	case opDoneMsg:
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderToast())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBrowse:
		return m.renderBrowse()
	case ViewCart:
		return m.renderCart()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewCompare:
		return m.renderCompare()
	default:
		return ""
	}
}

func (m *Model) clampSelection(view View, count int) {
	if count == 0 {
		m.selected[view] = 0
		return
	}
	if m.selected[view] >= count {
		m.selected[view] = count - 1
	}
	if m.selected[view] < 0 {
		m.selected[view] = 0
	}
}

// Messages

type tickMsg time.Time

type toastMsg notify.Event

type toastExpiredMsg int

type productsMsg shopapi.ProductPage

type productsErrMsg struct{ err error }

type suggestionsMsg []product.Summary

type opDoneMsg struct{}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(refreshTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForToastCmd(ch chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		return toastMsg(<-ch)
	}
}

func toastExpireCmd(seq int) tea.Cmd {
	return tea.Tick(toastVisible, func(time.Time) tea.Msg {
		return toastExpiredMsg(seq)
	})
}

func (m Model) fetchProductsCmd(query string, page int) tea.Cmd {
	ctx, backend, size := m.ctx, m.backend, m.pageSize
	return func() tea.Msg {
		result, err := backend.FetchProducts(ctx, shopapi.ProductQuery{
			Search: query,
			Page:   page,
			Size:   size,
		})
		if err != nil {
			return productsErrMsg{err: err}
		}
		return productsMsg(result)
	}
}

func (m Model) fetchSuggestionsCmd(query string) tea.Cmd {
	ctx, suggester := m.ctx, m.suggester
	return func() tea.Msg {
		return suggestionsMsg(suggester.Suggest(ctx, query))
	}
}

// opCmd runs a store mutation off the UI goroutine.
func (m Model) opCmd(op func()) tea.Cmd {
	return func() tea.Msg {
		op()
		return opDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
