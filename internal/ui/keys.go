package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tqc04/basket/internal/prefs"
	"github.com/tqc04/basket/internal/product"
	"github.com/tqc04/basket/internal/search"
	"github.com/tqc04/basket/internal/shopapi"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searchFocused {
		return m.handleSearchKey(msg)
	}
	if m.voucherFocused {
		return m.handleVoucherKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "e":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{
				Theme:     m.theme.Name,
				StartView: viewName(m.currentView),
				PageSize:  m.pageSize,
			})
		}
		return m, nil

	case "/":
		m.searchFocused = true
		return m, m.searchInput.Focus()

	case "tab":
		m.currentView = View((int(m.currentView) + 1) % 4)
		return m, nil

	case "shift+tab":
		m.currentView = View((int(m.currentView) + 3) % 4)
		return m, nil

	case "b":
		m.currentView = ViewBrowse
		return m, nil

	case "c":
		m.currentView = ViewCart
		return m, nil

	case "f":
		m.currentView = ViewFavorites
		return m, nil

	case "m":
		m.currentView = ViewCompare
		return m, nil

	case "L":
		return m.handleSessionToggle()

	case "esc":
		m.currentView = ViewBrowse
		return m, nil
	}

	switch m.currentView {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewCompare:
		return m.handleCompareKey(msg)
	}

	return m, nil
}

func viewName(v View) string {
	switch v {
	case ViewCart:
		return "cart"
	case ViewFavorites:
		return "favorites"
	case ViewCompare:
		return "compare"
	default:
		return "browse"
	}
}

// handleSearchKey routes input to the search box while it has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		m.debounce.Cancel()
		m.suggestions = nil
		return m, nil

	case "enter":
		// Enter searches immediately, skipping the debounce window.
		m.searchFocused = false
		m.searchInput.Blur()
		m.debounce.Cancel()
		m.suggestions = nil
		m.activeQuery = strings.TrimSpace(m.searchInput.Value())
		m.currentView = ViewBrowse
		return m, m.fetchProductsCmd(m.activeQuery, 0)
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)

	query := strings.TrimSpace(m.searchInput.Value())
	if !search.Eligible(query) {
		m.debounce.Cancel()
		m.suggestions = nil
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.debounce.Trigger(query))
}

// handleVoucherKey routes input to the voucher box while it has focus.
func (m Model) handleVoucherKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.voucherFocused = false
		m.voucherInput.Blur()
		m.voucherInput.SetValue("")
		return m, nil

	case "enter":
		code := strings.TrimSpace(m.voucherInput.Value())
		m.voucherFocused = false
		m.voucherInput.Blur()
		m.voucherInput.SetValue("")
		if code == "" {
			return m, nil
		}
		return m, m.opCmd(func() { m.cart.ApplyVoucher(m.ctx, code) })
	}

	var inputCmd tea.Cmd
	m.voucherInput, inputCmd = m.voucherInput.Update(msg)
	return m, inputCmd
}

// handleSessionToggle signs the configured account in or out.
func (m Model) handleSessionToggle() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if m.session.Authenticated() {
		return m, m.opCmd(func() { m.session.Logout() })
	}
	if m.loginAs == "" {
		return m, nil
	}
	loginAs := m.loginAs
	return m, m.opCmd(func() { m.session.Login(loginAs) })
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.page.Content)

	switch msg.String() {
	case "j", "down":
		if m.selected[ViewBrowse] < count-1 {
			m.selected[ViewBrowse]++
		}
	case "k", "up":
		if m.selected[ViewBrowse] > 0 {
			m.selected[ViewBrowse]--
		}
	case "g", "home":
		m.selected[ViewBrowse] = 0
	case "G", "end":
		if count > 0 {
			m.selected[ViewBrowse] = count - 1
		}

	case "n", "right":
		if m.page.Page+1 < m.page.TotalPages {
			return m, m.fetchProductsCmd(m.activeQuery, m.page.Page+1)
		}
	case "p", "left":
		if m.page.Page > 0 {
			return m, m.fetchProductsCmd(m.activeQuery, m.page.Page-1)
		}

	case "a", "enter":
		if p, ok := m.selectedProduct(); ok {
			id := p.ID
			return m, m.opCmd(func() { m.cart.Add(m.ctx, id, 1, 0) })
		}

	case "s":
		if p, ok := m.selectedProduct(); ok {
			id := p.ID
			return m, m.opCmd(func() { m.favorites.Toggle(m.ctx, id) })
		}

	case "v":
		if p, ok := m.selectedProduct(); ok {
			summary := product.FromCatalog(p)
			return m, m.opCmd(func() {
				if m.compare.Contains(summary.ID) {
					m.compare.Remove(summary.ID)
				} else {
					m.compare.Add(summary)
				}
			})
		}
	}

	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.cart.Snapshot()
	var items = 0
	if snap.Cart != nil {
		items = len(snap.Cart.Items)
	}

	switch msg.String() {
	case "j", "down":
		if m.selected[ViewCart] < items-1 {
			m.selected[ViewCart]++
		}
	case "k", "up":
		if m.selected[ViewCart] > 0 {
			m.selected[ViewCart]--
		}

	case "+", "=":
		if item, ok := m.selectedCartItem(); ok {
			id, qty := item.ProductID, item.Quantity+1
			return m, m.opCmd(func() { m.cart.UpdateQuantity(m.ctx, id, qty) })
		}

	case "-":
		if item, ok := m.selectedCartItem(); ok && item.Quantity > 1 {
			id, qty := item.ProductID, item.Quantity-1
			return m, m.opCmd(func() { m.cart.UpdateQuantity(m.ctx, id, qty) })
		}

	case "x":
		if item, ok := m.selectedCartItem(); ok {
			id := item.ProductID
			return m, m.opCmd(func() { m.cart.Remove(m.ctx, id) })
		}

	case "C":
		return m, m.opCmd(func() { m.cart.Clear(m.ctx) })

	case "V":
		if snap.Cart != nil && snap.Cart.VoucherCode != "" {
			return m, m.opCmd(func() { m.cart.RemoveVoucher(m.ctx) })
		}
		m.voucherFocused = true
		return m, m.voucherInput.Focus()

	case "r":
		return m, m.opCmd(func() { m.cart.Refresh(m.ctx) })
	}

	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.favorites.Items()
	count := len(items)

	switch msg.String() {
	case "j", "down":
		if m.selected[ViewFavorites] < count-1 {
			m.selected[ViewFavorites]++
		}
	case "k", "up":
		if m.selected[ViewFavorites] > 0 {
			m.selected[ViewFavorites]--
		}

	case "x":
		if idx := m.selected[ViewFavorites]; idx < count {
			id := items[idx].ID
			return m, m.opCmd(func() { m.favorites.Remove(m.ctx, id) })
		}

	case "a", "enter":
		if idx := m.selected[ViewFavorites]; idx < count {
			id := items[idx].ID
			return m, m.opCmd(func() { m.cart.Add(m.ctx, id, 1, 0) })
		}

	case "v":
		if idx := m.selected[ViewFavorites]; idx < count {
			summary := product.FromCatalog(items[idx])
			return m, m.opCmd(func() { m.compare.Add(summary) })
		}

	case "r":
		return m, m.opCmd(func() { m.favorites.Load(m.ctx) })
	}

	return m, nil
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.compare.Items()
	count := len(items)

	switch msg.String() {
	case "j", "down", "l", "right":
		if m.selected[ViewCompare] < count-1 {
			m.selected[ViewCompare]++
		}
	case "k", "up", "left":
		if m.selected[ViewCompare] > 0 {
			m.selected[ViewCompare]--
		}

	case "x":
		if idx := m.selected[ViewCompare]; idx < count {
			id := items[idx].ID
			return m, m.opCmd(func() { m.compare.Remove(id) })
		}

	case "C":
		return m, m.opCmd(func() { m.compare.Clear() })

	case "a", "enter":
		if idx := m.selected[ViewCompare]; idx < count {
			id := items[idx].ID
			return m, m.opCmd(func() { m.cart.Add(m.ctx, id, 1, 0) })
		}
	}

	return m, nil
}

func (m Model) selectedProduct() (shopapi.Product, bool) {
	idx := m.selected[ViewBrowse]
	if idx >= len(m.page.Content) {
		return shopapi.Product{}, false
	}
	return m.page.Content[idx], true
}

func (m Model) selectedCartItem() (shopapi.CartItem, bool) {
	snap := m.cart.Snapshot()
	if snap.Cart == nil {
		return shopapi.CartItem{}, false
	}
	idx := m.selected[ViewCart]
	if idx >= len(snap.Cart.Items) {
		return shopapi.CartItem{}, false
	}
	return snap.Cart.Items[idx], true
}
