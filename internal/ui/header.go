package ui

import (
	"fmt"
	"strings"
)

// renderHeader draws the top line: logo, view tabs, cart badge, session.
func (m Model) renderHeader() string {
	var b strings.Builder

	b.WriteString(m.styles.Logo.Render(" ▐ basket "))

	tabs := []struct {
		view  View
		label string
	}{
		{ViewBrowse, "Browse"},
		{ViewCart, m.cartTabLabel()},
		{ViewFavorites, m.favoritesTabLabel()},
		{ViewCompare, m.compareTabLabel()},
	}
	for _, tab := range tabs {
		if tab.view == m.currentView {
			b.WriteString(m.styles.TabActive.Render(tab.label))
		} else {
			b.WriteString(m.styles.TabInactive.Render(tab.label))
		}
	}

	b.WriteString("  ")
	b.WriteString(m.renderSessionBadge())

	return m.styles.Header.Render(b.String())
}

// cartTabLabel includes the line count so the badge is visible from every
// view.
func (m Model) cartTabLabel() string {
	if m.cart == nil {
		return "Cart"
	}
	if m.cart.Loading() {
		return "Cart …"
	}
	count := m.cart.Count()
	if count == 0 {
		return "Cart"
	}
	return fmt.Sprintf("Cart (%d)", count)
}

func (m Model) favoritesTabLabel() string {
	if m.favorites == nil {
		return "Favorites"
	}
	count := len(m.favorites.Items())
	if count == 0 {
		return "Favorites"
	}
	return fmt.Sprintf("Favorites (%d)", count)
}

func (m Model) compareTabLabel() string {
	if m.compare == nil {
		return "Compare"
	}
	count := m.compare.Count()
	if count == 0 {
		return "Compare"
	}
	return fmt.Sprintf("Compare (%d)", count)
}

func (m Model) renderSessionBadge() string {
	if m.session == nil {
		return ""
	}
	state := m.session.Current()
	if state.Authenticated {
		return m.styles.SuccessText.Render("● " + state.UserID)
	}
	return m.styles.MutedText.Render("○ guest")
}

// renderCommandBar draws the second line of always-visible key hints.
func (m Model) renderCommandBar() string {
	hints := []string{
		"/ search",
		"a add",
		"s favorite",
		"v compare",
		"? help",
		"e quit",
	}
	return m.styles.Footer.Render(" " + strings.Join(hints, "  ·  "))
}
