package ui

import (
	"fmt"
	"strings"

	"github.com/tqc04/basket/internal/cart"
	"github.com/tqc04/basket/internal/compare"
	"github.com/tqc04/basket/internal/notify"
)

func (m Model) renderBrowse() string {
	var b strings.Builder

	if m.searchFocused || m.searchInput.Value() != "" {
		b.WriteString("  ")
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		for _, s := range m.suggestions {
			b.WriteString(m.styles.FaintText.Render("    ↳ " + s.Name + "  " + money(s.EffectivePrice())))
			b.WriteString("\n")
		}
	}

	if !m.pageLoaded {
		b.WriteString(m.styles.MutedText.Render("  Loading catalog..."))
		return b.String()
	}
	if len(m.page.Content) == 0 {
		if m.activeQuery != "" {
			b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("  No products match %q", m.activeQuery)))
		} else {
			b.WriteString(m.styles.MutedText.Render("  No products available"))
		}
		return b.String()
	}

	selected := m.selected[ViewBrowse]
	for i, p := range m.page.Content {
		line := fmt.Sprintf(" %-34s %-14s %-12s %s",
			truncate(p.Name, 34), truncate(p.Brand, 14), truncate(p.Category, 12), m.priceLabel(p.Price, p.SalePrice))

		var marks []string
		if m.favorites != nil && m.favorites.IsFavorite(p.ID) {
			marks = append(marks, "♥")
		}
		if m.compare != nil && m.compare.Contains(p.ID) {
			marks = append(marks, "⇄")
		}
		if p.StockQuantity == 0 {
			marks = append(marks, "out of stock")
		}
		if len(marks) > 0 {
			line += "  " + m.styles.FaintText.Render(strings.Join(marks, " "))
		}

		if i == selected {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.FaintText.Render(fmt.Sprintf(
		"  page %d/%d · %d products", m.page.Page+1, max(m.page.TotalPages, 1), m.page.TotalElements)))
	return b.String()
}

func (m Model) renderCart() string {
	snap := m.cart.Snapshot()
	var b strings.Builder

	if m.voucherFocused {
		b.WriteString("  apply voucher: ")
		b.WriteString(m.voucherInput.View())
		b.WriteString("\n\n")
	}

	switch snap.Phase {
	case cart.PhaseLoading:
		b.WriteString(m.styles.MutedText.Render("  Loading cart..."))
		return b.String()
	case cart.PhaseUnloaded:
		b.WriteString(m.styles.MutedText.Render("  Cart not loaded yet. Press r to refresh."))
		return b.String()
	case cart.PhaseEmpty:
		b.WriteString(m.styles.MutedText.Render("  Your cart is empty."))
		return b.String()
	}
	if snap.Cart == nil || len(snap.Cart.Items) == 0 {
		b.WriteString(m.styles.MutedText.Render("  Your cart is empty."))
		return b.String()
	}

	selected := m.selected[ViewCart]
	for i, item := range snap.Cart.Items {
		line := fmt.Sprintf(" %-34s ×%-3d %10s %12s",
			truncate(item.ProductName, 34), item.Quantity, money(item.Price), money(item.LineTotal))
		if i == selected {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	c := snap.Cart
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("  Subtotal %s   Tax %s   Shipping %s",
		money(c.Subtotal), money(c.Tax), money(c.Shipping))))
	b.WriteString("\n")
	if c.VoucherCode != "" {
		b.WriteString(m.styles.SuccessText.Render(fmt.Sprintf("  Voucher %s  −%s", c.VoucherCode, money(c.Discount))))
		if c.VoucherMessage != "" {
			b.WriteString(m.styles.FaintText.Render("  " + c.VoucherMessage))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.AccentText.Render(fmt.Sprintf("  Total %s", money(c.Total))))
	return b.String()
}

func (m Model) renderFavorites() string {
	var b strings.Builder

	if m.session != nil && !m.session.Authenticated() {
		b.WriteString(m.styles.MutedText.Render("  Sign in to save favorites (press L)."))
		return b.String()
	}
	if m.favorites.Loading() {
		b.WriteString(m.styles.MutedText.Render("  Loading favorites..."))
		return b.String()
	}

	items := m.favorites.Items()
	if len(items) == 0 {
		b.WriteString(m.styles.MutedText.Render("  No favorites yet. Press s on a product to save it."))
		return b.String()
	}

	selected := m.selected[ViewFavorites]
	for i, p := range items {
		line := fmt.Sprintf(" %-34s %-14s %s",
			truncate(p.Name, 34), truncate(p.Brand, 14), m.priceLabel(p.Price, p.SalePrice))
		if p.StockQuantity == 0 {
			line += "  " + m.styles.FaintText.Render("out of stock")
		}
		if i == selected {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCompare() string {
	items := m.compare.Items()
	var b strings.Builder

	if len(items) == 0 {
		b.WriteString(m.styles.MutedText.Render("  Nothing to compare. Press v on a product to add it."))
		return b.String()
	}

	selected := m.selected[ViewCompare]

	rows := []struct {
		label string
		cell  func(i int) string
	}{
		{"Name", func(i int) string { return truncate(items[i].Name, 18) }},
		{"Brand", func(i int) string { return truncate(items[i].Brand, 18) }},
		{"Category", func(i int) string { return truncate(items[i].Category, 18) }},
		{"Price", func(i int) string { return money(items[i].EffectivePrice()) }},
		{"Rating", func(i int) string {
			return fmt.Sprintf("%.1f (%d)", items[i].Rating, items[i].ReviewCount)
		}},
		{"Stock", func(i int) string {
			if items[i].StockQuantity == 0 {
				return "out of stock"
			}
			return fmt.Sprintf("%d", items[i].StockQuantity)
		}},
	}

	for _, row := range rows {
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf(" %-10s", row.label)))
		for i := range items {
			cell := fmt.Sprintf(" %-20s", row.cell(i))
			if i == selected {
				b.WriteString(m.styles.Selected.Render(cell))
			} else {
				b.WriteString(m.styles.Text.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render(fmt.Sprintf(
		"  %d/%d slots used", len(items), compare.MaxProducts)))
	return b.String()
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	text := " " + m.toast.Message + " "
	switch m.toast.Level {
	case notify.LevelSuccess:
		return m.styles.SuccessText.Render(text)
	case notify.LevelWarning:
		return m.styles.WarningText.Render(text)
	case notify.LevelError:
		return m.styles.DangerText.Render(text)
	default:
		return m.styles.InfoText.Render(text)
	}
}

func (m Model) renderHelp() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Views", [][2]string{
			{"b", "browse catalog"},
			{"c", "cart"},
			{"f", "favorites"},
			{"m", "compare"},
			{"tab / shift+tab", "cycle views"},
		}},
		{"Browse", [][2]string{
			{"/", "search"},
			{"a / enter", "add to cart"},
			{"s", "toggle favorite"},
			{"v", "toggle compare"},
			{"n / p", "next / previous page"},
		}},
		{"Cart", [][2]string{
			{"+ / -", "change quantity"},
			{"x", "remove line"},
			{"C", "clear cart"},
			{"V", "apply or remove voucher"},
			{"r", "refresh"},
		}},
		{"General", [][2]string{
			{"L", "sign in / out"},
			{"T", "cycle theme"},
			{"?", "this help"},
			{"e / ctrl+c", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(m.styles.Logo.Render(" basket — keys "))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(m.styles.AccentText.Render(" " + section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(fmt.Sprintf("   %-18s %s\n",
				m.styles.Text.Render(k[0]), m.styles.MutedText.Render(k[1])))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.FaintText.Render(" press any key to close"))
	return b.String()
}

func (m Model) priceLabel(price, salePrice float64) string {
	if salePrice > 0 && salePrice < price {
		return m.styles.SaleText.Render(money(salePrice)) + " " +
			m.styles.FaintText.Render(money(price))
	}
	return money(price)
}
