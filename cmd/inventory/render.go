package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/interfaces/nav"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStyle    = lipgloss.NewStyle().Bold(true).PaddingRight(3)
)

// notifier muestra los errores de sesión como aviso en stderr.
type notifier struct{ w io.Writer }

func (n notifier) Error(msg string) {
	fmt.Fprintln(n.w, errorStyle.Render("✗ "+msg))
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, okStyle.Render("✓ "+msg))
}

// renderNav dibuja la barra: marca, enlaces y usuario; en compacto, el botón de menú.
func renderNav(v nav.View) string {
	parts := []string{barStyle.Render("Inventario")}
	switch {
	case v.Loading:
		parts = append(parts, dimStyle.Render("loading…"))
	default:
		for _, l := range v.Links {
			parts = append(parts, linkStyle.Render(fmt.Sprintf("%s (%s)", l.Label, l.Path)))
		}
	}
	if v.UserLabel != "" {
		parts = append(parts, dimStyle.Render("["+v.UserLabel+"]"))
	}
	if v.ShowMenuToggle {
		toggle := "☰ menu"
		if v.MenuOpen {
			toggle = "✕ close"
		}
		parts = append(parts, dimStyle.Render(toggle))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderProducts(w io.Writer, list []*entity.Product) {
	if len(list) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no products"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-36s  %-30s  %6s", "ID", "NAME", "STOCK")))
	for _, p := range list {
		fmt.Fprintf(w, "%-36s  %-30s  %6d\n", p.ID, truncate(p.Name, 30), p.StockQuantity)
	}
}

func renderProduct(w io.Writer, p *entity.Product) {
	fmt.Fprintf(w, "%s\n  id: %s\n  stock: %d\n", headerStyle.Render(p.Name), p.ID, p.StockQuantity)
	if p.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", p.Description)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(w, "  image: %s\n", p.ImageURL)
	}
}

func renderRequests(w io.Writer, list []*entity.StockRequest) {
	if len(list) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no requests"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-36s  %-9s  %-36s  %5s  %-8s", "ID", "TYPE", "PRODUCT", "QTY", "STATUS")))
	for _, r := range list {
		fmt.Fprintf(w, "%-36s  %-9s  %-36s  %5d  %-8s\n", r.ID, r.Type, r.ProductID, r.Quantity, r.Status)
	}
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return strings.TrimSpace(string(r)) + "…"
}
