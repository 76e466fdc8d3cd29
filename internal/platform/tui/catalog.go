package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/session"
)

// catalogRows lists the skins shown on the shop (all) or skins (owned) screen.
func catalogRows(p session.Profile, ownedOnly bool) ([]account.Skin, []table.Row) {
	var skins []account.Skin
	var rows []table.Row
	for _, s := range account.Skins {
		owned := p.Owns(s.ID)
		if ownedOnly && !owned {
			continue
		}
		state := "Not owned"
		switch {
		case p.Equipped == s.ID:
			state = "Equipped"
		case owned:
			state = "Owned"
		}
		cost := "free"
		if s.Cost > 0 {
			cost = fmt.Sprintf("%d coins", s.Cost)
		}
		skins = append(skins, s)
		rows = append(rows, table.Row{s.Name, cost, state})
	}
	return skins, rows
}

func newCatalogTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Skin", Width: 20},
			{Title: "Cost", Width: 10},
			{Title: "Status", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// catalog is the shop or skins list backed by a table.
type catalog struct {
	ownedOnly bool
	skins     []account.Skin
	table     table.Model
}

func newCatalog(ownedOnly bool) catalog {
	return catalog{ownedOnly: ownedOnly, table: newCatalogTable(len(account.Skins) + 1)}
}

// refresh rebuilds rows from the profile and keeps the cursor in range.
func (c *catalog) refresh(p session.Profile) {
	skins, rows := catalogRows(p, c.ownedOnly)
	c.skins = skins
	c.table.SetRows(rows)
	if c.table.Cursor() >= len(rows) {
		c.table.SetCursor(max(0, len(rows)-1))
	}
}

// selected returns the skin under the cursor.
func (c *catalog) selected() (account.Skin, bool) {
	i := c.table.Cursor()
	if i < 0 || i >= len(c.skins) {
		return account.Skin{}, false
	}
	return c.skins[i], true
}

func (c *catalog) move(delta int) {
	if delta < 0 {
		c.table.MoveUp(-delta)
	} else if delta > 0 {
		c.table.MoveDown(delta)
	}
}

func (c catalog) view() string {
	return c.table.View()
}
