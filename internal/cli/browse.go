package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/cargo"
	"github.com/packforge/packforge/pkg/registry/crates"
)

// browseCommand creates the browse command: an interactive pack
// explorer. Actions chosen inside the TUI (add, new) run after the
// program exits so cargo output lands on a normal terminal.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Browse packs interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			client, closeCache := c.cratesClient(noCache)
			defer closeCache()

			results, err := fetchWithSpinner(cmd.Context(), "Searching crates.io...", func(ctx context.Context) ([]crates.SearchResult, error) {
				return client.Search(ctx, query, refresh)
			})
			if err != nil {
				return fmt.Errorf("search packs: %w", err)
			}
			if len(results) == 0 {
				printInfo("No packs found")
				return nil
			}

			model := newBrowseModel(cmd.Context(), client, results, refresh)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(browseModel); ok && m.pending != nil {
				return c.runPendingAction(cmd.Context(), client, m.pending)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}

// pendingAction is what the user chose inside the TUI, executed after
// the program exits.
type pendingAction struct {
	kind     string // "add" or "new"
	pack     string // full crate name
	project  string // project name for "new"
	template string
}

func (c *CLI) runPendingAction(ctx context.Context, client *crates.Client, action *pendingAction) error {
	switch action.kind {
	case "add":
		short := crates.ShortName(action.pack)
		if err := cargo.Add(ctx, action.pack, short, nil); err != nil {
			return err
		}
		printSuccess("Added %s as %s", action.pack, short)
		return nil
	case "new":
		info, err := client.Lookup(ctx, action.pack, false)
		if err != nil {
			return fmt.Errorf("look up pack: %w", err)
		}
		dir, cleanup, err := client.Download(ctx, action.pack, info.Version)
		if err != nil {
			return fmt.Errorf("download pack: %w", err)
		}
		defer cleanup()
		return c.scaffoldFromDir(ctx, dir, action.pack, action.template, action.project)
	}
	return nil
}

// =============================================================================
// Model
// =============================================================================

type browseScreen int

const (
	screenList browseScreen = iota
	screenDetail
	screenForm
)

type detailMsg struct {
	detail *packDetail
	err    error
}

type browseModel struct {
	ctx     context.Context
	client  *crates.Client
	refresh bool

	screen  browseScreen
	results []crates.SearchResult
	cursor  int
	offset  int
	height  int

	loading bool
	errMsg  string
	detail  *packDetail

	nameInput textinput.Model
	pending   *pendingAction
}

func newBrowseModel(ctx context.Context, client *crates.Client, results []crates.SearchResult, refresh bool) browseModel {
	input := textinput.New()
	input.Placeholder = "my-project"
	input.CharLimit = 64
	input.Width = 32

	return browseModel{
		ctx:       ctx,
		client:    client,
		refresh:   refresh,
		results:   results,
		height:    15,
		nameInput: input,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) loadDetail(name string) tea.Cmd {
	return func() tea.Msg {
		detail, err := fetchPackDetail(m.ctx, m.client, name, m.refresh)
		return detailMsg{detail: detail, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.screen = screenList
		} else {
			m.detail = msg.detail
			m.screen = screenDetail
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenList:
			return m.updateList(msg)
		case screenDetail:
			return m.updateDetail(msg)
		case screenForm:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.results)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		m.loading = true
		m.errMsg = ""
		return m, m.loadDetail(m.results[m.cursor].Name)
	}
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenList
		m.detail = nil
	case "a":
		m.pending = &pendingAction{kind: "add", pack: m.detail.Name}
		return m, tea.Quit
	case "n":
		m.screen = screenForm
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m browseModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.screen = screenDetail
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.pending = &pendingAction{kind: "new", pack: m.detail.Name, project: name}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// =============================================================================
// Views
// =============================================================================

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

func (m browseModel) View() string {
	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m browseModel) viewList() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Packs"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.results) {
		end = len(m.results)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.results[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, crates.ShortName(r.Name), r.MaxVersion, firstDescLine(r.Description)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pack", "Version", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(listDimStyle.Render("  loading..."))
	} else if m.errMsg != "" {
		b.WriteString(StyleWarning.Render("  " + m.errMsg))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.results))))
	}

	return b.String()
}

func (m browseModel) viewDetail() string {
	d := m.detail
	var b strings.Builder

	b.WriteString(stylePack.Render(d.Name) + " " + listDimStyle.Render(d.Version))
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(d.Description)
		b.WriteString("\n")
	}

	section := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + styleSection.Render(name+":") + "\n")
		for _, item := range items {
			b.WriteString("  " + item + "\n")
		}
	}

	var owners []string
	for _, o := range d.Owners {
		if o.Name != "" {
			owners = append(owners, fmt.Sprintf("%s (%s)", o.Name, o.Login))
		} else {
			owners = append(owners, o.Login)
		}
	}
	section("Authors", owners)
	section("Crates", d.Crates)
	section("Extends", d.Extends)

	if len(d.Templates) > 0 {
		var tpls []string
		for _, name := range templateNames(d.Templates) {
			if desc := d.Templates[name].Description; desc != "" {
				tpls = append(tpls, fmt.Sprintf("%s - %s", name, desc))
			} else {
				tpls = append(tpls, name)
			}
		}
		section("Templates", tpls)
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("a add to project  n new project  esc back  q quit"))

	return b.String()
}

func (m browseModel) viewForm() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("New Project"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("from " + m.detail.Name))
	b.WriteString("\n\n")
	b.WriteString("Project name:\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("⏎ create  esc back"))

	return b.String()
}
