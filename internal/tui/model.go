package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealbridge/donor-cli/internal/draft"
	"github.com/mealbridge/donor-cli/internal/foodposts"
	"github.com/mealbridge/donor-cli/internal/listing"
	"github.com/mealbridge/donor-cli/internal/render"
	"github.com/mealbridge/donor-cli/internal/search"
	"github.com/mealbridge/donor-cli/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDetail
	modeConfirmDelete
	modeForm
)

type refreshDoneMsg struct{}

type deleteDoneMsg struct{ id string }

type submitDoneMsg struct {
	created foodposts.Listing
	ok      bool
	errMsg  string
}

type clearStatusMsg struct{ id int }

// Model is the terminal surface over the listing store, the search filter and
// the draft controller. All network work runs inside tea.Cmds; the store's
// error slot and loading flag drive the message panel.
type Model struct {
	store     *store.Store
	newDraft  func() *draft.Controller
	readImage func(path string) (name string, data []byte, err error)

	controller *draft.Controller
	form       formState

	mode      mode
	query     string
	cursor    int
	detailTop int
	width     int
	height    int
	status    string
	statusID  int

	confirmID    string
	confirmTitle string

	theme theme
}

func NewModel(s *store.Store, newDraft func() *draft.Controller) Model {
	return Model{
		store:     s,
		newDraft:  newDraft,
		readImage: readImageFile,
		theme:     defaultTheme(),
	}
}

func readImageFile(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read image file: %w", err)
	}
	return filepath.Base(path), data, nil
}

func (m Model) Init() tea.Cmd {
	return refreshCmd(m.store)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshDoneMsg:
		if errMsg := m.store.Err(); errMsg != "" {
			m.status = ""
		} else {
			m.setStatus("Listings refreshed")
			m.clampCursor()
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		m.clampCursor()
		return m, nil
	case deleteDoneMsg:
		if errMsg := m.store.Err(); errMsg == "" {
			m.setStatus("Listing deleted")
			m.clampCursor()
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		m.clampCursor()
		return m, nil
	case submitDoneMsg:
		if msg.ok {
			m.store.AppendCreated(msg.created)
			m.controller = nil
			m.form = formState{}
			m.mode = modeList
			m.setStatus("Listing created: " + msg.created.Title)
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		m.setStatus(msg.errMsg)
		return m, clearStatusCmd(m.statusID, 5*time.Second)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, nil
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = len(m.visible()) - 1
		m.clampCursor()
		return m, nil
	case "r":
		if m.store.Loading() {
			return m, nil
		}
		m.status = ""
		return m, refreshCmd(m.store)
	case "/":
		m.mode = modeSearch
		return m, nil
	case "esc":
		m.query = ""
		m.clampCursor()
		return m, nil
	case "enter":
		if len(m.visible()) == 0 {
			return m, nil
		}
		m.mode = modeDetail
		m.detailTop = 0
		return m, nil
	case "d":
		rows := m.visible()
		if len(rows) == 0 {
			return m, nil
		}
		m.clampCursor()
		m.confirmID = rows[m.cursor].ID
		m.confirmTitle = rows[m.cursor].Title
		m.mode = modeConfirmDelete
		return m, nil
	case "n":
		if m.newDraft == nil {
			return m, nil
		}
		m.controller = m.newDraft()
		m.form = newFormState(m.controller.Draft())
		m.mode = modeForm
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.mode = modeList
		m.clampCursor()
		return m, nil
	case "backspace":
		if m.query != "" {
			m.query = m.query[:len(m.query)-1]
		}
		m.clampCursor()
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.cursor = 0
		}
		return m, nil
	}
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		m.detailTop = 0
		return m, nil
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case "down", "j":
		m.detailTop++
		return m, nil
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		m.confirmID = ""
		m.confirmTitle = ""
		m.mode = modeList
		m.status = ""
		return m, deleteCmd(m.store, id)
	case "n", "N", "esc":
		m.confirmID = ""
		m.confirmTitle = ""
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// visible is the filtered projection the list and cursor operate on.
func (m Model) visible() []listing.View {
	return search.Filter(m.store.Listings(), m.query)
}

func (m *Model) clampCursor() {
	size := len(m.visible())
	if size == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= size {
		m.cursor = size - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.statusID++
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("MealBridge — your listings"))
	b.WriteString("\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
	case modeDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(m.theme.Help.Render("j/k: move | enter: detail | /: search | n: new | d: delete | r: refresh | q: quit"))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.query != "" {
		marker := " "
		if m.mode == modeSearch {
			marker = "_"
		}
		b.WriteString("Search: " + m.query + marker + "\n\n")
	}

	if m.store.Loading() {
		b.WriteString("Loading listings...\n")
		return b.String()
	}

	rows := m.visible()
	if len(rows) == 0 {
		if m.query != "" {
			b.WriteString("No listings match the search.\n")
		} else {
			b.WriteString("No listings yet. Press n to create one.\n")
		}
		return b.String()
	}

	if m.mode == modeConfirmDelete {
		b.WriteString(m.theme.StatusWarn.Render(fmt.Sprintf("Delete listing %q? (y/n)", m.confirmTitle)))
		b.WriteString("\n\n")
	}

	for i, row := range rows {
		line := m.renderListingLine(row, i)
		if i == m.cursor && m.mode != modeConfirmDelete {
			line = m.theme.ActiveLine.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderListingLine(v listing.View, i int) string {
	cursorMarker := " "
	if i == m.cursor {
		cursorMarker = ">"
	}
	remaining := fmt.Sprintf("%dh left", v.DurationHours)
	if v.DurationHours == 0 {
		remaining = m.theme.Expired.Render("expired")
	}
	tags := ""
	if len(v.Tags) > 0 {
		tags = " " + m.theme.Tag.Render("["+strings.Join(v.Tags, ", ")+"]")
	}
	return fmt.Sprintf("%s %-30s x%-3d %-10s %s%s", cursorMarker, truncate(v.Title, 30), v.Quantity, v.Status, remaining, tags)
}

func (m Model) detailView() string {
	rows := m.visible()
	if len(rows) == 0 {
		return "No listing selected.\n"
	}
	v := rows[minInt(m.cursor, len(rows)-1)]

	width := m.contentWidth()
	lines := make([]string, 0, 16)
	lines = append(lines, v.Title)
	lines = append(lines, strings.Repeat("=", minInt(width, maxInt(1, len(v.Title)))))
	lines = append(lines, "")
	lines = append(lines, m.metaLine("Organization", v.Organization))
	lines = append(lines, m.metaLine("Location", v.Location))
	lines = append(lines, m.metaLine("Quantity", fmt.Sprintf("%d", v.Quantity)))
	lines = append(lines, m.metaLine("Status", v.Status))
	lines = append(lines, m.metaLine("Hours left", fmt.Sprintf("%d", v.DurationHours)))
	lines = append(lines, m.metaLine("Reservations", fmt.Sprintf("%d", v.ReservationCount)))
	if len(v.Tags) > 0 {
		lines = append(lines, m.metaLine("Dietary", strings.Join(v.Tags, ", ")))
	}
	if v.PrimaryImage != "" {
		lines = append(lines, m.metaLine("Image", v.PrimaryImage))
	}
	if v.Description != "" {
		lines = append(lines, "")
		lines = append(lines, render.Lines(v.Description, width)...)
	}

	top := m.detailTop
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	if top < 0 {
		top = 0
	}
	var b strings.Builder
	b.WriteString(m.theme.Help.Render("j/k: scroll | esc: back | q: quit"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines[top:], "\n"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) metaLine(label, value string) string {
	return m.theme.MetaLabel.Render(label+": ") + m.theme.MetaValue.Render(value)
}

func (m Model) messagePanel() string {
	status := "-"
	if m.status != "" {
		status = m.theme.StatusOK.Render(m.status)
	}
	warning := "-"
	if errMsg := m.store.Err(); errMsg != "" {
		warning = m.theme.StatusWarn.Render(errMsg)
	}
	state := "idle"
	if m.store.Loading() {
		state = "loading"
	}
	if m.controller != nil && m.controller.State() == draft.StateSubmitting {
		state = "submitting"
	}
	return fmt.Sprintf("Status: %s | Warning: %s | State: %s", status, warning, state)
}

func (m Model) footer() string {
	total := len(m.store.Listings())
	shown := len(m.visible())
	if m.query == "" {
		return m.theme.Help.Render(fmt.Sprintf("Listings: %d", total))
	}
	return m.theme.Help.Render(fmt.Sprintf("Listings: %d shown of %d | Filter: %q", shown, total, m.query))
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func refreshCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Refresh(ctx)
		return refreshDoneMsg{}
	}
}

func deleteCmd(s *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Delete(ctx, id)
		return deleteDoneMsg{id: id}
	}
}

func submitCmd(c *draft.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		created, ok := c.Submit(ctx)
		return submitDoneMsg{created: created, ok: ok, errMsg: c.ErrMsg()}
	}
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// truncate shortens to width runes so a cut never lands mid-rune.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
