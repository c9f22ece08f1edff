package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealbridge/donor-cli/internal/draft"
)

type formField int

const (
	fieldTitle formField = iota
	fieldQuantity
	fieldOrganization
	fieldLocation
	fieldDescription
	fieldExpiration
	fieldTags
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:        "Title",
	fieldQuantity:     "Quantity",
	fieldOrganization: "Organization",
	fieldLocation:     "Location",
	fieldDescription:  "Description",
	fieldExpiration:   "Expires (YYYY-MM-DDTHH:MM)",
	fieldTags:         "Add dietary tag",
	fieldImage:        "Image path",
}

// formState holds the per-keystroke input buffers for fields whose canonical
// value lives in the draft in a different shape: quantity is typed as digits,
// tags accumulate in a staging buffer until enter, and the image path only
// becomes an attachment once read from disk.
type formState struct {
	active   formField
	quantity string
	tagInput string
	imgPath  string
}

func newFormState(d draft.Draft) formState {
	return formState{quantity: strconv.Itoa(d.Quantity)}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.controller
	if c == nil {
		m.mode = modeList
		return m, nil
	}
	if c.State() == draft.StateSubmitting {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		c.Abandon()
		m.controller = nil
		m.form = formState{}
		m.mode = modeList
		return m, nil
	case "tab", "down":
		m.form.active = (m.form.active + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.form.active = (m.form.active + fieldCount - 1) % fieldCount
		return m, nil
	case "ctrl+s":
		m.syncQuantity()
		return m, submitCmd(c)
	case "enter":
		return m.formEnter()
	case "backspace":
		return m.formBackspace()
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.formInsert(text)
	}
	return m, nil
}

func (m Model) formEnter() (tea.Model, tea.Cmd) {
	switch m.form.active {
	case fieldTags:
		tag := strings.TrimSpace(m.form.tagInput)
		if tag != "" {
			m.controller.AddTag(tag)
			m.form.tagInput = ""
		}
	case fieldImage:
		path := strings.TrimSpace(m.form.imgPath)
		if path == "" {
			return m, nil
		}
		name, data, err := m.readImage(path)
		if err != nil {
			m.setStatus(err.Error())
			return m, nil
		}
		m.controller.AttachImage(name, data)
		m.form.imgPath = ""
	default:
		m.form.active = (m.form.active + 1) % fieldCount
	}
	return m, nil
}

func (m Model) formBackspace() (tea.Model, tea.Cmd) {
	switch m.form.active {
	case fieldQuantity:
		m.form.quantity = chop(m.form.quantity)
		m.syncQuantity()
	case fieldTags:
		if m.form.tagInput == "" {
			// Backspace on an empty tag buffer removes the last tag.
			tags := m.controller.Draft().Tags()
			if len(tags) > 0 {
				m.controller.RemoveTag(tags[len(tags)-1])
			}
			return m, nil
		}
		m.form.tagInput = chop(m.form.tagInput)
	case fieldImage:
		if m.form.imgPath == "" {
			m.controller.Edit(func(d *draft.Draft) { d.DiscardImage() })
			return m, nil
		}
		m.form.imgPath = chop(m.form.imgPath)
	default:
		m.controller.Edit(func(d *draft.Draft) {
			switch m.form.active {
			case fieldTitle:
				d.Title = chop(d.Title)
			case fieldOrganization:
				d.Organization = chop(d.Organization)
			case fieldLocation:
				d.Location = chop(d.Location)
			case fieldDescription:
				d.Description = chop(d.Description)
			case fieldExpiration:
				d.Expiration = chop(d.Expiration)
			}
		})
	}
	return m, nil
}

func (m *Model) formInsert(text string) {
	switch m.form.active {
	case fieldQuantity:
		for _, r := range text {
			if r < '0' || r > '9' {
				return
			}
		}
		m.form.quantity += text
		m.syncQuantity()
	case fieldTags:
		m.form.tagInput += text
	case fieldImage:
		m.form.imgPath += text
	default:
		m.controller.Edit(func(d *draft.Draft) {
			switch m.form.active {
			case fieldTitle:
				d.Title += text
			case fieldOrganization:
				d.Organization += text
			case fieldLocation:
				d.Location += text
			case fieldDescription:
				d.Description += text
			case fieldExpiration:
				d.Expiration += text
			}
		})
	}
}

func (m *Model) syncQuantity() {
	n, err := strconv.Atoi(m.form.quantity)
	if err != nil {
		n = 0
	}
	m.controller.Edit(func(d *draft.Draft) { d.Quantity = n })
}

func (m Model) formView() string {
	c := m.controller
	if c == nil {
		return ""
	}
	d := c.Draft()

	var b strings.Builder
	b.WriteString(m.theme.Help.Render("tab/shift+tab: fields | enter: next/add | ctrl+s: submit | esc: discard"))
	b.WriteString("\n\n")

	values := [fieldCount]string{
		fieldTitle:        d.Title,
		fieldQuantity:     m.form.quantity,
		fieldOrganization: d.Organization,
		fieldLocation:     d.Location,
		fieldDescription:  d.Description,
		fieldExpiration:   d.Expiration,
		fieldTags:         m.form.tagInput,
		fieldImage:        m.form.imgPath,
	}

	for f := formField(0); f < fieldCount; f++ {
		label := fieldLabels[f]
		style := m.theme.FormLabel
		marker := "  "
		if f == m.form.active {
			style = m.theme.FormActive
			marker = "> "
		}
		b.WriteString(marker + style.Render(label+":") + " " + values[f])
		if f == m.form.active {
			b.WriteString("_")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if tags := d.Tags(); len(tags) > 0 {
		b.WriteString("Tags: " + m.theme.Tag.Render(strings.Join(tags, ", ")) + "\n")
	}
	if d.Image != nil {
		b.WriteString(fmt.Sprintf("Attached image: %s (%d bytes)\n", d.Image.Name, len(d.Image.Data)))
	} else {
		b.WriteString(m.theme.StatusWarn.Render("No image attached (required)") + "\n")
	}
	if c.State() == draft.StateFailed && c.ErrMsg() != "" {
		b.WriteString(m.theme.StatusWarn.Render(c.ErrMsg()) + "\n")
	}
	return b.String()
}

// chop removes the last rune, not the last byte, so backspace never leaves
// a partial UTF-8 sequence in the field.
func chop(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
