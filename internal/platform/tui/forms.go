package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// field describes one input of a form.
type field struct {
	label  string
	secret bool
	limit  int
}

// form is a vertical list of text inputs with one focused at a time.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, fields ...field) form {
	f := form{title: title}
	for _, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.label
		in.Prompt = ""
		in.CharLimit = fd.limit
		if in.CharLimit == 0 {
			in.CharLimit = 64
		}
		in.Width = 28
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	f.setFocus(0)
	return f
}

func loginForm() form {
	return newForm("Sign in",
		field{label: "Username", limit: 32},
		field{label: "Password", secret: true},
	)
}

func registerForm() form {
	return newForm("Create account",
		field{label: "Username", limit: 32},
		field{label: "Email", limit: 128},
		field{label: "Password", secret: true},
		field{label: "Confirm password", secret: true},
	)
}

func recoverForm() form {
	return newForm("Recover password",
		field{label: "Email", limit: 128},
		field{label: "Code", limit: 6},
		field{label: "New password", secret: true},
		field{label: "Confirm password", secret: true},
	)
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) move(delta int) {
	f.setFocus(f.focus + delta)
}

// value returns the text of field i.
func (f *form) value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

func (f *form) set(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

// clear empties the fields whose indexes are given, or all when none are.
func (f *form) clear(idx ...int) {
	if len(idx) == 0 {
		for i := range f.inputs {
			f.inputs[i].SetValue("")
		}
		return
	}
	for _, i := range idx {
		f.set(i, "")
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316")).MarginBottom(1)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	focusedLabel   = labelStyle.Foreground(lipgloss.Color("229")).Bold(true)
	formBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true).MarginTop(1)
)

func (f form) view(status string) string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		ls := labelStyle
		if i == f.focus {
			ls = focusedLabel
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ls.Render(f.labels[i]), in.View()))
		b.WriteString("\n")
	}
	if status != "" {
		b.WriteString(statusStyle.Render(status))
	}
	return formBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
