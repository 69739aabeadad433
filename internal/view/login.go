package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var loginBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)

// RenderLogin draws the sign-in form. The password is masked.
func RenderLogin(s LoginState) string {
	email := "Email:    " + s.Email
	password := "Password: " + strings.Repeat("•", len([]rune(s.Password)))
	if s.Focus == 0 {
		email = titleStyle.Render(email)
	} else {
		password = titleStyle.Render(password)
	}

	lines := []string{
		titleStyle.Render("taskpane"),
		headingStyle.Render("Sign in"),
		"",
		email,
		password,
		"",
	}
	switch {
	case s.Busy:
		lines = append(lines, mutedStyle.Render("Signing in…"))
	case s.Error != "":
		lines = append(lines, errorStyle.Render(s.Error))
	default:
		lines = append(lines, mutedStyle.Render("tab switch field • enter sign in • esc quit"))
	}
	return loginBox.Render(strings.Join(lines, "\n"))
}
