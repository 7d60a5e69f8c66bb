package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	monthLayout    = "2006-01"
)

// tugasinHuhTheme returns a huh theme matching the formatter palette.
func tugasinHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(tugasinHuhTheme()).WithShowHelp(false)
}

// taskForm collects the fields of a new task. Values already set by flags
// are used as the initial input.
func taskForm(title, due, priority, category, desc *string) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Complete Programming Assignment").
				Value(title).
				Validate(func(s string) error {
					return domain.TaskPatch{Title: &s}.Validate()
				}),
			huh.NewText().
				Title("Description").
				Value(desc),
			dateInput("Due Date (YYYY-MM-DD)", due, true),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(domain.PriorityHigh)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("Low", string(domain.PriorityLow)),
				).
				Value(priority),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("Academic", string(domain.CategoryAcademic)),
					huh.NewOption("Personal", string(domain.CategoryPersonal)),
					huh.NewOption("Organization", string(domain.CategoryOrganization)),
				).
				Value(category),
		),
	)
}

func dateInput(title string, value *string, required bool) *huh.Input {
	validate := validateOptionalDate
	if required {
		validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("date is required")
			}
			return validateOptionalDate(s)
		}
	}
	return huh.NewInput().
		Title(title).
		Placeholder(time.Now().AddDate(0, 0, 7).Format(dateLayout)).
		Value(value).
		Validate(validate)
}

// passwordForm asks for a password without echoing it.
func passwordForm(value *string) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
}

func confirmForm(title string, result *bool) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		if _, err := time.Parse(dateTimeLayout, s); err != nil {
			return fmt.Errorf("use YYYY-MM-DD or YYYY-MM-DD HH:MM format")
		}
	}
	return nil
}

// parseDue reads a due date in loc. A bare date means the end of that day.
func parseDue(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
	}
	return d.Add(23*time.Hour + 59*time.Minute), nil
}

// parseMoment reads an event boundary in loc. A bare date means midnight.
func parseMoment(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
	}
	return d, nil
}

func parseMonth(s string, loc *time.Location) (time.Time, error) {
	m, err := time.ParseInLocation(monthLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (use YYYY-MM)", s)
	}
	return m, nil
}
