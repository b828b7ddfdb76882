package tui

import "github.com/charmbracelet/huh"

// FormTheme returns the huh theme used by interactive forms, mapped onto
// the shared color palette.
func FormTheme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)

	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)

	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)

	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}
