package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type dialogs struct {
	win fyne.Window
}

func (d dialogs) ShowError(title string, err error) {
	content := container.NewHBox(widget.NewIcon(theme.ErrorIcon()), widget.NewLabel(err.Error()))
	dialog.ShowCustom(title, "OK", content, d.win)
}

func (d dialogs) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, d.win)
}

func (d dialogs) Prompt(title, initial string, multiline bool, done func(string, bool)) {
	entry := widget.NewEntry()
	size := fyne.NewSize(360, 160)

	if multiline {
		entry = widget.NewMultiLineEntry()
		entry.SetMinRowsVisible(5)
		size = fyne.NewSize(420, 260)
	}

	entry.SetText(initial)

	form := dialog.NewForm(title, "OK", "Cancel", []*widget.FormItem{widget.NewFormItem("", entry)}, func(ok bool) {
		done(entry.Text, ok)
	}, d.win)

	form.Resize(size)
	form.Show()
	d.win.Canvas().Focus(entry)
}

type clipboard struct {
	win fyne.Window
}

func (c clipboard) SetText(text string) {
	c.win.Clipboard().SetContent(text)
}
