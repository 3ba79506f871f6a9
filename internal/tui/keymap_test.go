package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEveryActionHasSpecAndBinding(t *testing.T) {
	for a := actionNone + 1; a < actionCount; a++ {
		if actionSpecs[a].label == "" || actionSpecs[a].name == "" {
			t.Errorf("action %d has no spec", a)
		}
		found := false
		for _, b := range bindings {
			if b.action == a {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("action %s has no binding", a)
		}
	}
}

func TestResolveAction(t *testing.T) {
	tests := []struct {
		mode mode
		key  tea.KeyMsg
		want action
	}{
		{modeList, keyMsg(tea.KeyUp), actionNavigateUp},
		{modeList, keyMsg(tea.KeyCtrlN), actionNavigateDown},
		{modeList, keyMsg(tea.KeyCtrlA), actionAdd},
		{modePrompt, keyMsg(tea.KeyF2), actionAdd},
		{modeList, keyMsg(tea.KeyCtrlR), actionUpdate},
		{modeList, runes("l"), actionPassThrough},
		{modeList, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, actionPassThrough},
		{modePrompt, runes("l"), actionNone},
		{modeList, runes("z"), actionNone},
		{modeList, keyMsg(tea.KeyEnter), actionNone},
		{modeList, runes("/"), actionEnterSearch},
		{modePrompt, keyMsg(tea.KeyCtrlF), actionEnterSearch},
		{modeSearch, runes("/"), actionNone},
		{modePrompt, runes("/"), actionNone},
		{modePrompt, runes("?"), actionNone},
		{modePrompt, keyMsg(tea.KeyF1), actionShowHelp},
		{modeSearch, keyMsg(tea.KeyEnter), actionCommitSearch},
		{modeSearch, keyMsg(tea.KeyEsc), actionCancel},
		{modeList, keyMsg(tea.KeyTab), actionSwitchToPrompt},
		{modePrompt, keyMsg(tea.KeyCtrlU), actionClearBuffer},
		{modeList, keyMsg(tea.KeyCtrlU), actionNone},
		{modeList, runes("?"), actionShowHelp},
		{modeList, keyMsg(tea.KeyF1), actionShowHelp},
		{modeOutput, runes("q"), actionDismissOverlay},
		{modeOutput, keyMsg(tea.KeyEnter), actionDismissOverlay},
		{modeOutput, keyMsg(tea.KeyCtrlA), actionNone},
		{modeHelp, keyMsg(tea.KeyF8), actionExit},
		{modeSearch, keyMsg(tea.KeyCtrlC), actionExit},
		{modeList, keyMsg(tea.KeyF5), actionRefresh},
		{modeList, keyMsg(tea.KeyF6), actionCleanup},
		{modeList, keyMsg(tea.KeyCtrlS), actionDownload},
		{modeList, keyMsg(tea.KeyCtrlL), actionUpload},
		{modeList, keyMsg(tea.KeyCtrlO), actionShowLog},
		{modeList, keyMsg(tea.KeyCtrlT), actionRunInteractive},
		{modeList, keyMsg(tea.KeyCtrlX), actionRunExternal},
	}
	for _, tt := range tests {
		if got := resolveAction(tt.mode, tt.key); got != tt.want {
			t.Errorf("resolveAction(%s, %q) = %s, want %s", tt.mode, tt.key.String(), got, tt.want)
		}
	}
}

func TestHelpMarkdownListsEveryBoundAction(t *testing.T) {
	md := helpMarkdown()
	for _, b := range bindings {
		if !strings.Contains(md, actionSpecs[b.action].label) {
			t.Errorf("help is missing %q", actionSpecs[b.action].label)
		}
	}
}
