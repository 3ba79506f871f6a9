package tui

import "github.com/charmbracelet/bubbles/textinput"

func newEditInput(st styles) textinput.Model {
	in := textinput.New()
	in.Prompt = "$ "
	in.PromptStyle = st.prompt
	in.Placeholder = "type a command"
	in.CharLimit = 4096
	return in
}

func newSearchInput(st styles) textinput.Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.PromptStyle = st.accent
	in.Placeholder = "search"
	in.CharLimit = 512
	return in
}
