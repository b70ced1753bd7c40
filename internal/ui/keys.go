package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(programMode bool) string {
	s := "tab mode  s/S smooth  r/R rainbow  b/B bright  x/X strobe  n/N beat  y/Y sync  c/C chaos"
	if programMode {
		s += "  p/P program  v division  d/D dim  k cool"
	} else {
		s += "  p/P pattern  t theme  e effect  f freq  m mood  u spectrum  o echo  g genre  a ambient"
	}
	s += "  [/] lights  0 reset  q quit"
	return s
}
