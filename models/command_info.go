package models

// CommandInfo describes one command for help output.
type CommandInfo struct {
	Name        string
	Aliases     []string
	Description string
}
