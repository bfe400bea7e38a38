package commands

import "errors"

var (
	// ErrQuit is returned by a command to end the loop.
	ErrQuit = errors.New("quit")

	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrParse            = errors.New("unable to parse command line")
	ErrLoggedIn         = errors.New("log out first")
)
