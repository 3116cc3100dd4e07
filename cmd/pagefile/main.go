package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/pagefile/cmd/pagefile/command"
)

func main() {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	meta := command.Meta{Ui: ui, LogOutput: os.Stderr}

	commands := map[string]cli.CommandFactory{
		"create": func() (cli.Command, error) {
			return &command.CreateCommand{Meta: meta}, nil
		},
		"destroy": func() (cli.Command, error) {
			return &command.DestroyCommand{Meta: meta}, nil
		},
		"info": func() (cli.Command, error) {
			return &command.InfoCommand{Meta: meta}, nil
		},
		"read": func() (cli.Command, error) {
			return &command.ReadCommand{Meta: meta}, nil
		},
		"write": func() (cli.Command, error) {
			return &command.WriteCommand{Meta: meta}, nil
		},
		"append": func() (cli.Command, error) {
			return &command.AppendCommand{Meta: meta}, nil
		},
		"ensure": func() (cli.Command, error) {
			return &command.EnsureCommand{Meta: meta}, nil
		},
		"export": func() (cli.Command, error) {
			return &command.ExportCommand{Meta: meta}, nil
		},
		"import": func() (cli.Command, error) {
			return &command.ImportCommand{Meta: meta}, nil
		},
	}

	pageCLI := &cli.CLI{
		Name:     "pagefile",
		Args:     os.Args[1:],
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("pagefile"),
	}

	exitCode, err := pageCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
