package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeandaverde/pagefile/internal/storage"
)

// CreateCommand creates page files holding one zero page
type CreateCommand struct {
	Meta
}

func (c *CreateCommand) Help() string {
	helpText := `
Usage: pagefile create [options] NAME...

  Creates page files holding a single zero page.

Options:
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *CreateCommand) Synopsis() string {
	return "Creates empty page files"
}

func (c *CreateCommand) Run(args []string) int {
	cmdFlags := c.flagSet("create")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}
	if cmdFlags.NArg() == 0 {
		return c.fail(errors.New("expected at least one page file name"))
	}

	manager, err := c.manager()
	if err != nil {
		return c.fail(err)
	}

	for _, name := range cmdFlags.Args() {
		if err := manager.Create(name); err != nil {
			return c.fail(err)
		}
		c.Ui.Output(fmt.Sprintf("created %s", manager.Path(name)))
	}

	return 0
}

// DestroyCommand removes page files
type DestroyCommand struct {
	Meta
}

func (c *DestroyCommand) Help() string {
	helpText := `
Usage: pagefile destroy [options] NAME...

  Removes page files.

Options:
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *DestroyCommand) Synopsis() string {
	return "Removes page files"
}

func (c *DestroyCommand) Run(args []string) int {
	cmdFlags := c.flagSet("destroy")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}
	if cmdFlags.NArg() == 0 {
		return c.fail(errors.New("expected at least one page file name"))
	}

	manager, err := c.manager()
	if err != nil {
		return c.fail(err)
	}

	for _, name := range cmdFlags.Args() {
		if err := manager.Destroy(name); err != nil {
			return c.fail(err)
		}
		c.Ui.Output(fmt.Sprintf("destroyed %s", manager.Path(name)))
	}

	return 0
}

// InfoCommand describes a page file
type InfoCommand struct {
	Meta
}

func (c *InfoCommand) Help() string {
	helpText := `
Usage: pagefile info [options] NAME

  Prints the number of pages in a page file.

Options:
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *InfoCommand) Synopsis() string {
	return "Describes a page file"
}

func (c *InfoCommand) Run(args []string) int {
	cmdFlags := c.flagSet("info")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("file:  %s", f.FileName()))
	c.Ui.Output(fmt.Sprintf("pages: %d", f.TotalNumPages()))
	c.Ui.Output(fmt.Sprintf("bytes: %d", f.TotalNumPages()*storage.PageSize))

	if err := f.Close(); err != nil {
		return c.fail(err)
	}
	return 0
}
