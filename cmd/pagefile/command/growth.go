package command

import (
	"errors"
	"fmt"
	"strings"
)

// AppendCommand appends zero pages
type AppendCommand struct {
	Meta
}

func (c *AppendCommand) Help() string {
	helpText := `
Usage: pagefile append [options] NAME

  Appends zero pages to the end of a page file.

Options:

	-count=1	Number of pages to append.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *AppendCommand) Synopsis() string {
	return "Appends empty pages"
}

func (c *AppendCommand) Run(args []string) int {
	var count int

	cmdFlags := c.flagSet("append")
	cmdFlags.IntVar(&count, "count", 1, "pages to append")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}
	if count < 1 {
		return c.fail(errors.New("-count must be at least 1"))
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}

	for i := 0; i < count; i++ {
		if err := f.AppendEmptyBlock(); err != nil {
			_ = f.Close()
			return c.fail(err)
		}
	}

	c.Ui.Output(fmt.Sprintf("pages: %d", f.TotalNumPages()))

	if err := f.Close(); err != nil {
		return c.fail(err)
	}
	return 0
}

// EnsureCommand grows a page file to a minimum number of pages
type EnsureCommand struct {
	Meta
}

func (c *EnsureCommand) Help() string {
	helpText := `
Usage: pagefile ensure [options] NAME

  Grows a page file with zero pages until it holds at least the given
  number of pages. Larger files are left alone.

Options:

	-pages=1	Minimum number of pages.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *EnsureCommand) Synopsis() string {
	return "Grows a page file to a minimum size"
}

func (c *EnsureCommand) Run(args []string) int {
	var pages int

	cmdFlags := c.flagSet("ensure")
	cmdFlags.IntVar(&pages, "pages", 1, "minimum pages")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}

	if err := f.EnsureCapacity(pages); err != nil {
		_ = f.Close()
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("pages: %d", f.TotalNumPages()))

	if err := f.Close(); err != nil {
		return c.fail(err)
	}
	return 0
}
