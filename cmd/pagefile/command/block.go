package command

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joeandaverde/pagefile/internal/storage"
)

// ReadCommand prints a page as a hex dump
type ReadCommand struct {
	Meta
}

func (c *ReadCommand) Help() string {
	helpText := `
Usage: pagefile read [options] NAME

  Prints a hex dump of one page.

Options:

	-page=0		Page to read. -1 reads the last page.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *ReadCommand) Synopsis() string {
	return "Prints a page"
}

func (c *ReadCommand) Run(args []string) int {
	var page int

	cmdFlags := c.flagSet("read")
	cmdFlags.IntVar(&page, "page", 0, "page to read")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}
	defer f.Close()

	buf := make([]byte, storage.PageSize)
	if page == -1 {
		err = f.ReadLastBlock(buf)
	} else {
		err = f.ReadBlock(page, buf)
	}
	if err != nil {
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("page %d of %d", f.CurPagePos(), f.TotalNumPages()))
	c.Ui.Output(strings.TrimSuffix(hex.Dump(buf), "\n"))

	return 0
}

// WriteCommand overwrites a page
type WriteCommand struct {
	Meta
}

func (c *WriteCommand) Help() string {
	helpText := `
Usage: pagefile write [options] NAME

  Overwrites one existing page, either with a repeated byte or with the
  contents of a file. Short input is zero padded.

Options:

	-page=0		Page to write.
	-fill=""	Byte value to fill the page with, e.g. 0x41.
	-from=""	File whose first page of bytes is written.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *WriteCommand) Synopsis() string {
	return "Overwrites a page"
}

func (c *WriteCommand) Run(args []string) int {
	var page int
	var fill, from string

	cmdFlags := c.flagSet("write")
	cmdFlags.IntVar(&page, "page", 0, "page to write")
	cmdFlags.StringVar(&fill, "fill", "", "fill byte")
	cmdFlags.StringVar(&from, "from", "", "source file")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}

	buf, err := pageContents(fill, from)
	if err != nil {
		return c.fail(err)
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}

	if err := f.WriteBlock(page, buf); err != nil {
		_ = f.Close()
		return c.fail(err)
	}

	if err := f.Close(); err != nil {
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("wrote page %d", page))
	return 0
}

func pageContents(fill, from string) ([]byte, error) {
	switch {
	case fill != "" && from != "":
		return nil, errors.New("-fill and -from are mutually exclusive")
	case fill != "":
		b, err := strconv.ParseUint(fill, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid fill byte %q: %w", fill, err)
		}
		buf := make([]byte, storage.PageSize)
		for i := range buf {
			buf[i] = byte(b)
		}
		return buf, nil
	case from != "":
		data, err := os.ReadFile(from)
		if err != nil {
			return nil, err
		}
		if len(data) > storage.PageSize {
			data = data[:storage.PageSize]
		}
		return data, nil
	default:
		return nil, errors.New("one of -fill or -from is required")
	}
}
