package command

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// For the sqlite dump database
	_ "github.com/mattn/go-sqlite3"

	"github.com/joeandaverde/pagefile/internal/dump"
)

// ExportCommand copies pages into a SQLite database
type ExportCommand struct {
	Meta
}

func (c *ExportCommand) Help() string {
	helpText := `
Usage: pagefile export [options] NAME

  Copies every page into the pages table of a SQLite database,
  creating the table if needed.

Options:

	-db=""		SQLite database file.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *ExportCommand) Synopsis() string {
	return "Exports pages to SQLite"
}

func (c *ExportCommand) Run(args []string) int {
	var dbPath string

	cmdFlags := c.flagSet("export")
	cmdFlags.StringVar(&dbPath, "db", "", "sqlite database")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}
	if dbPath == "" {
		return c.fail(errors.New("-db is required"))
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}
	defer f.Close()

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return c.fail(err)
	}
	defer db.Close()

	n, err := dump.Export(context.Background(), f, db)
	if err != nil {
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("exported %d pages to %s", n, dbPath))
	return 0
}

// ImportCommand copies pages out of a SQLite database
type ImportCommand struct {
	Meta
}

func (c *ImportCommand) Help() string {
	helpText := `
Usage: pagefile import [options] NAME

  Writes the rows of the pages table of a SQLite database into an
  existing page file, growing it as needed.

Options:

	-db=""		SQLite database file.
` + configHelp

	return strings.TrimSpace(helpText)
}

func (c *ImportCommand) Synopsis() string {
	return "Imports pages from SQLite"
}

func (c *ImportCommand) Run(args []string) int {
	var dbPath string

	cmdFlags := c.flagSet("import")
	cmdFlags.StringVar(&dbPath, "db", "", "sqlite database")
	if err := cmdFlags.Parse(args); err != nil {
		return c.fail(err)
	}
	if dbPath == "" {
		return c.fail(errors.New("-db is required"))
	}

	_, f, err := c.open(cmdFlags.Args())
	if err != nil {
		return c.fail(err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		_ = f.Close()
		return c.fail(err)
	}
	defer db.Close()

	n, err := dump.Import(context.Background(), db, f)
	if err != nil {
		_ = f.Close()
		return c.fail(err)
	}

	if err := f.Close(); err != nil {
		return c.fail(err)
	}

	c.Ui.Output(fmt.Sprintf("imported %d pages from %s", n, dbPath))
	return 0
}
