package main

import (
	"flag"
	"fmt"
	"text/tabwriter"
	"time"
)

type listCmd struct {
	*root
	fs *flag.FlagSet
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	c := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := parseFlags(c, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Run() error {
	drawings, err := c.store().List()
	if err != nil {
		return err
	}
	if len(drawings) == 0 {
		fmt.Fprintln(c.stdout, "no saved drawings")
		return nil
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tACTIONS\tNAME")
	for _, d := range drawings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.ID, d.Created().Format(time.DateTime), len(d.Actions), d.Name)
	}
	return tw.Flush()
}

type deleteCmd struct {
	*root
	fs  *flag.FlagSet
	ids []string
}

func parseDeleteCmd(args []string, r *root) (*deleteCmd, error) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	c := &deleteCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := parseFlags(c, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	c.ids = fs.Args()
	return c, nil
}

func (c *deleteCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *deleteCmd) Run() error {
	st := c.store()
	for _, id := range c.ids {
		if err := st.Delete(id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		fmt.Fprintf(c.stdout, "deleted %s\n", id)
	}
	return nil
}
