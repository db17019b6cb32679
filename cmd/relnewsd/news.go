package main

import (
	"encoding/json"
	"fmt"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// Run executes the news command.
func (c *NewsCmd) Run(deps *Dependencies) error {
	component, err := relnews.FindComponent(c.Component)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relnews.ErrorMessage(err))
		return err
	}

	summary, err := deps.News.ReleaseNews(deps.Ctx, component)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relnews.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
