package main

import (
	"fmt"

	relhttp "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := relhttp.NewServer(deps.News, deps.Logger)
	srv.Addr = c.Addr

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	defer srv.Close()

	fmt.Fprintf(deps.Stdout, "relnewsd listening on %s\n", c.Addr)

	<-deps.Ctx.Done()
	return nil
}
