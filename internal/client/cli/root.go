package cli

import (
	"bufio"
	"context"
	"os"
)

// Root runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the header client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
