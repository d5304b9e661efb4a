package helper

import (
	"fmt"
	"io"
)

// Usage is one line of the command overview.
type Usage struct {
	Name string
	Args string
	Help string
}

func PrintHelp(w io.Writer, usages []Usage) {
	fmt.Fprint(w, "Usage:\n  gator [GLOBAL OPTIONS] COMMAND [ARGS]\n\nCommands:\n")
	for _, u := range usages {
		fmt.Fprintf(w, "   %-24s %s\n", u.Name+" "+u.Args, u.Help)
	}
}
