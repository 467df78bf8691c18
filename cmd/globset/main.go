// globset matches paths against glob patterns.
//
// Patterns are given as arguments, candidate paths arrive one per line on
// stdin, and matching paths are written to stdout. With -n, the indices of
// the matching patterns are printed before each path.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/lintel-rs/globset"
)

func main() {
	showIndices := flag.Bool("n", false, "print matching pattern indices")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-n] pattern [pattern ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	set, err := globset.NewGlobSet(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var indices []int
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		path := sc.Text()
		if *showIndices {
			indices = set.MatchesInto(path, indices)
			if len(indices) > 0 {
				fmt.Fprintf(out, "%v\t%s\n", indices, path)
			}
		} else if set.IsMatch(path) {
			fmt.Fprintln(out, path)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
		os.Exit(1)
	}
}
