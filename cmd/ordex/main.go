// Package main implements the CLI for ordex, an in-memory ordered index.
//
// EDUCATIONAL NOTES:
// ------------------
// This is the entry point for the demo driver. It provides:
// 1. A REPL (Read-Eval-Print Loop) for poking at a live B-tree
// 2. Command-line flags for the tree's order and seeded demo data
// 3. An alternative -serve mode that exposes the same operations over HTTP
//
// The REPL pattern is common in interactive tools:
// - Read: Get input from user
// - Eval: Parse and execute the input
// - Print: Display the result
// - Loop: Repeat until user exits

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/cabewaldrop/ordex/internal/datagen"
	"github.com/cabewaldrop/ordex/internal/index"
	"github.com/cabewaldrop/ordex/internal/render"
	"github.com/cabewaldrop/ordex/internal/web"
)

const version = "0.1.0"

// dotCommands are special commands starting with '.'
var dotCommands = []struct{ cmd, desc string }{
	{".help", "Show this help message"},
	{".levels", "Print the tree level by level"},
	{".validate", "Check every structural invariant"},
	{".stats", "Show order, key count and height"},
	{".clear", "Remove all keys"},
	{".quit", "Exit the program"},
}

func main() {
	order := flag.Int("order", 3, "B-tree order (maximum children per node, minimum 3)")
	count := flag.Int("n", 0, "Number of distinct random keys to preload")
	seed := flag.Int64("seed", 1, "Seed for random key generation (same seed, same keys)")
	serve := flag.Bool("serve", false, "Serve the HTTP inspector instead of the REPL")
	port := flag.Int("port", 8080, "Inspector port (with -serve)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ordex version %s\n", version)
		return
	}
	if *noColor {
		color.NoColor = true
	}

	tree, err := index.New(*order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating index: %v\n", err)
		os.Exit(1)
	}

	if *count > 0 {
		if err := preload(tree, *count, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error preloading keys: %v\n", err)
			os.Exit(1)
		}
	}

	if *serve {
		srv := web.NewServer(*port, web.NewStore(tree))
		if err := srv.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("ordex %s — in-memory ordered index (order %d)\n", version, *order)
	fmt.Println("Type '.help' for usage hints or '.quit' to exit.")
	if tree.Len() > 0 {
		fmt.Printf("Preloaded %d keys (seed %d).\n", tree.Len(), *seed)
	}
	repl(tree)
}

// preload fills the tree with distinct random keys and verifies the
// result, so a corrupted build fails loudly before the prompt appears.
func preload(tree *index.Tree, n int, seed int64) error {
	gen := datagen.New(seed)
	keys, err := gen.DistinctInts(n, 0, n*10)
	if err != nil {
		return err
	}
	for _, k := range keys {
		tree.Insert(k)
	}
	if rep := tree.Validate(); !rep.Valid {
		return fmt.Errorf("preloaded tree failed validation: %s", rep.Message)
	}
	return nil
}

// repl implements the Read-Eval-Print Loop.
func repl(tree *index.Tree) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("ordex> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(line, tree); quit {
				return
			}
			continue
		}

		handleCommand(line, tree)
	}
}

// handleDotCommand processes special dot commands. Returns true when the
// REPL should exit.
func handleDotCommand(cmd string, tree *index.Tree) bool {
	switch strings.Fields(cmd)[0] {
	case ".help":
		fmt.Println("\nAvailable commands:")
		for _, c := range dotCommands {
			fmt.Printf("  %-12s %s\n", c.cmd, c.desc)
		}
		fmt.Println("\nIndex commands:")
		fmt.Println("  insert <key> [key...]   Add integer keys")
		fmt.Println("  search <key>            Point lookup")
		fmt.Println("  keys                    List all keys in ascending order")
		fmt.Println()

	case ".levels":
		fmt.Print(render.Levels(tree.Levels()))

	case ".validate":
		fmt.Print(render.Report(tree.Validate()))

	case ".stats":
		fmt.Print(render.Stats(tree))

	case ".clear":
		tree.Clear()
		fmt.Println("Cleared.")

	case ".quit", ".exit":
		fmt.Println("Goodbye!")
		return true

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type '.help' for available commands.")
	}
	return false
}

// handleCommand dispatches the plain (non-dot) index commands.
func handleCommand(line string, tree *index.Tree) {
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case "insert":
		if len(fields) < 2 {
			fmt.Println("Usage: insert <key> [key...]")
			return
		}
		for _, arg := range fields[1:] {
			key, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Printf("Not an integer: %q\n", arg)
				continue
			}
			if tree.Insert(key) {
				fmt.Printf("inserted %d\n", key)
			} else {
				fmt.Printf("%d already present\n", key)
			}
		}
		fmt.Print(render.Stats(tree))

	case "search":
		if len(fields) != 2 {
			fmt.Println("Usage: search <key>")
			return
		}
		key, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Printf("Not an integer: %q\n", fields[1])
			return
		}
		loc, found := tree.Search(key)
		if !found {
			fmt.Printf("%d not found\n", key)
			return
		}
		fmt.Printf("%d found at depth %d, slot %d of node %v\n", key, loc.Depth, loc.Index, loc.Keys)

	case "keys":
		keys := tree.Keys()
		if len(keys) == 0 {
			fmt.Println("(no keys)")
			return
		}
		fmt.Println(strings.Trim(fmt.Sprint(keys), "[]"))

	default:
		fmt.Printf("Unknown command %q\n", fields[0])
		fmt.Println("Type '.help' for available commands.")
	}
}
