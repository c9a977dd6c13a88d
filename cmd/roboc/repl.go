package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ezelra/robolang/internal/roboconfig"
	"github.com/ezelra/robolang/internal/robolang"
)

// runRepl starts an interactive session: each program is entered as a block
// of lines terminated by a blank line, then compiled and its report
// printed immediately, so a user can iterate on a snippet without
// relaunching roboc.
func runRepl(cfg roboconfig.Config) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "roboc> "})
	if err != nil {
		return fmt.Errorf("create readline session: %w", err)
	}
	defer rl.Close()

	fmt.Println("roboc interactive session. Enter a program, then a blank line to compile it. QUIT to exit.")

	for {
		source, err := readBlock(rl)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(source) == "QUIT" {
			return nil
		}
		if strings.TrimSpace(source) == "" {
			continue
		}

		result, err := robolang.Compile(source, cfg)
		if err != nil {
			fmt.Println(err.Error())
			continue
		}
		printReport(result, cfg)
	}
}

// readBlock accumulates lines from rl until a blank line or EOF.
func readBlock(rl *readline.Instance) (string, error) {
	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
