package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kjhallgren/lumen/runtime"
	"github.com/peterh/liner"
)

func main() {
	args := os.Args[1:]
	switch len(args) {
	case 0:
		runREPL()
	case 1:
		os.Exit(runtime.RunFile(args[0]))
	default:
		fmt.Fprintln(os.Stderr, "usage: lumen [script]")
		os.Exit(runtime.ExitUsageError)
	}
}

func runREPL() {
	if !isInteractive() {
		runBufferedREPL(bufio.NewReader(os.Stdin))
		return
	}
	runInteractiveREPL()
}

func runBufferedREPL(reader *bufio.Reader) {
	s := runtime.NewSession()
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			return
		}
		s.Reset()
		s.Run(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return
		}
	}
}

func runInteractiveREPL() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	s := runtime.NewSession()
	for {
		input, err := state.Prompt("lumen> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		if trimmed := strings.TrimSpace(input); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		s.Reset()
		s.Run(input)
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".lumen_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
