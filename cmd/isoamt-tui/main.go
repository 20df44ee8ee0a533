package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/isoamt/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: isoamt-tui <plan-file>")
		os.Exit(1)
	}
	planPath := os.Args[1]

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	// load before taking over the terminal; an encrypted plan may prompt
	loaded, err := tui.LoadPlan(planPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModelFromPlan(loaded), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
