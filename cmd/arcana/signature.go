package main

import (
	"fmt"

	"github.com/fatih/color"
)

func printSignature() {
	cyan := color.New(color.FgHiCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite).SprintFunc()

	fmt.Println()
	fmt.Printf("%s : %s\n", cyan("Project    "), white("Arcana"))
	fmt.Printf("%s : %s\n", cyan("Tagline    "), white("Your handle, your card"))
	fmt.Println()
}
