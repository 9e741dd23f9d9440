package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/raycaster/internal/placeholders"
)

func main() {
	dir := flag.String("out", "data/atlases", "directory for the atlas image and config")
	flag.Parse()

	fmt.Println("Raycaster Placeholder Wall Generator")
	fmt.Println("====================================")
	fmt.Println()

	configPath, err := placeholders.GenerateAndSave(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println()
	fmt.Println("Done! Point a level's \"atlas\" field at the config to use it.")
}
