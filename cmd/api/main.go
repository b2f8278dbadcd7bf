package main

import (
	"fmt"
	"os"
)

// @title Wildlife Sightings API
// @version 1.0
// @description Registro de animales y sus avistamientos.
// @BasePath /
func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
