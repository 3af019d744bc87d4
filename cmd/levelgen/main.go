// Command levelgen writes the sample level (atlas, sky strip and YAML
// description) so the engine has something to load.
package main

import (
	"flag"
	"log"

	"raycaster/internal/world"
)

func main() {
	out := flag.String("out", "assets/levels", "directory to write the level into")
	flag.Parse()

	path, err := world.WriteSampleLevel(*out)
	if err != nil {
		log.Fatalf("Failed to write sample level: %v", err)
	}
	log.Printf("Wrote %s", path)
}
