package main

import (
	"log"

	"tidytodo/server/internal/serverrun"
)

func main() {
	if err := serverrun.Run(); err != nil {
		log.Fatal(err)
	}
}
