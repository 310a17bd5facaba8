package main

import (
	_ "time/tzdata"

	"github.com/Freeeeeet/citybooking_bot/internal/cli"
)

func main() {
	cli.Execute()
}
