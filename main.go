package main

import (
	"log"

	"github.com/lernovate/admin-api/app"
)

func main() {
	if err := app.SetupAndRunServer(); err != nil {
		log.Fatal(err)
	}
}
