package main

import (
	"os"

	"github.com/locle27/Koyeb-Booking-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
