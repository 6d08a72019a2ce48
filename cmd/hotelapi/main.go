package main

import "github.com/example/hotel-booking/internal/interfaces/cli"

func main() {
	cli.Execute()
}
