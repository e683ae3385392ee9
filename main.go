package main

import "github.com/vibast-solutions/ms-go-calendar/cmd"

func main() {
	cmd.Execute()
}
