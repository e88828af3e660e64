package main

import "github.com/dfquintero/plan-seguimiento/cmd"

func main() {
	cmd.Execute()
}
