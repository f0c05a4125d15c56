package main

import "github.com/kmaeshima/db-adhoc-report/cmd"

func main() {
	cmd.Execute()
}
