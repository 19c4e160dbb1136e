package main

import "tablet-ingest/cmd"

func main() {
	cmd.Execute()
}
