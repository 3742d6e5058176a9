package main

import "github.com/naka-gawa/org-activity-stats/cmd"

func main() {
	cmd.Execute()
}
