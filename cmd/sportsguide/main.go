// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command sportsguide scrapes the televised MLS schedule and exports it as
// an M3U playlist, an XMLTV guide and a deeplink preview.
package main

import (
	"os"

	_ "time/tzdata" // IANA zones for containers without /usr/share/zoneinfo
)

func main() {
	os.Exit(execute(os.Args[1:]))
}
