// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

/*
Command reelscout queries the movie catalog, favorites and recommendation
engine from the terminal without a running server.

The catalog comes from --catalog (a JSON file in any of the accepted catalog
shapes) or from the upstream provider in the loaded configuration. Favorites
are read from and written to the configured BadgerDB directory, so the
server must not hold the same directory open.

	reelscout genres
	reelscout recommend trending --limit 5
	reelscout recommend similar 603
	reelscout recommend genres Animation "Science Fiction"
	reelscout favorites add 603
	reelscout recommend favorites --json

Output is a table, or JSON with --json.
*/
package main
