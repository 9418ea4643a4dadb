// Package gamedata loads room template documents and the colors they name.
package gamedata

import "embed"

// DefaultRooms is the embedded template document used when no path is given.
const DefaultRooms = "rooms.json"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
