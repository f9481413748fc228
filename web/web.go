// Package web embeds the single-page view served at the root.
package web

import "embed"

//go:embed index.html
var FS embed.FS
