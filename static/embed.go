// Package static embeds the single-page browser client.
package static

import _ "embed"

//go:embed index.html
var IndexHTML []byte
