// Package web embeds the browser assets served by the API.
package web

import _ "embed"

// WidgetJS is the page script served at /widget.js.
//
//go:embed widget.js
var WidgetJS []byte
