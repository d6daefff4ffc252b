// Package httpserver serves a reports directory over HTTP so runs can be
// browsed and auto-refreshed from a browser instead of through file:// URLs.
package httpserver
