// Package web embeds the dashboard templates and static assets.
package web

import "embed"

// TemplatesFS holds the HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds static assets (css/js/images).
//
//go:embed static/*
var StaticFS embed.FS
