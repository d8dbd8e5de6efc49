package web

import "embed"

// StaticFS embeds the single-page dashboard served at /.
//
//go:embed static/*
var StaticFS embed.FS
