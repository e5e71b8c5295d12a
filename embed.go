package blog

import "embed"

// EmbeddedAssets contains static assets served by the preview server:
// reload.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
