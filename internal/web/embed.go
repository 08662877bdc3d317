package web

import "embed"

// Bundled page templates and the static icon referenced by page
// metadata. Embedding keeps the binary self-contained; nothing is
// read from the working directory at runtime.
//
//go:embed templates/*.html static/*
var assets embed.FS
