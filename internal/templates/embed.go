// Package templates embeds the files the command line writes on behalf of the user.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.yaml
var files embed.FS

// FS returns the embedded templates.
func FS() fs.FS {
	return files
}

// ConfigTemplate returns the commented default config.
func ConfigTemplate() string {
	data, err := files.ReadFile("config.yaml")
	if err != nil {
		// embedded at build time
		panic(err)
	}
	return string(data)
}
