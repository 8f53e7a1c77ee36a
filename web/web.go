// Package web 内嵌页面模板和静态资源
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates 模板目录
func Templates() (fs.FS, error) {
	return fs.Sub(files, "templates")
}

// Static 静态资源目录
func Static() (fs.FS, error) {
	return fs.Sub(files, "static")
}
