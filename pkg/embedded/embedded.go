// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 以 "data/" 开头的路径在 Init() 之后从嵌入文件系统读取；
// 其他路径（或未初始化时）回退到本地文件系统，便于工具和测试直接加载磁盘文件。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 判断路径是否应从嵌入文件系统读取
func isEmbeddedPath(path string) bool {
	return initialized && strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
// "data/" 路径读取嵌入资源，其余路径读取本地文件
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("empty resource path")
	}

	embeddedPath := normalize(path)
	if isEmbeddedPath(embeddedPath) {
		return fs.ReadFile(dataFS, embeddedPath)
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if path == "" {
		return false
	}

	embeddedPath := normalize(path)
	if isEmbeddedPath(embeddedPath) {
		_, err := fs.Stat(dataFS, embeddedPath)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
