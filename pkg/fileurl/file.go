package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist determines if the file or directory exists
// IsExist 判断文件或文件夹是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the parent directory for the given file path
// CreatePath 为所给文件路径创建父目录
func CreatePath(file string, perm os.FileMode) error {
	dir := filepath.Dir(file)
	if IsDir(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath gets the directory of the current executable
// GetExePath 获取当前可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
