package fileurl

import (
	"os"
	"strings"
)

// IsExist determines if the given path exists.
// IsExist 判断所给路径是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// IsDir determines if the given path is a directory.
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the directory holding path if it is missing.
// CreatePath 为给定文件路径创建所在目录
func CreatePath(path string, perm os.FileMode) error {
	dir := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		dir = path[:i]
	}
	if dir == "" || IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// PathSuffixCheckAdd appends suffix to p when missing.
// PathSuffixCheckAdd 若路径缺少后缀则补上
func PathSuffixCheckAdd(p string, suffix string) string {
	if !strings.HasSuffix(p, suffix) {
		return p + suffix
	}
	return p
}
