package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 在dir下生成唯一的临时文件路径，pattern须包含一个%s
func GetUniqTmpPath(dir, pattern string) string {
	return filepath.Join(dir, fmt.Sprintf(pattern, uuid.NewString()))
}

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}
