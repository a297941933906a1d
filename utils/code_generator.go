// file: utils/code_generator.go
package utils

import (
	"github.com/google/uuid"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateJoinCode 生成指定长度的随机入队邀请码（大写字母+数字）
func GenerateJoinCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GenerateObjectKey 为上传文件生成随机存储文件名，保留原始扩展名
func GenerateObjectKey(originalName string) string {
	ext := filepath.Ext(originalName)
	return strings.Replace(uuid.New().String(), "-", "", -1) + ext
}
