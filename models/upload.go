// file: models/upload.go
package models

import "time"

// Upload 对应 unihub_upload 表，记录上传文件的元信息
// 文件本体保存在本地 ./uploads 目录，ObjectKey 为随机生成的文件名
// 任何人可读（下载网关不鉴权），删除仅限上传者本人
type Upload struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	OwnerID     uint32    `gorm:"not null;index" json:"owner_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ObjectKey   string    `gorm:"size:255;unique;not null" json:"object_key"`
	ContentType string    `gorm:"size:255" json:"content_type"`
	FileSize    uint64    `gorm:"default:0" json:"file_size"`
	SHA256      string    `gorm:"size:64;not null" json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Upload) TableName() string {
	return "unihub_upload"
}
