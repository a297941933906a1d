// file: controllers/upload_controller.go
package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
	"github.com/syedmaroofhussain3-blip/university-hub/utils"
)

const uploadDir = "./uploads"

// UploadFile 上传图片/凭证，存储文件名随机生成，避免覆盖与路径猜测
func UploadFile(c *gin.Context) {
	actor := currentActor(c)

	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 1001, "获取文件失败")
		return
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.Error(c, 5000, "创建上传目录失败")
		return
	}

	objectKey := utils.GenerateObjectKey(file.Filename)
	dst := filepath.Join(uploadDir, objectKey)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.Error(c, 5000, "保存文件失败")
		return
	}

	// 计算 SHA256
	f, err := os.Open(dst)
	if err != nil {
		utils.Error(c, 5000, "打开文件失败")
		return
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		utils.Error(c, 5000, "计算哈希失败")
		return
	}

	upload := models.Upload{
		OwnerID:     actor.ID,
		FileName:    file.Filename,
		ObjectKey:   objectKey,
		ContentType: file.Header.Get("Content-Type"),
		FileSize:    uint64(file.Size),
		SHA256:      hex.EncodeToString(hasher.Sum(nil)),
	}
	if err := database.DB.Create(&upload).Error; err != nil {
		utils.Error(c, 5000, "创建文件记录失败")
		return
	}

	utils.Success(c, "success", gin.H{
		"upload_id":  upload.ID,
		"object_key": upload.ObjectKey,
		"url":        "/api/v1/uploads/" + upload.ObjectKey + "/download",
	})
}

// DownloadFile 公开下载网关，不鉴权
func DownloadFile(c *gin.Context) {
	objectKey := c.Param("object_key")

	var upload models.Upload
	if err := database.DB.Where("object_key = ?", objectKey).First(&upload).Error; err != nil {
		utils.Error(c, 4004, "文件不存在")
		return
	}

	// ObjectKey 由服务端生成，filepath.Base 防御路径拼接
	c.File(filepath.Join(uploadDir, filepath.Base(upload.ObjectKey)))
}

// DeleteFile 删除文件，仅限上传者本人
func DeleteFile(c *gin.Context) {
	uploadID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的文件ID")
		return
	}
	actor := currentActor(c)

	var upload models.Upload
	if err := database.DB.First(&upload, uploadID).Error; err != nil {
		// 记录不存在也视为删除成功
		utils.Success(c, "File deleted successfully", nil)
		return
	}

	if !services.CanDeleteUpload(actor, upload) {
		utils.Error(c, 4003, "权限不足，只能删除自己上传的文件")
		return
	}

	_ = os.Remove(filepath.Join(uploadDir, filepath.Base(upload.ObjectKey)))

	if err := database.DB.Delete(&upload).Error; err != nil {
		utils.Error(c, 5000, "删除文件记录失败")
		return
	}

	utils.Success(c, "File deleted successfully", nil)
}
