package upload

// 上传限制：封面图最大 5MB，只接受图片类型
const maxFileSize = 5 << 20

// 允许的图片 MIME 类型
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadResponse 上传响应
type UploadResponse struct {
	URL string `json:"url"`
}
