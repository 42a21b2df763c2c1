package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// TestUploadRejections 上传前置校验，不触达存储层
func TestUploadRejections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 校验在调用存储前就返回，handler 不会用到这个指针
	handler := NewHandler(&s3.Storage{})
	router := gin.New()
	router.POST("/upload", handler.Upload)

	tests := []struct {
		name         string
		fieldName    string
		contentType  string
		size         int
		expectedCode response.ResponseCode
	}{
		{"missing file field", "wrong_field", "image/png", 10, response.ParseError},
		{"oversized file", "file", "image/png", maxFileSize + 1, response.InvalidParameter},
		{"unsupported type pdf", "file", "application/pdf", 10, response.InvalidParameter},
		{"unsupported type svg", "file", "image/svg+xml", 10, response.InvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, formContentType := multipartBody(t, tt.fieldName, "cover.bin", tt.contentType, make([]byte, tt.size))

			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", formContentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// 错误统一走业务码，HTTP 状态恒为 200
			assert.Equal(t, http.StatusOK, w.Code)

			var resp response.Response
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Code)
		})
	}
}
