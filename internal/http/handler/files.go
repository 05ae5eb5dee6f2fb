package handler

import (
	"io"
	"mime/multipart"
	"path"

	"github.com/gofiber/fiber/v2"

	"meterportal/internal/http/middleware"
	"meterportal/internal/service"
)

// uploadFields are the multipart field names accepted for upload batches.
var uploadFields = []string{"files", "file"}

// UploadFiles stores a multipart batch into the participant bucket.
//
// @Summary  Upload raw data or configuration files
// @Tags     files
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    env    path     string true "project"
// @Param    number path     int    true "participant number"
// @Param    path   query    string true "raw data file name or config/ path"
// @Param    files  formData file   true "files to upload"
// @Success  201 {array}  storage.ObjectInfo
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/participants/{env}/{number}/uploads [post]
func UploadFiles(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		env, number, ok := participantParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PARTICIPANT", "invalid participant")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "files are required")
		}
		var headers []*multipart.FileHeader
		for _, field := range uploadFields {
			headers = append(headers, form.File[field]...)
		}
		if len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "files are required")
		}

		files := make([]service.UploadFile, 0, len(headers))
		var closers []io.Closer
		defer func() {
			for _, cl := range closers {
				_ = cl.Close()
			}
		}()
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			closers = append(closers, f)

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			files = append(files, service.UploadFile{
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
				Reader:      f,
			})
		}

		res, err := svc.Upload(c.UserContext(), user, env, number, c.Query("path"), files)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetObject streams an object of the participant bucket, or answers a
// presigned URL when presign=true.
//
// @Summary  Download a participant object
// @Tags     files
// @Produce  octet-stream
// @Security BearerAuth
// @Param    env     path  string true  "project"
// @Param    number  path  int    true  "participant number"
// @Param    key     query string true  "object name"
// @Param    presign query bool   false "answer a presigned URL instead of the content"
// @Success  200
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/participants/{env}/{number}/objects [get]
func GetObject(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.UserFromCtx(c)
		if !ok {
			return Unauthorized(c)
		}
		env, number, ok := participantParams(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PARTICIPANT", "invalid participant")
		}
		key := c.Query("key")

		if c.QueryBool("presign") {
			u, err := svc.PresignDownload(c.UserContext(), user, env, number, key)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(fiber.Map{"url": u})
		}

		rc, info, err := svc.Download(c.UserContext(), user, env, number, key)
		if err != nil {
			return writeServiceError(c, err)
		}

		name := info.Key
		if name == "" {
			name = key
		}
		c.Attachment(path.Base(name))
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.Size > 0 {
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}
