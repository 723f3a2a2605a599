package handler

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/pkg/response"
	"Atlania/internal/pkg/util"
	"Atlania/internal/service"
	"errors"
	"path"

	"github.com/gin-gonic/gin"
)

// maxUploadSize 单个文件上限
const maxUploadSize = 100 << 20

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

func (s *MediaHandler) UploadImage(c *gin.Context) {
	s.upload(c, service.MediaKindImage)
}

func (s *MediaHandler) UploadVideo(c *gin.Context) {
	s.upload(c, service.MediaKindVideo)
}

func (s *MediaHandler) UploadFile(c *gin.Context) {
	s.upload(c, service.MediaKindFile)
}

func (s *MediaHandler) upload(c *gin.Context, kind service.MediaKind) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	data, contentType, err := util.ReadUpload(file, maxUploadSize)
	if err != nil {
		if errors.Is(err, util.ErrFileTooLarge) {
			response.Fail(c, response.BadRequest, err.Error())
			return
		}
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.mediaSvc.Upload(c.Request.Context(), currentUser(c), kind, &dto.MediaUploadDTO{
		Data:        data,
		FileName:    path.Base(file.Filename),
		ContentType: contentType,
		Folder:      c.PostForm("folder"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *MediaHandler) Delete(c *gin.Context) {
	if err := s.mediaSvc.Delete(c.Request.Context(), currentUser(c), c.Param("file_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "message": "File deleted successfully"})
}
