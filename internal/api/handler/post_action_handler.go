package handler

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		postActionSvc: postActionSvc,
	}
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if !bindAndValidate(c, &req, c.ShouldBindJSON) {
		return
	}
	comment, err := s.postActionSvc.CreateComment(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// GetComments 未传 limit 时返回全部评论
func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	var page dto.PageQuery
	if !bindAndValidate(c, &page, c.ShouldBindQuery) {
		return
	}
	comments, err := s.postActionSvc.GetComments(c.Request.Context(), postID, page.Skip, page.LimitOr(-1))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *PostActionHandler) LikePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	like, err := s.postActionSvc.LikePost(c.Request.Context(), currentUser(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, like)
}

func (s *PostActionHandler) UnlikePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	if err := s.postActionSvc.UnlikePost(c.Request.Context(), currentUser(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Unliked successfully"})
}
