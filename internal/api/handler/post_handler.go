package handler

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// ListPosts 公开列表
func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostListQuery
	if !bindAndValidate(c, &query, c.ShouldBindQuery) {
		return
	}
	posts, err := s.postSvc.GetPublishedPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPostBySlug(c *gin.Context) {
	post, err := s.postSvc.GetPublishedPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPostSelf(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}
	posts, err := s.postSvc.GetPostSelf(c.Request.Context(), currentUser(c), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if !bindAndValidate(c, &req, c.ShouldBindJSON) {
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}
