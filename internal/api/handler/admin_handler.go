package handler

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userRolesSvc service.UserRolesService
	postSvc      service.PostService
}

func NewAdminHandler(userRolesSvc service.UserRolesService, postSvc service.PostService) *AdminHandler {
	return &AdminHandler{
		userRolesSvc: userRolesSvc,
		postSvc:      postSvc,
	}
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}
	users, err := s.userRolesSvc.ListUsers(c.Request.Context(), currentUser(c), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// UpdateUserRole 角色可放在 query 或 JSON body 中
func (s *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	var req dto.UpdateRoleDTO
	if !bindAndValidate(c, &req, bindQueryOrBody(c)) {
		return
	}
	user, err := s.userRolesSvc.UpdateUserRole(c.Request.Context(), currentUser(c), userID, model.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *AdminHandler) GetPendingPosts(c *gin.Context) {
	posts, err := s.postSvc.GetPendingPosts(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// UpdatePostStatus 状态可放在 query 或 JSON body 中
func (s *AdminHandler) UpdatePostStatus(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	var req dto.UpdatePostStatusDTO
	if !bindAndValidate(c, &req, bindQueryOrBody(c)) {
		return
	}
	post, err := s.postSvc.UpdatePostStatus(c.Request.Context(), currentUser(c), postID, model.PostStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// bindQueryOrBody 有请求体时按 Content-Type 绑定，否则读 query
func bindQueryOrBody(c *gin.Context) func(any) error {
	if c.Request.ContentLength > 0 {
		return c.ShouldBind
	}
	return c.ShouldBindQuery
}
