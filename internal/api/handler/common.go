package handler

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/response"
	"Atlania/internal/pkg/util"
	"Atlania/internal/service"
	stdjson "encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// currentUser AuthMiddleware 注入的当前用户，公开接口返回 nil
func currentUser(c *gin.Context) *model.User {
	user, _ := c.Get(consts.IdentityKey)
	caller, _ := user.(*model.User)
	return caller
}

// bindFail 绑定失败统一按参数错误处理
func bindFail(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	var unmarshalTypeError *json.UnmarshalTypeError
	var stdUnmarshalTypeError *stdjson.UnmarshalTypeError
	if errors.As(err, &ve) || errors.As(err, &unmarshalTypeError) || errors.As(err, &stdUnmarshalTypeError) {
		response.Error(c, err)
		return
	}
	response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
}

// bindAndValidate 绑定后执行 validate 标签校验
func bindAndValidate(c *gin.Context, obj any, bind func(any) error) bool {
	if err := bind(obj); err != nil {
		bindFail(c, err)
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return 0, false
	}
	return id, true
}

// bindPage skip/limit 查询参数，limit 缺省为 100
func bindPage(c *gin.Context) (int, int, bool) {
	var page dto.PageQuery
	if !bindAndValidate(c, &page, c.ShouldBindQuery) {
		return 0, 0, false
	}
	return page.Skip, page.LimitOr(consts.DefaultPageSize), true
}
