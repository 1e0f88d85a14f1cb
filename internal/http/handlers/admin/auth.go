package admin

import (
	"errors"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "验证码生成失败", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// AdminLoginRequest 操作员登录请求
type AdminLoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// AdminLogin 操作员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		respondError(c, response.CodeBadRequest, "验证码错误", nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "账号或密码错误", nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	requestLog(c).Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin":      admin,
	})
}

// GetProfile 获取当前操作员信息
func (h *Handler) GetProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetOperator(adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "操作员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	response.Success(c, gin.H{
		"admin": admin,
		"roles": roles,
	})
}

// UpdateAdminPasswordRequest 修改密码请求
type UpdateAdminPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改当前操作员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req UpdateAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "旧密码错误", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "新密码强度不足", nil)
		case errors.Is(err, service.ErrAdminNotFound):
			respondError(c, response.CodeNotFound, "操作员不存在", nil)
		default:
			respondError(c, response.CodeInternal, "修改密码失败", err)
		}
		return
	}
	response.SuccessWithMsg(c, "密码已更新，请重新登录", nil)
}

// CreateOperatorRequest 创建操作员请求
type CreateOperatorRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// CreateOperator 创建操作员账号并绑定角色
func (h *Handler) CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, err := h.AuthService.CreateOperator(req.Username, req.Password, req.DisplayName, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminUsernameExists):
			respondError(c, response.CodeBadRequest, "账号已存在", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "密码强度不足", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "账号不能为空", nil)
		default:
			respondError(c, response.CodeInternal, "创建操作员失败", err)
		}
		return
	}

	if err := h.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
		requestLog(c).Errorw("operator_bind_role_failed", "admin_id", admin.ID, "role", admin.Role, "error", err)
	}

	response.Success(c, admin)
}

// ListOperators 获取操作员列表
func (h *Handler) ListOperators(c *gin.Context) {
	operators, err := h.AuthService.ListOperators()
	if err != nil {
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	response.Success(c, operators)
}

// GetOperator 获取操作员详情
func (h *Handler) GetOperator(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	admin, err := h.AuthService.GetOperator(id)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "操作员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	response.Success(c, gin.H{
		"admin": admin,
		"roles": roles,
	})
}

// SetOperatorRolesRequest 设置操作员角色请求
type SetOperatorRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// SetOperatorRoles 覆盖设置操作员角色
func (h *Handler) SetOperatorRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetOperatorRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if _, err := h.AuthService.GetOperator(id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "操作员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询操作员失败", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "设置角色失败", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "设置角色失败", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// RevokeOperatorTokens 吊销操作员全部登录态
func (h *Handler) RevokeOperatorTokens(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AuthService.RevokeTokens(id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, response.CodeNotFound, "操作员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "吊销登录态失败", err)
		return
	}
	response.SuccessWithMsg(c, "已吊销该操作员全部登录态", nil)
}
