package service

import "errors"

// 会员相关错误
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberInfoInvalid   = errors.New("member name or phone is empty")
	ErrPhoneExists         = errors.New("phone already exists")
	ErrMemberFrozen        = errors.New("member is frozen")
	ErrMemberHasBalance    = errors.New("member still has balance")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrMemberUpdateFailed  = errors.New("member update failed")
)

// 等级相关错误
var (
	ErrLevelNotFound    = errors.New("member level not found")
	ErrLevelNameEmpty   = errors.New("member level name is empty")
	ErrLevelOrderExists = errors.New("level order already exists")
	ErrLevelInUse       = errors.New("member level is in use")
	ErrInvalidDiscount  = errors.New("invalid discount rate")
)

// 产品与库存相关错误
var (
	ErrNameEmpty          = errors.New("name is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductOffSale     = errors.New("product is off sale")
	ErrCategoryNotFound   = errors.New("product category not found")
	ErrCategoryNameExists = errors.New("product category name already exists")
	ErrCategoryInUse      = errors.New("product category is in use")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrStockUpdateFailed  = errors.New("stock update failed")
)

// 服务项目与员工相关错误
var (
	ErrServiceNotFound = errors.New("service item not found")
	ErrServiceInactive = errors.New("service item is inactive")
	ErrStaffNotFound   = errors.New("staff not found")
	ErrStaffInactive   = errors.New("staff is inactive")
)

// 消费与充值相关错误
var (
	ErrConsumeRecordNotFound  = errors.New("consume record not found")
	ErrRechargeRecordNotFound = errors.New("recharge record not found")
	ErrPackageNotFound        = errors.New("recharge package not found")
	ErrPackageInactive        = errors.New("recharge package is inactive")
	ErrInvalidConsumeItem     = errors.New("invalid consume item")
	ErrPaymentMethodInvalid   = errors.New("payment method invalid")
)

// 预约相关错误
var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrScheduleConflict        = errors.New("appointment time conflict")
	ErrInvalidStatusTransition = errors.New("appointment status transition invalid")
	ErrCancelReasonRequired    = errors.New("cancel reason required")
	ErrInvalidTimeRange        = errors.New("invalid time range")
	ErrInvalidTimeFormat       = errors.New("invalid time format")
)

// 操作员认证相关错误
var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAdminUsernameExists = errors.New("admin username already exists")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrCaptchaInvalid      = errors.New("captcha invalid")
	ErrLoginRateLimited    = errors.New("too many login attempts")
	ErrWeakPassword        = errors.New("password too weak")
)
