package constants

// 会员状态常量
const (
	MemberStatusActive = "active"
	MemberStatusFrozen = "frozen"
)

// 会员性别常量
const (
	MemberGenderMale    = "male"
	MemberGenderFemale  = "female"
	MemberGenderUnknown = "unknown"
)

// 支付方式常量
const (
	PaymentMethodBalance  = "balance"
	PaymentMethodCash     = "cash"
	PaymentMethodWechat   = "wechat"
	PaymentMethodAlipay   = "alipay"
	PaymentMethodBankCard = "bank_card"
)

// 消费明细类型常量
const (
	ConsumeItemTypeProduct = "product"
	ConsumeItemTypeService = "service"
)

// 消费/充值记录状态常量
const (
	RecordStatusSuccess = "success"
)

// 产品状态常量
const (
	ProductStatusOnSale  = "on_sale"
	ProductStatusOffSale = "off_sale"
)

// 服务项目状态常量
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// 员工状态常量
const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

// 员工岗位常量
const (
	StaffRoleTechnician = "technician"
	StaffRoleCashier    = "cashier"
	StaffRoleManager    = "manager"
)

// 库存变动方向常量
const (
	StockDirectionIn  = "in"
	StockDirectionOut = "out"
)

// 库存变动原因常量
const (
	StockReasonSale       = "消费出库"
	StockReasonPurchase   = "采购入库"
	StockReasonAdjustment = "库存调整"
)

// 预约状态常量
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no_show"
)

// 充值套餐状态常量
const (
	RechargePackageStatusActive   = "active"
	RechargePackageStatusInactive = "inactive"
)

// 操作员角色常量
const (
	AdminRoleAdmin   = "admin"
	AdminRoleManager = "manager"
	AdminRoleCashier = "cashier"
)

// 队列与任务常量
const (
	QueueDefault            = "default"
	TaskAppointmentReminder = "appointment:reminder"
	TaskAppointmentNoShow   = "appointment:no_show_sweep"
	TaskLowStockAlert       = "stock:low_stock_alert"
)
