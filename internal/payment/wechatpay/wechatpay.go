package wechatpay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meiye-next/internal/config"
	"github.com/meiye-next/internal/models"

	"github.com/shopspring/decimal"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

var (
	ErrConfigInvalid   = errors.New("wechatpay config invalid")
	ErrResponseInvalid = errors.New("wechatpay response invalid")
)

var centsPerYuan = decimal.NewFromInt(100)

// Client 微信 Native 扫码收款客户端。
// 前台充值时生成 code_url，由收银台展示二维码给会员扫码付款。
type Client struct {
	cfg       config.WechatPayConfig
	nativeAPI native.NativeApiService
}

// NewClient 创建收款客户端
func NewClient(cfg config.WechatPayConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("%w: disabled", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MchID) == "" ||
		strings.TrimSpace(cfg.AppID) == "" ||
		strings.TrimSpace(cfg.MchCertSerialNo) == "" ||
		strings.TrimSpace(cfg.MchAPIv3Key) == "" ||
		strings.TrimSpace(cfg.PrivateKeyPath) == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrConfigInvalid)
	}

	privateKey, err := utils.LoadPrivateKeyWithPath(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load private key failed: %v", ErrConfigInvalid, err)
	}

	client, err := core.NewClient(
		context.Background(),
		option.WithWechatPayAutoAuthCipher(cfg.MchID, cfg.MchCertSerialNo, privateKey, cfg.MchAPIv3Key),
	)
	if err != nil {
		return nil, fmt.Errorf("create wechatpay client failed: %w", err)
	}

	return &Client{
		cfg:       cfg,
		nativeAPI: native.NativeApiService{Client: client},
	}, nil
}

// CreateNativeOrder 创建 Native 支付单，返回二维码链接
func (c *Client) CreateNativeOrder(ctx context.Context, recordNo string, amount models.Money, description string) (string, error) {
	if c == nil {
		return "", ErrConfigInvalid
	}
	recordNo = strings.TrimSpace(recordNo)
	if recordNo == "" {
		return "", fmt.Errorf("%w: empty record no", ErrResponseInvalid)
	}
	totalFen := amount.Decimal.Mul(centsPerYuan).IntPart()
	if totalFen <= 0 {
		return "", fmt.Errorf("%w: non-positive amount", ErrResponseInvalid)
	}
	if prefix := strings.TrimSpace(c.cfg.DescriptionPrefix); prefix != "" {
		description = prefix + description
	}

	resp, _, err := c.nativeAPI.Prepay(ctx, native.PrepayRequest{
		Appid:       core.String(c.cfg.AppID),
		Mchid:       core.String(c.cfg.MchID),
		Description: core.String(description),
		OutTradeNo:  core.String(recordNo),
		NotifyUrl:   core.String(c.cfg.NotifyURL),
		Amount: &native.Amount{
			Total:    core.Int64(totalFen),
			Currency: core.String("CNY"),
		},
	})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.CodeUrl == nil || strings.TrimSpace(*resp.CodeUrl) == "" {
		return "", ErrResponseInvalid
	}
	return strings.TrimSpace(*resp.CodeUrl), nil
}
