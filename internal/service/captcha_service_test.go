package service

import (
	"testing"

	"github.com/meiye-next/internal/config"
)

func newCaptchaConfig(enabled bool) config.CaptchaConfig {
	cfg := config.CaptchaConfig{Enabled: enabled}
	cfg.Image.Width = 160
	cfg.Image.Height = 60
	cfg.Image.Length = 4
	cfg.Image.NoiseCount = 2
	cfg.Image.ExpireSeconds = 120
	return cfg
}

func TestCaptchaDisabledSkipsVerification(t *testing.T) {
	svc := NewCaptchaService(newCaptchaConfig(false))
	if svc.Enabled() {
		t.Fatalf("captcha should be disabled")
	}
	if err := svc.Verify("", ""); err != nil {
		t.Fatalf("disabled captcha must pass through, got %v", err)
	}
}

func TestCaptchaGenerateAndVerify(t *testing.T) {
	svc := NewCaptchaService(newCaptchaConfig(true))

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge incomplete: %+v", challenge)
	}

	if err := svc.Verify(challenge.CaptchaID, "definitely-wrong"); err != ErrCaptchaInvalid {
		t.Fatalf("wrong code want ErrCaptchaInvalid, got %v", err)
	}
	if err := svc.Verify("", "1234"); err != ErrCaptchaInvalid {
		t.Fatalf("blank id want ErrCaptchaInvalid, got %v", err)
	}
}
