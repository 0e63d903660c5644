package service

import (
	"context"
	"errors"

	"github.com/go-resty/resty/v2"

	"go-consult/app/consult"
	"go-consult/common/log"
	"go-consult/config"
)

var mailerClient = resty.New()

type Mail struct {
	To      string `json:"to"`
	ToName  string `json:"toName"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type mailerResp struct {
	ID      string `json:"id"`
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SendMail posts one message to the transactional email provider.
// A disabled mailer (no endpoint configured) is not an error; the mail is
// logged and dropped so development setups work without a provider.
func SendMail(ctx context.Context, mail Mail) error {
	cfg := config.ExtConfig.Mailer
	if cfg.Endpoint == "" {
		consult.Logger().WithContext(ctx).Infof("mailer disabled, dropping mail to %s: %s", mail.To, mail.Subject)
		return nil
	}
	return log.WithTracer(ctx, PackageName, "send mail", func(ctx context.Context) error {
		var got mailerResp
		resp, err := mailerClient.R().SetContext(ctx).
			SetHeader("Authorization", "Bearer "+cfg.APIKey).
			SetBody(map[string]any{
				"from":      map[string]string{"email": cfg.From, "name": cfg.FromName},
				"to":        []map[string]string{{"email": mail.To, "name": mail.ToName}},
				"subject":   mail.Subject,
				"text_body": mail.Body,
			}).
			SetResult(&got).
			Post(cfg.Endpoint + "/v1/send")
		if err != nil {
			consult.Logger().WithContext(ctx).Error("mailer: ", err.Error())
			return err
		}
		if resp.StatusCode() >= 300 || got.ErrCode != 0 {
			consult.Logger().WithContext(ctx).Errorf("mailer status %d, errcode:%d, errmsg: %s",
				resp.StatusCode(), got.ErrCode, got.ErrMsg)
			return errors.New("mail provider rejected the message")
		}
		return nil
	})
}
