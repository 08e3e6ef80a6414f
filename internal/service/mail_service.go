package service

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/mail"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type IMailService interface {
	SendReceipt(ctx context.Context, ticket *model.Ticket) error
}

type MailService struct {
	mail.EmailSender
}

// NewMailService 初始化 mail service
// 參數:
//
//	senderName: 寄件者屬名
//	fromEmailAddress: 寄件者郵件地址
//	fromEmailPassword: 寄件者郵件密碼
func NewMailService(senderName, fromEmailAddress, fromEmailPassword string) IMailService {
	return &MailService{
		mail.NewGmailSender(senderName, fromEmailAddress, fromEmailPassword),
	}
}

func (m *MailService) SendReceipt(ctx context.Context, ticket *model.Ticket) error {
	html, err := GenerateReceiptHTML(ticket)
	if err != nil {
		return err
	}

	return m.SendEmail("Purchase receipt "+ticket.Code, html, []string{ticket.Purchaser}, nil, nil, nil)
}

// GenerateReceiptHTML 生成 HTML 格式的購買收據
func GenerateReceiptHTML(ticket *model.Ticket) (string, error) {
	tmpl, err := template.New("receiptHTML").Parse(receiptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse receipt template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, ticket)
	if err != nil {
		return "", fmt.Errorf("execute receipt template: %w", err)
	}

	return buf.String(), nil
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Purchase receipt</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #007bff; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px; background-color: #f9f9f9; }
        table { width: 100%; border-collapse: collapse; }
        th, td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thanks for your purchase</h1>
        </div>

        <div class="content">
            <p>Ticket <strong>{{.Code}}</strong></p>
            <p>Date: {{.PurchaseDatetime.Format "2006-01-02 15:04:05"}}</p>

            <table>
                <tr><th>Product</th><th>Quantity</th><th>Price</th></tr>
                {{range .Items}}
                <tr><td>#{{.ProductID}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>
                {{end}}
            </table>

            <p><strong>Total: {{.Amount}}</strong></p>
        </div>

        <div class="footer">
            <p>This mail was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`
