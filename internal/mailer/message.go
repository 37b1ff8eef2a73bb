package mailer

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type mailKind struct {
	template string
	subject  string
	data     func() any
}

var kinds = map[string]mailKind{
	domain.MailTypeSignup: {
		template: "welcome_email.html",
		subject:  "员工管理系统 - 注册成功",
		data:     func() any { return &domain.SignupMailData{} },
	},
}

// DecodeMessage 反序列化队列中的邮件信息，并把 Data 解析为对应类型的结构体
func DecodeMessage(body []byte) (*domain.MailMessage, error) {
	var raw struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	kind, ok := kinds[raw.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型: %s", raw.Type)
	}

	data := kind.data()
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return nil, err
		}
	}

	return &domain.MailMessage{Type: raw.Type, To: raw.To, Data: data}, nil
}

func BuildMessage(from string, msg *domain.MailMessage) (*mail.Msg, error) {
	kind, ok := kinds[msg.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型: %s", msg.Type)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	if err := m.SetBodyHTMLTemplate(templates.Lookup(kind.template), msg.Data); err != nil {
		return nil, err
	}
	m.Subject(kind.subject)

	return m, nil
}
